// Copyright 2026 The Fleetops Search Planner Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package token_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleetops/searchplanner/core"
	"github.com/fleetops/searchplanner/token"
)

func TestExtract_WorkOrderID(t *testing.T) {
	tokens := token.Extract("Re: WO-1042 parts needed", "vendor@acme.com", nil, nil)
	require.Contains(t, tokens.IDs, "wo_id")
	assert.Equal(t, []string{"1042"}, tokens.IDs["wo_id"])
}

func TestExtract_MultipleIDKindsDeduped(t *testing.T) {
	tokens := token.Extract("WO-1042 and WO#1042 again", "x@example.com", nil, nil)
	assert.Equal(t, []string{"1042"}, tokens.IDs["wo_id"])
}

func TestExtract_PartNumberFalsePositiveFiltered(t *testing.T) {
	tokens := token.Extract("see attached PDF", "x@example.com", nil, nil)
	assert.Empty(t, tokens.Parts["part_number"])
}

func TestExtract_SerialNumberRequiresLetterAndDigit(t *testing.T) {
	tokens := token.Extract("Serial ABCDEFGH no digits here", "x@example.com", nil, nil)
	assert.Empty(t, tokens.Parts["serial_number"])

	tokens2 := token.Extract("Serial AB12CD34", "x@example.com", nil, nil)
	assert.Equal(t, []string{"AB12CD34"}, tokens2.Parts["serial_number"])
}

func TestExtract_AttachmentClassification(t *testing.T) {
	atts := []token.Attachment{
		{Name: "invoice_3312.pdf"},
		{Name: "service_report_final.pdf"},
		{Name: "datasheet_gen1.pdf"},
		{Name: "random_notes.txt"},
	}
	tokens := token.Extract("", "x@example.com", atts, nil)
	assert.Equal(t, []string{"invoice_3312.pdf"}, tokens.AttachmentSignals.Procurement)
	assert.Equal(t, []string{"service_report_final.pdf"}, tokens.AttachmentSignals.Service)
	assert.Equal(t, []string{"datasheet_gen1.pdf"}, tokens.AttachmentSignals.Technical)
	assert.Equal(t, []string{"random_notes.txt"}, tokens.AttachmentSignals.Other)
}

func TestExtract_VendorSignals(t *testing.T) {
	tokens := token.Extract("hello", "Sales@Gmail.com", nil, []string{"h1", "h2"})
	assert.Equal(t, "gmail.com", tokens.Vendor.SenderDomain)
	assert.True(t, tokens.Vendor.IsPersonalDomain)
	assert.NotEmpty(t, tokens.Vendor.SenderHash)
	assert.Equal(t, []string{"h1", "h2"}, tokens.Vendor.ParticipantHashes)
}

func TestExtract_VendorSignals_NonPersonalDomain(t *testing.T) {
	tokens := token.Extract("hello", "sales@acme-marine.com", nil, nil)
	assert.Equal(t, "acme-marine.com", tokens.Vendor.SenderDomain)
	assert.False(t, tokens.Vendor.IsPersonalDomain)
}

func TestPrimaryID_PriorityOrder(t *testing.T) {
	tokens := token.Extract("WO-1 PO-2 INV-3", "x@example.com", nil, nil)
	kind, value, ok := token.PrimaryID(tokens)
	require.True(t, ok)
	assert.Equal(t, "wo_id", kind)
	assert.Equal(t, "1", value)
}

func TestPrimaryID_NoneFound(t *testing.T) {
	_, _, ok := token.PrimaryID(token.Extract("nothing structured here", "x@example.com", nil, nil))
	assert.False(t, ok)
}

func TestHasProcurementSignal(t *testing.T) {
	assert.True(t, token.HasProcurementSignal(token.Extract("PO-99 attached", "x@example.com", nil, nil)))
	assert.False(t, token.HasProcurementSignal(token.Extract("hello there", "x@example.com", nil, nil)))
}

func TestHasServiceSignal(t *testing.T) {
	assert.True(t, token.HasServiceSignal(token.Extract("WO-99 complete", "x@example.com", nil, nil)))
	assert.False(t, token.HasServiceSignal(token.Extract("hello there", "x@example.com", nil, nil)))
}

func TestExtractFromQuery_MapsToEntityTypes(t *testing.T) {
	entities := token.ExtractFromQuery("find WO-1042 urgently")
	require.NotEmpty(t, entities)
	var found bool
	for _, e := range entities {
		if e.Type == core.WONumber && e.RawValue == "1042" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestExtractFromQuery_NoMatches(t *testing.T) {
	assert.Empty(t, token.ExtractFromQuery("just some plain words"))
}
