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

package intent_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fleetops/searchplanner/core"
	"github.com/fleetops/searchplanner/intent"
)

func TestDetect_DiagnoseOnFaultEntity(t *testing.T) {
	entities := []core.Entity{{Type: core.FaultCode, RawValue: "F-047", Strength: core.Strong}}
	assert.Equal(t, core.IntentDiagnose, intent.Detect("show me F-047", entities))
}

func TestDetect_DiagnoseOnKeyword(t *testing.T) {
	assert.Equal(t, core.IntentDiagnose, intent.Detect("generator won't start, troubleshoot", nil))
}

func TestDetect_Order(t *testing.T) {
	assert.Equal(t, core.IntentOrder, intent.Detect("order a new fuel filter", nil))
}

func TestDetect_LookupOnStrongIDNoVerb(t *testing.T) {
	entities := []core.Entity{{Type: core.PartNumber, RawValue: "ENG-0008-103", Strength: core.Strong}}
	assert.Equal(t, core.IntentLookup, intent.Detect("ENG-0008-103", entities))
}

func TestDetect_LookupSuppressedByActionVerb(t *testing.T) {
	entities := []core.Entity{{Type: core.PartNumber, RawValue: "ENG-0008-103", Strength: core.Strong}}
	assert.Equal(t, core.IntentSearch, intent.Detect("show ENG-0008-103", entities))
}

func TestDetect_SearchDefault(t *testing.T) {
	assert.Equal(t, core.IntentSearch, intent.Detect("fuel filter leaking", nil))
}

func TestDetect_PrecedenceDiagnoseBeatsOrder(t *testing.T) {
	assert.Equal(t, core.IntentDiagnose, intent.Detect("order parts to fix the fault", nil))
}
