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

package canon_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fleetops/searchplanner/canon"
)

func TestCanonical_EquivalenceClasses(t *testing.T) {
	classes := [][]string{
		{"4c", "4 c", "4-c", "4C", "FOUR-C", "four c"},
		{"ENG-0001-103", "ENG 0001 103", "eng0001103"},
		{"E047", "E-047", "e 047", "E 047", "e-047"},
	}

	for _, class := range classes {
		want := canon.Canonical(class[0])
		for _, form := range class[1:] {
			assert.Equal(t, want, canon.Canonical(form), "forms %q and %q should canonicalize identically", class[0], form)
		}
	}
}

func TestCanonical_Idempotent(t *testing.T) {
	inputs := []string{"ENG-0008-103", "  Generator 1  ", "fuel filter MTU", ""}
	for _, in := range inputs {
		once := canon.Canonical(in)
		twice := canon.Canonical(once)
		assert.Equal(t, once, twice, "canonical(canonical(%q)) should equal canonical(%q)", in, in)
	}
}

func TestCanonical_EmptyAfterTrim(t *testing.T) {
	assert.Equal(t, "", canon.Canonical("   "))
	assert.Equal(t, "", canon.Canonical(""))
}

func TestCanonical_NumberWordExpansion(t *testing.T) {
	assert.Equal(t, canon.Canonical("4c"), canon.Canonical("four c"))
}
