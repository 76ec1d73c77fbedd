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

package variantgen_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleetops/searchplanner/core"
	"github.com/fleetops/searchplanner/variantgen"
)

func TestGenerate_Empty(t *testing.T) {
	assert.Empty(t, variantgen.Generate(core.PartNumber, ""))
	assert.Empty(t, variantgen.Generate(core.PartNumber, "   "))
}

func TestGenerate_PriorityMonotonic(t *testing.T) {
	variants := variantgen.Generate(core.PartName, "fuel filter")
	require.NotEmpty(t, variants)
	for i := 1; i < len(variants); i++ {
		assert.Less(t, variants[i-1].Priority, variants[i].Priority, "priority must be strictly monotonic")
	}
}

func TestGenerate_CanonicalPreservesStructuralPunctuation(t *testing.T) {
	variants := variantgen.Generate(core.PartNumber, "ENG-0008-103")
	require.NotEmpty(t, variants)
	assert.Equal(t, core.FormCanonical, variants[0].Form)
	assert.Equal(t, "ENG-0008-103", variants[0].Value)
	assert.Equal(t, core.OpExact, variants[0].Operator)
}

func TestGenerate_NonIDCanonicalIsNormalized(t *testing.T) {
	variants := variantgen.Generate(core.EquipmentName, "Generator 1")
	require.NotEmpty(t, variants)
	assert.Equal(t, core.FormCanonical, variants[0].Form)
	assert.NotEqual(t, "Generator 1", variants[0].Value)
}

func TestGenerate_ShortTermSkipsTrigram(t *testing.T) {
	variants := variantgen.Generate(core.EquipmentCode, "E1")
	for _, v := range variants {
		assert.NotEqual(t, core.FormTrigram, v.Form)
	}
}

func TestNewEntity_DropsEmpty(t *testing.T) {
	_, ok := variantgen.NewEntity(core.FreeText, "   ")
	assert.False(t, ok)
}

func TestNewEntity_SetsStrength(t *testing.T) {
	e, ok := variantgen.NewEntity(core.FaultCode, "F-047")
	require.True(t, ok)
	assert.Equal(t, core.Strong, e.Strength)
}
