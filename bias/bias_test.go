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

package bias_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleetops/searchplanner/bias"
	"github.com/fleetops/searchplanner/core"
	"github.com/fleetops/searchplanner/registry"
)

func TestScore_PrimaryHomeOutranksSecondary(t *testing.T) {
	tables := registry.DefaultTables()
	terms := []core.Entity{{Type: core.PartNumber, RawValue: "x", Strength: core.Strong}}
	scores := bias.Score(tables, terms, core.IntentSearch, core.UserScope{})
	require.NotEmpty(t, scores)
	assert.Equal(t, "pms_parts", scores[0].Table)
	assert.GreaterOrEqual(t, scores[0].Score, 2.0)
}

func TestScore_RemovesUnreadableTables(t *testing.T) {
	tables := registry.DefaultTables()
	scope := core.UserScope{ReadableTables: map[string]bool{"pms_parts": true}}
	scores := bias.Score(tables, nil, core.IntentSearch, scope)
	require.Len(t, scores, 1)
	assert.Equal(t, "pms_parts", scores[0].Table)
}

func TestScore_IntentAffinityBonus(t *testing.T) {
	tables := registry.DefaultTables()
	scores := bias.Score(tables, nil, core.IntentDiagnose, core.UserScope{})
	var faults, parts float64
	for _, s := range scores {
		if s.Table == "pms_faults" {
			faults = s.Score
		}
		if s.Table == "pms_parts" {
			parts = s.Score
		}
	}
	assert.Greater(t, faults, parts)
}

func TestScore_StableTieBreakByTableName(t *testing.T) {
	tables := registry.DefaultTables()
	scores := bias.Score(tables, nil, core.IntentSearch, core.UserScope{})
	for i := 1; i < len(scores); i++ {
		if scores[i-1].Score == scores[i].Score {
			assert.Less(t, scores[i-1].Table, scores[i].Table)
		}
	}
}
