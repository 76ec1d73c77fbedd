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

// Package registry implements the Operator & Template Registry (C3)
// and the Column Capability Registry (C4). Both are frozen at process
// start (§4.3, §4.4); no code path mutates them after NewOperatorRegistry
// or NewColumnRegistry returns.
package registry

import (
	"fmt"

	"github.com/fleetops/searchplanner/core"
)

// ClauseTemplate is a parameterized where-clause fragment referencing
// exactly one column and one or two positional parameters (§3).
type ClauseTemplate struct {
	Operator    core.Operator
	Wave        core.Wave
	TwoParams   bool
	// Render produces the SQL fragment for one column given the
	// starting parameter index (the index of the first "$n"). It
	// returns the fragment and the number of parameters it consumed.
	Render func(column string, paramStart int, jsonKey string) (sql string, paramsUsed int)
}

// defaultTrigramThreshold is the §4.3/§6.5 default similarity cutoff.
const defaultTrigramThreshold = 0.3

// OperatorRegistry is the closed, frozen mapping of operator -> template.
type OperatorRegistry struct {
	templates        map[core.Operator]ClauseTemplate
	trigramThreshold float64
}

// NewOperatorRegistry builds the frozen registry for the eight-member
// operator set. trigramThreshold overrides the 0.3 default (§6.5
// `trigram_threshold`); pass 0 to use the default.
func NewOperatorRegistry(trigramThreshold float64) *OperatorRegistry {
	if trigramThreshold <= 0 {
		trigramThreshold = defaultTrigramThreshold
	}
	r := &OperatorRegistry{
		templates:        make(map[core.Operator]ClauseTemplate),
		trigramThreshold: trigramThreshold,
	}

	r.templates[core.OpExact] = ClauseTemplate{
		Operator: core.OpExact, Wave: core.WaveOf(core.OpExact),
		Render: func(col string, p int, _ string) (string, int) {
			return fmt.Sprintf("%s = $%d", col, p), 1
		},
	}
	r.templates[core.OpIn] = ClauseTemplate{
		Operator: core.OpIn, Wave: core.WaveOf(core.OpIn),
		Render: func(col string, p int, _ string) (string, int) {
			return fmt.Sprintf("%s = ANY($%d)", col, p), 1
		},
	}
	r.templates[core.OpILike] = ClauseTemplate{
		Operator: core.OpILike, Wave: core.WaveOf(core.OpILike),
		Render: func(col string, p int, _ string) (string, int) {
			return fmt.Sprintf("%s ILIKE $%d", col, p), 1
		},
	}
	r.templates[core.OpArrayAnyILike] = ClauseTemplate{
		Operator: core.OpArrayAnyILike, Wave: core.WaveOf(core.OpArrayAnyILike),
		Render: func(col string, p int, _ string) (string, int) {
			return fmt.Sprintf("EXISTS (SELECT 1 FROM unnest(%s) elem WHERE elem ILIKE $%d)", col, p), 1
		},
	}
	r.templates[core.OpJSONPathILike] = ClauseTemplate{
		Operator: core.OpJSONPathILike, Wave: core.WaveOf(core.OpJSONPathILike),
		Render: func(col string, p int, jsonKey string) (string, int) {
			return fmt.Sprintf("%s->>'%s' ILIKE $%d", col, jsonKey, p), 1
		},
	}
	r.templates[core.OpTrigram] = ClauseTemplate{
		Operator: core.OpTrigram, Wave: core.WaveOf(core.OpTrigram),
		Render: func(col string, p int, _ string) (string, int) {
			return fmt.Sprintf("similarity(%s, $%d) >= %v", col, p, r.trigramThreshold), 1
		},
	}
	r.templates[core.OpRange] = ClauseTemplate{
		Operator: core.OpRange, Wave: core.WaveOf(core.OpRange), TwoParams: true,
		Render: func(col string, p int, _ string) (string, int) {
			return fmt.Sprintf("%s BETWEEN $%d AND $%d", col, p, p+1), 2
		},
	}
	r.templates[core.OpVector] = ClauseTemplate{
		Operator: core.OpVector, Wave: core.WaveOf(core.OpVector),
		Render: func(col string, p int, _ string) (string, int) {
			return fmt.Sprintf("%s <=> $%d", col, p), 1
		},
	}

	return r
}

// Template returns the frozen template for op, or false if op is
// outside the closed set (§4.3, §8 invariant 5 "no code path emits SQL
// without going through this mapping").
func (r *OperatorRegistry) Template(op core.Operator) (ClauseTemplate, bool) {
	t, ok := r.templates[op]
	return t, ok
}

// TrigramThreshold returns the configured similarity cutoff.
func (r *OperatorRegistry) TrigramThreshold() float64 { return r.trigramThreshold }
