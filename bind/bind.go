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

// Package bind implements the Column Matcher & Conjunction Planner
// (C9): it binds extracted entities to concrete columns on one table,
// one execution wave at a time, honoring the seven binding rules of
// §4.9. It never touches SQL text; that is the SQL Generator's job.
package bind

import (
	"github.com/fleetops/searchplanner/core"
)

// waves is the fixed wave execution order; Resolve only ever considers
// these four.
var waves = []core.Wave{core.WaveExact, core.WaveILike, core.WaveTrigram, core.WaveVector}

// Resolve binds entities to tbl's columns, producing at most one
// ResolvedQuery per wave (the wave with no eligible bindings is
// omitted from the result). tenantID is always installed as the
// table's first parameter and the table's tenant column always forms
// the first where-clause (rule 1).
func Resolve(tbl core.TableCapability, entities []core.Entity, tenantID string) map[core.Wave]core.ResolvedQuery {
	out := make(map[core.Wave]core.ResolvedQuery)
	if len(entities) == 0 {
		return out
	}

	weakOnly := core.AllWeak(entities)
	anchor := core.HasAnchor(entities)
	multiEntity := len(entities) >= 2

	for _, wave := range waves {
		if weakOnly && wave > core.WaveILike {
			// Rule 5: weak-only gate caps search at wave <= 1 (EXACT, ILIKE).
			continue
		}

		where := []core.WhereClause{{Column: tbl.YachtIDColumn, Operator: core.OpExact, ParamRef: 1, Group: 0}}
		params := []any{tenantID}
		nextRef := 2
		group := 1
		entityGroups := 0

		for _, entity := range entities {
			added := bindEntityForWave(tbl, entity, wave, weakOnly, multiEntity, anchor, group, &nextRef, &params, &where)
			if added {
				group++
				entityGroups++
			}
		}

		if entityGroups == 0 {
			continue
		}

		conjunction := core.ConjunctionOR
		if entityGroups > 1 {
			conjunction = core.ConjunctionAND
		}

		out[wave] = core.ResolvedQuery{
			Table:       tbl.Name,
			Wave:        wave,
			Where:       where,
			Conjunction: conjunction,
			Params:      params,
		}
	}

	return out
}

// bindEntityForWave appends every eligible (variant, column) clause
// for one entity within one wave to where/params, all tagged with
// group so they OR together (rule 3's column merge and rule 4's
// per-entity multi-variant OR are the same mechanism: membership in
// one group). It reports whether it added anything.
func bindEntityForWave(
	tbl core.TableCapability,
	entity core.Entity,
	wave core.Wave,
	weakOnly bool,
	multiEntity bool,
	anchor bool,
	group int,
	nextRef *int,
	params *[]any,
	where *[]core.WhereClause,
) bool {
	added := false
	for _, variant := range entity.Variants {
		if core.WaveOf(variant.Operator) != wave {
			continue
		}
		for colName, col := range tbl.Columns {
			if !col.ServesEntityType(entity.Type) || !col.SupportsOperator(variant.Operator) {
				continue
			}
			if col.ConjunctionOnly && !multiEntity {
				// Rule 6: a conjunction_only column never appears alone.
				continue
			}
			if !col.IsolatedOK && !anchor {
				// Rule 7: isolated_ok=false needs a strong/medium co-participant.
				continue
			}
			if weakOnly && !(col.IsolatedOK && col.PrimarySemanticHome) {
				// Rule 5: weak-only gate restricts to primary text columns.
				continue
			}

			jsonKey := ""
			if variant.Operator == core.OpJSONPathILike && len(col.JSONKeys) > 0 {
				jsonKey = col.JSONKeys[0]
			}

			*params = append(*params, variant.Value)
			*where = append(*where, core.WhereClause{
				Column:   colName,
				Operator: variant.Operator,
				ParamRef: *nextRef,
				JSONKey:  jsonKey,
				Group:    group,
			})
			*nextRef++
			added = true
		}
	}
	return added
}
