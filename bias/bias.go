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

// Package bias implements the Table Bias Scorer (C8): for every
// candidate table, sums a fixed set of per-term bonuses, removes
// tables the caller's role cannot read, and produces a stable
// descending-bias ranking (§4.8).
package bias

import (
	"math"
	"sort"

	"github.com/fleetops/searchplanner/core"
)

const (
	primaryHomeBonus   = 2.0
	secondaryBonus     = 1.0
	intentAffinityBonus = 0.5
)

// intentAffinity declares, per intent, the tables that receive the
// §4.8 "+0.5 intent affinity bonus per declared intent→table weight".
// This mapping is not itemized in the original distillation; it
// follows the domain shape the teacher's table declarations imply
// (diagnosis work centers on faults/equipment, ordering on purchasing
// and stock).
var intentAffinity = map[core.Intent]map[string]bool{
	core.IntentDiagnose: {"pms_faults": true, "pms_equipment": true, "symptom_aliases": true},
	core.IntentOrder:    {"pms_purchase_orders": true, "pms_parts": true, "pms_inventory": true},
}

// Score sums the §4.8 bonuses for each table in tables across every
// term, drops tables scope cannot read, and returns a stable
// descending-bias ranking with ties broken by table name.
func Score(tables []core.TableCapability, terms []core.Entity, in core.Intent, scope core.UserScope) []core.TableScore {
	scores := make([]core.TableScore, 0, len(tables))
	for _, tbl := range tables {
		if !scope.CanRead(tbl.Name) {
			continue
		}
		total := 0.0
		for _, term := range terms {
			total += columnBonus(tbl, term.Type)
		}
		if intentAffinity[in][tbl.Name] {
			total += intentAffinityBonus
		}
		scores = append(scores, core.TableScore{Table: tbl.Name, Score: total})
	}

	sort.SliceStable(scores, func(i, j int) bool {
		if scores[i].Score != scores[j].Score {
			return scores[i].Score > scores[j].Score
		}
		return scores[i].Table < scores[j].Table
	})
	return scores
}

func columnBonus(tbl core.TableCapability, et core.EntityType) float64 {
	best := 0.0
	for _, col := range tbl.Columns {
		if !col.ServesEntityType(et) {
			continue
		}
		if col.PrimarySemanticHome {
			best = math.Max(best, primaryHomeBonus)
		} else {
			best = math.Max(best, secondaryBonus)
		}
	}
	return best
}
