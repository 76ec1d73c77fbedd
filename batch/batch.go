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

// Package batch implements the Batch Planner (C10): it partitions a
// bias-ranked table list into bias-threshold tiers and attaches the
// per-lane wave order and exit condition each tier runs under (§4.10).
package batch

import "github.com/fleetops/searchplanner/core"

const (
	tier1Threshold = 3.0
	tier2Threshold = 1.5
	tier3Threshold = 0.0
)

// Plan partitions ranked (already bias-sorted, descending) tables into
// tiers. Tables scoring at or below the tier-3 floor (0) never made it
// past bias scoring's readability cut and contribute no tier here.
func Plan(ranked []core.TableScore, lane core.LaneDecision) []core.BatchPlan {
	var tiers [3][]core.TableScore
	for _, ts := range ranked {
		switch {
		case ts.Score >= tier1Threshold:
			tiers[0] = append(tiers[0], ts)
		case ts.Score >= tier2Threshold:
			tiers[1] = append(tiers[1], ts)
		case ts.Score > tier3Threshold:
			tiers[2] = append(tiers[2], ts)
		}
	}

	waveOrder := lane.WaveOrder()
	exit := core.DefaultExitCondition()

	var plans []core.BatchPlan
	for i, tables := range tiers {
		if len(tables) == 0 {
			continue
		}
		plans = append(plans, core.BatchPlan{
			Tier:      i + 1,
			Tables:    tables,
			WaveOrder: waveOrder,
			Exit:      exit,
		})
	}
	return plans
}
