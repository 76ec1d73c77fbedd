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

package fusion_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fleetops/searchplanner/fusion"
)

func TestScore_PerfectSignalsApproachMax(t *testing.T) {
	score := fusion.Score(fusion.Signals{
		SText: 1, SVectorRaw: 1, AgeDays: 0, SBias: 1,
		RankText: 1, RankVector: 1,
	})
	assert.InDelta(t, 150, score, 2)
}

func TestScore_WorstCaseSignalsIsZero(t *testing.T) {
	score := fusion.Score(fusion.Signals{AgeDays: 10000})
	assert.InDelta(t, 0, score, 2)
}

func TestScore_ClampedToRange(t *testing.T) {
	score := fusion.Score(fusion.Signals{
		SText: 5, SVectorRaw: 10, AgeDays: -10, SBias: 5,
		RankText: 1, RankVector: 1,
	})
	assert.GreaterOrEqual(t, score, 0)
	assert.LessOrEqual(t, score, 150)
}

func TestScore_RecencyDecaysWithAge(t *testing.T) {
	fresh := fusion.Score(fusion.Signals{SText: 0.5, SVectorRaw: 0.72, AgeDays: 0})
	old := fusion.Score(fusion.Signals{SText: 0.5, SVectorRaw: 0.72, AgeDays: 180})
	assert.Greater(t, fresh, old)
}

func TestScore_HigherRankBeatsLowerRank(t *testing.T) {
	top := fusion.Score(fusion.Signals{SText: 0.5, SVectorRaw: 0.72, RankText: 1})
	bottom := fusion.Score(fusion.Signals{SText: 0.5, SVectorRaw: 0.72, RankText: 50})
	assert.Greater(t, top, bottom)
}

func TestScore_MonotonicInVectorSimilarity(t *testing.T) {
	low := fusion.Score(fusion.Signals{SVectorRaw: 0.5})
	high := fusion.Score(fusion.Signals{SVectorRaw: 0.9})
	assert.Greater(t, high, low)
}
