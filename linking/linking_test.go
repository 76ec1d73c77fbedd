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

package linking_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleetops/searchplanner/fusion"
	"github.com/fleetops/searchplanner/linking"
)

func TestRun_L1AutoConfirmsRegardlessOfScore(t *testing.T) {
	candidates := []linking.Candidate{
		{ObjectType: "work_order", ObjectID: "wo-1", Level: linking.LevelL1, BaseScore: 30, Reason: linking.ReasonWOPattern},
	}
	result := linking.Run(candidates, nil, fusion.Signals{}, nil, nil, false)
	require.NotNil(t, result.Primary)
	assert.Equal(t, linking.ConfidenceDeterministic, result.Primary.Confidence)
	assert.True(t, result.Primary.IsPrimary)
	assert.Equal(t, "wo-1", result.Primary.ObjectID)
}

func TestRun_BelowWeakThresholdProducesNoSuggestion(t *testing.T) {
	candidates := []linking.Candidate{
		{ObjectType: "work_order", ObjectID: "wo-1", Level: linking.LevelL4, BaseScore: 30},
	}
	result := linking.Run(candidates, nil, fusion.Signals{}, nil, nil, false)
	assert.Nil(t, result.Primary)
}

func TestRun_AmbiguityFlagWhenTopTwoWithinMargin(t *testing.T) {
	candidates := []linking.Candidate{
		{ObjectType: "work_order", ObjectID: "wo-1", Level: linking.LevelL3, BaseScore: 85},
		{ObjectType: "work_order", ObjectID: "wo-2", Level: linking.LevelL3, BaseScore: 80},
	}
	result := linking.Run(candidates, nil, fusion.Signals{}, nil, nil, false)
	assert.True(t, result.Ambiguous)
}

func TestRun_HybridCandidateAutoConfirmsAboveThresholdWhenUnambiguous(t *testing.T) {
	hybrid := linking.Candidate{ObjectType: "email", ObjectID: "thread-1", Reason: linking.ReasonTokenMatch}
	result := linking.Run(nil, &hybrid, fusion.Signals{
		SText: 1, SVectorRaw: 1, SBias: 1, RankText: 1, RankVector: 1,
	}, nil, nil, false)
	require.NotNil(t, result.Primary)
	assert.Equal(t, linking.ConfidenceDeterministic, result.Primary.Confidence)
}

func TestRun_RecencyAndStatusBonusesApply(t *testing.T) {
	base := []linking.Candidate{
		{ObjectType: "work_order", ObjectID: "wo-1", Level: linking.LevelL3, BaseScore: 65},
	}
	boosted := []linking.Candidate{
		{ObjectType: "work_order", ObjectID: "wo-1", Level: linking.LevelL3, BaseScore: 65, UpdatedRecently: true, IsOpenOrActive: true},
	}
	plain := linking.Run(base, nil, fusion.Signals{}, nil, nil, false)
	withBonus := linking.Run(boosted, nil, fusion.Signals{}, nil, nil, false)
	require.NotNil(t, plain.Primary)
	require.NotNil(t, withBonus.Primary)
	assert.Greater(t, withBonus.Primary.Score, plain.Primary.Score)
}

func TestRun_AlternatesCappedAtMaxAlternates(t *testing.T) {
	candidates := []linking.Candidate{
		{ObjectType: "work_order", ObjectID: "wo-1", Level: linking.LevelL2, BaseScore: 135},
		{ObjectType: "work_order", ObjectID: "wo-2", Level: linking.LevelL2, BaseScore: 110},
		{ObjectType: "work_order", ObjectID: "wo-3", Level: linking.LevelL2, BaseScore: 105},
		{ObjectType: "work_order", ObjectID: "wo-4", Level: linking.LevelL2, BaseScore: 101},
		{ObjectType: "work_order", ObjectID: "wo-5", Level: linking.LevelL2, BaseScore: 100},
	}
	result := linking.Run(candidates, nil, fusion.Signals{}, nil, nil, false)
	assert.LessOrEqual(t, len(result.Alternates), linking.MaxAlternates)
}

func TestRun_NoMatchWithProcurementSignalRecordsStub(t *testing.T) {
	result := linking.Run(nil, nil, fusion.Signals{}, nil, nil, true)
	assert.Nil(t, result.Primary)
	assert.True(t, result.ProcurementStub)
}

func TestRun_NoMatchWithoutProcurementSignalRecordsNothing(t *testing.T) {
	result := linking.Run(nil, nil, fusion.Signals{}, nil, nil, false)
	assert.Nil(t, result.Primary)
	assert.False(t, result.ProcurementStub)
}

func TestRun_BelowWeakThresholdWithProcurementSignalRecordsStub(t *testing.T) {
	candidates := []linking.Candidate{
		{ObjectType: "work_order", ObjectID: "wo-1", Level: linking.LevelL4, BaseScore: 30},
	}
	result := linking.Run(candidates, nil, fusion.Signals{}, nil, nil, true)
	assert.Nil(t, result.Primary)
	assert.True(t, result.ProcurementStub)
}

func TestAffinityCache_RecordRaisesBonus(t *testing.T) {
	c := linking.NewAffinityCache()
	assert.Equal(t, 0, c.Bonus("vendor-a"))

	for i := 0; i < 20; i++ {
		c.Record("vendor-a", 1.0)
	}
	assert.Greater(t, c.Bonus("vendor-a"), 10)
}

func TestAffinityCache_UnknownVendorHasZeroBonus(t *testing.T) {
	c := linking.NewAffinityCache()
	assert.Equal(t, 0, c.Bonus("never-seen"))
}
