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

package rank_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleetops/searchplanner/core"
	"github.com/fleetops/searchplanner/rank"
)

var fixedNow = time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

func TestMerge_DedupsPreferringSQLOrigin(t *testing.T) {
	sqlRows := []rank.Candidate{
		{ObjectType: "work_order", ObjectID: "wo-1", Source: rank.SourceSQL, Similarity: 0.9, UpdatedAt: fixedNow},
	}
	vectorRows := []rank.Candidate{
		{ObjectType: "work_order", ObjectID: "wo-1", Source: rank.SourceVector, Similarity: 0.4, UpdatedAt: fixedNow},
	}

	ranked := rank.Merge(sqlRows, vectorRows, core.SurfaceGlobalSearch, fixedNow)
	require.Len(t, ranked, 1)
	assert.Equal(t, rank.SourceSQL, ranked[0].Source)
}

func TestMerge_StableSortDescendingByScore(t *testing.T) {
	sqlRows := []rank.Candidate{
		{ObjectType: "work_order", ObjectID: "wo-low", Source: rank.SourceSQL, Similarity: 0.1, UpdatedAt: fixedNow},
		{ObjectType: "work_order", ObjectID: "wo-high", Source: rank.SourceSQL, Similarity: 0.9, UpdatedAt: fixedNow},
	}

	ranked := rank.Merge(sqlRows, nil, core.SurfaceGlobalSearch, fixedNow)
	require.Len(t, ranked, 2)
	assert.Equal(t, "wo-high", ranked[0].ObjectID)
	assert.Equal(t, "wo-low", ranked[1].ObjectID)
}

func TestMerge_TieBreakSQLOverVector(t *testing.T) {
	sqlRows := []rank.Candidate{
		{ObjectType: "work_order", ObjectID: "wo-sql", Source: rank.SourceSQL, Similarity: 0.5, UpdatedAt: fixedNow},
	}
	vectorRows := []rank.Candidate{
		{ObjectType: "work_order", ObjectID: "wo-vec", Source: rank.SourceVector, Similarity: 0.5, UpdatedAt: fixedNow},
	}

	ranked := rank.Merge(sqlRows, vectorRows, core.SurfaceGlobalSearch, fixedNow)
	require.Len(t, ranked, 2)
	assert.Equal(t, "wo-sql", ranked[0].ObjectID)
}

func TestMerge_TieBreakNewerUpdatedAt(t *testing.T) {
	older := fixedNow.Add(-48 * time.Hour)
	sqlRows := []rank.Candidate{
		{ObjectType: "work_order", ObjectID: "wo-old", Source: rank.SourceSQL, Similarity: 0.5, UpdatedAt: older},
		{ObjectType: "work_order", ObjectID: "wo-new", Source: rank.SourceSQL, Similarity: 0.5, UpdatedAt: fixedNow},
	}

	// Ranking as of the older timestamp gives both rows full recency
	// (a future UpdatedAt counts as age 0), so the scores tie and only
	// the UpdatedAt tie-break orders them.
	ranked := rank.Merge(sqlRows, nil, core.SurfaceEmailInbox, older)
	require.Len(t, ranked, 2)
	assert.Equal(t, "wo-new", ranked[0].ObjectID)
}

func TestMerge_ExactMatchBoostsScore(t *testing.T) {
	sqlRows := []rank.Candidate{
		{ObjectType: "work_order", ObjectID: "wo-plain", Source: rank.SourceSQL, Similarity: 0.5, UpdatedAt: fixedNow},
		{ObjectType: "work_order", ObjectID: "wo-exact", Source: rank.SourceSQL, Similarity: 0.5, UpdatedAt: fixedNow, ExactMatch: true},
	}

	ranked := rank.Merge(sqlRows, nil, core.SurfaceGlobalSearch, fixedNow)
	require.Len(t, ranked, 2)
	assert.Equal(t, "wo-exact", ranked[0].ObjectID)
}

func TestMerge_UnknownSurfaceFallsBackToDefaultRecipe(t *testing.T) {
	sqlRows := []rank.Candidate{
		{ObjectType: "work_order", ObjectID: "wo-1", Source: rank.SourceSQL, Similarity: 0.7, UpdatedAt: fixedNow},
	}
	ranked := rank.Merge(sqlRows, nil, core.SurfaceState("unknown_surface"), fixedNow)
	require.Len(t, ranked, 1)
	assert.Greater(t, ranked[0].Score, 0.0)
}
