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

package memdb_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleetops/searchplanner/collab"
	"github.com/fleetops/searchplanner/collab/memdb"
	"github.com/fleetops/searchplanner/core"
)

func TestQuery_FiltersByTenant(t *testing.T) {
	db := memdb.New()
	db.Seed("pms_parts", []collab.Row{
		{"yacht_id": "yacht-1", "part_number": "ENG-0008-103"},
		{"yacht_id": "yacht-2", "part_number": "ENG-0008-103"},
	})

	rows, err := db.Query(context.Background(), "SELECT * FROM pms_parts WHERE yacht_id = $1", []any{"yacht-1"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "yacht-1", rows[0]["yacht_id"])
}

func TestQuery_UnknownTableReturnsNoRows(t *testing.T) {
	db := memdb.New()
	rows, err := db.Query(context.Background(), "SELECT * FROM pms_parts WHERE yacht_id = $1", []any{"yacht-1"})
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestQuery_MarkUnsupportedOperatorFailsWithErrUnsupportedOperator(t *testing.T) {
	db := memdb.New()
	db.MarkUnsupported(core.OpTrigram)

	_, err := db.Query(context.Background(), "SELECT * FROM pms_parts WHERE similarity(name, $2) > $3", []any{"yacht-1"})
	require.Error(t, err)
	assert.True(t, core.ErrUnsupportedOperator.Is(err))
}

func TestSearchPartsFuzzy_FiltersByTenantAndSubstring(t *testing.T) {
	db := memdb.New()
	db.Seed("pms_parts", []collab.Row{
		{"yacht_id": "yacht-1", "name": "fuel filter element"},
		{"yacht_id": "yacht-1", "name": "oil pump"},
		{"yacht_id": "yacht-2", "name": "fuel filter element"},
	})

	rows, err := db.SearchPartsFuzzy(context.Background(), "yacht-1", "fuel", 0.3, 10)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "fuel filter element", rows[0]["name"])
}

func TestMatchLinkTargets_ReturnsNoCandidates(t *testing.T) {
	db := memdb.New()
	candidates, err := db.MatchLinkTargets(context.Background(), "yacht-1", "fuel filter", nil, nil, "", 90, 10)
	require.NoError(t, err)
	assert.Empty(t, candidates)
}

func TestEmbed_DeterministicForSameText(t *testing.T) {
	e := memdb.NewEmbedder()
	v1, err := e.Embed(context.Background(), "fuel filter")
	require.NoError(t, err)
	v2, err := e.Embed(context.Background(), "fuel filter")
	require.NoError(t, err)
	assert.Equal(t, v1, v2)
	assert.Len(t, v1, 1536)
}

func TestEmbed_EmptyTextReturnsErrNoEmbedding(t *testing.T) {
	e := memdb.NewEmbedder()
	_, err := e.Embed(context.Background(), "")
	require.Error(t, err)
	assert.True(t, core.ErrNoEmbedding.Is(err))
}
