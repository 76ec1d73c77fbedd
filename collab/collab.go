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

// Package collab declares the two external collaborators the engine
// consumes (§6.1, §6.2): a read-only SQL execution surface and an
// embedding service. Neither is implemented here — the engine is
// handed a Database and an Embedder at construction time, the way the
// teacher's driver package hands a sql.Engine a storage provider
// rather than compiling one in.
package collab

import "context"

// Row is one raw row returned by a parameterized query or a fuzzy
// search procedure, keyed by column name.
type Row map[string]any

// HybridCandidate is one row returned by the match_link_targets
// stored procedure (§6.1): the fused hybrid-retrieval signal set the
// Hybrid Link Fusion Scorer (C13) consumes.
type HybridCandidate struct {
	ObjectType string
	ObjectID   string
	Label      string
	SText      float64
	SVector    float64
	SRecency   float64
	SBias      float64
	RankText   int
	RankVector int
	Payload    map[string]any
}

// Database is the read-only SQL execution surface consumed by the
// Probe Executor (C12) and the Linking Ladder (C14). Implementations
// must return an error satisfying errors.Is(err, core.ErrUnsupportedOperator)
// when a wave's operator (typically TRIGRAM or VECTOR) is not
// supported by the backing store, so the wave runner can downgrade it
// to a skip rather than a failure.
type Database interface {
	// Query runs one parameterized, positional-parameter statement and
	// returns its rows.
	Query(ctx context.Context, sql string, params []any) ([]Row, error)

	// MatchLinkTargets invokes the fused hybrid-retrieval procedure
	// (§6.1).
	MatchLinkTargets(ctx context.Context, tenant, queryText string, queryEmbedding []float32, objectTypes []string, role string, daysBack, limit int) ([]HybridCandidate, error)

	// SearchPartsFuzzy, SearchEquipmentFuzzy and SearchWorkOrdersFuzzy
	// invoke the three per-object-type fuzzy procedures named in §6.1.
	SearchPartsFuzzy(ctx context.Context, tenant, query string, threshold float64, limit int) ([]Row, error)
	SearchEquipmentFuzzy(ctx context.Context, tenant, query string, threshold float64, limit int) ([]Row, error)
	SearchWorkOrdersFuzzy(ctx context.Context, tenant, query string, threshold float64, limit int) ([]Row, error)
}

// Embedder produces a deterministic (up to model version) embedding
// for a text. Implementations must return an error satisfying
// errors.Is(err, core.ErrNoEmbedding) on failure, so the vector wave
// can be downgraded to a skip (§6.2).
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}
