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

package core

// ResultSource marks where a row originated, used for dedup tie-breaks
// (§4.15 "Ties break by SQL over vector").
type ResultSource string

const (
	SourceSQL    ResultSource = "sql"
	SourceVector ResultSource = "vector"
)

// Row is one retrieved record, annotated with its source table before
// merging (§4.12).
type Row struct {
	ObjectType string
	ObjectID   string
	Source     ResultSource
	SourceTable string
	Payload    map[string]any
	UpdatedAt  int64 // unix seconds; 0 if unknown
	RankScore  float64

	// retrieval signals carried through from the probe/hybrid path,
	// consumed by the Ranker/Merger (C15) and never serialized back to
	// the caller.
	Similarity float64
	ExactMatch bool
}

// Key returns the dedup key (§3 LinkSuggestion / §4.15).
func (r Row) Key() string { return string(r.ObjectType) + "\x00" + r.ObjectID }

// Stats summarizes a single Execute call (§6.3).
type Stats struct {
	WavesExecuted         int
	TiersExecuted         int
	EarlyExit             bool
	TotalTimeMS           int64
	TablesHit             []string
	SQLQueriesExecuted    int
	VectorQueriesExecuted int
}

// SearchResult is the top-level output record (§6.3).
type SearchResult struct {
	Lane   Lane
	Intent Intent
	Rows   []Row
	Stats  Stats
	Trace  *Trace // present only when the caller asked for debug_mode

	BlockMessage string
	Suggestions  []string
}
