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

// TableScore is a ranked candidate table with its accumulated bias
// score (§3, §4.8).
type TableScore struct {
	Table string
	Score float64
}

// ExitCondition bounds a batch's execution (§4.10).
type ExitCondition struct {
	StrongHitCount int
	MaxTimeMS      int
}

// DefaultExitCondition matches the §4.10 defaults.
func DefaultExitCondition() ExitCondition {
	return ExitCondition{StrongHitCount: 5, MaxTimeMS: 800}
}

// BatchPlan groups ranked tables sharing a bias band into one tier,
// together with the wave order to run within it (§3, §4.10).
type BatchPlan struct {
	Tier      int
	Tables    []TableScore
	WaveOrder []Wave
	Exit      ExitCondition
}

// ResolvedQuery is one table's bound where-clauses for a term set in
// one wave, produced by the Column Matcher & Conjunction Planner (C9)
// and consumed by the SQL Generator (C11).
type ResolvedQuery struct {
	Table       string
	Wave        Wave
	Where       []WhereClause
	Conjunction Conjunction
	Params      []any
}

// TraceEntry records one probe's outcome for observability (§6.3
// `trace`, §7 "logged into trace").
type TraceEntry struct {
	ProbeID    string
	Table      string
	Tier       int
	Wave       Wave
	State      ProbeState
	RowCount   int
	DurationMS int64
	Err        string
}

// Trace is the full per-wave, per-probe record of a plan's execution.
type Trace struct {
	Entries         []TraceEntry
	EarlyExit       bool
	DeadlineExceeded bool
}

// ExecutionPlan is the frozen output of PREPARE (§3). It contains no
// cleartext credentials, no rendered SQL, and no table omitted from
// scope (§3 invariant).
type ExecutionPlan struct {
	PlanID        string
	Lane          LaneDecision
	Scope         UserScope
	Terms         []Entity
	Intent        Intent
	RankedTables  []TableScore
	Resolved      map[string][]ResolvedQuery // keyed by table name
	Batches       []BatchPlan
	SurfaceState  SurfaceState
}
