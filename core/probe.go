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

// Conjunction is how a probe's where-clauses combine.
type Conjunction string

const (
	ConjunctionAND Conjunction = "AND"
	ConjunctionOR  Conjunction = "OR"
)

// WhereClause is one resolved predicate inside a probe. Clauses
// sharing the same Group combine with OR (§4.9 rule 3's same-entity
// column merge, rule 4's per-entity multi-variant OR); distinct
// groups combine with the owning ResolvedQuery/Probe's Conjunction,
// which is AND whenever more than one group is present (shape C).
type WhereClause struct {
	Column   string
	Operator Operator
	ParamRef int // index into Probe.Params, 1-based to match SQL $n placeholders
	JSONKey  string
	Group    int
}

// ProbeState is the executor's view of a probe's lifecycle (§4.11).
type ProbeState string

const (
	ProbePending        ProbeState = "pending"
	ProbeRunning        ProbeState = "running"
	ProbeDone           ProbeState = "done"
	ProbeError          ProbeState = "error"
	ProbeBudgetExceeded ProbeState = "budget_exceeded"
	ProbeCancelled      ProbeState = "cancelled"
	// ProbeSkipped marks a probe the executor never sent to the
	// database collaborator because its wave's operator was reported
	// unsupported (§6.1) or its embedder call failed (§6.2) — a
	// downgrade, not a failure.
	ProbeSkipped ProbeState = "skipped"
)

// Probe is the smallest executable unit (§3): one table, one wave.
// Params[0] is always the tenant id (§8 invariant 1, §5 tenant
// isolation). SQL is the fully rendered, parameterized statement the
// SQL Generator (C11) produced from Where/Conjunction/Params; the
// executor never concatenates text of its own, it only forwards SQL
// and Params to the database collaborator (§6.1).
type Probe struct {
	ProbeID     string
	Table       string
	SelectCols  []string
	Where       []WhereClause
	Conjunction Conjunction
	Wave        Wave
	Limit       int
	OrderBy     string
	Params      []any
	SQL         string

	State ProbeState
}

// TenantID returns params[0], or "" if the probe has no params yet.
func (p Probe) TenantID() string {
	if len(p.Params) == 0 {
		return ""
	}
	s, _ := p.Params[0].(string)
	return s
}
