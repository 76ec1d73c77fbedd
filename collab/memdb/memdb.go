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

// Package memdb is an in-memory reference implementation of
// collab.Database and collab.Embedder, for tests and local exercising
// of the engine. It plays the role the teacher's memory package plays
// for sql.Engine: a provider callers can swap in without a real
// database, guarded by a single mutex since it is test-scope only.
package memdb

import (
	"context"
	"strings"
	"sync"

	"github.com/fleetops/searchplanner/collab"
	"github.com/fleetops/searchplanner/core"
)

// Database is a table-name-keyed, row-slice store. It performs a
// deliberately naive SQL interpretation: it does not parse sql, it
// inspects params against a substring/equality probe over the seeded
// rows, which is sufficient for exercising the planner end to end in
// tests without a real backing store.
type Database struct {
	mu     sync.RWMutex
	tables map[string][]collab.Row
	// unsupported marks operators this instance reports as
	// unsupported, to exercise the wave-skip path (§6.1).
	unsupported map[core.Operator]bool
}

// New returns an empty in-memory database.
func New() *Database {
	return &Database{
		tables:      make(map[string][]collab.Row),
		unsupported: make(map[core.Operator]bool),
	}
}

// Seed installs rows for a table, replacing any previously seeded
// rows for that table.
func (d *Database) Seed(table string, rows []collab.Row) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.tables[table] = rows
}

// MarkUnsupported makes every query containing op's operator keyword
// fail with core.ErrUnsupportedOperator, to exercise the wave-skip
// path in tests.
func (d *Database) MarkUnsupported(op core.Operator) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.unsupported[op] = true
}

// Query implements collab.Database. It extracts the table name from
// the rendered "FROM <table>" clause and returns every seeded row for
// that table whose tenant column (params[0]) matches; it does not
// otherwise evaluate the WHERE clause, since no real SQL engine backs
// it in tests (callers seed rows that already satisfy the scenario
// under test).
func (d *Database) Query(_ context.Context, sql string, params []any) ([]collab.Row, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	for op, blocked := range d.unsupported {
		if blocked && strings.Contains(sql, operatorKeyword(op)) {
			return nil, core.ErrUnsupportedOperator.New(op)
		}
	}

	table := tableFromSQL(sql)
	rows, ok := d.tables[table]
	if !ok {
		return nil, nil
	}
	if len(params) == 0 {
		return rows, nil
	}

	tenant, _ := params[0].(string)
	var out []collab.Row
	for _, r := range rows {
		if rowTenant, _ := r["yacht_id"].(string); rowTenant == tenant {
			out = append(out, r)
		}
	}
	return out, nil
}

func tableFromSQL(sql string) string {
	const marker = " FROM "
	idx := strings.Index(sql, marker)
	if idx < 0 {
		return ""
	}
	rest := strings.TrimSpace(sql[idx+len(marker):])
	fields := strings.Fields(rest)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

func operatorKeyword(op core.Operator) string {
	switch op {
	case core.OpExact:
		return " = $"
	case core.OpTrigram:
		return "similarity("
	case core.OpVector:
		return "<=>"
	default:
		return string(op)
	}
}

// MatchLinkTargets implements collab.Database. The in-memory store
// has no hybrid index; it always returns no candidates.
func (d *Database) MatchLinkTargets(context.Context, string, string, []float32, []string, string, int, int) ([]collab.HybridCandidate, error) {
	return nil, nil
}

// SearchPartsFuzzy, SearchEquipmentFuzzy and SearchWorkOrdersFuzzy
// implement collab.Database's fuzzy procedures over the seeded rows
// for the named table, ignoring threshold (no similarity function is
// available in-memory).
func (d *Database) SearchPartsFuzzy(ctx context.Context, tenant, query string, _ float64, limit int) ([]collab.Row, error) {
	return d.fuzzy(tenant, "pms_parts", "name", query, limit)
}

func (d *Database) SearchEquipmentFuzzy(ctx context.Context, tenant, query string, _ float64, limit int) ([]collab.Row, error) {
	return d.fuzzy(tenant, "pms_equipment", "name", query, limit)
}

func (d *Database) SearchWorkOrdersFuzzy(ctx context.Context, tenant, query string, _ float64, limit int) ([]collab.Row, error) {
	return d.fuzzy(tenant, "pms_work_orders", "title", query, limit)
}

func (d *Database) fuzzy(tenant, table, col, query string, limit int) ([]collab.Row, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	var out []collab.Row
	for _, r := range d.tables[table] {
		if t, _ := r["yacht_id"].(string); t != tenant {
			continue
		}
		v, _ := r[col].(string)
		if strings.Contains(strings.ToLower(v), strings.ToLower(query)) {
			out = append(out, r)
			if len(out) >= limit {
				break
			}
		}
	}
	return out, nil
}

// Embedder is a deterministic stub embedder: it hashes the input text
// into a fixed-length vector so repeated calls with the same text are
// equal, without depending on a real embedding model in tests.
type Embedder struct {
	Dims int
}

// NewEmbedder returns an Embedder producing vectors of the standard
// 1536 dimension named in §6.2.
func NewEmbedder() *Embedder {
	return &Embedder{Dims: 1536}
}

// Embed implements collab.Embedder.
func (e *Embedder) Embed(_ context.Context, text string) ([]float32, error) {
	if text == "" {
		return nil, core.ErrNoEmbedding.New("empty text")
	}
	vec := make([]float32, e.Dims)
	var h uint32 = 2166136261
	for i := 0; i < len(text); i++ {
		h ^= uint32(text[i])
		h *= 16777619
		vec[i%e.Dims] += float32(h%1000) / 1000.0
	}
	return vec, nil
}
