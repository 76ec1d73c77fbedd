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

// Package sqlgen implements the SQL Generator (C11): it renders one
// parameterized statement per (table, wave) probe, using only the
// Operator & Template Registry's closed template set (§4.3, §4.11).
// It never concatenates caller-supplied text into SQL; every value
// reaches the statement as a positional parameter.
//
// §4.11 describes the tier+wave output as a single UNION-ALL
// statement. This module instead emits one probe per table, matching
// §5's bounded per-table fan-out ("per-table probes in the same wave
// may run in parallel"): the executor performs the union in memory
// after collecting each probe's rows, which is equivalent for a
// read-only, dedup-after-merge pipeline and is the unit §3 names
// "the smallest executable unit".
package sqlgen

import (
	"fmt"
	"sort"
	"strings"

	uuid "github.com/satori/go.uuid"

	"github.com/fleetops/searchplanner/core"
	"github.com/fleetops/searchplanner/registry"
)

const defaultLimit = 20

// Generate renders the probe for one table's resolved query within
// one wave. rq must already carry the tenant clause as its first
// where-clause (bind.Resolve's contract).
func Generate(tbl core.TableCapability, rq core.ResolvedQuery, wave core.Wave, opReg *registry.OperatorRegistry) (core.Probe, error) {
	if len(rq.Where) == 0 {
		return core.Probe{}, fmt.Errorf("sqlgen: table %q has no where-clauses for wave %s", tbl.Name, wave)
	}

	selectCols := tbl.DefaultSelect
	if len(selectCols) == 0 {
		selectCols = []string{"*"}
	}

	limit := tbl.DefaultLimit
	if limit <= 0 {
		limit = defaultLimit
	}

	tenantClause := rq.Where[0]
	tenantSQL, err := renderClause(opReg, tenantClause)
	if err != nil {
		return core.Probe{}, err
	}

	groupSQL, err := renderGroups(opReg, rq.Where[1:])
	if err != nil {
		return core.Probe{}, err
	}

	where := tenantSQL
	if groupSQL != "" {
		where = fmt.Sprintf("%s AND (%s)", tenantSQL, groupSQL)
	}

	sql := fmt.Sprintf(
		"SELECT '%s' AS _source, %s FROM %s WHERE %s LIMIT %d",
		tbl.Name, strings.Join(selectCols, ", "), tbl.Name, where, limit,
	)

	return core.Probe{
		ProbeID:     uuid.NewV4().String(),
		Table:       tbl.Name,
		SelectCols:  selectCols,
		Where:       rq.Where,
		Conjunction: rq.Conjunction,
		Wave:        wave,
		Limit:       limit,
		Params:      rq.Params,
		SQL:         sql,
		State:       core.ProbePending,
	}, nil
}

// renderGroups groups where-clauses by Group, renders each group's
// members joined by OR, and joins the distinct groups by AND (§4.9
// rule 3 merges same-entity columns with OR; rule 4 combines distinct
// entities with AND).
func renderGroups(opReg *registry.OperatorRegistry, clauses []core.WhereClause) (string, error) {
	if len(clauses) == 0 {
		return "", nil
	}

	byGroup := make(map[int][]core.WhereClause)
	for _, c := range clauses {
		byGroup[c.Group] = append(byGroup[c.Group], c)
	}

	groupIDs := make([]int, 0, len(byGroup))
	for g := range byGroup {
		groupIDs = append(groupIDs, g)
	}
	sort.Ints(groupIDs)

	var groupSQLs []string
	for _, g := range groupIDs {
		members := byGroup[g]
		var parts []string
		for _, c := range members {
			sql, err := renderClause(opReg, c)
			if err != nil {
				return "", err
			}
			parts = append(parts, sql)
		}
		joined := strings.Join(parts, " OR ")
		if len(parts) > 1 {
			joined = "(" + joined + ")"
		}
		groupSQLs = append(groupSQLs, joined)
	}

	return strings.Join(groupSQLs, " AND "), nil
}

func renderClause(opReg *registry.OperatorRegistry, c core.WhereClause) (string, error) {
	tmpl, ok := opReg.Template(c.Operator)
	if !ok {
		return "", fmt.Errorf("sqlgen: operator %q has no registered template", c.Operator)
	}
	sql, _ := tmpl.Render(c.Column, c.ParamRef, c.JSONKey)
	return sql, nil
}
