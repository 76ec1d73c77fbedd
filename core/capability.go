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

import "sort"

// ColumnCapability declares what one column can serve (§3).
type ColumnCapability struct {
	Name            string
	Datatype        string
	Operators       []Operator
	EntityTypes     []EntityType
	IsolatedOK      bool
	ConjunctionOnly bool
	SelectDefault   bool
	JSONKeys        []string
	// PrimarySemanticHome marks this column as the table's principal
	// column for the entity types it serves, worth the +2.0 bias
	// bonus in §4.8 rather than the +1.0 secondary-column bonus.
	PrimarySemanticHome bool
}

// SupportsOperator reports whether op is in the column's declared
// operator set (§8 invariant 5).
func (c ColumnCapability) SupportsOperator(op Operator) bool {
	for _, o := range c.Operators {
		if o == op {
			return true
		}
	}
	return false
}

// ServesEntityType reports whether the column is declared for et.
func (c ColumnCapability) ServesEntityType(et EntityType) bool {
	for _, t := range c.EntityTypes {
		if t == et {
			return true
		}
	}
	return false
}

// TableCapability declares a searchable table (§3). Invariant: every
// table declares a tenant column; the registry rejects any table that
// does not (enforced in package registry at load time).
type TableCapability struct {
	Name            string
	YachtIDColumn   string
	PrimaryKey      string
	Columns         map[string]ColumnCapability
	DefaultSelect   []string
	DefaultLimit    int
	DefaultOrder    string
	RequiredFilters []string
}

// ColumnsInOrder returns the table's columns sorted by name, for
// deterministic iteration (map order is not stable in Go).
func (t TableCapability) ColumnsInOrder() []ColumnCapability {
	names := make([]string, 0, len(t.Columns))
	for n := range t.Columns {
		names = append(names, n)
	}
	sort.Strings(names)
	cols := make([]ColumnCapability, 0, len(names))
	for _, n := range names {
		cols = append(cols, t.Columns[n])
	}
	return cols
}
