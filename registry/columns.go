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

package registry

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/fleetops/searchplanner/core"
)

// EntityRoute is one (table, column) binding capable of serving an
// entity type, returned by ColumnRegistry.ByEntityType (§4.4).
type EntityRoute struct {
	Table           string
	Column          string
	Operators       []core.Operator
	IsolatedOK      bool
	ConjunctionOnly bool
}

// ColumnRegistry is the Column Capability Registry (C4): this is the
// only place column metadata lives. If it is not declared here, it is
// not searchable. Frozen after NewColumnRegistry returns.
type ColumnRegistry struct {
	tables       map[string]core.TableCapability
	byEntityType map[core.EntityType][]EntityRoute
}

// tableSpec/columnSpec are the YAML-shaped declarations loaded by
// LoadYAML; they mirror core.TableCapability/core.ColumnCapability
// field-for-field so bootstrap data can live in a flat YAML file, the
// way jhkimqd-chaos-utils loads scenario config and blackcoderx-falcon
// loads its init config (§2 AMBIENT STACK, config).
type columnSpec struct {
	Datatype            string   `yaml:"datatype"`
	Operators            []string `yaml:"operators"`
	EntityTypes          []string `yaml:"entity_types"`
	IsolatedOK           bool     `yaml:"isolated_ok"`
	ConjunctionOnly      bool     `yaml:"conjunction_only"`
	SelectDefault        bool     `yaml:"select_default"`
	JSONKeys             []string `yaml:"json_keys"`
	PrimarySemanticHome  bool     `yaml:"primary_semantic_home"`
}

type tableSpec struct {
	YachtIDColumn   string                `yaml:"yacht_id_column"`
	PrimaryKey      string                `yaml:"primary_key"`
	Columns         map[string]columnSpec `yaml:"columns"`
	DefaultSelect   []string              `yaml:"default_select"`
	DefaultLimit    int                   `yaml:"default_limit"`
	DefaultOrder    string                `yaml:"default_order"`
	RequiredFilters []string              `yaml:"required_filters"`
}

type registryFile struct {
	Tables map[string]tableSpec `yaml:"tables"`
}

// NewColumnRegistry builds a frozen registry from a set of table
// capabilities, rejecting (per §3 invariant) any table that does not
// declare a tenant column.
func NewColumnRegistry(tables []core.TableCapability) (*ColumnRegistry, error) {
	r := &ColumnRegistry{
		tables:       make(map[string]core.TableCapability, len(tables)),
		byEntityType: make(map[core.EntityType][]EntityRoute),
	}
	for _, t := range tables {
		if t.YachtIDColumn == "" {
			return nil, fmt.Errorf("registry: table %q declares no tenant column", t.Name)
		}
		r.tables[t.Name] = t
		for colName, col := range t.Columns {
			for _, et := range col.EntityTypes {
				r.byEntityType[et] = append(r.byEntityType[et], EntityRoute{
					Table:           t.Name,
					Column:          colName,
					Operators:       col.Operators,
					IsolatedOK:      col.IsolatedOK,
					ConjunctionOnly: col.ConjunctionOnly,
				})
			}
		}
	}
	return r, nil
}

// LoadYAML builds a ColumnRegistry from a YAML file on disk (§4.4
// "declarative table/column metadata").
func LoadYAML(path string) (*ColumnRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("registry: read %s: %w", path, err)
	}
	var file registryFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("registry: parse %s: %w", path, err)
	}

	tables := make([]core.TableCapability, 0, len(file.Tables))
	for name, spec := range file.Tables {
		cols := make(map[string]core.ColumnCapability, len(spec.Columns))
		for colName, cs := range spec.Columns {
			cols[colName] = core.ColumnCapability{
				Name:                colName,
				Datatype:            cs.Datatype,
				Operators:           toOperators(cs.Operators),
				EntityTypes:         toEntityTypes(cs.EntityTypes),
				IsolatedOK:          cs.IsolatedOK,
				ConjunctionOnly:     cs.ConjunctionOnly,
				SelectDefault:       cs.SelectDefault,
				JSONKeys:            cs.JSONKeys,
				PrimarySemanticHome: cs.PrimarySemanticHome,
			}
		}
		tables = append(tables, core.TableCapability{
			Name:            name,
			YachtIDColumn:   spec.YachtIDColumn,
			PrimaryKey:      spec.PrimaryKey,
			Columns:         cols,
			DefaultSelect:   spec.DefaultSelect,
			DefaultLimit:    spec.DefaultLimit,
			DefaultOrder:    spec.DefaultOrder,
			RequiredFilters: spec.RequiredFilters,
		})
	}
	return NewColumnRegistry(tables)
}

func toOperators(ss []string) []core.Operator {
	ops := make([]core.Operator, len(ss))
	for i, s := range ss {
		ops[i] = core.Operator(s)
	}
	return ops
}

func toEntityTypes(ss []string) []core.EntityType {
	ets := make([]core.EntityType, len(ss))
	for i, s := range ss {
		ets[i] = core.EntityType(s)
	}
	return ets
}

// ByTable returns the table's capability declaration.
func (r *ColumnRegistry) ByTable(name string) (core.TableCapability, bool) {
	t, ok := r.tables[name]
	return t, ok
}

// Tables returns every declared table, in no particular order; callers
// needing determinism should sort the result.
func (r *ColumnRegistry) Tables() []core.TableCapability {
	out := make([]core.TableCapability, 0, len(r.tables))
	for _, t := range r.tables {
		out = append(out, t)
	}
	return out
}

// ByEntityType returns every (table, column) able to serve et. Per
// §4.4, any entity type appearing in a term must map to at least one
// isolated_ok=true route here, or PREPARE degrades to weak-entity
// search.
func (r *ColumnRegistry) ByEntityType(et core.EntityType) []EntityRoute {
	return r.byEntityType[et]
}

// HasIsolatedRoute reports whether et has at least one isolated_ok
// route anywhere in the registry.
func (r *ColumnRegistry) HasIsolatedRoute(et core.EntityType) bool {
	for _, route := range r.byEntityType[et] {
		if route.IsolatedOK {
			return true
		}
	}
	return false
}
