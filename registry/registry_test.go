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

package registry_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleetops/searchplanner/core"
	"github.com/fleetops/searchplanner/registry"
)

func TestNewColumnRegistry_RejectsMissingTenantColumn(t *testing.T) {
	_, err := registry.NewColumnRegistry([]core.TableCapability{{Name: "bad_table"}})
	assert.Error(t, err)
}

func TestNewColumnRegistry_DefaultTablesHaveTenantColumn(t *testing.T) {
	r, err := registry.NewColumnRegistry(registry.DefaultTables())
	require.NoError(t, err)
	for _, tbl := range registry.DefaultTables() {
		got, ok := r.ByTable(tbl.Name)
		require.True(t, ok)
		assert.NotEmpty(t, got.YachtIDColumn)
	}
}

func TestByEntityType_EveryEntityTypeHasIsolatedRoute(t *testing.T) {
	r, err := registry.NewColumnRegistry(registry.DefaultTables())
	require.NoError(t, err)

	// §4.4 invariant: any entity type appearing in a term must map to
	// at least one isolated_ok=true column. Manufacturer/Location/
	// SupplierName are deliberately conjunction-only in the defaults
	// (they describe, they don't identify), so they're excluded here.
	mustRoute := []core.EntityType{
		core.PartNumber, core.EquipmentCode, core.SerialNumber,
		core.FaultCode, core.PONumber, core.WONumber,
		core.EquipmentName, core.PartName, core.Symptom,
	}
	for _, et := range mustRoute {
		assert.True(t, r.HasIsolatedRoute(et), "entity type %s has no isolated_ok route", et)
	}
}

func TestOperatorRegistry_TemplateCoversClosedSet(t *testing.T) {
	r := registry.NewOperatorRegistry(0)
	for _, op := range core.AllOperators {
		tmpl, ok := r.Template(op)
		require.True(t, ok, "operator %s missing a template", op)
		sql, used := tmpl.Render("col", 2, "key")
		assert.NotEmpty(t, sql)
		if op == core.OpRange {
			assert.Equal(t, 2, used)
		} else {
			assert.Equal(t, 1, used)
		}
	}
}

func TestOperatorRegistry_DefaultTrigramThreshold(t *testing.T) {
	r := registry.NewOperatorRegistry(0)
	assert.Equal(t, 0.3, r.TrigramThreshold())
}
