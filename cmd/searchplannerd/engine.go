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

package main

import (
	"fmt"

	searchplanner "github.com/fleetops/searchplanner"
	"github.com/fleetops/searchplanner/collab/memdb"
	"github.com/fleetops/searchplanner/registry"
)

// buildEngine wires an Engine over the stock table registry, this
// process's loaded Config, and a fixture database seeded from
// seedPath (empty seeds nothing). The deterministic stub embedder is
// always attached so `link`'s L2.5 hybrid path has something to call.
func buildEngine(seedPath string) (*searchplanner.Engine, error) {
	db, err := loadFixture(seedPath)
	if err != nil {
		return nil, err
	}

	colReg, err := registry.NewColumnRegistry(registry.DefaultTables())
	if err != nil {
		return nil, fmt.Errorf("searchplannerd: building column registry: %w", err)
	}
	opReg := registry.NewOperatorRegistry(cfg.TrigramThreshold)

	return searchplanner.New(searchplanner.Config{
		ColumnRegistry:   colReg,
		OperatorRegistry: opReg,
		Database:         db,
		Embedder:         memdb.NewEmbedder(),
		Tunables:         cfg,
		Log:              log,
	})
}
