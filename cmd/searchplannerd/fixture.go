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
	"os"

	"gopkg.in/yaml.v3"

	"github.com/fleetops/searchplanner/collab"
	"github.com/fleetops/searchplanner/collab/memdb"
)

// loadFixture seeds an in-memory database from a YAML file shaped as
// `table_name: [{column: value, ...}, ...]`, the same flat-file
// bootstrap style registry.LoadYAML uses for table capabilities. An
// empty path seeds nothing, for commands (e.g. plan) that never touch
// the database.
func loadFixture(path string) (*memdb.Database, error) {
	db := memdb.New()
	if path == "" {
		return db, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("searchplannerd: reading fixture %s: %w", path, err)
	}

	var tables map[string][]map[string]any
	if err := yaml.Unmarshal(data, &tables); err != nil {
		return nil, fmt.Errorf("searchplannerd: parsing fixture %s: %w", path, err)
	}

	for table, rawRows := range tables {
		rows := make([]collab.Row, 0, len(rawRows))
		for _, r := range rawRows {
			rows = append(rows, collab.Row(r))
		}
		db.Seed(table, rows)
	}
	return db, nil
}
