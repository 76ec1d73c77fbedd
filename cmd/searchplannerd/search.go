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

	"github.com/spf13/cobra"

	searchplanner "github.com/fleetops/searchplanner"
	"github.com/fleetops/searchplanner/core"
)

var (
	searchQuery   string
	searchYacht   string
	searchUser    string
	searchRole    string
	searchSurface string
	searchSeed    string
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Run PREPARE and EXECUTE against a fixture database and print ranked hits",
	Args:  cobra.NoArgs,
	RunE:  runSearch,
}

func init() {
	searchCmd.Flags().StringVar(&searchQuery, "query", "", "search query text (required)")
	searchCmd.Flags().StringVar(&searchYacht, "yacht", "", "tenant id (required)")
	searchCmd.Flags().StringVar(&searchUser, "user", "cli-user", "requesting user id")
	searchCmd.Flags().StringVar(&searchRole, "role", "engineer", "requesting user role")
	searchCmd.Flags().StringVar(&searchSurface, "surface", string(core.SurfaceGlobalSearch), "ui surface state")
	searchCmd.Flags().StringVar(&searchSeed, "seed", "", "YAML fixture file seeding the in-memory database")
	_ = searchCmd.MarkFlagRequired("query")
	_ = searchCmd.MarkFlagRequired("yacht")
}

func runSearch(cmd *cobra.Command, args []string) error {
	eng, err := buildEngine(searchSeed)
	if err != nil {
		return err
	}

	result, err := eng.Search(cmd.Context(), searchplanner.PrepareRequest{
		Query:   searchQuery,
		Scope:   core.UserScope{YachtID: searchYacht, UserID: searchUser, Role: searchRole},
		Surface: core.SurfaceState(searchSurface),
	})
	if err != nil {
		return fmt.Errorf("search: %w", err)
	}

	return printJSON(result)
}
