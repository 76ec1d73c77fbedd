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
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	searchplanner "github.com/fleetops/searchplanner"
	"github.com/fleetops/searchplanner/core"
)

var (
	planQuery   string
	planYacht   string
	planUser    string
	planRole    string
	planSurface string
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Run PREPARE only and print the resulting execution plan",
	Args:  cobra.NoArgs,
	RunE:  runPlan,
}

func init() {
	planCmd.Flags().StringVar(&planQuery, "query", "", "search query text (required)")
	planCmd.Flags().StringVar(&planYacht, "yacht", "", "tenant id (required)")
	planCmd.Flags().StringVar(&planUser, "user", "cli-user", "requesting user id")
	planCmd.Flags().StringVar(&planRole, "role", "engineer", "requesting user role")
	planCmd.Flags().StringVar(&planSurface, "surface", string(core.SurfaceGlobalSearch), "ui surface state")
	_ = planCmd.MarkFlagRequired("query")
	_ = planCmd.MarkFlagRequired("yacht")
}

func runPlan(cmd *cobra.Command, args []string) error {
	eng, err := buildEngine("")
	if err != nil {
		return err
	}

	plan, err := eng.Prepare(cmd.Context(), searchplanner.PrepareRequest{
		Query:   planQuery,
		Scope:   core.UserScope{YachtID: planYacht, UserID: planUser, Role: planRole},
		Surface: core.SurfaceState(planSurface),
	})
	if err != nil {
		return fmt.Errorf("prepare: %w", err)
	}

	return printJSON(plan)
}

func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}
	fmt.Println(string(out))
	return nil
}
