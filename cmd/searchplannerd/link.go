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
	linkSubject string
	linkSender  string
	linkBody    string
	linkYacht   string
	linkUser    string
	linkRole    string
	linkSeed    string
	linkDays    int
)

var linkCmd = &cobra.Command{
	Use:   "link",
	Short: "Run the linking ladder against one inbound email thread",
	Args:  cobra.NoArgs,
	RunE:  runLink,
}

func init() {
	linkCmd.Flags().StringVar(&linkSubject, "subject", "", "email subject line (required)")
	linkCmd.Flags().StringVar(&linkSender, "sender", "", "email sender address (required)")
	linkCmd.Flags().StringVar(&linkBody, "body", "", "email body text")
	linkCmd.Flags().StringVar(&linkYacht, "yacht", "", "tenant id (required)")
	linkCmd.Flags().StringVar(&linkUser, "user", "cli-user", "requesting user id")
	linkCmd.Flags().StringVar(&linkRole, "role", "engineer", "requesting user role")
	linkCmd.Flags().StringVar(&linkSeed, "seed", "", "YAML fixture file seeding the in-memory database")
	linkCmd.Flags().IntVar(&linkDays, "days-back", 90, "lookback window for the hybrid retrieval candidate")
	_ = linkCmd.MarkFlagRequired("subject")
	_ = linkCmd.MarkFlagRequired("sender")
	_ = linkCmd.MarkFlagRequired("yacht")
}

func runLink(cmd *cobra.Command, args []string) error {
	eng, err := buildEngine(linkSeed)
	if err != nil {
		return err
	}

	result, err := eng.LinkThread(cmd.Context(), searchplanner.LinkRequest{
		Scope:    core.UserScope{YachtID: linkYacht, UserID: linkUser, Role: linkRole},
		Subject:  linkSubject,
		Sender:   linkSender,
		Body:     linkBody,
		DaysBack: linkDays,
	})
	if err != nil {
		return fmt.Errorf("link: %w", err)
	}

	return printJSON(result)
}
