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

// UserScope is the caller's accessible tenants/roles and the tables
// their role may read. It must be resolved from server-side state,
// never accepted from the request body (§3, §9 "Scope resolution").
type UserScope struct {
	YachtID        string
	UserID         string
	Role           string
	ReadableTables map[string]bool
}

// CanRead reports whether the scope's role may read the named table
// (§4.8 "-inf if the user's role cannot read T").
func (s UserScope) CanRead(table string) bool {
	if s.ReadableTables == nil {
		return true
	}
	return s.ReadableTables[table]
}

// SurfaceState describes the caller's UI context, passed through to
// ranking-recipe selection (§6.3 `ui_surface_state`) and nothing else.
type SurfaceState string

const (
	SurfaceEmailInbox   SurfaceState = "email_inbox"
	SurfaceEmailSearch  SurfaceState = "email_search"
	SurfaceGlobalSearch SurfaceState = "global_search"
)
