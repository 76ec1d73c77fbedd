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

// Package intent implements the Intent Detector (C7): a rule-based,
// precedence-ordered classifier that never changes what can be
// queried, only ranking weights and table priorities downstream.
package intent

import (
	"regexp"

	"github.com/fleetops/searchplanner/core"
)

var (
	diagnoseKeywords = regexp.MustCompile(`(?i)\b(diagnose|diagnosis|fault|troubleshoot|not\s+working|broken|alarm)\b`)
	orderKeywords    = regexp.MustCompile(`(?i)\b(order|purchase|requisition|buy|reorder)\b`)
	actionVerbs      = regexp.MustCompile(`(?i)\b(show|find|search|get|list|view|create|add|update|edit|delete|remove|link|connect)\b`)
)

// Detect applies the precedence list DIAGNOSE > ORDER > LOOKUP > SEARCH
// (§4.7) to the query text and its extracted entities.
func Detect(query string, entities []core.Entity) core.Intent {
	if hasFaultEntity(entities) || diagnoseKeywords.MatchString(query) {
		return core.IntentDiagnose
	}
	if orderKeywords.MatchString(query) {
		return core.IntentOrder
	}
	if hasStrongIDEntity(entities) && !actionVerbs.MatchString(query) {
		return core.IntentLookup
	}
	return core.IntentSearch
}

func hasFaultEntity(entities []core.Entity) bool {
	for _, e := range entities {
		if e.Type == core.FaultCode {
			return true
		}
	}
	return false
}

func hasStrongIDEntity(entities []core.Entity) bool {
	for _, e := range entities {
		if e.Strength == core.Strong {
			return true
		}
	}
	return false
}
