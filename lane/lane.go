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

// Package lane implements the Lane Classifier (C6): a deterministic,
// four-way gate run before any SQL is generated. Every rule here is a
// compiled regular expression or a length check; there is no model
// inference in this package.
package lane

import (
	"regexp"
	"strings"

	"github.com/fleetops/searchplanner/core"
)

// injectionPatterns flags queries attempting to steer the system
// rather than search it. The list is intentionally narrow: false
// positives block a legitimate search, so each pattern targets a
// specific known attack shape.
var injectionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)ignore\s+(all\s+)?(previous|prior|above)\s+instructions`),
	regexp.MustCompile(`(?i)disregard\s+(all\s+)?(previous|prior|above)\s+instructions`),
	regexp.MustCompile(`(?i)system\s+prompt`),
	regexp.MustCompile(`(?i)you\s+are\s+now\s+a`),
	regexp.MustCompile(`(?i)\bdrop\s+table\b`),
	regexp.MustCompile(`(?i)\bdelete\s+from\b`),
	regexp.MustCompile(`(?i)\bunion\s+select\b`),
	regexp.MustCompile(`(?i)<\s*script[\s>]`),
	regexp.MustCompile(`(?i);\s*--`),
}

const blockMessage = "This query could not be processed. Please rephrase your search."

// Classify computes the lane for a query given its trimmed text and
// the entities already extracted from it (§4.6). Entities must come
// from the token extractor and variant generator stages that ran
// before classification; Classify itself does no extraction.
func Classify(query string, entities []core.Entity) core.LaneDecision {
	trimmed := strings.TrimSpace(query)

	for _, pattern := range injectionPatterns {
		if pattern.MatchString(trimmed) {
			return core.LaneDecision{Lane: core.LaneBlocked, BlockMessage: blockMessage}
		}
	}

	if len([]rune(trimmed)) < 2 && len(entities) == 0 {
		return core.LaneDecision{
			Lane:        core.LaneUnknown,
			Suggestions: []string{"try a part number, work order number, or equipment name"},
		}
	}

	if hasStrongEntity(entities) {
		return core.LaneDecision{Lane: core.LaneNoLLM}
	}

	return core.LaneDecision{Lane: core.LaneGPT}
}

func hasStrongEntity(entities []core.Entity) bool {
	for _, e := range entities {
		if e.Strength == core.Strong {
			return true
		}
	}
	return false
}
