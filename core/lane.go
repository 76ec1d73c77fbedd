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

// Lane is the coarse dispatch class assigned by the Lane Classifier
// (C6, §4.6).
type Lane string

const (
	LaneBlocked Lane = "BLOCKED"
	LaneUnknown Lane = "UNKNOWN"
	LaneNoLLM   Lane = "NO_LLM"
	LaneGPT     Lane = "GPT"
)

// LaneDecision is the Lane Classifier's full output: the lane plus any
// caller-facing explanation (§7 "zero-row responses always carry
// enough metadata").
type LaneDecision struct {
	Lane         Lane
	BlockMessage string   // set only when Lane == LaneBlocked
	Suggestions  []string // set only when Lane == LaneUnknown
}

// WaveOrder returns the permitted wave sequence for the lane (§4.10).
// NO_LLM is restricted to EXACT only; GPT gets the full sequence.
// VECTOR is never part of a lane's wave order — it is only invoked by
// the linking-ladder/hybrid path.
func (d LaneDecision) WaveOrder() []Wave {
	switch d.Lane {
	case LaneNoLLM:
		return []Wave{WaveExact}
	case LaneGPT:
		return []Wave{WaveExact, WaveILike, WaveTrigram}
	default:
		return nil
	}
}

// Intent is the rule-based routing/ranking hint from C7 (§4.7). It
// never changes what can be queried, only ranking weights and table
// priorities.
type Intent string

const (
	IntentDiagnose Intent = "DIAGNOSE"
	IntentOrder    Intent = "ORDER"
	IntentLookup   Intent = "LOOKUP"
	IntentSearch   Intent = "SEARCH"
)
