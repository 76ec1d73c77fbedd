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

// Confidence is the closed set of link-suggestion confidence levels
// (§3).
type Confidence string

const (
	ConfidenceDeterministic Confidence = "deterministic"
	ConfidenceSuggested     Confidence = "suggested"
	ConfidenceNone          Confidence = "none"
)

// SuggestedReason is the closed set of justifications recorded with a
// suggestion (§6.4).
type SuggestedReason string

const (
	ReasonWOPattern    SuggestedReason = "wo_pattern"
	ReasonPOPattern    SuggestedReason = "po_pattern"
	ReasonPartNumber   SuggestedReason = "part_number"
	ReasonSerialMatch  SuggestedReason = "serial_match"
	ReasonVendorDomain SuggestedReason = "vendor_domain"
	ReasonTokenMatch   SuggestedReason = "token_match"
)

// ScoreBreakdown preserves how a LinkSuggestion's score was assembled,
// so it can be persisted for later learning (§4.14, §6.4).
type ScoreBreakdown struct {
	Level          string
	BaseScore      float64
	RecencyBonus   float64
	StatusBonus    float64
	AffinityBonus  float64
	FusionWeighted float64
	FusionRRF      float64
}

// LinkSuggestion is produced by the Linking Ladder (C14) for an
// inbound email thread (§3, §6.4). Lifecycle: created on new thread
// arrival; transitioned by user action into {accepted, blocked,
// superseded}.
type LinkSuggestion struct {
	ThreadID        string
	ObjectType      string
	ObjectID        string
	Confidence      Confidence
	Score           float64
	ScoreBreakdown  ScoreBreakdown
	IsPrimary       bool
	SuggestedReason SuggestedReason
	IsActive        bool
	Ambiguous       bool
	// VendorHash is carried from the candidate that produced this
	// suggestion so a later LinkDecision against it can feed the
	// outcome back into the vendor-affinity cache (§4 supplemented
	// features). Empty when the candidate had no vendor association.
	VendorHash string
}

// DecisionAction is a user's action on a suggestion (§6.4).
type DecisionAction string

const (
	ActionAccept DecisionAction = "accept"
	ActionReject DecisionAction = "reject"
	ActionChange DecisionAction = "change"
	ActionUnlink DecisionAction = "unlink"
)

// LinkDecision records a user action against a prior suggestion, kept
// for learning (§6.4).
type LinkDecision struct {
	ThreadID           string
	Action             DecisionAction
	ChosenObjectType   string
	ChosenObjectID     string
	PriorSuggestion    LinkSuggestion
}
