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

// Package linking implements the Linking Ladder (C14): a deterministic
// five-level matcher run against a new inbound email thread, producing
// at most one primary suggestion plus a bounded number of alternates
// (§4.14).
package linking

import (
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/fleetops/searchplanner/core"
	"github.com/fleetops/searchplanner/fusion"
)

const (
	autoConfirmThreshold   = 130
	strongSuggestThreshold = 100
	weakSuggestThreshold   = 60
	ambiguityMargin        = 10

	recentBonus = 15
	openBonus   = 20
	maxAffinity = 15

	recentDays = 7

	// MaxAlternates bounds the number of alternate suggestions
	// persisted alongside the primary (§4.14 "at most N alternates").
	MaxAlternates = 3
)

// Confidence mirrors the LinkSuggestion confidence enum (§6.4).
type Confidence string

const (
	ConfidenceDeterministic Confidence = "deterministic"
	ConfidenceSuggested     Confidence = "suggested"
	ConfidenceNone          Confidence = "none"
)

// Reason mirrors the LinkSuggestion suggested_reason enum (§6.4).
type Reason string

const (
	ReasonWOPattern    Reason = "wo_pattern"
	ReasonPOPattern    Reason = "po_pattern"
	ReasonPartNumber   Reason = "part_number"
	ReasonSerialMatch  Reason = "serial_match"
	ReasonVendorDomain Reason = "vendor_domain"
	ReasonTokenMatch   Reason = "token_match"
)

// Level names the ladder step that produced a candidate, for tracing.
type Level string

const (
	LevelL1  Level = "L1"
	LevelL2  Level = "L2"
	LevelL25 Level = "L2.5"
	LevelL3  Level = "L3"
	LevelL4  Level = "L4"
)

// Candidate is one linking target under consideration, before recency
// and vendor-affinity bonuses are applied.
type Candidate struct {
	ObjectType string
	ObjectID   string
	Level      Level
	BaseScore  int
	Reason     Reason
	// UpdatedRecently and IsOpenOrActive feed the +15/+20 bonuses.
	UpdatedRecently bool
	IsOpenOrActive  bool
	// VendorHash looks up the learned vendor-affinity bonus, empty if
	// the candidate has no vendor association.
	VendorHash string
}

// Suggestion is the emitted LinkSuggestion row (§6.4).
type Suggestion struct {
	ObjectType      string
	ObjectID        string
	Level           Level
	Confidence      Confidence
	Score           int
	ScoreBreakdown  map[string]int
	IsPrimary       bool
	SuggestedReason Reason
	// VendorHash carries the candidate's vendor association through to
	// the persisted suggestion, so a later LinkDecision on this row can
	// feed the outcome back into the vendor-affinity cache (§4
	// supplemented features).
	VendorHash string
}

// Result is the ladder's full output for one thread: at most one
// primary suggestion, up to MaxAlternates alternates, and whether the
// top two candidates were too close to call.
type Result struct {
	Primary    *Suggestion
	Alternates []Suggestion
	Ambiguous  bool
	// ProcurementStub is set when no candidate cleared even the weak
	// threshold but the thread carries a procurement signal (a PO/
	// quote/invoice id, or a procurement-classified attachment) — the
	// ladder's L5 row: "no match, either record a procurement-intent
	// stub or emit nothing" (§4.14). It carries no object reference;
	// it only flags the thread as worth a human's attention.
	ProcurementStub bool
}

// Run scores every candidate (L1-L4 deterministic matches plus, when
// present, the L2.5 hybrid-retrieval result), applies the recency/
// status/vendor-affinity bonuses, and assembles the final suggestion
// set per the §4.14 thresholds. hybridCandidate may be nil when no
// hybrid retrieval ran (e.g. no embedding available, §6.2).
// procurementSignal feeds the L5 fallback when nothing else matched.
func Run(candidates []Candidate, hybridCandidate *Candidate, hybridSignals fusion.Signals, affinity *AffinityCache, log *logrus.Logger, procurementSignal bool) Result {
	if hybridCandidate != nil {
		c := *hybridCandidate
		c.Level = LevelL25
		c.BaseScore = fusion.Score(hybridSignals)
		candidates = append(candidates, c)
	}

	scored := make([]scoredCandidate, 0, len(candidates))
	for _, c := range candidates {
		breakdown := map[string]int{"base": c.BaseScore}
		total := c.BaseScore

		if c.UpdatedRecently {
			breakdown["recency"] = recentBonus
			total += recentBonus
		}
		if c.IsOpenOrActive {
			breakdown["status"] = openBonus
			total += openBonus
		}
		if c.VendorHash != "" && affinity != nil {
			bonus := affinity.Bonus(c.VendorHash)
			if bonus > 0 {
				breakdown["vendor_affinity"] = bonus
				total += bonus
			}
		}

		scored = append(scored, scoredCandidate{candidate: c, score: total, breakdown: breakdown})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	result := Result{}
	if len(scored) == 0 {
		result.ProcurementStub = procurementSignal
		return result
	}

	top := scored[0]
	ambiguous := false
	if len(scored) > 1 && top.score-scored[1].score < ambiguityMargin {
		ambiguous = true
	}
	result.Ambiguous = ambiguous

	confidence, isPrimary := classify(top.candidate.Level, top.score, ambiguous)
	if log != nil {
		log.WithFields(logrus.Fields{
			"level":      top.candidate.Level,
			"score":      top.score,
			"confidence": confidence,
			"ambiguous":  ambiguous,
		}).Debug("linking ladder top candidate")
	}

	if confidence != ConfidenceNone {
		result.Primary = &Suggestion{
			ObjectType:      top.candidate.ObjectType,
			ObjectID:        top.candidate.ObjectID,
			Level:           top.candidate.Level,
			Confidence:      confidence,
			Score:           top.score,
			ScoreBreakdown:  top.breakdown,
			IsPrimary:       isPrimary,
			SuggestedReason: top.candidate.Reason,
			VendorHash:      top.candidate.VendorHash,
		}
	} else {
		result.ProcurementStub = procurementSignal
	}

	for _, sc := range scored[1:] {
		if len(result.Alternates) >= MaxAlternates {
			break
		}
		conf, _ := classify(sc.candidate.Level, sc.score, false)
		if conf == ConfidenceNone {
			continue
		}
		result.Alternates = append(result.Alternates, Suggestion{
			ObjectType:      sc.candidate.ObjectType,
			ObjectID:        sc.candidate.ObjectID,
			Level:           sc.candidate.Level,
			Confidence:      conf,
			Score:           sc.score,
			ScoreBreakdown:  sc.breakdown,
			IsPrimary:       false,
			SuggestedReason: sc.candidate.Reason,
			VendorHash:      sc.candidate.VendorHash,
		})
	}

	return result
}

type scoredCandidate struct {
	candidate Candidate
	score     int
	breakdown map[string]int
}

// classify maps a level and its final score to a confidence and
// whether it is eligible to be the primary (is_primary=true) row.
// L1 always auto-confirms deterministically regardless of the general
// point thresholds (§4.14's table: "Explicit id match -> auto-confirm
// unconditionally"). L2.5 only auto-confirms when unambiguous.
func classify(level Level, score int, ambiguous bool) (Confidence, bool) {
	if level == LevelL1 {
		return ConfidenceDeterministic, true
	}
	if level == LevelL25 {
		if score >= autoConfirmThreshold && !ambiguous {
			return ConfidenceDeterministic, true
		}
		if score >= weakSuggestThreshold {
			return ConfidenceSuggested, true
		}
		return ConfidenceNone, false
	}
	switch {
	case score >= autoConfirmThreshold:
		return ConfidenceDeterministic, true
	case score >= strongSuggestThreshold:
		return ConfidenceSuggested, true
	case score >= weakSuggestThreshold:
		return ConfidenceSuggested, true
	default:
		return ConfidenceNone, false
	}
}
