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

// Package fusion implements the Hybrid Link Fusion Scorer (C13): it
// turns a hybrid-retrieval candidate's raw signals into one point
// score on a fixed [0,150] scale, blending a weighted-sum score with
// a reciprocal-rank-fusion score (§4.13).
package fusion

import "math"

const (
	vectorSigmoidMu    = 0.72
	vectorSigmoidSigma = 0.05

	recencyHalfLifeDays = 90.0

	weightText    = 0.45
	weightVector  = 0.35
	weightRecency = 0.15
	weightBias    = 0.05

	rrfK     = 60.0
	rrfAlpha = 0.7

	pointScale = 150.0
)

// Signals is the raw retrieval signal set for one candidate (§4.13).
type Signals struct {
	SText      float64 // lexical score, already in [0,1]
	SVectorRaw float64 // raw cosine/inner-product similarity, pre-sigmoid
	AgeDays    float64 // days since the candidate's updated_at/sent_at
	SBias      float64 // role-bias table lookup, in [0,1]
	RankText   int     // 1-based rank in the text result list, 0 if absent
	RankVector int     // 1-based rank in the vector result list, 0 if absent
}

// Score turns sig into the final [0,150] point score (§4.13).
func Score(sig Signals) int {
	sText := clamp01(sig.SText)
	sVector := sigmoid(sig.SVectorRaw, vectorSigmoidMu, vectorSigmoidSigma)
	sRecency := recencyDecay(sig.AgeDays)
	sBias := clamp01(sig.SBias)

	weighted := weightText*sText + weightVector*sVector + weightRecency*sRecency + weightBias*sBias
	rrf := rrfScore(sig.RankText, sig.RankVector)
	fused := rrfAlpha*weighted + (1-rrfAlpha)*rrf

	points := int(math.Round(fused * pointScale))
	return clampInt(points, 0, 150)
}

// sigmoid computes 1 / (1 + exp(-(x-mu)/sigma)).
func sigmoid(x, mu, sigma float64) float64 {
	return 1.0 / (1.0 + math.Exp(-(x-mu)/sigma))
}

// recencyDecay computes an exponential decay with a 90-day half-life:
// 0.5^(ageDays/halfLife).
func recencyDecay(ageDays float64) float64 {
	if ageDays < 0 {
		ageDays = 0
	}
	return math.Pow(0.5, ageDays/recencyHalfLifeDays)
}

// rrfScore computes the reciprocal-rank-fusion score for a candidate
// present in either or both ranked lists, normalized to [0,1] by
// dividing by the maximum attainable value 2/(K+1) (both ranks = 1).
func rrfScore(rankText, rankVector int) float64 {
	var sum float64
	if rankText > 0 {
		sum += 1.0 / (rrfK + float64(rankText))
	}
	if rankVector > 0 {
		sum += 1.0 / (rrfK + float64(rankVector))
	}
	norm := 2.0 / (rrfK + 1.0)
	return sum / norm
}

func clamp01(v float64) float64 {
	return clampFloat(v, 0, 1)
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
