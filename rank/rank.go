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

// Package rank implements the Ranker/Merger (C15): it merges SQL- and
// vector-origin candidate rows into one deduplicated, scored,
// stable-sorted list per the active ranking-recipe surface (§4.15).
package rank

import (
	"math"
	"sort"
	"time"

	"github.com/fleetops/searchplanner/core"
)

// Source marks which retrieval path produced a candidate (§4.15
// "`_source=sql`" / "`_source=vector`").
type Source string

const (
	SourceSQL    Source = "sql"
	SourceVector Source = "vector"
)

// recencyHalfLifeDays matches the fusion scorer's decay shape (§4.13);
// the ranking recipes reuse the same normalization rather than
// inventing a second recency curve.
const recencyHalfLifeDays = 90.0

// Candidate is one row from either retrieval path before ranking.
type Candidate struct {
	ObjectType string
	ObjectID   string
	Source     Source
	Similarity float64 // already normalized to [0,1]
	UpdatedAt  time.Time
	ExactMatch bool
	Payload    map[string]any
}

// Recipe assigns ranking weights to a surface's three signals (§4.15).
type Recipe struct {
	Similarity      float64
	Recency         float64
	ExactMatchBoost float64
}

// Recipes is the per-surface weight table. §4.15 names the three
// surfaces without prescribing weights; the defaults below are the
// ones the original prototype's ranking_recipes module used.
var Recipes = map[core.SurfaceState]Recipe{
	core.SurfaceEmailInbox:   {Similarity: 0.5, Recency: 0.4, ExactMatchBoost: 0.1},
	core.SurfaceEmailSearch:  {Similarity: 0.6, Recency: 0.2, ExactMatchBoost: 0.2},
	core.SurfaceGlobalSearch: {Similarity: 0.7, Recency: 0.1, ExactMatchBoost: 0.2},
}

// defaultRecipe is used when surface is unset or unrecognized, so
// ranking degrades gracefully rather than producing zero scores.
var defaultRecipe = Recipe{Similarity: 0.6, Recency: 0.2, ExactMatchBoost: 0.2}

// Ranked is one merged candidate with its computed score.
type Ranked struct {
	Candidate
	Score float64
}

// Merge combines sqlRows and vectorRows, dropping duplicate
// (object_type, object_id) pairs in favor of the SQL-origin row,
// scores every survivor against surface's recipe, and returns them
// stable-sorted descending by score. Ties break SQL over vector, then
// newer UpdatedAt (§4.15).
func Merge(sqlRows, vectorRows []Candidate, surface core.SurfaceState, now time.Time) []Ranked {
	recipe, ok := Recipes[surface]
	if !ok {
		recipe = defaultRecipe
	}

	type key struct{ objectType, objectID string }
	merged := make(map[key]Candidate, len(sqlRows)+len(vectorRows))

	for _, c := range vectorRows {
		merged[key{c.ObjectType, c.ObjectID}] = c
	}
	for _, c := range sqlRows {
		// SQL rows always win a collision (§4.15 tie-break "SQL over
		// vector"), so they're applied after vector rows.
		merged[key{c.ObjectType, c.ObjectID}] = c
	}

	ranked := make([]Ranked, 0, len(merged))
	for _, c := range merged {
		ranked = append(ranked, Ranked{Candidate: c, Score: score(c, recipe, now)})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.Source != b.Source {
			return a.Source == SourceSQL
		}
		return a.UpdatedAt.After(b.UpdatedAt)
	})

	return ranked
}

func score(c Candidate, recipe Recipe, now time.Time) float64 {
	recency := recencyScore(c.UpdatedAt, now)
	exact := 0.0
	if c.ExactMatch {
		exact = 1.0
	}
	return recipe.Similarity*clamp01(c.Similarity) + recipe.Recency*recency + recipe.ExactMatchBoost*exact
}

func recencyScore(updatedAt, now time.Time) float64 {
	if updatedAt.IsZero() {
		return 0
	}
	ageDays := now.Sub(updatedAt).Hours() / 24
	if ageDays < 0 {
		ageDays = 0
	}
	return math.Pow(0.5, ageDays/recencyHalfLifeDays)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
