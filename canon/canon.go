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

// Package canon implements the Canonicalizer (C1): deterministic,
// idempotent, equivalence-preserving string normalization.
package canon

import (
	"strings"
	"unicode"
)

// numberWords is the closed dictionary for step 3 of the pipeline.
var numberWords = map[string]string{
	"zero": "0", "one": "1", "two": "2", "three": "3", "four": "4",
	"five": "5", "six": "6", "seven": "7", "eight": "8", "nine": "9",
	"ten": "10",
}

// separators is the declared separator set stripped from
// identifier-looking tokens in step 4.
const separators = "-_/. "

// Canonical normalizes text: trim, lower-case, number-word expansion,
// separator stripping. Idempotent and deterministic (§8 invariant 2).
// Input that becomes empty after trimming yields "" — the caller must
// drop the term.
func Canonical(text string) string {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return ""
	}

	lowered := strings.ToLower(trimmed)
	expanded := expandNumberWords(lowered)
	stripped := stripSeparators(expanded)
	return stripped
}

// expandNumberWords replaces whole-word number words with digits,
// leaving everything else untouched. Whitespace and the declared
// separators both delimit words, so "four-c" expands like "four c".
func expandNumberWords(s string) string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || strings.ContainsRune(separators, r)
	})
	for i, f := range fields {
		if digit, ok := numberWords[f]; ok {
			fields[i] = digit
		}
	}
	return strings.Join(fields, " ")
}

// stripSeparators removes the declared separator set. Structural
// punctuation the storage layer preserves (hyphens inside part
// numbers, for instance) is handled by the Variant Generator's raw
// form, not here: the canonical form is comparison-friendly by
// design, and equivalence-preservation (§8 invariant 3) requires
// collapsing separators so "ENG-0008-103" and "eng 0008 103" compare
// equal.
func stripSeparators(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if strings.ContainsRune(separators, r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
