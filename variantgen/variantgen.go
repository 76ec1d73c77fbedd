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

// Package variantgen implements the Variant Generator (C2): for a raw
// term, produce an ordered sequence of typed variants.
package variantgen

import (
	"strings"

	"github.com/fleetops/searchplanner/canon"
	"github.com/fleetops/searchplanner/core"
)

// structuredIDTypes are entity types whose storage-layer column
// preserves structural punctuation verbatim (hyphens in part numbers,
// mixed case in codes). For these, the canonical variant is the
// trimmed raw value rather than canon.Canonical's separator-stripped
// form, per §4.2's invariant that "the canonical variant must never
// lose structural punctuation that the storage layer preserves."
// General free-text entities use the fully normalized canon.Canonical
// form instead, since their backing columns are matched case- and
// separator-insensitively.
var structuredIDTypes = map[core.EntityType]bool{
	core.PartNumber:    true,
	core.EquipmentCode: true,
	core.SerialNumber:  true,
	core.FaultCode:     true,
	core.PONumber:      true,
	core.WONumber:      true,
}

// minTrigramLen is the shortest raw value worth a trigram variant;
// similarity() on one or two characters is not meaningful.
const minTrigramLen = 3

// Generate produces the ordered variant list for one raw term of the
// given entity type. Empty or whitespace-only raw produces no
// variants (§4.2, §3 Entity invariant).
func Generate(entityType core.EntityType, raw string) []core.Variant {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}

	var variants []core.Variant

	canonicalValue := trimmed
	if !structuredIDTypes[entityType] {
		canonicalValue = canon.Canonical(trimmed)
	}
	variants = append(variants, core.Variant{
		Form:     core.FormCanonical,
		Value:    canonicalValue,
		Operator: core.OpExact,
		Priority: core.PriorityOf(core.FormCanonical),
	})

	variants = append(variants, core.Variant{
		Form:     core.FormRaw,
		Value:    trimmed,
		Operator: core.OpExact,
		Priority: core.PriorityOf(core.FormRaw),
	})

	variants = append(variants, core.Variant{
		Form:     core.FormNormalized,
		Value:    canon.Canonical(trimmed),
		Operator: core.OpILike,
		Priority: core.PriorityOf(core.FormNormalized),
	})

	variants = append(variants, core.Variant{
		Form:     core.FormFuzzy,
		Value:    "%" + trimmed + "%",
		Operator: core.OpILike,
		Priority: core.PriorityOf(core.FormFuzzy),
	})

	if len([]rune(trimmed)) >= minTrigramLen {
		variants = append(variants, core.Variant{
			Form:     core.FormTrigram,
			Value:    strings.ToLower(trimmed),
			Operator: core.OpTrigram,
			Priority: core.PriorityOf(core.FormTrigram),
		})
	}

	variants = append(variants, core.Variant{
		Form:     core.FormPrefix,
		Value:    trimmed + "%",
		Operator: core.OpILike,
		Priority: core.PriorityOf(core.FormPrefix),
	})

	return variants
}

// NewEntity builds an Entity from a raw value, attaching strength and
// variants. Returns false if the raw value is empty/whitespace (the
// entity must be dropped, per §3).
func NewEntity(entityType core.EntityType, raw string) (core.Entity, bool) {
	variants := Generate(entityType, raw)
	if len(variants) == 0 {
		return core.Entity{}, false
	}
	return core.Entity{
		Type:     entityType,
		RawValue: raw,
		Strength: core.StrengthOf(entityType),
		Variants: variants,
	}, true
}
