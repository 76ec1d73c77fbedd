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

// VariantForm is the closed set of surface forms a term can take.
type VariantForm string

const (
	FormCanonical  VariantForm = "canonical"
	FormRaw        VariantForm = "raw"
	FormNormalized VariantForm = "normalized"
	FormFuzzy      VariantForm = "fuzzy"
	FormTrigram    VariantForm = "trigram"
	FormPrefix     VariantForm = "prefix"
)

// priorityByForm fixes the §4.2 generation order: canonical(1),
// raw(2), normalized(3), fuzzy(4), trigram(5), prefix(6). Lower
// priority is tried first.
var priorityByForm = map[VariantForm]int{
	FormCanonical:  1,
	FormRaw:        2,
	FormNormalized: 3,
	FormFuzzy:      4,
	FormTrigram:    5,
	FormPrefix:     6,
}

// PriorityOf returns the fixed generation-order priority for a form.
func PriorityOf(f VariantForm) int { return priorityByForm[f] }

// Variant is one surface form of a term with its bound operator.
// Invariant (§8.4): within one entity's Variants slice, Priority is
// strictly monotonic increasing.
type Variant struct {
	Form     VariantForm
	Value    string
	Operator Operator
	Priority int
}
