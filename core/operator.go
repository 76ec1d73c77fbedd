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

// Operator is the closed eight-member enum of §3/§4.3. No code path
// may emit SQL for a value outside this set; the registry in package
// registry rejects unknown operators at load time.
type Operator string

const (
	OpExact          Operator = "exact"
	OpILike          Operator = "ilike"
	OpTrigram        Operator = "trigram"
	OpIn             Operator = "in"
	OpRange          Operator = "range"
	OpArrayAnyILike  Operator = "array_any_ilike"
	OpJSONPathILike  Operator = "json_path_ilike"
	OpVector         Operator = "vector"
)

// AllOperators enumerates the closed set, used for exhaustiveness
// checks in tests and registry validation.
var AllOperators = []Operator{
	OpExact, OpILike, OpTrigram, OpIn, OpRange, OpArrayAnyILike, OpJSONPathILike, OpVector,
}

// Wave is the operator-class execution phase (§Glossary).
type Wave int

const (
	WaveExact Wave = iota
	WaveILike
	WaveTrigram
	WaveVector
)

func (w Wave) String() string {
	switch w {
	case WaveExact:
		return "exact"
	case WaveILike:
		return "ilike"
	case WaveTrigram:
		return "trigram"
	case WaveVector:
		return "vector"
	default:
		return "unknown"
	}
}

// WaveOf maps an operator to its fixed wave (§3 Operator invariant).
func WaveOf(op Operator) Wave {
	switch op {
	case OpExact, OpIn:
		return WaveExact
	case OpILike, OpArrayAnyILike, OpJSONPathILike, OpRange:
		return WaveILike
	case OpTrigram:
		return WaveTrigram
	case OpVector:
		return WaveVector
	default:
		return WaveExact
	}
}

// RequiresTwoParams reports whether the operator's template takes two
// positional parameters. RANGE is the only one (§4.3).
func RequiresTwoParams(op Operator) bool {
	return op == OpRange
}
