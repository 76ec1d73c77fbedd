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

import "gopkg.in/src-d/go-errors.v1"

// Error kinds. Single-probe failures are recovered locally and never
// surfaced through these; only plan-level errors, returned as the sole
// response with no rows, use them.
var (
	// ErrValidation covers a malformed tenant id or an empty query with
	// no entities.
	ErrValidation = errors.NewKind("validation error: %s")

	// ErrBlocked is never actually returned to a caller as an error —
	// BLOCKED is a successful zero-row response (§7) — Engine.Prepare
	// uses this kind only to format its warn-level log line carrying
	// the block reason.
	ErrBlocked = errors.NewKind("blocked: %s")

	// ErrUnsupportedOperator marks a wave's operator unsupported by the
	// database collaborator; the wave runner downgrades this to skip,
	// it is never returned to a caller.
	ErrUnsupportedOperator = errors.NewKind("operator %s unsupported by collaborator")

	// ErrProbeFailure wraps a single probe's execution error for the
	// trace. It never fails the plan.
	ErrProbeFailure = errors.NewKind("probe %s failed: %s")

	// ErrDeadlineExceeded marks a tier or wave budget exceeded; the
	// plan returns partial results, not an error to the caller.
	ErrDeadlineExceeded = errors.NewKind("deadline exceeded at %s")

	// ErrTenantMismatch is fatal: params[0] of a probe differs from the
	// plan's scope tenant. Aborts the plan with no rows returned.
	ErrTenantMismatch = errors.NewKind("tenant mismatch: probe tenant %q != plan tenant %q")

	// ErrOverload is returned when the probe queue exceeds its hard cap.
	// The second argument is a retry-after hint in milliseconds.
	ErrOverload = errors.NewKind("overloaded: probe queue exceeds cap of %d, retry after %dms")

	// ErrNoEmbedding marks an embedding collaborator failure (§6.2); the
	// plan downgrades the vector wave to skip, it is never returned to
	// a caller.
	ErrNoEmbedding = errors.NewKind("no embedding available: %s")
)
