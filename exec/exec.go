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

// Package exec implements the Probe Executor (C12): it walks a
// prepared plan's tiers in order, and within each tier its waves in
// order, dispatching one probe per (table, wave) to the database
// collaborator with a bounded fan-out, merging and deduping the
// results as it goes, and stopping early on a strong-hit count or a
// deadline (§4.12, §5).
package exec

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/fleetops/searchplanner/collab"
	"github.com/fleetops/searchplanner/core"
	"github.com/fleetops/searchplanner/registry"
	"github.com/fleetops/searchplanner/sqlgen"
)

// Config bounds one Run invocation (§4.10, §5, §6.5).
type Config struct {
	// FanOut caps the number of probes dispatched concurrently within
	// one wave (§5 "configurable fan-out cap, recommended 8").
	FanOut int
	// WaveBudgetMS is the soft per-wave deadline, keyed by wave.
	WaveBudgetMS map[core.Wave]int
	// TotalBudgetMS is the hard ceiling for the whole Run call.
	TotalBudgetMS int
	// QueueCap is the hard cap on probes queued past FanOut's
	// concurrent slots within one wave (§5 "Backpressure"). Negative
	// disables the check; zero permits no queuing beyond FanOut itself.
	QueueCap int
}

// DefaultConfig matches the §5/§6.5 defaults.
func DefaultConfig() Config {
	return Config{
		FanOut: 8,
		WaveBudgetMS: map[core.Wave]int{
			core.WaveExact:   100,
			core.WaveILike:   300,
			core.WaveTrigram: 800,
			core.WaveVector:  800,
		},
		TotalBudgetMS: 800,
		QueueCap:      64,
	}
}

// Hit is one deduplicated row surviving a Run, annotated with the
// table and wave that produced it (§4.12 "source annotation").
type Hit struct {
	Table string
	Wave  core.Wave
	Tier  int
	Row   collab.Row
}

// Run executes plan's batches in tier order, each batch's waves in
// wave order, against db. It returns every deduplicated hit collected
// before an early exit or deadline, plus the observability trace
// (§6.3 `trace`). A tenant mismatch between a probe's first parameter
// and plan.Scope.YachtID is fatal and aborts the run with no hits
// (§8 invariant 1).
func Run(ctx context.Context, plan core.ExecutionPlan, colReg *registry.ColumnRegistry, opReg *registry.OperatorRegistry, db collab.Database, cfg Config) ([]Hit, core.Trace, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Duration(cfg.TotalBudgetMS)*time.Millisecond)
	defer cancel()

	var hits []Hit
	trace := core.Trace{}
	seen := make(map[string]map[string]bool) // table -> primary key value -> seen
	strongHits := 0

	for _, batch := range plan.Batches {
		if ctx.Err() != nil {
			trace.DeadlineExceeded = true
			return hits, trace, nil
		}

		for _, wave := range batch.WaveOrder {
			waveHits, waveBudgetExceeded, err := runWave(ctx, plan, colReg, opReg, db, cfg, batch, wave, seen, &trace)
			if err != nil {
				return nil, trace, err
			}
			if waveBudgetExceeded {
				trace.DeadlineExceeded = true
			}
			hits = append(hits, waveHits...)
			if wave == core.WaveExact {
				strongHits += len(waveHits)
			}
			if strongHits >= batch.Exit.StrongHitCount {
				trace.EarlyExit = true
				return hits, trace, nil
			}
			if ctx.Err() != nil {
				trace.DeadlineExceeded = true
				return hits, trace, nil
			}
		}
	}

	return hits, trace, nil
}

type probeResult struct {
	probe   core.Probe
	rows    []collab.Row
	errText string
	dur     time.Duration
}

// classifyOutcome advances probe.State from ProbeRunning to its
// terminal value based on the collaborator's response, and returns
// the trace message to go with it (empty on success).
func classifyOutcome(probe *core.Probe, wave core.Wave, err error) string {
	switch {
	case err == nil:
		probe.State = core.ProbeDone
		return ""
	case core.ErrUnsupportedOperator.Is(err):
		probe.State = core.ProbeSkipped
		return err.Error()
	case errors.Is(err, context.DeadlineExceeded):
		probe.State = core.ProbeBudgetExceeded
		return core.ErrDeadlineExceeded.New(wave).Error()
	case errors.Is(err, context.Canceled):
		probe.State = core.ProbeCancelled
		return err.Error()
	default:
		probe.State = core.ProbeError
		return core.ErrProbeFailure.New(probe.ProbeID, err).Error()
	}
}

// runWave dispatches one probe per table in batch against db, bounded
// by cfg.FanOut, and folds the results into seen/hits.
func runWave(
	ctx context.Context,
	plan core.ExecutionPlan,
	colReg *registry.ColumnRegistry,
	opReg *registry.OperatorRegistry,
	db collab.Database,
	cfg Config,
	batch core.BatchPlan,
	wave core.Wave,
	seen map[string]map[string]bool,
	trace *core.Trace,
) ([]Hit, bool, error) {
	budget, ok := cfg.WaveBudgetMS[wave]
	if !ok {
		budget = cfg.TotalBudgetMS
	}
	waveCtx, waveCancel := context.WithTimeout(ctx, time.Duration(budget)*time.Millisecond)
	defer waveCancel()

	if cfg.QueueCap >= 0 && cfg.FanOut > 0 {
		if queued := len(batch.Tables) - cfg.FanOut; queued > cfg.QueueCap {
			return nil, false, core.ErrOverload.New(cfg.QueueCap, budget)
		}
	}

	g, gctx := errgroup.WithContext(waveCtx)
	if cfg.FanOut > 0 {
		g.SetLimit(cfg.FanOut)
	}

	resultsCh := make(chan probeResult, len(batch.Tables))

	for _, ts := range batch.Tables {
		tbl, ok := colReg.ByTable(ts.Table)
		if !ok {
			continue
		}
		rq, ok := findResolvedQuery(plan.Resolved[ts.Table], wave)
		if !ok {
			continue
		}

		probe, err := sqlgen.Generate(tbl, rq, wave, opReg)
		if err != nil {
			trace.Entries = append(trace.Entries, core.TraceEntry{
				Table: ts.Table, Tier: batch.Tier, Wave: wave,
				State: core.ProbeError, Err: err.Error(),
			})
			continue
		}

		if probe.TenantID() != plan.Scope.YachtID {
			return nil, false, core.ErrTenantMismatch.New(probe.TenantID(), plan.Scope.YachtID)
		}

		g.Go(func() error {
			start := time.Now()
			probe.State = core.ProbeRunning
			rows, err := db.Query(gctx, probe.SQL, probe.Params)
			errText := classifyOutcome(&probe, wave, err)
			resultsCh <- probeResult{probe: probe, rows: rows, errText: errText, dur: time.Since(start)}
			return nil
		})
	}

	_ = g.Wait()
	close(resultsCh)

	var hits []Hit
	for pr := range resultsCh {
		entry := core.TraceEntry{
			ProbeID:    pr.probe.ProbeID,
			Table:      pr.probe.Table,
			Tier:       batch.Tier,
			Wave:       wave,
			DurationMS: pr.dur.Milliseconds(),
			State:      pr.probe.State,
			Err:        pr.errText,
		}

		if pr.probe.State == core.ProbeDone {
			entry.RowCount = len(pr.rows)
			tbl, _ := colReg.ByTable(pr.probe.Table)
			for _, row := range pr.rows {
				if dedupSeen(seen, tbl, row) {
					continue
				}
				hits = append(hits, Hit{Table: pr.probe.Table, Wave: wave, Tier: batch.Tier, Row: row})
			}
		}

		trace.Entries = append(trace.Entries, entry)
	}

	return hits, waveCtx.Err() != nil, nil
}

// findResolvedQuery returns the ResolvedQuery matching wave out of a
// table's resolved set (§3 ExecutionPlan.Resolved keyed by table).
func findResolvedQuery(queries []core.ResolvedQuery, wave core.Wave) (core.ResolvedQuery, bool) {
	for _, rq := range queries {
		if rq.Wave == wave {
			return rq, true
		}
	}
	return core.ResolvedQuery{}, false
}

// dedupSeen reports whether row has already been counted for tbl's
// primary key, marking it seen as a side effect. Rows from a table
// with no declared primary key are never deduped.
func dedupSeen(seen map[string]map[string]bool, tbl core.TableCapability, row collab.Row) bool {
	if tbl.PrimaryKey == "" {
		return false
	}
	key, ok := row[tbl.PrimaryKey]
	if !ok {
		return false
	}
	keyStr, ok := key.(string)
	if !ok {
		return false
	}

	byKey, ok := seen[tbl.Name]
	if !ok {
		byKey = make(map[string]bool)
		seen[tbl.Name] = byKey
	}
	if byKey[keyStr] {
		return true
	}
	byKey[keyStr] = true
	return false
}
