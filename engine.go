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

// Package searchplanner wires the PREPARE stages (canon, variantgen,
// token, lane, intent, bias, bind, batch) and the EXECUTE stages
// (sqlgen, exec, rank) into one Engine, the way the teacher's Engine
// type ties its analyzer, catalog and process list together behind
// Query/PrepareQuery (engine.go).
package searchplanner

import (
	"context"
	"fmt"
	"strings"
	"time"

	uuid "github.com/satori/go.uuid"
	"github.com/sirupsen/logrus"

	"github.com/fleetops/searchplanner/batch"
	"github.com/fleetops/searchplanner/bias"
	"github.com/fleetops/searchplanner/bind"
	"github.com/fleetops/searchplanner/collab"
	"github.com/fleetops/searchplanner/config"
	"github.com/fleetops/searchplanner/core"
	"github.com/fleetops/searchplanner/exec"
	"github.com/fleetops/searchplanner/fusion"
	"github.com/fleetops/searchplanner/intent"
	"github.com/fleetops/searchplanner/lane"
	"github.com/fleetops/searchplanner/linking"
	"github.com/fleetops/searchplanner/rank"
	"github.com/fleetops/searchplanner/registry"
	"github.com/fleetops/searchplanner/sqlgen"
	"github.com/fleetops/searchplanner/token"
	"github.com/fleetops/searchplanner/variantgen"
)

// Config wires the collaborators and registries an Engine needs. Both
// Database and Embedder are supplied by the caller, never constructed
// here — the engine plans and executes against whatever store is
// behind the interface.
type Config struct {
	ColumnRegistry   *registry.ColumnRegistry
	OperatorRegistry *registry.OperatorRegistry
	Database         collab.Database
	Embedder         collab.Embedder
	Tunables         config.Config
	Affinity         *linking.AffinityCache
	Log              *logrus.Logger
}

// Engine is the entry point for both the search-planning pipeline
// (Prepare/Execute) and the email linking ladder (LinkThread).
type Engine struct {
	colReg   *registry.ColumnRegistry
	opReg    *registry.OperatorRegistry
	db       collab.Database
	embedder collab.Embedder
	cfg      config.Config
	affinity *linking.AffinityCache
	log      *logrus.Logger
}

// New builds an Engine from an explicit Config. Use NewDefault for the
// stock table/operator registries and §6.5 default tunables.
func New(cfg Config) (*Engine, error) {
	if cfg.ColumnRegistry == nil {
		return nil, fmt.Errorf("searchplanner: ColumnRegistry is required")
	}
	if cfg.OperatorRegistry == nil {
		return nil, fmt.Errorf("searchplanner: OperatorRegistry is required")
	}
	if cfg.Database == nil {
		return nil, fmt.Errorf("searchplanner: Database is required")
	}
	log := cfg.Log
	if log == nil {
		log = logrus.New()
	}
	affinity := cfg.Affinity
	if affinity == nil {
		affinity = linking.NewAffinityCache()
	}
	return &Engine{
		colReg:   cfg.ColumnRegistry,
		opReg:    cfg.OperatorRegistry,
		db:       cfg.Database,
		embedder: cfg.Embedder,
		cfg:      cfg.Tunables,
		affinity: affinity,
		log:      log,
	}, nil
}

// NewDefault builds an Engine over the built-in table declarations
// (registry.DefaultTables) and the §6.5 documented defaults.
func NewDefault(db collab.Database, embedder collab.Embedder) (*Engine, error) {
	tunables := config.Default()

	colReg, err := registry.NewColumnRegistry(registry.DefaultTables())
	if err != nil {
		return nil, fmt.Errorf("searchplanner: building column registry: %w", err)
	}
	opReg := registry.NewOperatorRegistry(tunables.TrigramThreshold)

	return New(Config{
		ColumnRegistry:   colReg,
		OperatorRegistry: opReg,
		Database:         db,
		Embedder:         embedder,
		Tunables:         tunables,
	})
}

// PrepareRequest is the caller-supplied search request (§6.3
// `search_query` input record). Scope must already be resolved
// server-side; the engine never infers tenancy from the query text.
// Entities is optional: when the caller has already run its own entity
// extraction (or is replaying a prior plan's terms), those entities are
// used as-is and Query is never run through the token extractor. When
// Entities is empty, the engine falls back to
// token.ExtractFromQuery(Query) (§4 supplemented features).
type PrepareRequest struct {
	Query    string
	Entities []core.Entity
	Scope    core.UserScope
	Surface  core.SurfaceState
}

// Prepare runs the PREPARE half of the pipeline (§3): canonicalize and
// type the query's terms, classify its lane, detect intent, bias-rank
// candidate tables, bind entities to columns per table and wave, and
// partition the ranked tables into execution tiers. The returned plan
// carries no rendered SQL and no table outside scope.
func (e *Engine) Prepare(_ context.Context, req PrepareRequest) (core.ExecutionPlan, error) {
	if req.Scope.YachtID == "" {
		return core.ExecutionPlan{}, core.ErrValidation.New("empty tenant id")
	}

	raw := req.Entities
	if len(raw) == 0 {
		raw = token.ExtractFromQuery(req.Query)
	}
	entities := typedEntities(raw)
	laneDecision := lane.Classify(req.Query, entities)

	plan := core.ExecutionPlan{
		PlanID:       uuid.NewV4().String(),
		Lane:         laneDecision,
		Scope:        req.Scope,
		Terms:        entities,
		SurfaceState: req.Surface,
	}

	// BLOCKED and UNKNOWN are successful zero-row responses (§7): no
	// further stage runs, so no SQL is ever generated for them.
	if laneDecision.Lane == core.LaneBlocked {
		e.log.WithField("plan_id", plan.PlanID).
			Warn(core.ErrBlocked.New(laneDecision.BlockMessage))
		return plan, nil
	}
	if laneDecision.Lane == core.LaneUnknown {
		return plan, nil
	}

	plan.Intent = intent.Detect(req.Query, entities)
	plan.RankedTables = bias.Score(e.colReg.Tables(), entities, plan.Intent, req.Scope)
	plan.Batches = batch.Plan(plan.RankedTables, laneDecision)

	plan.Resolved = make(map[string][]core.ResolvedQuery, len(plan.RankedTables))
	for _, ts := range plan.RankedTables {
		tbl, ok := e.colReg.ByTable(ts.Table)
		if !ok {
			continue
		}
		for _, rq := range bind.Resolve(tbl, entities, req.Scope.YachtID) {
			plan.Resolved[ts.Table] = append(plan.Resolved[ts.Table], rq)
		}
	}

	return plan, nil
}

// typedEntities attaches the variant list each entity needs before
// binding (token.ExtractFromQuery yields bare Type/RawValue pairs;
// variant generation is a separate stage, C2, so the entities it
// returns are re-threaded through it here).
func typedEntities(raw []core.Entity) []core.Entity {
	out := make([]core.Entity, 0, len(raw))
	for _, e := range raw {
		typed, ok := variantgen.NewEntity(e.Type, e.RawValue)
		if !ok {
			continue
		}
		out = append(out, typed)
	}
	return out
}

// Execute runs the EXECUTE half of the pipeline (§3) against plan: the
// Probe Executor dispatches tier/wave probes to the database
// collaborator, and the Ranker/Merger scores and sorts the survivors
// for plan.SurfaceState. A BLOCKED or UNKNOWN plan (no batches) short
// circuits to a zero-row result carrying the lane's block_message or
// suggestions (§7 "Blocked and UNKNOWN lanes are successful responses
// with zero rows and a non-null block_message/suggestions field")
// without touching the database.
func (e *Engine) Execute(ctx context.Context, plan core.ExecutionPlan) (core.SearchResult, error) {
	if len(plan.Batches) == 0 {
		return core.SearchResult{
			Lane:         plan.Lane.Lane,
			Intent:       plan.Intent,
			BlockMessage: plan.Lane.BlockMessage,
			Suggestions:  plan.Lane.Suggestions,
		}, nil
	}

	start := time.Now()
	execCfg := exec.Config{
		FanOut:        e.cfg.FanOut,
		WaveBudgetMS:  e.cfg.WaveBudgetMS,
		TotalBudgetMS: e.cfg.TotalBudgetMS,
		QueueCap:      e.cfg.QueueCap,
	}

	hits, trace, err := exec.Run(ctx, plan, e.colReg, e.opReg, e.db, execCfg)
	if err != nil {
		return core.SearchResult{Lane: plan.Lane.Lane, Intent: plan.Intent, Trace: &trace}, err
	}

	now := time.Now()
	candidates := make([]rank.Candidate, 0, len(hits))
	for _, hit := range hits {
		tbl, ok := e.colReg.ByTable(hit.Table)
		if !ok {
			continue
		}
		candidates = append(candidates, rank.Candidate{
			ObjectType: hit.Table,
			ObjectID:   stringField(hit.Row, tbl.PrimaryKey),
			Source:     rank.SourceSQL,
			Similarity: 1.0,
			UpdatedAt:  timeField(hit.Row, "updated_at"),
			ExactMatch: hit.Wave == core.WaveExact,
			Payload:    hit.Row,
		})
	}

	ranked := rank.Merge(candidates, nil, plan.SurfaceState, now)
	limit := e.cfg.GlobalLimit
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}

	return core.SearchResult{
		Lane:   plan.Lane.Lane,
		Intent: plan.Intent,
		Rows:   toRows(ranked),
		Stats:  statsFromTrace(trace, time.Since(start)),
		Trace:  &trace,
	}, nil
}

// Search is the convenience entry point combining Prepare and Execute
// for the common case where the caller does not need the intermediate
// plan (e.g. to cache or replay it).
func (e *Engine) Search(ctx context.Context, req PrepareRequest) (core.SearchResult, error) {
	plan, err := e.Prepare(ctx, req)
	if err != nil {
		return core.SearchResult{}, err
	}
	return e.Execute(ctx, plan)
}

// toRows adapts the Ranker/Merger's internal Ranked shape to the
// caller-facing Row record (§6.3 output record).
func toRows(ranked []rank.Ranked) []core.Row {
	rows := make([]core.Row, 0, len(ranked))
	for _, r := range ranked {
		rows = append(rows, core.Row{
			ObjectType:  r.ObjectType,
			ObjectID:    r.ObjectID,
			Source:      core.ResultSource(r.Source),
			SourceTable: r.ObjectType,
			Payload:     r.Payload,
			UpdatedAt:   unixOrZero(r.UpdatedAt),
			RankScore:   r.Score,
			Similarity:  r.Similarity,
			ExactMatch:  r.ExactMatch,
		})
	}
	return rows
}

func unixOrZero(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.Unix()
}

// statsFromTrace summarizes one Execute call's trace into the §6.3
// `stats` record: distinct tiers/waves attempted, tables that actually
// returned a row, and a split of SQL vs. vector probe counts (the
// vector wave is the only one that queries the embedding path).
func statsFromTrace(trace core.Trace, elapsed time.Duration) core.Stats {
	tiers := map[int]bool{}
	waves := map[core.Wave]bool{}
	tablesHit := map[string]bool{}
	var orderedTables []string
	sqlQueries, vectorQueries := 0, 0

	for _, entry := range trace.Entries {
		tiers[entry.Tier] = true
		waves[entry.Wave] = true
		if entry.Wave == core.WaveVector {
			vectorQueries++
		} else {
			sqlQueries++
		}
		if entry.State == core.ProbeDone && entry.RowCount > 0 && !tablesHit[entry.Table] {
			tablesHit[entry.Table] = true
			orderedTables = append(orderedTables, entry.Table)
		}
	}

	return core.Stats{
		WavesExecuted:         len(waves),
		TiersExecuted:         len(tiers),
		EarlyExit:             trace.EarlyExit,
		TotalTimeMS:           elapsed.Milliseconds(),
		TablesHit:             orderedTables,
		SQLQueriesExecuted:    sqlQueries,
		VectorQueriesExecuted: vectorQueries,
	}
}

func stringField(row collab.Row, field string) string {
	if field == "" {
		return ""
	}
	s, _ := row[field].(string)
	return s
}

func timeField(row collab.Row, field string) time.Time {
	switch v := row[field].(type) {
	case time.Time:
		return v
	default:
		return time.Time{}
	}
}

// idEntityRoutes maps the closed set of L1 structured-id token kinds
// to the entity type the Column Capability Registry routes them
// through. quote_id and invoice_id have no dedicated entity type in
// the closed taxonomy (§9 GLOSSARY); both are procurement references
// that resolve against the same purchase-order anchor as po_id, so
// they route through PONumber at a lower base score (L2 rather than
// L1) rather than being dropped.
var idEntityRoutes = map[string]core.EntityType{
	"wo_id":      core.WONumber,
	"eq_id":      core.EquipmentCode,
	"fault_id":   core.FaultCode,
	"po_id":      core.PONumber,
	"quote_id":   core.PONumber,
	"invoice_id": core.PONumber,
}

const (
	l1BaseScore = 150
	l2BaseScore = 110
	l3BaseScore = 75
)

// LinkRequest is one inbound email thread under consideration for
// linking to an existing maintenance/procurement object (§4.14).
type LinkRequest struct {
	Scope             core.UserScope
	Subject           string
	Sender            string
	Body              string
	Attachments       []token.Attachment
	ParticipantHashes []string
	DaysBack          int
	ObjectTypes       []string
}

// LinkThread runs the full Linking Ladder (C14) against one thread:
// token extraction feeds the deterministic L1/L2 id lookups and the L3
// fuzzy part/serial search, the embedder and MatchLinkTargets
// collaborator feed the L2.5 hybrid candidate, and a non-personal
// sender domain's learned affinity is folded in by linking.Run as the
// L4 bonus on every candidate found above (§4.14's vendor
// email/hash row is a bonus, not an independent lookup — there is no
// "find objects by vendor" collaborator method, only a per-vendor
// affinity score learned from past LinkDecision outcomes).
func (e *Engine) LinkThread(ctx context.Context, req LinkRequest) (linking.Result, error) {
	tokens := token.Extract(req.Subject, req.Sender, req.Attachments, req.ParticipantHashes)

	vendorHash := ""
	if tokens.Vendor.SenderHash != "" && !e.isPersonalDomain(tokens.Vendor) {
		vendorHash = tokens.Vendor.SenderHash
	}

	var candidates []linking.Candidate
	candidates = append(candidates, e.idCandidates(ctx, req.Scope, tokens, vendorHash)...)
	candidates = append(candidates, e.fuzzyCandidates(ctx, req.Scope, tokens, req.Subject, vendorHash)...)

	hybrid, signals := e.hybridCandidate(ctx, req, vendorHash)

	return linking.Run(candidates, hybrid, signals, e.affinity, e.log, token.HasProcurementSignal(tokens)), nil
}

// ToLinkSuggestions converts the ladder's primary and alternate
// suggestions into the persisted LinkSuggestion shape keyed by
// threadID (§6.4 "LinkSuggestion rows keyed by (thread_id,
// object_type, object_id)"). A caller persists the returned rows
// directly; LinkThread itself never writes them.
func (e *Engine) ToLinkSuggestions(threadID string, result linking.Result) []core.LinkSuggestion {
	var out []core.LinkSuggestion
	if result.Primary != nil {
		out = append(out, toLinkSuggestion(threadID, *result.Primary, result.Ambiguous))
	}
	for _, alt := range result.Alternates {
		out = append(out, toLinkSuggestion(threadID, alt, false))
	}
	return out
}

func toLinkSuggestion(threadID string, s linking.Suggestion, ambiguous bool) core.LinkSuggestion {
	return core.LinkSuggestion{
		ThreadID:        threadID,
		ObjectType:      s.ObjectType,
		ObjectID:        s.ObjectID,
		Confidence:      core.Confidence(s.Confidence),
		Score:           float64(s.Score),
		ScoreBreakdown:  scoreBreakdown(s.Level, s.ScoreBreakdown),
		IsPrimary:       s.IsPrimary,
		SuggestedReason: core.SuggestedReason(s.SuggestedReason),
		IsActive:        true,
		Ambiguous:       ambiguous,
		VendorHash:      s.VendorHash,
	}
}

func scoreBreakdown(level linking.Level, m map[string]int) core.ScoreBreakdown {
	return core.ScoreBreakdown{
		Level:         string(level),
		BaseScore:     float64(m["base"]),
		RecencyBonus:  float64(m["recency"]),
		StatusBonus:   float64(m["status"]),
		AffinityBonus: float64(m["vendor_affinity"]),
	}
}

// RecordLinkDecision folds a user's action against a prior suggestion
// into the learned vendor-affinity cache (§4.14, §4 supplemented
// features): accept reinforces the suggestion's vendor, anything else
// penalizes it. A suggestion with no vendor association leaves the
// cache untouched.
func (e *Engine) RecordLinkDecision(decision core.LinkDecision) {
	vendorHash := decision.PriorSuggestion.VendorHash
	if vendorHash == "" {
		return
	}
	outcome := 0.0
	if decision.Action == core.ActionAccept {
		outcome = 1.0
	}
	e.affinity.Record(vendorHash, outcome)
}

func (e *Engine) isPersonalDomain(v token.VendorSignals) bool {
	if v.IsPersonalDomain {
		return true
	}
	return e.cfg.IsPersonalEmailDomain(v.SenderDomain)
}

// idCandidates resolves every recognized structured id in tokens
// against its routed table via an exact-wave probe, reusing the same
// bind/sqlgen path the search pipeline uses rather than hand-building
// SQL for the ladder.
func (e *Engine) idCandidates(ctx context.Context, scope core.UserScope, tokens token.Tokens, vendorHash string) []linking.Candidate {
	var out []linking.Candidate
	for kind, et := range idEntityRoutes {
		values := tokens.IDs[kind]
		if len(values) == 0 {
			continue
		}
		level, base, reason := linking.LevelL1, l1BaseScore, linking.ReasonWOPattern
		if kind == "po_id" {
			reason = linking.ReasonPOPattern
		}
		if kind == "quote_id" || kind == "invoice_id" {
			level, base, reason = linking.LevelL2, l2BaseScore, linking.ReasonPOPattern
		}

		for _, value := range values {
			rows, ok := e.exactLookup(ctx, scope, et, value)
			if !ok {
				continue
			}
			for _, row := range rows {
				out = append(out, rowCandidate(row.table, row.row, level, base, reason, vendorHash))
			}
		}
	}
	return out
}

type exactRow struct {
	table string
	row   collab.Row
}

// exactLookup binds a single strong entity to every table that routes
// et, generates the EXACT-wave probe for each, and queries it.
func (e *Engine) exactLookup(ctx context.Context, scope core.UserScope, et core.EntityType, value string) ([]exactRow, bool) {
	entity, ok := variantgen.NewEntity(et, value)
	if !ok {
		return nil, false
	}
	entity.Strength = core.Strong

	seenTables := map[string]bool{}
	var out []exactRow
	for _, route := range e.colReg.ByEntityType(et) {
		if seenTables[route.Table] {
			continue
		}
		seenTables[route.Table] = true

		tbl, ok := e.colReg.ByTable(route.Table)
		if !ok {
			continue
		}
		resolved := bind.Resolve(tbl, []core.Entity{entity}, scope.YachtID)
		rq, ok := resolved[core.WaveExact]
		if !ok {
			continue
		}
		probe, err := sqlgen.Generate(tbl, rq, core.WaveExact, e.opReg)
		if err != nil {
			continue
		}
		rows, err := e.db.Query(ctx, probe.SQL, probe.Params)
		if err != nil {
			continue
		}
		for _, row := range rows {
			out = append(out, exactRow{table: route.Table, row: row})
		}
	}
	return out, len(out) > 0
}

// fuzzyCandidates runs the L3 part/serial fuzzy procedures against any
// part number, serial number or OEM number token found.
func (e *Engine) fuzzyCandidates(ctx context.Context, scope core.UserScope, tokens token.Tokens, subject, vendorHash string) []linking.Candidate {
	var queries []string
	for _, kind := range []string{"part_number", "serial_number", "oem_number"} {
		queries = append(queries, tokens.Parts[kind]...)
	}

	var out []linking.Candidate
	for _, q := range queries {
		rows, err := e.db.SearchPartsFuzzy(ctx, scope.YachtID, q, e.cfg.TrigramThreshold, 5)
		if err == nil {
			for _, row := range rows {
				out = append(out, rowCandidate("pms_parts", row, linking.LevelL3, l3BaseScore, linking.ReasonPartNumber, vendorHash))
			}
		}
		rows, err = e.db.SearchEquipmentFuzzy(ctx, scope.YachtID, q, e.cfg.TrigramThreshold, 5)
		if err == nil {
			for _, row := range rows {
				out = append(out, rowCandidate("pms_equipment", row, linking.LevelL3, l3BaseScore, linking.ReasonSerialMatch, vendorHash))
			}
		}
	}

	// With no structured part/serial token, fall back to a fuzzy
	// work-order title match on the subject line itself — a weaker L3
	// signal than an id or part match, which is why it only fires when
	// nothing more specific was found.
	if len(queries) == 0 && strings.TrimSpace(subject) != "" {
		rows, err := e.db.SearchWorkOrdersFuzzy(ctx, scope.YachtID, subject, e.cfg.TrigramThreshold, 5)
		if err == nil {
			for _, row := range rows {
				out = append(out, rowCandidate("pms_work_orders", row, linking.LevelL3, l3BaseScore-15, linking.ReasonTokenMatch, vendorHash))
			}
		}
	}

	return out
}

// hybridCandidate runs the L2.5 path: embed the thread's text, hand it
// to the fused hybrid-retrieval collaborator, and fold the top result
// into a fusion.Signals set. A failed embed or empty result set
// downgrades to no hybrid candidate rather than an error (§6.2).
func (e *Engine) hybridCandidate(ctx context.Context, req LinkRequest, vendorHash string) (*linking.Candidate, fusion.Signals) {
	if e.embedder == nil {
		return nil, fusion.Signals{}
	}

	text := strings.TrimSpace(req.Subject + " " + req.Body)
	embedding, err := e.embedder.Embed(ctx, text)
	if err != nil {
		return nil, fusion.Signals{}
	}

	daysBack := req.DaysBack
	if daysBack <= 0 {
		daysBack = 90
	}
	results, err := e.db.MatchLinkTargets(ctx, req.Scope.YachtID, text, embedding, req.ObjectTypes, req.Scope.Role, daysBack, 1)
	if err != nil || len(results) == 0 {
		return nil, fusion.Signals{}
	}

	top := results[0]
	candidate := &linking.Candidate{
		ObjectType: top.ObjectType,
		ObjectID:   top.ObjectID,
		Reason:     linking.ReasonTokenMatch,
		VendorHash: vendorHash,
	}
	signals := fusion.Signals{
		SText:      top.SText,
		SVectorRaw: top.SVector,
		AgeDays:    top.SRecency,
		SBias:      top.SBias,
		RankText:   top.RankText,
		RankVector: top.RankVector,
	}
	return candidate, signals
}

func rowCandidate(table string, row collab.Row, level linking.Level, base int, reason linking.Reason, vendorHash string) linking.Candidate {
	return linking.Candidate{
		ObjectType:      table,
		ObjectID:        stringField(row, "id"),
		Level:           level,
		BaseScore:       base,
		Reason:          reason,
		UpdatedRecently: isRecent(row),
		IsOpenOrActive:  isOpen(row),
		VendorHash:      vendorHash,
	}
}

func isRecent(row collab.Row) bool {
	t := timeField(row, "updated_at")
	if t.IsZero() {
		return false
	}
	return time.Since(t) <= 7*24*time.Hour
}

var openStatuses = map[string]bool{
	"open": true, "active": true, "in_progress": true, "pending": true,
}

func isOpen(row collab.Row) bool {
	status, _ := row["status"].(string)
	return openStatuses[strings.ToLower(status)]
}
