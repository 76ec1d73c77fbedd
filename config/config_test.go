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

package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleetops/searchplanner/config"
	"github.com/fleetops/searchplanner/core"
)

func TestLoad_EmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, "yacht_id", cfg.TenantColumnName)
	assert.Equal(t, 8, cfg.FanOut)
	assert.Equal(t, 800, cfg.WaveBudgetMS[core.WaveVector])
	assert.True(t, cfg.IsPersonalEmailDomain("gmail.com"))
}

func TestLoad_YAMLFileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	contents := "fan_out: 16\ntotal_budget_ms: 1200\n"
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 16, cfg.FanOut)
	assert.Equal(t, 1200, cfg.TotalBudgetMS)
	// Untouched keys keep their defaults.
	assert.Equal(t, 5, cfg.StrongHitCount)
}

func TestLoad_QueueCapOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("queue_cap: 128\n"), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 128, cfg.QueueCap)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("fan_out: 16\n"), 0o644))

	t.Setenv("SEARCHPLANNER_FAN_OUT", "32")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 32, cfg.FanOut)
}

func TestLoad_MissingFileFallsBackToDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.NoError(t, err)
	assert.Equal(t, config.Default().TotalBudgetMS, cfg.TotalBudgetMS)
}

func TestLoad_RejectsHybridWeightsNotSummingToOne(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	contents := "hybrid_weights:\n  text: 0.9\n  vector: 0.9\n  recency: 0.1\n  bias: 0.05\n"
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	_, err := config.Load(path)
	assert.Error(t, err)
}

func TestLoad_RejectsZeroFanOut(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("fan_out: 0\n"), 0o644))

	_, err := config.Load(path)
	assert.Error(t, err)
}

func TestDefault_MatchesDocumentedDefaults(t *testing.T) {
	cfg := config.Default()
	assert.Equal(t, 20, cfg.DefaultTableLimit)
	assert.Equal(t, 50, cfg.GlobalLimit)
	assert.Equal(t, 0.3, cfg.TrigramThreshold)
	assert.Equal(t, 0.70, cfg.VectorThreshold)
	assert.Equal(t, 60.0, cfg.RRFK)
	assert.Equal(t, 0.7, cfg.RRFAlpha)
	assert.Equal(t, 64, cfg.QueueCap)
}
