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

// Package config loads the engine's tunables (§6.5) from in-code
// defaults, a YAML file, and environment overrides, in that order of
// increasing precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/spf13/cast"
	"github.com/spf13/viper"

	"github.com/fleetops/searchplanner/core"
)

// HybridWeights are the §4.13 fusion blend weights.
type HybridWeights struct {
	Text    float64
	Vector  float64
	Recency float64
	Bias    float64
}

// Config is the full set of engine tunables enumerated in §6.5.
type Config struct {
	TenantColumnName string

	DefaultTableLimit int
	GlobalLimit       int

	WaveBudgetMS  map[core.Wave]int
	TotalBudgetMS int

	StrongHitCount int
	FanOut         int
	QueueCap       int

	TrigramThreshold float64
	VectorThreshold  float64

	HybridWeights HybridWeights
	RRFK          float64
	RRFAlpha      float64

	PersonalEmailDomains map[string]bool
}

// Default returns the §6.5 documented defaults.
func Default() Config {
	return Config{
		TenantColumnName:  "yacht_id",
		DefaultTableLimit: 20,
		GlobalLimit:       50,
		WaveBudgetMS: map[core.Wave]int{
			core.WaveExact:   100,
			core.WaveILike:   300,
			core.WaveTrigram: 800,
			core.WaveVector:  800,
		},
		TotalBudgetMS:    800,
		StrongHitCount:   5,
		FanOut:           8,
		QueueCap:         64,
		TrigramThreshold: 0.3,
		VectorThreshold:  0.70,
		HybridWeights: HybridWeights{
			Text:    0.45,
			Vector:  0.35,
			Recency: 0.15,
			Bias:    0.05,
		},
		RRFK:     60,
		RRFAlpha: 0.7,
		PersonalEmailDomains: map[string]bool{
			"gmail.com":   true,
			"yahoo.com":   true,
			"hotmail.com": true,
			"outlook.com": true,
			"icloud.com":  true,
		},
	}
}

// Load reads configuration from an optional YAML file at path, then
// applies `SEARCHPLANNER_`-prefixed environment overrides (e.g.
// `SEARCHPLANNER_TOTAL_BUDGET_MS=1200`), layered over Default(). An
// empty or missing path is not an error: Load falls back to defaults
// plus whatever environment overrides are set.
func Load(path string) (Config, error) {
	cfg := Default()

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix("searchplanner")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v, cfg)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok && !errors.Is(err, fs.ErrNotExist) {
				return Config{}, fmt.Errorf("config: reading %s: %w", path, err)
			}
		}
	}

	return decode(v, cfg)
}

func setDefaults(v *viper.Viper, cfg Config) {
	v.SetDefault("tenant_column_name", cfg.TenantColumnName)
	v.SetDefault("default_table_limit", cfg.DefaultTableLimit)
	v.SetDefault("global_limit", cfg.GlobalLimit)
	v.SetDefault("wave_budget_ms.exact", cfg.WaveBudgetMS[core.WaveExact])
	v.SetDefault("wave_budget_ms.ilike", cfg.WaveBudgetMS[core.WaveILike])
	v.SetDefault("wave_budget_ms.trigram", cfg.WaveBudgetMS[core.WaveTrigram])
	v.SetDefault("wave_budget_ms.vector", cfg.WaveBudgetMS[core.WaveVector])
	v.SetDefault("total_budget_ms", cfg.TotalBudgetMS)
	v.SetDefault("strong_hit_count", cfg.StrongHitCount)
	v.SetDefault("fan_out", cfg.FanOut)
	v.SetDefault("queue_cap", cfg.QueueCap)
	v.SetDefault("trigram_threshold", cfg.TrigramThreshold)
	v.SetDefault("vector_threshold", cfg.VectorThreshold)
	v.SetDefault("hybrid_weights.text", cfg.HybridWeights.Text)
	v.SetDefault("hybrid_weights.vector", cfg.HybridWeights.Vector)
	v.SetDefault("hybrid_weights.recency", cfg.HybridWeights.Recency)
	v.SetDefault("hybrid_weights.bias", cfg.HybridWeights.Bias)
	v.SetDefault("rrf_k", cfg.RRFK)
	v.SetDefault("rrf_alpha", cfg.RRFAlpha)
	v.SetDefault("personal_email_domains", domainList(cfg.PersonalEmailDomains))
}

func decode(v *viper.Viper, base Config) (Config, error) {
	out := base

	out.TenantColumnName = v.GetString("tenant_column_name")
	out.DefaultTableLimit = v.GetInt("default_table_limit")
	out.GlobalLimit = v.GetInt("global_limit")
	out.TotalBudgetMS = v.GetInt("total_budget_ms")
	out.StrongHitCount = v.GetInt("strong_hit_count")
	out.FanOut = v.GetInt("fan_out")
	out.QueueCap = v.GetInt("queue_cap")
	out.TrigramThreshold = v.GetFloat64("trigram_threshold")
	out.VectorThreshold = v.GetFloat64("vector_threshold")
	out.RRFK = v.GetFloat64("rrf_k")
	out.RRFAlpha = v.GetFloat64("rrf_alpha")

	out.WaveBudgetMS = map[core.Wave]int{
		core.WaveExact:   v.GetInt("wave_budget_ms.exact"),
		core.WaveILike:   v.GetInt("wave_budget_ms.ilike"),
		core.WaveTrigram: v.GetInt("wave_budget_ms.trigram"),
		core.WaveVector:  v.GetInt("wave_budget_ms.vector"),
	}

	out.HybridWeights = HybridWeights{
		Text:    v.GetFloat64("hybrid_weights.text"),
		Vector:  v.GetFloat64("hybrid_weights.vector"),
		Recency: v.GetFloat64("hybrid_weights.recency"),
		Bias:    v.GetFloat64("hybrid_weights.bias"),
	}

	domains, err := cast.ToStringSliceE(v.Get("personal_email_domains"))
	if err != nil {
		return Config{}, fmt.Errorf("config: personal_email_domains: %w", err)
	}
	out.PersonalEmailDomains = make(map[string]bool, len(domains))
	for _, d := range domains {
		out.PersonalEmailDomains[strings.ToLower(strings.TrimSpace(d))] = true
	}

	return out, validate(out)
}

func validate(cfg Config) error {
	if cfg.TenantColumnName == "" {
		return fmt.Errorf("config: tenant_column_name must not be empty")
	}
	if cfg.FanOut < 1 {
		return fmt.Errorf("config: fan_out must be at least 1")
	}
	if cfg.TotalBudgetMS < 1 {
		return fmt.Errorf("config: total_budget_ms must be positive")
	}
	sum := cfg.HybridWeights.Text + cfg.HybridWeights.Vector + cfg.HybridWeights.Recency + cfg.HybridWeights.Bias
	if sum < 0.99 || sum > 1.01 {
		return fmt.Errorf("config: hybrid_weights must sum to 1.0, got %.3f", sum)
	}
	return nil
}

func domainList(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for d := range m {
		out = append(out, d)
	}
	return out
}

// IsPersonalEmailDomain reports whether domain is excluded from L4
// vendor-affinity matching (§6.5 "personal_email_domains").
func (c Config) IsPersonalEmailDomain(domain string) bool {
	return c.PersonalEmailDomains[strings.ToLower(strings.TrimSpace(domain))]
}
