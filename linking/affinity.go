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

package linking

import (
	"math"
	"sync"
	"sync/atomic"
)

// affinityEWMA is the learning rate for the vendor-affinity update
// (§4.14 "learned vendor-affinity, normalized per vendor").
const affinityEWMA = 0.2

// AffinityCache is the process-wide vendor-affinity table (§5 "Shared
// resources"): readers never block (a single atomic pointer load),
// writers serialize through a mutex and publish a fresh copy so the
// critical section only covers the copy-and-swap, not any reader.
type AffinityCache struct {
	snapshot atomic.Pointer[map[string]float64]
	writeMu  sync.Mutex
}

// NewAffinityCache returns an empty cache.
func NewAffinityCache() *AffinityCache {
	c := &AffinityCache{}
	empty := make(map[string]float64)
	c.snapshot.Store(&empty)
	return c
}

// Bonus returns the 0-15 point bonus for vendorHash (§4.14
// "+(0…15) from learned vendor-affinity").
func (c *AffinityCache) Bonus(vendorHash string) int {
	m := c.snapshot.Load()
	if m == nil {
		return 0
	}
	return int(math.Round((*m)[vendorHash] * maxAffinity))
}

// Record folds one link-decision outcome (1.0 accepted, 0.0 rejected)
// into vendorHash's affinity via an EWMA, and publishes the updated
// snapshot atomically.
func (c *AffinityCache) Record(vendorHash string, outcome float64) {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	old := c.snapshot.Load()
	next := make(map[string]float64, len(*old)+1)
	for k, v := range *old {
		next[k] = v
	}

	prev, ok := next[vendorHash]
	if !ok {
		prev = outcome
	} else {
		prev = affinityEWMA*outcome + (1-affinityEWMA)*prev
	}
	next[vendorHash] = clamp01(prev)
	c.snapshot.Store(&next)
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
