// Package field manages the fleet of per-identity engines. Engines are
// created on first use and evicted when idle, so long-lived deployments stay
// bounded in memory regardless of how many identities pass through.
package field

import (
	"log"
	"sync"
	"time"

	"github.com/danielpatrickdp/emergence-field/go-engine/internal/engine"
)

// #region config
// RegistryConfig bounds the fleet.
type RegistryConfig struct {
	MaxIdentities int           // hard cap; exceeding it evicts the least recently seen (0 = unbounded)
	IdleTTL       time.Duration // EvictIdle removes identities quiet for longer than this (0 = never)
	Engine        engine.Config
}

// DefaultRegistryConfig returns a fleet bounded to 1000 identities with a
// 24h idle TTL.
func DefaultRegistryConfig() RegistryConfig {
	return RegistryConfig{
		MaxIdentities: 1000,
		IdleTTL:       24 * time.Hour,
		Engine:        engine.DefaultConfig(),
	}
}

// #endregion config

// #region registry

type entry struct {
	engine   *engine.Engine
	lastSeen time.Time
}

// Registry maps identities to their engines. Safe for concurrent use; the
// engines themselves stay fully independent.
type Registry struct {
	mu      sync.RWMutex
	config  RegistryConfig
	engines map[string]*entry
	now     func() time.Time
}

// NewRegistry creates a Registry. now may be nil (wall clock).
func NewRegistry(config RegistryConfig, now func() time.Time) *Registry {
	if now == nil {
		now = time.Now
	}
	return &Registry{
		config:  config,
		engines: make(map[string]*entry),
		now:     now,
	}
}

// #endregion registry

// #region acquire

// Acquire returns the engine for an identity, creating it on first use and
// marking it seen. Creation past MaxIdentities evicts the least recently
// seen identity first.
func (r *Registry) Acquire(identity string) *engine.Engine {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	if ent, ok := r.engines[identity]; ok {
		ent.lastSeen = now
		return ent.engine
	}

	if r.config.MaxIdentities > 0 && len(r.engines) >= r.config.MaxIdentities {
		r.evictOldestLocked()
	}

	eng := engine.New(identity, r.config.Engine, r.now)
	r.engines[identity] = &entry{engine: eng, lastSeen: now}
	return eng
}

// Lookup returns the engine for an identity without creating one.
func (r *Registry) Lookup(identity string) (*engine.Engine, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ent, ok := r.engines[identity]
	if !ok {
		return nil, false
	}
	return ent.engine, true
}

// #endregion acquire

// #region eviction

// EvictIdle removes every identity quiet for longer than the idle TTL and
// returns how many were dropped. A no-op when no TTL is configured.
func (r *Registry) EvictIdle() int {
	if r.config.IdleTTL <= 0 {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-r.config.IdleTTL)
	evicted := 0
	for identity, ent := range r.engines {
		if ent.lastSeen.Before(cutoff) {
			delete(r.engines, identity)
			evicted++
		}
	}
	if evicted > 0 {
		log.Printf("[FIELD] evicted %d idle identities (ttl=%s)", evicted, r.config.IdleTTL)
	}
	return evicted
}

func (r *Registry) evictOldestLocked() {
	var oldest string
	var oldestSeen time.Time
	for identity, ent := range r.engines {
		if oldest == "" || ent.lastSeen.Before(oldestSeen) {
			oldest = identity
			oldestSeen = ent.lastSeen
		}
	}
	if oldest != "" {
		delete(r.engines, oldest)
		log.Printf("[FIELD] evicted %s (fleet cap %d)", oldest, r.config.MaxIdentities)
	}
}

// #endregion eviction

// #region accessors

// Len returns the number of tracked identities.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.engines)
}

// Identities lists the tracked identities in no particular order.
func (r *Registry) Identities() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.engines))
	for identity := range r.engines {
		out = append(out, identity)
	}
	return out
}

// #endregion accessors
