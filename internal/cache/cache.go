// Package cache is the compiled-artifact cache for pure, single-expression
// Molang programs (spec §4.6): the same source text compiled more than
// once from the same goroutine reuses its first compiled artifact rather
// than re-JITting.
//
// original_source/src/jit_cache.rs keys this by a thread-local
// HashMap<String, CompiledFn>, since Rust's JIT runs one cranelift
// Module per OS thread. Go has no thread-locals and goroutines are not
// OS threads, so this keys by goroutine ID instead
// (github.com/petermattis/goid, already an indirect dependency in the
// retrieved pack), which is the closest Go analogue to "whichever
// execution context happens to compile this expression owns its own
// cache slot" without requiring a single global cache synchronized
// across every caller.
package cache

import (
	"sync"

	"github.com/petermattis/goid"
	"j5.nz/molang/internal/codegen"
)

var (
	mu    sync.Mutex
	byGID = make(map[int64]map[string]*codegen.CompiledArtifact)
)

// GetOrCompile returns the cached artifact for source on the calling
// goroutine, compiling and caching it via compile on a miss. A single
// goroutine only ever runs one frame at a time, so the entries map for
// one goroutine ID is never touched concurrently; the mutex here guards
// only byGID itself against other goroutines allocating their own entry
// (spec §4.6: no eviction, the cache only grows for the process's
// lifetime).
func GetOrCompile(source string, compile func() (*codegen.CompiledArtifact, error)) (*codegen.CompiledArtifact, error) {
	gid := goid.Get()

	mu.Lock()
	entries, ok := byGID[gid]
	if !ok {
		entries = make(map[string]*codegen.CompiledArtifact)
		byGID[gid] = entries
	}
	art, ok := entries[source]
	mu.Unlock()
	if ok {
		logHit(source)
		return art, nil
	}

	logMiss(source)
	art, err := compile()
	if err != nil {
		return nil, err
	}

	mu.Lock()
	entries[source] = art
	mu.Unlock()
	return art, nil
}
