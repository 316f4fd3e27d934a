package gen

import (
	"fmt"
	"sort"
	"sync"
)

// OutputFile represents a single generated file.
type OutputFile struct {
	Path    string // Relative path within the package directory
	Content []byte
	Mode    uint32 // File mode; 0 means 0644
}

// Generator is the interface all output generators implement.
// Each generator renders a resolved toolchain into one or more files
// (shell environment, CMake cache preload, JSON, the toolchain file itself).
type Generator interface {
	// Name returns the generator name (e.g., "env", "cmake", "json").
	Name() string

	// Generate produces output files for the resolved toolchain.
	Generate(ctx *Context) ([]*OutputFile, error)
}

var (
	registryMu sync.RWMutex
	registry   = map[string]func() Generator{}
)

// Register adds a generator factory to the registry.
// Typically called from init() in each generator's file.
func Register(name string, factory func() Generator) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, exists := registry[name]; exists {
		panic(fmt.Sprintf("generator %q already registered", name))
	}
	registry[name] = factory
}

// Get returns a new instance of the named generator.
func Get(name string) (Generator, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	factory, ok := registry[name]
	if !ok {
		return nil, false
	}
	return factory(), true
}

// All returns the names of all registered generators, sorted.
func All() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GeneratorsForMode returns the generators worth running for a build mode.
// The toolchain file is always packaged; Makefile builds also get a sourceable
// environment script.
func GeneratorsForMode(xcode bool) []string {
	if xcode {
		return []string{"cmake", "cmake_cache", "json"}
	}
	return []string{"cmake", "cmake_cache", "env", "json"}
}
