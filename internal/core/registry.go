package core

import (
	"fmt"
	"sort"
	"sync"
)

var (
	registry   = make(map[string]ModuleDefinition)
	registryMu sync.RWMutex
)

// Register adds a module definition to the registry.
// Panics if a module with the same key is already registered.
func Register(def ModuleDefinition) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if _, exists := registry[def.Info.Key]; exists {
		panic(fmt.Sprintf("module already registered: %s", def.Info.Key))
	}

	// Populate Columns from FieldSpecs if not set
	if len(def.Info.Columns) == 0 && len(def.FieldSpecs) > 0 {
		def.Info.Columns = make([]string, len(def.FieldSpecs))
		for i, spec := range def.FieldSpecs {
			def.Info.Columns[i] = spec.Name
		}
	}

	registry[def.Info.Key] = def
}

// Get returns a module definition by key.
// Returns false if not found.
func Get(key string) (ModuleDefinition, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	def, ok := registry[key]
	return def, ok
}

// Lookup returns a module definition by key, or a *NotFoundError.
func Lookup(key string) (ModuleDefinition, error) {
	def, ok := Get(key)
	if !ok {
		return ModuleDefinition{}, &NotFoundError{Entity: "Module", ID: key}
	}
	return def, nil
}

// All returns all registered module definitions sorted by key.
func All() []ModuleDefinition {
	registryMu.RLock()
	defer registryMu.RUnlock()

	result := make([]ModuleDefinition, 0, len(registry))
	for _, def := range registry {
		result = append(result, def)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Info.Key < result[j].Info.Key
	})

	return result
}

// FieldByName returns the spec for a field key.
func (d ModuleDefinition) FieldByName(name string) (FieldSpec, bool) {
	for _, spec := range d.FieldSpecs {
		if spec.Name == name {
			return spec, true
		}
	}
	return FieldSpec{}, false
}
