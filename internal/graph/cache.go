package graph

import "sync"

// SchemaCache holds the most recently discovered schema per graph.
// Reads return the stored snapshot pointer; refreshes replace the
// whole snapshot, so readers never observe a partially updated schema.
type SchemaCache struct {
	mu      sync.RWMutex
	schemas map[string]*Schema
}

// NewSchemaCache creates an empty cache.
func NewSchemaCache() *SchemaCache {
	return &SchemaCache{
		schemas: make(map[string]*Schema),
	}
}

// Get returns the cached schema for a graph, or nil if none is stored.
func (c *SchemaCache) Get(graphName string) *Schema {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.schemas[graphName]
}

// Put stores a schema snapshot for a graph, replacing any prior one.
func (c *SchemaCache) Put(graphName string, schema *Schema) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.schemas[graphName] = schema
}

// Invalidate drops the cached schema for a graph.
func (c *SchemaCache) Invalidate(graphName string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.schemas, graphName)
}
