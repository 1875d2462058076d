package graph

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/RedisGraph/redisgraph-go"
)

// Schema is a read-only snapshot of a graph's structure. Labels,
// properties, and relationship types preserve discovery order, so two
// snapshots of an unchanged graph serialize identically. A Schema is
// never mutated after discovery; refreshes replace the whole value.
type Schema struct {
	Labels        []LabelSchema
	Relationships []RelationshipSchema
}

// LabelSchema describes one node label and its observed property names.
type LabelSchema struct {
	Name       string
	Properties []string
}

// RelationshipSchema describes one relationship type and the
// (source label, target label) pairs it was observed connecting.
type RelationshipSchema struct {
	Name        string
	Connections []Connection
}

// Connection is one observed source/target label pair.
type Connection struct {
	Source string
	Target string
}

// schemaJSON mirrors the wire shape of the schema document.
type schemaJSON struct {
	Nodes         []nodeJSON         `json:"nodes"`
	Relationships []relationshipJSON `json:"relationships"`
}

type nodeJSON struct {
	Label      string   `json:"label"`
	Properties []string `json:"properties"`
}

type relationshipJSON struct {
	Type        string           `json:"type"`
	Connections []connectionJSON `json:"connections"`
}

type connectionJSON struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// JSON serializes the schema with top-level "nodes" and
// "relationships" keys. An empty schema yields empty arrays, not null.
func (s *Schema) JSON() (string, error) {
	doc := schemaJSON{
		Nodes:         make([]nodeJSON, 0, len(s.Labels)),
		Relationships: make([]relationshipJSON, 0, len(s.Relationships)),
	}

	for _, l := range s.Labels {
		props := l.Properties
		if props == nil {
			props = []string{}
		}
		doc.Nodes = append(doc.Nodes, nodeJSON{Label: l.Name, Properties: props})
	}

	for _, r := range s.Relationships {
		conns := make([]connectionJSON, 0, len(r.Connections))
		for _, c := range r.Connections {
			conns = append(conns, connectionJSON{Source: c.Source, Target: c.Target})
		}
		doc.Relationships = append(doc.Relationships, relationshipJSON{Type: r.Name, Connections: conns})
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("failed to marshal schema; %w", err)
	}
	return string(data), nil
}

// PromptText renders the schema in the canonical textual form embedded
// in model prompts. Output is byte-identical for identical schemas.
func (s *Schema) PromptText() string {
	var b strings.Builder

	b.WriteString("Node labels:\n")
	if len(s.Labels) == 0 {
		b.WriteString("  (none)\n")
	}
	for _, l := range s.Labels {
		b.WriteString("  (:")
		b.WriteString(l.Name)
		b.WriteString(")")
		if len(l.Properties) > 0 {
			b.WriteString(" properties: ")
			b.WriteString(strings.Join(l.Properties, ", "))
		}
		b.WriteString("\n")
	}

	b.WriteString("Relationships:\n")
	if len(s.Relationships) == 0 {
		b.WriteString("  (none)\n")
	}
	for _, r := range s.Relationships {
		if len(r.Connections) == 0 {
			b.WriteString("  [:")
			b.WriteString(r.Name)
			b.WriteString("]\n")
			continue
		}
		for _, c := range r.Connections {
			b.WriteString("  (:")
			b.WriteString(c.Source)
			b.WriteString(")-[:")
			b.WriteString(r.Name)
			b.WriteString("]->(:")
			b.WriteString(c.Target)
			b.WriteString(")\n")
		}
	}

	return b.String()
}

// Result holds the rows returned by one query execution. The column
// set is fixed per query; row order is the engine's order.
type Result struct {
	Columns []string
	Rows    []map[string]any
}

// JSON serializes the result rows as a compact JSON array of objects.
func (r *Result) JSON() (string, error) {
	rows := r.Rows
	if rows == nil {
		rows = []map[string]any{}
	}
	data, err := json.Marshal(rows)
	if err != nil {
		return "", fmt.Errorf("failed to marshal result; %w", err)
	}
	return string(data), nil
}

// normalizeValue converts driver entity types into plain JSON-friendly
// values; scalars pass through unchanged.
func normalizeValue(v any) any {
	switch val := v.(type) {
	case *redisgraph.Node:
		return map[string]any{
			"label":      val.Label,
			"properties": val.Properties,
		}
	case *redisgraph.Edge:
		return map[string]any{
			"type":       val.Relation,
			"properties": val.Properties,
		}
	default:
		return v
	}
}
