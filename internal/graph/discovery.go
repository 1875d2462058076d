package graph

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// sampleLimit bounds how many nodes or relationships are inspected
// when deriving properties and connection patterns for one label or
// relationship type. Discovery cost stays proportional to the number
// of labels and types rather than the size of the graph.
const sampleLimit = 100

// executor is the query surface discovery needs from a client.
type executor interface {
	Execute(ctx context.Context, graphName, statement string) (*Result, error)
}

// Discoverer derives a Schema by inspecting a live graph.
type Discoverer struct {
	client executor
	logger *slog.Logger
}

// DiscovererOption configures a Discoverer.
type DiscovererOption func(*Discoverer)

// WithDiscovererLogger sets the logger used for discovery diagnostics.
func WithDiscovererLogger(logger *slog.Logger) DiscovererOption {
	return func(d *Discoverer) {
		d.logger = logger
	}
}

// NewDiscoverer creates a Discoverer backed by the given client.
func NewDiscoverer(client executor, opts ...DiscovererOption) *Discoverer {
	d := &Discoverer{
		client: client,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Discover inspects the named graph and returns its schema. An empty
// or missing graph yields an empty, valid schema. Any query failure
// aborts discovery with a SchemaDiscoveryError.
func (d *Discoverer) Discover(ctx context.Context, graphName string) (*Schema, error) {
	labels, err := d.listStrings(ctx, graphName, "CALL db.labels()")
	if err != nil {
		return nil, &SchemaDiscoveryError{Graph: graphName, Err: err}
	}

	relTypes, err := d.listStrings(ctx, graphName, "CALL db.relationshipTypes()")
	if err != nil {
		return nil, &SchemaDiscoveryError{Graph: graphName, Err: err}
	}

	schema := &Schema{
		Labels:        make([]LabelSchema, 0, len(labels)),
		Relationships: make([]RelationshipSchema, 0, len(relTypes)),
	}

	for _, label := range labels {
		props, err := d.sampleProperties(ctx, graphName, label)
		if err != nil {
			return nil, &SchemaDiscoveryError{Graph: graphName, Err: err}
		}
		schema.Labels = append(schema.Labels, LabelSchema{Name: label, Properties: props})
	}

	for _, relType := range relTypes {
		conns, err := d.sampleConnections(ctx, graphName, relType)
		if err != nil {
			return nil, &SchemaDiscoveryError{Graph: graphName, Err: err}
		}
		schema.Relationships = append(schema.Relationships, RelationshipSchema{Name: relType, Connections: conns})
	}

	d.logger.Debug("schema discovery complete",
		"graph", graphName,
		"labels", len(schema.Labels),
		"relationship_types", len(schema.Relationships))

	return schema, nil
}

// listStrings runs a single-column query and collects the values.
func (d *Discoverer) listStrings(ctx context.Context, graphName, statement string) ([]string, error) {
	result, err := d.client.Execute(ctx, graphName, statement)
	if err != nil {
		return nil, err
	}

	values := make([]string, 0, len(result.Rows))
	for _, row := range result.Rows {
		for _, v := range row {
			if s, ok := v.(string); ok {
				values = append(values, s)
			}
		}
	}
	return values, nil
}

// quoteIdentifier backtick-quotes a label or relationship-type name so
// names with spaces or other special characters stay valid when
// interpolated into a statement. Embedded backticks are doubled.
func quoteIdentifier(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}

// sampleProperties collects the distinct property names seen on a
// bounded sample of nodes carrying the label.
func (d *Discoverer) sampleProperties(ctx context.Context, graphName, label string) ([]string, error) {
	statement := fmt.Sprintf(
		"MATCH (n:%s) WITH n LIMIT %d UNWIND keys(n) AS key RETURN DISTINCT key",
		quoteIdentifier(label), sampleLimit)

	props, err := d.listStrings(ctx, graphName, statement)
	if err != nil {
		return nil, err
	}
	if props == nil {
		props = []string{}
	}
	return props, nil
}

// sampleConnections collects the distinct (source, target) label pairs
// seen on a bounded sample of relationships of the given type.
func (d *Discoverer) sampleConnections(ctx context.Context, graphName, relType string) ([]Connection, error) {
	statement := fmt.Sprintf(
		"MATCH (a)-[r:%s]->(b) WITH a, b LIMIT %d RETURN DISTINCT head(labels(a)) AS source, head(labels(b)) AS target",
		quoteIdentifier(relType), sampleLimit)

	result, err := d.client.Execute(ctx, graphName, statement)
	if err != nil {
		return nil, err
	}

	conns := make([]Connection, 0, len(result.Rows))
	for _, row := range result.Rows {
		source, _ := row["source"].(string)
		target, _ := row["target"].(string)
		if source == "" && target == "" {
			continue
		}
		conns = append(conns, Connection{Source: source, Target: target})
	}
	return conns, nil
}
