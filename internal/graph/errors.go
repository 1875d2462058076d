package graph

import "fmt"

// ConnectionError reports that the graph engine could not be reached.
type ConnectionError struct {
	Addr string
	Err  error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("graph engine unreachable at %s; %v", e.Addr, e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// ExecutionError reports a failed query execution, carrying the
// engine's own error text when the engine rejected the statement.
type ExecutionError struct {
	Graph string
	Err   error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("query execution failed on graph %q; %v", e.Graph, e.Err)
}

func (e *ExecutionError) Unwrap() error {
	return e.Err
}

// SchemaDiscoveryError reports that introspection of a graph failed,
// either because the graph does not exist or the engine is unreachable.
type SchemaDiscoveryError struct {
	Graph string
	Err   error
}

func (e *SchemaDiscoveryError) Error() string {
	return fmt.Sprintf("schema discovery failed for graph %q; %v", e.Graph, e.Err)
}

func (e *SchemaDiscoveryError) Unwrap() error {
	return e.Err
}
