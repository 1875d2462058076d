package graph

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"strings"
	"time"

	"github.com/RedisGraph/redisgraph-go"
	"github.com/gomodule/redigo/redis"
)

const (
	defaultDialTimeout = 5 * time.Second
	defaultMaxIdle     = 4
	defaultIdleTimeout = 60 * time.Second

	// Socket deadlines bound how long an abandoned in-flight query can
	// hold its goroutine and connection against a hung server.
	defaultReadTimeout  = 60 * time.Second
	defaultWriteTimeout = 10 * time.Second
)

// ParseConnectionString validates a graph database connection string
// and returns the host:port address. Accepted schemes are falkor://
// and redis://.
func ParseConnectionString(conn string) (string, error) {
	var addr string
	switch {
	case strings.HasPrefix(conn, "falkor://"):
		addr = strings.TrimPrefix(conn, "falkor://")
	case strings.HasPrefix(conn, "redis://"):
		addr = strings.TrimPrefix(conn, "redis://")
	default:
		return "", fmt.Errorf("invalid connection string %q; must start with falkor:// or redis://", conn)
	}

	if addr == "" {
		return "", fmt.Errorf("invalid connection string %q; missing host", conn)
	}

	host, port, err := net.SplitHostPort(addr)
	if err != nil || host == "" || port == "" {
		return "", fmt.Errorf("invalid connection string %q; expected host:port", conn)
	}

	return addr, nil
}

// Client executes queries against a FalkorDB instance. Construction
// performs no network I/O; connections are dialed on first use.
type Client struct {
	addr     string
	password string
	pool     *redis.Pool
	logger   *slog.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithPassword sets the AUTH password used when dialing.
func WithPassword(password string) ClientOption {
	return func(c *Client) {
		c.password = password
	}
}

// WithClientLogger sets the logger used for query diagnostics.
func WithClientLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a client for the given connection string without
// dialing the server.
func NewClient(conn string, opts ...ClientOption) (*Client, error) {
	addr, err := ParseConnectionString(conn)
	if err != nil {
		return nil, err
	}

	c := &Client{
		addr:   addr,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.pool = &redis.Pool{
		MaxIdle:     defaultMaxIdle,
		IdleTimeout: defaultIdleTimeout,
		Dial: func() (redis.Conn, error) {
			dialOpts := []redis.DialOption{
				redis.DialConnectTimeout(defaultDialTimeout),
				redis.DialReadTimeout(defaultReadTimeout),
				redis.DialWriteTimeout(defaultWriteTimeout),
			}
			if c.password != "" {
				dialOpts = append(dialOpts, redis.DialPassword(c.password))
			}
			conn, err := redis.Dial("tcp", c.addr, dialOpts...)
			if err != nil {
				return nil, err
			}
			return conn, nil
		},
		TestOnBorrow: func(conn redis.Conn, t time.Time) error {
			if time.Since(t) < time.Minute {
				return nil
			}
			_, err := conn.Do("PING")
			return err
		},
	}

	return c, nil
}

// Addr returns the host:port the client dials.
func (c *Client) Addr() string {
	return c.addr
}

// Close releases pooled connections.
func (c *Client) Close() error {
	return c.pool.Close()
}

type queryOutcome struct {
	result *redisgraph.QueryResult
	err    error
}

// Execute runs a single Cypher statement against the named graph. The
// statement is attempted exactly once; engine errors are returned as
// an ExecutionError without retry. If ctx expires before the engine
// responds the call returns promptly and the in-flight attempt is
// abandoned.
func (c *Client) Execute(ctx context.Context, graphName, statement string) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, &ExecutionError{Graph: graphName, Err: err}
	}

	conn, err := c.pool.GetContext(ctx)
	if err != nil {
		return nil, &ConnectionError{Addr: c.addr, Err: err}
	}

	g := redisgraph.GraphNew(graphName, conn)

	ch := make(chan queryOutcome, 1)
	go func() {
		res, qerr := g.Query(statement)
		ch <- queryOutcome{result: res, err: qerr}
	}()

	select {
	case <-ctx.Done():
		// The connection has an unread reply in flight; discard it
		// rather than returning it to the pool.
		go func() {
			<-ch
			conn.Close()
		}()
		return nil, &ExecutionError{Graph: graphName, Err: ctx.Err()}
	case out := <-ch:
		conn.Close()
		if out.err != nil {
			return nil, &ExecutionError{Graph: graphName, Err: out.err}
		}
		decoded := decodeResult(out.result)
		c.logger.Debug("query executed", "graph", graphName, "rows", len(decoded.Rows))
		return decoded, nil
	}
}

// decodeResult converts a driver result into the client's row shape.
func decodeResult(qr *redisgraph.QueryResult) *Result {
	result := &Result{
		Columns: []string{},
		Rows:    []map[string]any{},
	}
	if qr == nil {
		return result
	}

	var columns []string
	for qr.Next() {
		record := qr.Record()
		if columns == nil {
			columns = record.Keys()
		}
		row := make(map[string]any, len(columns))
		values := record.Values()
		for i, key := range columns {
			if i < len(values) {
				row[key] = normalizeValue(values[i])
			}
		}
		result.Rows = append(result.Rows, row)
	}
	if columns != nil {
		result.Columns = columns
	}

	return result
}
