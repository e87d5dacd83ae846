package graph

// This file contains the Neo4j driver wrapper shared by all graph queries.

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// ClientConfig holds the connection settings for the course graph.
type ClientConfig struct {
	URI         string
	User        string
	Password    string
	Database    string
	Timeout     time.Duration
	MaxPoolSize int
}

// Client wraps a Neo4j driver with the database name and query timeout
// used for every operation.
type Client struct {
	driver   neo4j.DriverWithContext
	database string
	timeout  time.Duration
	log      *slog.Logger
}

// NewClient connects to the course graph and verifies connectivity.
// An empty URI is a configuration error; the chat core needs the graph
// to ground anything.
func NewClient(ctx context.Context, cfg ClientConfig, log *slog.Logger) (*Client, error) {
	uri := strings.TrimSpace(cfg.URI)
	if uri == "" {
		return nil, fmt.Errorf("graph: URI required")
	}
	if log == nil {
		log = slog.Default()
	}

	user := strings.TrimSpace(cfg.User)
	if user == "" {
		user = "neo4j"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	maxPool := cfg.MaxPoolSize
	if maxPool <= 0 {
		maxPool = 50
	}

	auth := neo4j.BasicAuth(user, cfg.Password, "")
	driver, err := neo4j.NewDriverWithContext(uri, auth, func(c *neo4j.Config) {
		c.MaxConnectionPoolSize = maxPool
		c.SocketConnectTimeout = timeout
	})
	if err != nil {
		return nil, fmt.Errorf("graph: init driver: %w", err)
	}

	verifyCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := driver.VerifyConnectivity(verifyCtx); err != nil {
		_ = driver.Close(ctx)
		return nil, fmt.Errorf("graph: verify connectivity: %w", err)
	}

	log.InfoContext(ctx, "connected to course graph",
		slog.String("uri", uri),
		slog.String("database", cfg.Database),
	)

	return &Client{
		driver:   driver,
		database: strings.TrimSpace(cfg.Database),
		timeout:  timeout,
		log:      log.With(slog.String("component", "graph")),
	}, nil
}

// Ping verifies the graph is still reachable. Used by readiness probes.
func (c *Client) Ping(ctx context.Context) error {
	if c == nil || c.driver == nil {
		return fmt.Errorf("graph: client not initialized")
	}
	pingCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	return c.driver.VerifyConnectivity(pingCtx)
}

// Close releases the driver's connection pool.
func (c *Client) Close(ctx context.Context) error {
	if c == nil || c.driver == nil {
		return nil
	}
	err := c.driver.Close(ctx)
	c.driver = nil
	return err
}

// read runs a Cypher read in a managed transaction and collects all records
// as maps. Every store operation funnels through here so timeout handling
// and session setup stay in one place.
func (c *Client) read(ctx context.Context, query string, params map[string]any) ([]map[string]any, error) {
	queryCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	session := c.driver.NewSession(queryCtx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeRead,
		DatabaseName: c.database,
	})
	defer session.Close(queryCtx)

	out, err := session.ExecuteRead(queryCtx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(queryCtx, query, params)
		if err != nil {
			return nil, err
		}
		records, err := res.Collect(queryCtx)
		if err != nil {
			return nil, err
		}
		rows := make([]map[string]any, 0, len(records))
		for _, rec := range records {
			rows = append(rows, rec.AsMap())
		}
		return rows, nil
	})
	if err != nil {
		return nil, err
	}
	return out.([]map[string]any), nil
}
