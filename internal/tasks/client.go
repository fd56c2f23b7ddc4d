// Package tasks runs catalog syncs on a backlite queue, so an operator can
// kick off a full sync without holding an HTTP request open. The queue keeps
// its own SQLite file even when the catalog lives in postgres: task state is
// operational scratch, not catalog data.
package tasks

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/mikestefanello/backlite"
)

// Client owns the queue database and the backlite worker pool.
type Client struct {
	backlite *backlite.Client
	db       *sql.DB
	config   Config

	mu      sync.RWMutex
	started bool
}

// NewClient opens the queue database and prepares the worker pool. The queue
// file sits next to the main database, named after it with a "-tasks" suffix,
// so a deployment's state stays in one directory.
func NewClient(mainDBPath string, cfg Config) (*Client, error) {
	cfg = cfg.withDefaults()

	ext := filepath.Ext(mainDBPath)
	queuePath := strings.TrimSuffix(mainDBPath, ext) + "-tasks" + ext

	// WAL so workers and enqueuers don't block each other
	db, err := sql.Open("sqlite3", queuePath+"?_journal=WAL&_timeout=5000&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open queue database %s: %w", queuePath, err)
	}
	db.SetMaxOpenConns(cfg.Workers + 5)
	db.SetMaxIdleConns(cfg.Workers + 2)
	db.SetConnMaxLifetime(time.Hour)

	bl, err := backlite.NewClient(backlite.ClientConfig{
		DB:              db,
		NumWorkers:      cfg.Workers,
		ReleaseAfter:    cfg.ReleaseAfter,
		CleanupInterval: cfg.CleanupInterval,
		Logger:          &queueLogger{},
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create queue client: %w", err)
	}

	if err := bl.Install(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to install queue schema: %w", err)
	}

	return &Client{
		backlite: bl,
		db:       db,
		config:   cfg,
	}, nil
}

// Register adds queues to the worker pool. Must happen before Start.
func (c *Client) Register(queues ...backlite.Queue) {
	for _, q := range queues {
		c.backlite.Register(q)
	}
}

// Start launches the workers. Non-blocking; cancel the context or call Stop
// to shut down.
func (c *Client) Start(ctx context.Context) {
	c.mu.Lock()
	if c.started {
		c.mu.Unlock()
		return
	}
	c.started = true
	c.mu.Unlock()

	log.Printf("Task queue started with %d workers", c.config.Workers)
	c.backlite.Start(ctx)
}

// Stop drains the workers, waiting up to the context deadline for in-flight
// tasks. Reports whether everything finished in time.
func (c *Client) Stop(ctx context.Context) bool {
	c.mu.RLock()
	if !c.started {
		c.mu.RUnlock()
		return true
	}
	c.mu.RUnlock()

	log.Println("Stopping task queue...")
	drained := c.backlite.Stop(ctx)
	if drained {
		log.Println("Task queue stopped")
	} else {
		log.Println("Task queue stop timed out with tasks still in flight")
	}
	return drained
}

// Close releases the queue database. Call after Stop.
func (c *Client) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

// Add starts an enqueue operation; call Save on the result to commit it.
func (c *Client) Add(tasks ...backlite.Task) *backlite.TaskAddOp {
	return c.backlite.Add(tasks...)
}

// Status looks up a task by the id returned from Add.
func (c *Client) Status(ctx context.Context, taskID string) (backlite.TaskStatus, error) {
	return c.backlite.Status(ctx, taskID)
}

// queueLogger routes backlite's log output through the standard logger.
type queueLogger struct{}

func (l *queueLogger) Info(message string, params ...any) {
	log.Printf("[TASK] "+message, params...)
}

func (l *queueLogger) Error(message string, params ...any) {
	log.Printf("[TASK ERROR] "+message, params...)
}
