// Live conversion service: watches a directory for new timestamp JSON files
// and converts each one into a mirrored output tree as it appears, exposing
// the results over HTTP and WebSocket.
package watch

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/gorilla/websocket"

	"github.com/bosley/arpamap/phone"
)

// Configuration for the watch service
type Config struct {
	// Directory to monitor for new timestamp JSON files
	InputDir string

	// Root of the mirrored output tree; must not sit inside InputDir or the
	// service would re-queue its own output
	OutputDir string

	// HTTP server address
	HTTPAddr string

	// Default stress policy applied to every conversion
	Stress phone.Stress

	// Number of worker threads for processing
	Workers int
}

// Service manages the live conversion pipeline
type Service struct {
	config Config

	// File system watcher
	watcher *fsnotify.Watcher

	// Processing queue
	queue   chan Job
	workers sync.WaitGroup

	// Completed conversions
	mu      sync.RWMutex
	results []Result
	byID    map[string]Result

	// HTTP/WebSocket
	server      *http.Server
	upgrader    websocket.Upgrader
	subscribers *subscriberList
}

// New creates a new watch Service
func New(cfg Config) (*Service, error) {
	if cfg.Workers <= 0 {
		cfg.Workers = 2
	}

	info, err := os.Stat(cfg.InputDir)
	if err != nil {
		return nil, fmt.Errorf("input directory not found: %s", cfg.InputDir)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("input path is not a directory: %s", cfg.InputDir)
	}

	inAbs, err := filepath.Abs(cfg.InputDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve input directory: %w", err)
	}
	outAbs, err := filepath.Abs(cfg.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve output directory: %w", err)
	}
	if outAbs == inAbs || strings.HasPrefix(outAbs, inAbs+string(filepath.Separator)) {
		return nil, fmt.Errorf("output directory %s must be outside the watched input directory %s", cfg.OutputDir, cfg.InputDir)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	s := &Service{
		config:  cfg,
		watcher: watcher,
		queue:   make(chan Job, 100),
		byID:    make(map[string]Result),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		subscribers: newSubscriberList(),
		server: &http.Server{
			Addr: cfg.HTTPAddr,
		},
	}

	return s, nil
}

// Start begins the watch service and blocks until ctx is cancelled
func (s *Service) Start(ctx context.Context) error {
	// Start the worker pool
	for i := 0; i < s.config.Workers; i++ {
		s.workers.Add(1)
		go s.worker(ctx)
	}

	// Start the file system watcher
	go s.watchFiles(ctx)

	// Start the HTTP server
	return s.startHTTP(ctx)
}

// Stop gracefully shuts down the watch service
func (s *Service) Stop(ctx context.Context) error {
	// Stop accepting new jobs
	close(s.queue)

	// Wait for workers to finish
	done := make(chan struct{})
	go func() {
		s.workers.Wait()
		close(done)
	}()

	// Wait for workers or context timeout
	select {
	case <-done:
	case <-ctx.Done():
		return fmt.Errorf("shutdown timed out")
	}

	// Stop the HTTP server
	if s.server != nil {
		if err := s.server.Shutdown(ctx); err != nil {
			return fmt.Errorf("failed to stop HTTP server: %w", err)
		}
	}

	// Close the file watcher
	if err := s.watcher.Close(); err != nil {
		return fmt.Errorf("failed to close file watcher: %w", err)
	}

	return nil
}
