package watch

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/bosley/arpamap/batch"
)

func (s *Service) worker(ctx context.Context) {
	slog.Debug("Worker starting")
	defer func() {
		slog.Debug("Worker shutting down")
		s.workers.Done()
	}()

	for {
		select {
		case <-ctx.Done():
			slog.Debug("Worker context cancelled")
			return

		case job, ok := <-s.queue:
			if !ok {
				slog.Debug("Worker queue closed")
				return
			}

			if err := s.processJob(job); err != nil {
				slog.Error("Failed to convert timestamp file",
					"error", err,
					"id", job.ID,
					"file", job.Path)
			}
		}
	}
}

func (s *Service) processJob(job Job) error {
	rel, err := filepath.Rel(s.config.InputDir, job.Path)
	if err != nil {
		return fmt.Errorf("failed to get relative path: %w", err)
	}
	out := filepath.Join(s.config.OutputDir, rel)

	if err := batch.ConvertFile(job.Path, out, s.config.Stress); err != nil {
		return err
	}

	result := Result{
		ID:        job.ID,
		Input:     job.Path,
		Output:    out,
		Completed: time.Now(),
	}

	s.mu.Lock()
	s.results = append(s.results, result)
	s.byID[result.ID] = result
	s.mu.Unlock()

	s.broadcast(Event{
		Type:      "converted",
		Timestamp: result.Completed,
		Result:    result,
	})

	return nil
}

func (s *Service) broadcast(ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		slog.Error("Failed to marshal event", "error", err)
		return
	}

	s.subscribers.each(func(c *wsConnection) {
		select {
		case c.send <- data:
		default:
			slog.Warn("Failed to send to subscriber - channel full")
		}
	})
}

// resultLog returns a snapshot of completed conversions, oldest first
func (s *Service) resultLog() []Result {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Result, len(s.results))
	copy(out, s.results)
	return out
}

func (s *Service) resultByID(id string) (Result, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.byID[id]
	return r, ok
}
