package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"
)

func (s *Service) watchFiles(ctx context.Context) {
	// Watch the input root and every existing subdirectory; fsnotify
	// watches are not recursive.
	err := filepath.WalkDir(s.config.InputDir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != s.config.InputDir && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		return s.watcher.Add(path)
	})
	if err != nil {
		slog.Error("Failed to start watching input directory",
			"error", err,
			"path", s.config.InputDir)
		return
	}

	slog.Info("Watching input directory for timestamp files",
		"path", s.config.InputDir)

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-s.watcher.Events:
			if !ok {
				return
			}

			if err := s.handleFSEvent(event); err != nil {
				slog.Error("Failed to handle file system event",
					"error", err,
					"event", event)
			}

		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			slog.Error("File watcher error", "error", err)
		}
	}
}

func (s *Service) handleFSEvent(event fsnotify.Event) error {
	// Skip temporary files and non-create events
	if strings.HasSuffix(event.Name, ".tmp") || event.Op != fsnotify.Create {
		return nil
	}

	rel, err := filepath.Rel(s.config.InputDir, event.Name)
	if err != nil {
		return fmt.Errorf("failed to get relative path: %w", err)
	}

	// Skip anything under a hidden path component
	for _, part := range strings.Split(rel, string(filepath.Separator)) {
		if strings.HasPrefix(part, ".") {
			return nil
		}
	}

	// New directories in the tree need their own watch
	if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
		if err := s.watcher.Add(event.Name); err != nil {
			return fmt.Errorf("failed to watch new directory: %w", err)
		}
		slog.Info("Watching new directory", "path", event.Name)
		return nil
	}

	if !strings.HasSuffix(event.Name, ".json") {
		return nil
	}

	job := Job{
		ID:     uuid.NewString(),
		Path:   event.Name,
		Queued: time.Now(),
	}

	select {
	case s.queue <- job:
		slog.Info("Queued timestamp file for conversion",
			"id", job.ID,
			"file", rel)
	default:
		return fmt.Errorf("job queue is full")
	}

	return nil
}
