// One-shot conversion of timestamp files: a single JSON file or a directory
// tree of them, processed sequentially. The first failure aborts the run so
// a malformed input never produces a silently incomplete corpus.
package batch

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/bosley/arpamap/document"
	"github.com/bosley/arpamap/phone"
)

// Usage errors for invalid flag combinations.
var (
	ErrOutWithDirInput     = errors.New("--out is only valid when input is a file")
	ErrOutDirWithFileInput = errors.New("--out_dir is only valid when input is a directory")
)

type Config struct {
	// Input is a timestamp JSON file or a directory containing them.
	Input string

	// OutFile overrides the output path for a file input.
	OutFile string

	// OutDir overrides the output root for a directory input.
	OutDir string

	// InPlace overwrites the input file(s) instead of deriving output paths.
	InPlace bool

	Stress phone.Stress
}

// Run converts the configured input and writes the result(s).
func Run(cfg Config) error {
	info, err := os.Stat(cfg.Input)
	if err != nil {
		return fmt.Errorf("input path not found: %s", cfg.Input)
	}
	if info.IsDir() {
		return runDir(cfg)
	}
	return runFile(cfg)
}

func runFile(cfg Config) error {
	if cfg.OutDir != "" {
		return ErrOutDirWithFileInput
	}

	out := DefaultOutFile(cfg.Input)
	switch {
	case cfg.InPlace:
		out = cfg.Input
	case cfg.OutFile != "":
		out = cfg.OutFile
	}

	return ConvertFile(cfg.Input, out, cfg.Stress)
}

func runDir(cfg Config) error {
	if cfg.OutFile != "" {
		return ErrOutWithDirInput
	}

	outRoot := DefaultOutDir(cfg.Input)
	switch {
	case cfg.InPlace:
		outRoot = cfg.Input
	case cfg.OutDir != "":
		outRoot = cfg.OutDir
	}

	files, err := ListJSONFiles(cfg.Input)
	if err != nil {
		return fmt.Errorf("scanning %s: %w", cfg.Input, err)
	}

	for _, in := range files {
		rel, err := filepath.Rel(cfg.Input, in)
		if err != nil {
			return fmt.Errorf("resolving %s: %w", in, err)
		}
		if err := ConvertFile(in, filepath.Join(outRoot, rel), cfg.Stress); err != nil {
			return err
		}
	}
	return nil
}

// ConvertFile reads one timestamp JSON file, converts its phone labels, and
// writes the formatted result to out, creating parent directories as needed.
func ConvertFile(in, out string, stress phone.Stress) error {
	data, err := os.ReadFile(in)
	if err != nil {
		return fmt.Errorf("reading %s: %w", in, err)
	}

	converted, err := document.Convert(data, stress)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", in, err)
	}

	if dir := filepath.Dir(out); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}
	if err := os.WriteFile(out, document.Format(converted), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", out, err)
	}

	slog.Info("Converted timestamp file", "input", in, "output", out)
	return nil
}

// ListJSONFiles walks root recursively and returns every *.json file whose
// path below root has no hidden components.
func ListJSONFiles(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") || !strings.HasSuffix(d.Name(), ".json") {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// DefaultOutFile derives the output path for a file input: the final
// extension is replaced with .arpa.json.
func DefaultOutFile(in string) string {
	return strings.TrimSuffix(in, filepath.Ext(in)) + ".arpa.json"
}

// DefaultOutDir derives the output root for a directory input: a sibling
// directory named <input>_arpa.
func DefaultOutDir(in string) string {
	clean := filepath.Clean(in)
	return filepath.Join(filepath.Dir(clean), filepath.Base(clean)+"_arpa")
}
