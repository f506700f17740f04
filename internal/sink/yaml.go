package sink

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/luciengaly/football-scraping/internal/match"
)

// YAMLFile writes each record to <dir>/<match id>.yaml.
type YAMLFile struct {
	dir string
}

// NewYAMLFile creates the output directory if needed.
func NewYAMLFile(dir string) (*YAMLFile, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	return &YAMLFile{dir: dir}, nil
}

func (s *YAMLFile) Name() string { return "yaml" }

// Path returns where the record of matchID is written.
func (s *YAMLFile) Path(matchID string) string {
	return filepath.Join(s.dir, matchID+".yaml")
}

// Write encodes rec, replacing any earlier file for the same match.
func (s *YAMLFile) Write(ctx context.Context, rec *match.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if rec.ID == "" || strings.ContainsAny(rec.ID, `/\`) {
		return fmt.Errorf("invalid match id %q", rec.ID)
	}

	data, err := EncodeYAML(rec)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.dir, rec.ID+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), s.Path(rec.ID))
}

// EncodeYAML renders rec with two-space indentation, fields in record order.
func EncodeYAML(rec *match.Record) ([]byte, error) {
	var b strings.Builder
	enc := yaml.NewEncoder(&b)
	enc.SetIndent(2)
	if err := enc.Encode(rec); err != nil {
		return nil, fmt.Errorf("encode match %s: %w", rec.ID, err)
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return []byte(b.String()), nil
}

// ReadYAMLFile decodes a record written by YAMLFile.
func ReadYAMLFile(path string) (*match.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var rec match.Record
	if err := yaml.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return &rec, nil
}
