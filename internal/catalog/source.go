package catalog

import (
	"context"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ytget/eizo/internal/model"
)

// ErrEmptyCatalog is returned when a source yields no clips
var ErrEmptyCatalog = errors.New("catalog contains no clips")

// Source supplies a read-only ordered sequence of clips
type Source interface {
	Clips(ctx context.Context) ([]model.Clip, error)
}

// document is the on-disk layout of a catalog file
type document struct {
	Clips []model.Clip `yaml:"clips"`
}

// FileSource reads clips from a YAML file
type FileSource struct {
	path string
}

// NewFileSource creates a source backed by the YAML file at path
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Clips reads, decodes and validates the catalog file
func (f *FileSource) Clips(ctx context.Context) ([]model.Clip, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %w", f.path, err)
	}

	clips, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", f.path, err)
	}
	return clips, nil
}

// Parse decodes a YAML catalog document and validates every clip
func Parse(data []byte) ([]model.Clip, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}
	if err := Validate(doc.Clips); err != nil {
		return nil, err
	}
	return doc.Clips, nil
}

// Validate checks that clips is non-empty and every clip is well formed
func Validate(clips []model.Clip) error {
	if len(clips) == 0 {
		return ErrEmptyCatalog
	}
	for i, clip := range clips {
		if err := clip.Validate(); err != nil {
			return fmt.Errorf("clip %d: %w", i, err)
		}
	}
	return nil
}

// StaticSource serves a fixed in-memory clip list
type StaticSource []model.Clip

// Clips returns a copy of the static clip list after validation
func (s StaticSource) Clips(ctx context.Context) ([]model.Clip, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := Validate(s); err != nil {
		return nil, err
	}
	clips := make([]model.Clip, len(s))
	copy(clips, s)
	return clips, nil
}
