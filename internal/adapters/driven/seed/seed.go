// Package seed provides the initial fragment collection for a session:
// the built-in samples, an empty collection, or fragments read from a
// TOML, YAML or JSON file.
package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/fragments-cli/internal/adapters/validation"
	"github.com/custodia-labs/fragments-cli/internal/core/domain"
	"github.com/custodia-labs/fragments-cli/internal/core/ports/driven"
	"github.com/custodia-labs/fragments-cli/internal/logger"
)

// Ensure sources implement the interface.
var (
	_ driven.SeedSource = SampleSource{}
	_ driven.SeedSource = EmptySource{}
	_ driven.SeedSource = (*FileSource)(nil)
)

// NewSource picks a source from the seed.path setting: empty selects the
// samples, "none" an empty collection, anything else a file.
func NewSource(path string) driven.SeedSource {
	switch strings.TrimSpace(path) {
	case "":
		return SampleSource{}
	case domain.SeedNone:
		return EmptySource{}
	default:
		return NewFileSource(path)
	}
}

// SampleSource yields the built-in samples.
type SampleSource struct{}

// Load returns the samples.
func (SampleSource) Load(context.Context) ([]domain.Fragment, error) {
	return Samples(), nil
}

// EmptySource yields no fragments.
type EmptySource struct{}

// Load returns an empty collection.
func (EmptySource) Load(context.Context) ([]domain.Fragment, error) {
	return []domain.Fragment{}, nil
}

// FileSource reads fragments from a file. The format is chosen by
// extension: .toml, .yaml/.yml or .json.
type FileSource struct {
	path string
}

// NewFileSource creates a file-backed seed source.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// document is the on-disk layout shared by every format.
type document struct {
	Fragments []record `toml:"fragments" yaml:"fragments" json:"fragments"`
}

type record struct {
	ID        string    `toml:"id" yaml:"id" json:"id"`
	Title     string    `toml:"title" yaml:"title" json:"title" validate:"required"`
	Content   string    `toml:"content" yaml:"content" json:"content" validate:"required"`
	Type      string    `toml:"type" yaml:"type" json:"type" validate:"required,fragmenttype"`
	Tags      []string  `toml:"tags" yaml:"tags" json:"tags"`
	CreatedAt time.Time `toml:"created_at" yaml:"created_at" json:"created_at"`
	UpdatedAt time.Time `toml:"updated_at" yaml:"updated_at" json:"updated_at"`
}

// Load reads and validates the file.
func (s *FileSource) Load(_ context.Context) ([]domain.Fragment, error) {
	logger.Debug("Loading seed file %s", s.path)

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}

	var doc document
	switch ext := strings.ToLower(filepath.Ext(s.path)); ext {
	case ".toml":
		err = toml.Unmarshal(data, &doc)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &doc)
	case ".json":
		err = json.Unmarshal(data, &doc)
	default:
		return nil, fmt.Errorf("%w: seed file extension %q", domain.ErrUnsupportedType, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("parse seed file %s: %w", s.path, err)
	}

	fragments := make([]domain.Fragment, 0, len(doc.Fragments))
	for i, r := range doc.Fragments {
		f, err := r.toDomain()
		if err != nil {
			return nil, fmt.Errorf("seed fragment %d: %w", i+1, err)
		}
		fragments = append(fragments, f)
	}

	logger.Debug("Loaded %d seed fragments", len(fragments))
	return fragments, nil
}

func (r record) toDomain() (domain.Fragment, error) {
	checked := r
	checked.Title = strings.TrimSpace(r.Title)
	checked.Content = strings.TrimSpace(r.Content)
	checked.Type = strings.TrimSpace(r.Type)
	if err := validation.Struct(checked); err != nil {
		return domain.Fragment{}, err
	}
	typ, _ := domain.ParseFragmentType(r.Type)

	return domain.Fragment{
		ID:        strings.TrimSpace(r.ID),
		Title:     checked.Title,
		Content:   r.Content,
		Type:      typ,
		Tags:      r.Tags,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}, nil
}
