// Package source loads site overviews from the configured backend.
//
// Backends:
//   - [File]: a JSON or TOML inventory, re-read on every load
//   - [Static]: a fixed overview, used by tests and the preview
//   - [Mongo]: one document per site in a MongoDB collection
//
// [Open] picks the backend from a [Config].
package source

import (
	"context"
	"time"

	"github.com/matzehuels/siteoverview/pkg/errors"
	"github.com/matzehuels/siteoverview/pkg/sites"
)

// Backend kinds accepted by Open.
const (
	KindFile   = "file"
	KindMongo  = "mongo"
	KindStatic = "static"
)

// Source loads the current overview.
type Source interface {
	Load(ctx context.Context) (sites.Overview, error)
	// Name identifies the source in logs and cache keys.
	Name() string
	Close() error
}

// Config selects and configures a backend.
type Config struct {
	Kind  string `mapstructure:"kind"`
	Path  string `mapstructure:"path"`
	Title string `mapstructure:"title"`

	MongoURI        string        `mapstructure:"mongo_uri"`
	MongoDatabase   string        `mapstructure:"mongo_database"`
	MongoCollection string        `mapstructure:"mongo_collection"`
	Timeout         time.Duration `mapstructure:"timeout"`
}

// Open creates the backend named by cfg.Kind.
func Open(ctx context.Context, cfg Config) (Source, error) {
	switch cfg.Kind {
	case KindFile, "":
		if cfg.Path == "" {
			return nil, errors.New(errors.ErrCodeInvalidConfig, "source.path is required for the file source")
		}
		return NewFile(cfg.Path, cfg.Title), nil
	case KindMongo:
		m, err := NewMongo(ctx, MongoOptions{
			URI:        cfg.MongoURI,
			Database:   cfg.MongoDatabase,
			Collection: cfg.MongoCollection,
			Title:      cfg.Title,
			Timeout:    cfg.Timeout,
		})
		if err != nil {
			return nil, err
		}
		return m, nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown source kind: %q (must be one of: file, mongo)", cfg.Kind)
	}
}

// File reads an inventory file on every load.
type File struct {
	path  string
	title string
}

// NewFile creates a file source. A non-empty title overrides the file's.
func NewFile(path, title string) *File {
	return &File{path: path, title: title}
}

// Load reads and validates the inventory.
func (f *File) Load(ctx context.Context) (sites.Overview, error) {
	if err := ctx.Err(); err != nil {
		return sites.Overview{}, err
	}
	ov, err := sites.ReadFile(f.path)
	if err != nil {
		return sites.Overview{}, err
	}
	if f.title != "" {
		ov.Title = f.title
	}
	return ov, nil
}

// Name returns "file:<path>".
func (f *File) Name() string { return KindFile + ":" + f.path }

// Close does nothing.
func (f *File) Close() error { return nil }

// Static always returns the same overview.
type Static struct {
	ov sites.Overview
}

// NewStatic creates a static source.
func NewStatic(ov sites.Overview) *Static { return &Static{ov: ov} }

// Load returns a copy of the overview.
func (s *Static) Load(ctx context.Context) (sites.Overview, error) {
	if err := ctx.Err(); err != nil {
		return sites.Overview{}, err
	}
	ov := s.ov
	ov.Sites = append([]sites.Site(nil), s.ov.Sites...)
	return ov, nil
}

// Name returns "static".
func (s *Static) Name() string { return KindStatic }

// Close does nothing.
func (s *Static) Close() error { return nil }

var (
	_ Source = (*File)(nil)
	_ Source = (*Static)(nil)
	_ Source = (*Mongo)(nil)
)
