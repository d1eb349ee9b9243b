// Package upsell reads the add-on suggestion catalog.
package upsell

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"github.com/toiture-lv/quote-api/internal/domain"
	"go.uber.org/zap"
)

// Entry is one suggestion. Tier bounds are inclusive, zero means unbounded.
type Entry struct {
	Type          string `json:"type" mapstructure:"type"`
	NameFR        string `json:"name_fr" mapstructure:"name_fr"`
	NameEN        string `json:"name_en" mapstructure:"name_en"`
	DescriptionFR string `json:"description_fr,omitempty" mapstructure:"description_fr"`
	DescriptionEN string `json:"description_en,omitempty" mapstructure:"description_en"`
	MinTier       int    `json:"min_tier,omitempty" mapstructure:"min_tier"`
	MaxTier       int    `json:"max_tier,omitempty" mapstructure:"max_tier"`
}

func (e Entry) fits(tier *int) bool {
	if tier == nil {
		return true
	}
	if e.MinTier > 0 && *tier < e.MinTier {
		return false
	}
	if e.MaxTier > 0 && *tier > e.MaxTier {
		return false
	}
	return true
}

// Catalog is the file content: entries per category plus universal entries
type Catalog struct {
	Version    string             `json:"version" mapstructure:"version"`
	Categories map[string][]Entry `json:"categories" mapstructure:"categories"`
	Universal  []Entry            `json:"universal" mapstructure:"universal"`
}

func (c *Catalog) forCategory(category string) []Entry {
	if entries, ok := c.Categories[category]; ok {
		return entries
	}
	for key, entries := range c.Categories {
		if strings.EqualFold(key, category) {
			return entries
		}
	}
	return nil
}

// Suggestions returns category entries followed by universal entries that
// fit the tier, skipping excluded types and duplicates.
func (c *Catalog) Suggestions(category string, tier *int, exclude []string) []Entry {
	skip := make(map[string]bool, len(exclude))
	for _, t := range exclude {
		skip[t] = true
	}

	out := []Entry{}
	for _, group := range [][]Entry{c.forCategory(category), c.Universal} {
		for _, e := range group {
			if skip[e.Type] || !e.fits(tier) {
				continue
			}
			skip[e.Type] = true
			out = append(out, e)
		}
	}
	return out
}

// Lookup finds an entry for the category by type
func (c *Catalog) Lookup(category, upsellType string) (Entry, bool) {
	for _, group := range [][]Entry{c.forCategory(category), c.Universal} {
		for _, e := range group {
			if e.Type == upsellType {
				return e, true
			}
		}
	}
	return Entry{}, false
}

// Parse decodes and checks a JSON catalog document
func Parse(data []byte) (*Catalog, error) {
	v := viper.New()
	v.SetConfigType("json")
	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("failed to parse upsell catalog: %w", err)
	}
	return decode(v)
}

// decode unmarshals the viper document and checks every entry
func decode(v *viper.Viper) (*Catalog, error) {
	var cat Catalog
	if err := v.Unmarshal(&cat); err != nil {
		return nil, fmt.Errorf("failed to decode upsell catalog: %w", err)
	}
	check := func(e Entry) error {
		if e.Type == "" {
			return fmt.Errorf("upsell catalog entry without type")
		}
		if e.MinTier > 0 && e.MaxTier > 0 && e.MinTier > e.MaxTier {
			return fmt.Errorf("upsell %q has min_tier above max_tier", e.Type)
		}
		return nil
	}
	for _, entries := range cat.Categories {
		for _, e := range entries {
			if err := check(e); err != nil {
				return nil, err
			}
		}
	}
	for _, e := range cat.Universal {
		if err := check(e); err != nil {
			return nil, err
		}
	}
	return &cat, nil
}

// Source provides the current catalog
type Source interface {
	Catalog(ctx context.Context) (*Catalog, error)
}

// FileSource reads the catalog file on first use and then watches it.
// An edit that fails to decode keeps the previous catalog.
type FileSource struct {
	path   string
	logger *zap.Logger

	mu     sync.RWMutex
	cached *Catalog
}

// NewFileSource creates a file-backed catalog source
func NewFileSource(path string, logger *zap.Logger) *FileSource {
	return &FileSource{path: path, logger: logger}
}

// Catalog returns the current catalog, loading the file on the first call
func (s *FileSource) Catalog(ctx context.Context) (*Catalog, error) {
	s.mu.RLock()
	cat := s.cached
	s.mu.RUnlock()
	if cat != nil {
		return cat, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cached != nil {
		return s.cached, nil
	}

	v := viper.New()
	v.SetConfigFile(s.path)
	if err := v.ReadInConfig(); err != nil {
		return nil, domain.Upstream("upsell catalog", err)
	}
	cat, err := decode(v)
	if err != nil {
		return nil, domain.Upstream("upsell catalog", err)
	}
	s.cached = cat

	v.OnConfigChange(func(e fsnotify.Event) { s.reload(v) })
	v.WatchConfig()

	s.logger.Info("Upsell catalog loaded",
		zap.String("path", s.path),
		zap.String("version", cat.Version),
	)
	return cat, nil
}

func (s *FileSource) reload(v *viper.Viper) {
	cat, err := decode(v)
	if err != nil {
		s.logger.Warn("Upsell catalog change rejected, keeping previous version",
			zap.String("path", s.path),
			zap.Error(err),
		)
		return
	}

	s.mu.Lock()
	s.cached = cat
	s.mu.Unlock()

	s.logger.Info("Upsell catalog reloaded",
		zap.String("path", s.path),
		zap.String("version", cat.Version),
	)
}

// StaticSource serves a fixed catalog
type StaticSource struct {
	Cat *Catalog
}

// Catalog implements Source
func (s StaticSource) Catalog(context.Context) (*Catalog, error) {
	return s.Cat, nil
}
