// Package classifier maps file extensions to destination categories.
package classifier

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/fenilsonani/autosorter/internal/config"
	"golang.org/x/text/cases"
)

// Classifier resolves the category of a file extension. It is built once
// from the configured table and never changes afterwards, so it is safe for
// concurrent use.
type Classifier struct {
	byExtension     map[string]string
	compound        []string // multi-dot extensions, longest first
	categories      []string
	defaultCategory string
}

// New builds a classifier from the category table in cfg. When two
// categories claim the same extension the earlier one wins.
func New(cfg *config.Config) *Classifier {
	c := &Classifier{
		byExtension:     make(map[string]string),
		defaultCategory: cfg.DefaultCategory,
	}
	if c.defaultCategory == "" {
		c.defaultCategory = config.DefaultCategoryName
	}

	for _, category := range cfg.Categories {
		c.categories = append(c.categories, category.Name)
		for _, ext := range category.Extensions {
			key := fold(ext)
			if _, taken := c.byExtension[key]; taken {
				continue
			}
			c.byExtension[key] = category.Name
			if strings.Count(key, ".") > 1 {
				c.compound = append(c.compound, key)
			}
		}
	}

	sort.SliceStable(c.compound, func(i, j int) bool {
		return len(c.compound[i]) > len(c.compound[j])
	})

	return c
}

// Classify returns the category for ext (including its leading dot),
// or the default category if no category claims it.
func (c *Classifier) Classify(ext string) string {
	if category, ok := c.byExtension[fold(ext)]; ok {
		return category
	}
	return c.defaultCategory
}

// Extension returns the extension of a file name: the longest configured
// multi-dot extension the name ends with (".tar.gz"), otherwise the
// final suffix as reported by filepath.Ext.
func (c *Classifier) Extension(name string) string {
	for _, ext := range c.compound {
		// the stem must not be empty: ".tar.gz" alone is a hidden file name
		if len(name) <= len(ext) {
			continue
		}
		if tail := name[len(name)-len(ext):]; fold(tail) == ext {
			return tail
		}
	}
	return filepath.Ext(name)
}

// ClassifyName classifies a file by its name.
func (c *Classifier) ClassifyName(name string) string {
	return c.Classify(c.Extension(name))
}

// Categories returns the category names in table order, followed by the
// default category.
func (c *Classifier) Categories() []string {
	names := make([]string, 0, len(c.categories)+1)
	names = append(names, c.categories...)
	return append(names, c.defaultCategory)
}

// Default returns the fallback category name.
func (c *Classifier) Default() string {
	return c.defaultCategory
}

func fold(s string) string {
	return cases.Fold().String(s)
}
