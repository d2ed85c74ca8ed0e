package services

import (
	_ "embed"
	"fmt"
	"hash/fnv"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/domy415/singapore-property-hub-sub003/pkg/models"
)

//go:embed pools.yaml
var poolsYAML []byte

// ImageAssignmentService deterministically selects a representative image for
// a piece of content. Assignment is a pure function of (category, identity,
// title): no shared mutable state, no coordination needed across callers.
type ImageAssignmentService interface {
	Assign(category models.Category, identity, title string) (*models.ImageAssignment, error)
}

// imagePoolTable mirrors the embedded pools.yaml.
type imagePoolTable struct {
	Version   int                 `yaml:"version"`
	Pools     map[string][]string `yaml:"pools"`
	Overrides []keywordOverride   `yaml:"overrides"`
}

// keywordOverride pre-empts the hash pick when a title names something with a
// dedicated image (a district, a holiday). Overrides are also pure functions
// of the title string.
type keywordOverride struct {
	Keywords []string `yaml:"keywords"`
	URL      string   `yaml:"url"`
}

// compiledOverride pairs an override URL with its keyword matchers. Keywords
// match on word boundaries so "district 1" does not fire for "district 15".
type compiledOverride struct {
	patterns []*regexp.Regexp
	url      string
}

type imageAssignmentService struct {
	table     *imagePoolTable
	overrides []compiledOverride
}

// NewImageAssignmentService creates the service from the embedded pool table.
func NewImageAssignmentService() (ImageAssignmentService, error) {
	var table imagePoolTable
	if err := yaml.Unmarshal(poolsYAML, &table); err != nil {
		return nil, fmt.Errorf("parse image pool table: %w", err)
	}

	for _, cat := range models.AllCategories() {
		pool, ok := table.Pools[string(cat)]
		if !ok || len(pool) == 0 {
			return nil, fmt.Errorf("image pool table missing category %s", cat)
		}
	}

	overrides := make([]compiledOverride, 0, len(table.Overrides))
	for _, override := range table.Overrides {
		compiled := compiledOverride{url: override.URL}
		for _, keyword := range override.Keywords {
			pattern, err := regexp.Compile(`\b` + regexp.QuoteMeta(keyword) + `\b`)
			if err != nil {
				return nil, fmt.Errorf("compile override keyword %q: %w", keyword, err)
			}
			compiled.patterns = append(compiled.patterns, pattern)
		}
		overrides = append(overrides, compiled)
	}

	return &imageAssignmentService{table: &table, overrides: overrides}, nil
}

var _ ImageAssignmentService = (*imageAssignmentService)(nil)

func (s *imageAssignmentService) Assign(category models.Category, identity, title string) (*models.ImageAssignment, error) {
	if !category.IsValid() {
		return nil, fmt.Errorf("unknown category %q", category)
	}
	if identity == "" {
		return nil, fmt.Errorf("identity is required")
	}

	// Keyword overrides are checked before the hash fallback.
	lowerTitle := strings.ToLower(title)
	for _, override := range s.overrides {
		for _, pattern := range override.patterns {
			if pattern.MatchString(lowerTitle) {
				return &models.ImageAssignment{
					Category:     category,
					Identity:     identity,
					URL:          override.url,
					PoolIndex:    -1,
					FromOverride: true,
				}, nil
			}
		}
	}

	pool := s.table.Pools[string(category)]
	index := int(stableHash(identity+title) % uint64(len(pool)))

	return &models.ImageAssignment{
		Category:  category,
		Identity:  identity,
		URL:       pool[index],
		PoolIndex: index,
	}, nil
}

// stableHash computes a well-distributed non-cryptographic hash. FNV-1a is
// stable across process restarts, unlike Go's map hash.
func stableHash(s string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	return h.Sum64()
}
