package catalog

import (
	"embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed config/*.yaml
var configFiles embed.FS

// Registry serves the embedded form catalog. Read-only after construction.
type Registry struct {
	catalog *Catalog
}

// NewRegistry loads the embedded catalog YAML
func NewRegistry() (*Registry, error) {
	data, err := configFiles.ReadFile("config/catalog.yaml")
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	return Parse(data)
}

// Parse builds a registry from catalog YAML
func Parse(data []byte) (*Registry, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal catalog: %w", err)
	}
	if c.Grades.Min <= 0 || c.Grades.Max < c.Grades.Min {
		return nil, fmt.Errorf("invalid grade range %d-%d", c.Grades.Min, c.Grades.Max)
	}
	return &Registry{catalog: &c}, nil
}

// Catalog returns the loaded catalog. Callers must not modify it.
func (r *Registry) Catalog() *Catalog {
	return r.catalog
}

// Grades returns the accepted grade range
func (r *Registry) Grades() GradeRange {
	return r.catalog.Grades
}

// LearnerTypeNames returns the learner type wire values in catalog order
func (r *Registry) LearnerTypeNames() []string {
	names := make([]string, 0, len(r.catalog.LearnerTypes))
	for _, lt := range r.catalog.LearnerTypes {
		names = append(names, lt.Name)
	}
	return names
}

// HasLearnerType reports whether name is a known learner type (exact match)
func (r *Registry) HasLearnerType(name string) bool {
	for _, lt := range r.catalog.LearnerTypes {
		if lt.Name == name {
			return true
		}
	}
	return false
}

// LanguageCodes returns the offered translation targets
func (r *Registry) LanguageCodes() []string {
	codes := make([]string, 0, len(r.catalog.Languages))
	for _, l := range r.catalog.Languages {
		codes = append(codes, l.Code)
	}
	return codes
}
