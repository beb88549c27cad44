package converter

import (
	"fmt"
	"path"
	"strings"
	"sync"

	learningSvc "smartlearn/internal/domain/services/learning"
)

// Registry routes fetched content to a converter by file extension.
//
// Safe for concurrent use.
type Registry struct {
	mu         sync.RWMutex
	converters map[string]learningSvc.ContentConverter // key: extension with leading dot
}

// NewRegistry creates a registry with the text, HTML and PDF converters registered
func NewRegistry() *Registry {
	registry := &Registry{
		converters: make(map[string]learningSvc.ContentConverter),
	}

	registry.Register(NewTextConverter())
	registry.Register(NewHTMLConverter())
	registry.Register(NewPDFConverter())

	return registry
}

// Register associates a converter with its extensions.
// Extensions are normalized to lowercase with a leading dot.
func (r *Registry) Register(converter learningSvc.ContentConverter) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, ext := range converter.SupportedExtensions() {
		r.converters[normalizeExt(ext)] = converter
	}
}

// Lookup returns the converter for an extension, or nil
func (r *Registry) Lookup(ext string) learningSvc.ContentConverter {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.converters[normalizeExt(ext)]
}

// ForName returns the converter for a file name or locator.
// Names without an extension are read as plain text.
func (r *Registry) ForName(name string) (learningSvc.ContentConverter, error) {
	ext := path.Ext(name)
	if ext == "" {
		ext = ".txt"
	}

	converter := r.Lookup(ext)
	if converter == nil {
		return nil, fmt.Errorf("unsupported file type: %s", ext)
	}
	return converter, nil
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(ext)
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
