package content

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	learningSvc "smartlearn/internal/domain/services/learning"
	"smartlearn/internal/service/content/converter"
)

const fileScheme = "file://"

// ErrS3NotConfigured is returned for s3 locators when no S3 source was wired
var ErrS3NotConfigured = errors.New("s3 content is not configured")

// Provider resolves a locator to reference text: the scheme picks the
// source, the extension picks the converter.
type Provider struct {
	files      Source
	objects    Source // nil when S3 is not configured
	converters *converter.Registry
	logger     *slog.Logger
}

// NewProvider wires the content sources. objects may be nil.
func NewProvider(files, objects Source, converters *converter.Registry, logger *slog.Logger) learningSvc.ContentProvider {
	return &Provider{
		files:      files,
		objects:    objects,
		converters: converters,
		logger:     logger,
	}
}

// Load fetches and converts the content behind locator.
// Accepted forms: "s3://bucket/key", "file://path", or a bare path.
func (p *Provider) Load(ctx context.Context, locator string) (string, error) {
	locator = strings.TrimSpace(locator)
	if locator == "" {
		return "", errors.New("content locator is empty")
	}

	// Resolve the converter first so unsupported types never hit the network
	conv, err := p.converters.ForName(locator)
	if err != nil {
		return "", err
	}

	var data []byte
	switch {
	case strings.HasPrefix(locator, s3Scheme):
		if p.objects == nil {
			return "", ErrS3NotConfigured
		}
		data, err = p.objects.Fetch(ctx, locator)
	default:
		data, err = p.files.Fetch(ctx, strings.TrimPrefix(locator, fileScheme))
	}
	if err != nil {
		return "", err
	}

	text, err := conv.Convert(ctx, data)
	if err != nil {
		return "", fmt.Errorf("convert %s: %w", locator, err)
	}

	p.logger.Debug("reference content loaded",
		"locator", locator,
		"converter", conv.Name(),
		"bytes", len(data),
		"chars", len(text),
	)
	return text, nil
}
