package content

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
)

const s3Scheme = "s3://"

// ErrBucketNotAllowed is returned for locators naming a bucket outside the allow list
var ErrBucketNotAllowed = errors.New("s3 bucket is not allowed")

// S3Source reads objects from S3.
// Only the default bucket and the explicitly allowed buckets are readable.
type S3Source struct {
	client        s3iface.S3API
	defaultBucket string
	allowed       map[string]struct{}
	logger        *slog.Logger
}

// NewS3Source creates an S3 source. defaultBucket serves "s3:///key" locators
// and is always allowed; allowedBuckets adds further readable buckets.
func NewS3Source(client s3iface.S3API, defaultBucket string, allowedBuckets []string, logger *slog.Logger) *S3Source {
	allowed := make(map[string]struct{}, len(allowedBuckets)+1)
	if defaultBucket != "" {
		allowed[defaultBucket] = struct{}{}
	}
	for _, b := range allowedBuckets {
		if b = strings.TrimSpace(b); b != "" {
			allowed[b] = struct{}{}
		}
	}

	return &S3Source{
		client:        client,
		defaultBucket: defaultBucket,
		allowed:       allowed,
		logger:        logger,
	}
}

func (s *S3Source) Fetch(ctx context.Context, locator string) ([]byte, error) {
	bucket, key, err := ParseS3Locator(locator, s.defaultBucket)
	if err != nil {
		return nil, err
	}
	if _, ok := s.allowed[bucket]; !ok {
		s.logger.Warn("rejected s3 locator outside allowed buckets", "bucket", bucket)
		return nil, fmt.Errorf("%w: %s", ErrBucketNotAllowed, bucket)
	}

	out, err := s.client.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		s.logger.Error("failed to get object from S3",
			"bucket", bucket,
			"key", key,
			"error", err,
		)
		return nil, fmt.Errorf("get s3://%s/%s: %w", bucket, key, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("read s3://%s/%s: %w", bucket, key, err)
	}

	s.logger.Debug("fetched object from S3",
		"bucket", bucket,
		"key", key,
		"bytes", len(data),
	)
	return data, nil
}

// ParseS3Locator splits "s3://bucket/key" into its parts.
// An empty bucket ("s3:///key") falls back to defaultBucket.
func ParseS3Locator(locator, defaultBucket string) (bucket, key string, err error) {
	rest, ok := strings.CutPrefix(locator, s3Scheme)
	if !ok {
		return "", "", fmt.Errorf("not an s3 locator: %q", locator)
	}

	bucket, key, _ = strings.Cut(rest, "/")
	if bucket == "" {
		bucket = defaultBucket
	}
	if bucket == "" {
		return "", "", errors.New("s3 locator has no bucket and no default bucket is configured")
	}
	if key == "" {
		return "", "", fmt.Errorf("s3 locator has no object key: %q", locator)
	}
	return bucket, key, nil
}
