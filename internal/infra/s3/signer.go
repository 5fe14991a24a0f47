package s3

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
)

const defaultSignedURLTTL = 15 * time.Minute

// Signer issues short-lived download URLs for stored photo objects. A nil
// client means photo storage is not configured; callers get an error and
// decide how to degrade.
type Signer struct {
	client *minio.Client
	bucket string
	ttl    time.Duration
}

func NewSigner(client *minio.Client, bucket string, ttl time.Duration) *Signer {
	if ttl <= 0 {
		ttl = defaultSignedURLTTL
	}

	return &Signer{
		client: client,
		bucket: strings.TrimSpace(bucket),
		ttl:    ttl,
	}
}

func (s *Signer) PresignGet(ctx context.Context, key string) (string, error) {
	if s.client == nil {
		return "", fmt.Errorf("s3 client is nil")
	}
	if strings.TrimSpace(key) == "" {
		return "", fmt.Errorf("s3 object key is empty")
	}

	presigned, err := s.client.PresignedGetObject(ctx, s.bucket, key, s.ttl, url.Values{})
	if err != nil {
		return "", fmt.Errorf("presign get object: %w", err)
	}

	return presigned.String(), nil
}
