// Package archive mirrors published version snapshots to S3-compatible
// object storage. The database row stays authoritative; the archive is a
// secondary write-once copy for retention and offline audit, so failures
// here are logged and never fail a publish.
package archive

import (
	"context"
	"fmt"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type Archive struct {
	client *minio.Client
	bucket string
}

func New(endpoint, accessKey, secretKey, bucket string, useSSL bool) (*Archive, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create archive client: %w", err)
	}
	return &Archive{client: client, bucket: bucket}, nil
}

// EnsureBucket creates the archive bucket if it does not exist.
func (a *Archive) EnsureBucket(ctx context.Context) error {
	exists, err := a.client.BucketExists(ctx, a.bucket)
	if err != nil {
		return fmt.Errorf("check archive bucket: %w", err)
	}
	if exists {
		return nil
	}
	if err := a.client.MakeBucket(ctx, a.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("create archive bucket: %w", err)
	}
	return nil
}

// ObjectKey is the archive location of one published version.
func ObjectKey(slug, label string) string {
	return fmt.Sprintf("%s/%s.txt", slug, label)
}

// StoreSnapshot uploads a version's snapshot. The integrity hash travels
// as object metadata so an auditor can verify the copy against the row.
func (a *Archive) StoreSnapshot(ctx context.Context, slug, label, snapshot, hash string) error {
	key := ObjectKey(slug, label)
	_, err := a.client.PutObject(ctx, a.bucket, key, strings.NewReader(snapshot), int64(len(snapshot)), minio.PutObjectOptions{
		ContentType: "text/plain; charset=utf-8",
		UserMetadata: map[string]string{
			"Version-Hash": hash,
		},
	})
	if err != nil {
		return fmt.Errorf("archive snapshot %s: %w", key, err)
	}
	return nil
}
