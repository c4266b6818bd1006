package storage

import (
	"context"
	"fmt"
	"io"
	"path"

	gcs "cloud.google.com/go/storage"
)

// GCSUploader writes private objects under an optional prefix. Candidate
// audio and sheets are never made public.
type GCSUploader struct {
	client *gcs.Client
	bucket string
	prefix string
}

func NewGCSUploader(ctx context.Context, bucket, prefix string) (*GCSUploader, error) {
	c, err := gcs.NewClient(ctx)
	if err != nil {
		return nil, err
	}
	return &GCSUploader{client: c, bucket: bucket, prefix: prefix}, nil
}

func (u *GCSUploader) Close() error { return u.client.Close() }

func (u *GCSUploader) Upload(ctx context.Context, objectName string, contentType string, r io.Reader) (string, error) {
	name := path.Join(u.prefix, objectName)
	w := u.client.Bucket(u.bucket).Object(name).NewWriter(ctx)
	w.ContentType = contentType

	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return "", err
	}
	if err := w.Close(); err != nil {
		return "", err
	}
	return fmt.Sprintf("gs://%s/%s", u.bucket, name), nil
}
