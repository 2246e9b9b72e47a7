package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/pantrybase/recipebox/config"
)

// ImageStorage persists uploaded image files. Save returns the value
// stored on the recipe row: a relative key for local storage, a public
// URL for S3. Remove accepts whatever Save returned.
type ImageStorage interface {
	Save(ctx context.Context, key string, data []byte, contentType string) (string, error)
	Remove(ctx context.Context, stored string) error
}

// LocalStorage writes files under a media root directory.
type LocalStorage struct {
	root string
}

func NewLocalStorage(root string) *LocalStorage {
	return &LocalStorage{root: root}
}

func (l *LocalStorage) Save(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	path := filepath.Join(l.root, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("creating media directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing image file: %w", err)
	}
	return key, nil
}

func (l *LocalStorage) Remove(ctx context.Context, stored string) error {
	err := os.Remove(filepath.Join(l.root, filepath.FromSlash(stored)))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// S3Storage keeps images in an S3 bucket and serves them by public URL.
type S3Storage struct {
	client *s3.Client
	bucket string
}

func NewS3Storage(cfg *config.S3Config) *S3Storage {
	return &S3Storage{client: cfg.Client, bucket: cfg.BucketName}
}

func (s *S3Storage) Save(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}
	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.bucket, key), nil
}

func (s *S3Storage) Remove(ctx context.Context, stored string) error {
	key := strings.TrimPrefix(stored, fmt.Sprintf("https://%s.s3.amazonaws.com/", s.bucket))
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	return err
}
