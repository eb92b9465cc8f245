package storage

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"mime/multipart"
	"net/url"
	"path"
	"strings"

	appcfg "food-order-api/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// Store wraps an S3-compatible bucket (AWS, R2, MinIO) holding
// restaurant, menu and profile images.
type Store struct {
	client    *s3.Client
	bucket    string
	region    string
	publicURL string
}

var store *Store

var ErrNotConfigured = errors.New("image storage is not configured")

// Init connects the global store. A missing S3_BUCKET leaves storage
// disabled; uploads then fail with ErrNotConfigured.
func Init(ctx context.Context) error {
	cfg := appcfg.Cfg
	if cfg.S3Bucket == "" {
		return nil
	}

	opts := []func(*awscfg.LoadOptions) error{awscfg.WithRegion(cfg.S3Region)}
	awsCfg, err := awscfg.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return err
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3Endpoint)
			o.UsePathStyle = true
		}
	})
	store = &Store{
		client:    client,
		bucket:    cfg.S3Bucket,
		region:    cfg.S3Region,
		publicURL: cfg.S3PublicURL,
	}
	return nil
}

func (s *Store) upload(ctx context.Context, key, contentType string, data []byte) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", err
	}
	escaped := url.PathEscape(key)
	if s.publicURL != "" {
		return fmt.Sprintf("%s/%s", strings.TrimSuffix(s.publicURL, "/"), escaped), nil
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, escaped), nil
}

// UploadFileHeader stores a multipart image upload and returns its
// public URL.
func UploadFileHeader(ctx context.Context, file *multipart.FileHeader) (string, error) {
	if store == nil {
		return "", ErrNotConfigured
	}
	f, err := file.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	buf := new(bytes.Buffer)
	if _, err := buf.ReadFrom(f); err != nil {
		return "", err
	}

	key := "images/" + uuid.NewString() + path.Ext(file.Filename)
	contentType := file.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return store.upload(ctx, key, contentType, buf.Bytes())
}

// UploadDataURL stores a base64 data-URL image (profile pictures arrive
// this way from the client) and returns its public URL.
func UploadDataURL(ctx context.Context, dataURL string) (string, error) {
	if store == nil {
		return "", ErrNotConfigured
	}
	contentType, data, err := parseDataURL(dataURL)
	if err != nil {
		return "", err
	}
	key := "images/" + uuid.NewString()
	return store.upload(ctx, key, contentType, data)
}

func parseDataURL(s string) (contentType string, data []byte, err error) {
	const prefix = "data:"
	if !strings.HasPrefix(s, prefix) {
		return "", nil, errors.New("not a data URL")
	}
	rest := strings.TrimPrefix(s, prefix)
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok || !strings.HasSuffix(meta, ";base64") {
		return "", nil, errors.New("unsupported data URL encoding")
	}
	contentType = strings.TrimSuffix(meta, ";base64")
	data, err = base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, err
	}
	return contentType, data, nil
}
