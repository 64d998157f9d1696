package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// R2Options locate an S3-compatible bucket (Cloudflare R2 in production).
type R2Options struct {
	Endpoint      string
	AccessKey     string
	SecretKey     string
	Bucket        string
	PublicBaseURL string
}

type R2Client struct {
	client  *s3.Client
	bucket  string
	baseURL string
}

func NewR2Client(ctx context.Context, opts R2Options) (*R2Client, error) {
	cfg, err := config.LoadDefaultConfig(
		ctx,
		config.WithRegion("auto"),
		config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(
				opts.AccessKey,
				opts.SecretKey,
				"",
			),
		),
	)
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(opts.Endpoint)
		o.UsePathStyle = true
	})

	return &R2Client{
		client:  client,
		bucket:  opts.Bucket,
		baseURL: strings.TrimRight(opts.PublicBaseURL, "/"),
	}, nil
}

// Put stores body under key and returns its public URL (or the key when no
// public base URL is configured).
func (r *R2Client) Put(ctx context.Context, key string, body []byte, contentType string) (string, error) {
	_, err := r.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(r.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(body),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(body))),
	})
	if err != nil {
		return "", fmt.Errorf("put %s: %w", key, err)
	}

	return PublicURL(r.baseURL, key), nil
}

func PublicURL(baseURL, key string) string {
	if baseURL == "" {
		return key
	}
	return fmt.Sprintf("%s/%s", strings.TrimRight(baseURL, "/"), key)
}
