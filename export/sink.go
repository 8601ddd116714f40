package export

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Artifact is a named blob tagged with its media type.
type Artifact struct {
	Name        string
	ContentType string
	Data        []byte
}

// Sink persists artifacts.
type Sink interface {
	// Put stores a and returns its location.
	Put(ctx context.Context, a Artifact) (string, error)
}

// DirSink writes artifacts as files of a local directory, created if needed.
// Files carry no media type, it is reported in the export Result.
type DirSink struct {
	Dir string
}

func (s DirSink) Put(ctx context.Context, a Artifact) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	dir := s.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("cannot create output directory: %w", err)
	}
	name := filepath.Join(dir, a.Name)
	if err := os.WriteFile(name, a.Data, 0o644); err != nil {
		return "", fmt.Errorf("cannot write %s: %w", a.Name, err)
	}
	return name, nil
}

// Uploader is the part of manager.Uploader used by S3Sink.
type Uploader interface {
	Upload(ctx context.Context, input *s3.PutObjectInput, opts ...func(*manager.Uploader)) (*manager.UploadOutput, error)
}

// S3Sink uploads artifacts to an S3 bucket, under Prefix.
type S3Sink struct {
	Uploader Uploader
	Bucket   string
	Prefix   string
}

// NewS3Sink returns an S3Sink using the default AWS credential chain.
func NewS3Sink(ctx context.Context, bucket, prefix, region string) (*S3Sink, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("cannot load aws configuration: %w", err)
	}
	return &S3Sink{
		Uploader: manager.NewUploader(s3.NewFromConfig(cfg)),
		Bucket:   bucket,
		Prefix:   prefix,
	}, nil
}

func (s *S3Sink) Put(ctx context.Context, a Artifact) (string, error) {
	key := path.Join(s.Prefix, a.Name)
	out, err := s.Uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(a.Data),
		ContentType: aws.String(a.ContentType),
	})
	if err != nil {
		return "", fmt.Errorf("cannot upload %s to bucket %s: %w", key, s.Bucket, err)
	}
	if out.Location != "" {
		return out.Location, nil
	}
	return "s3://" + s.Bucket + "/" + key, nil
}
