package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"sort"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"

	"alfredoptarigan/resume-ranker/internal/config"
	"alfredoptarigan/resume-ranker/internal/models"
)

// S3API is the subset of the S3 client used to load resumes.
type S3API interface {
	s3.ListObjectsV2APIClient
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

type s3Source struct {
	client S3API
	bucket string
	prefix string
	logger *zap.Logger
}

func NewS3Source(client S3API, bucket, prefix string, logger *zap.Logger) ResumeSource {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &s3Source{
		client: client,
		bucket: bucket,
		prefix: prefix,
		logger: logger,
	}
}

// NewS3Client builds a client from cfg. Static credentials and a custom
// endpoint are used when set, which covers R2 and MinIO.
func NewS3Client(ctx context.Context, cfg config.S3Config) (*s3.Client, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	}), nil
}

// Load lists bucket/prefix and downloads every .pdf object, sorted by key.
func (s *s3Source) Load(ctx context.Context) ([]models.ResumeFile, error) {
	keys, err := s.listKeys(ctx)
	if err != nil {
		return nil, err
	}

	files := make([]models.ResumeFile, 0, len(keys))
	for _, key := range keys {
		data, err := s.download(ctx, key)
		if err != nil {
			return nil, err
		}
		files = append(files, models.ResumeFile{Name: path.Base(key), Data: data})
	}

	s.logger.Info("resumes loaded",
		zap.String("bucket", s.bucket),
		zap.String("prefix", s.prefix),
		zap.Int("files", len(files)),
	)
	return files, nil
}

func (s *s3Source) listKeys(ctx context.Context) ([]string, error) {
	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(s.prefix),
	})

	var keys []string
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list objects: %w", err)
		}
		for _, obj := range page.Contents {
			key := aws.ToString(obj.Key)
			if !(models.ResumeFile{Name: key}).IsPDF() {
				continue
			}
			keys = append(keys, key)
		}
	}

	sort.Strings(keys)
	return keys, nil
}

func (s *s3Source) download(ctx context.Context, key string) ([]byte, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get object %s: %w", key, err)
	}
	defer out.Body.Close()

	buf := new(bytes.Buffer)
	if _, err := io.Copy(buf, out.Body); err != nil {
		return nil, fmt.Errorf("failed to read object %s: %w", key, err)
	}
	return buf.Bytes(), nil
}
