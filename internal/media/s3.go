package media

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	appconfig "autovitrine/internal/config"
	"autovitrine/internal/domain"
)

// keyPrefix namespaces every upload inside the bucket.
const keyPrefix = "uploads/"

// S3Store uploads to an S3-compatible bucket. The object key doubles as the
// provider reference id on the media reference.
type S3Store struct {
	client        *s3.Client
	bucket        string
	publicBaseURL string
}

// NewS3Store builds a client from static credentials, honoring a custom
// endpoint for S3-compatible hosts.
func NewS3Store(ctx context.Context, cfg appconfig.Config) (*S3Store, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.S3AccessKey, cfg.S3SecretKey, "",
		)))
	if err != nil {
		return nil, fmt.Errorf("load s3 config: %w", err)
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3Endpoint)
			o.UsePathStyle = true
		}
	})

	base := strings.TrimSuffix(cfg.S3PublicBaseURL, "/")
	if base == "" {
		if cfg.S3Endpoint != "" {
			base = strings.TrimSuffix(cfg.S3Endpoint, "/") + "/" + cfg.S3Bucket
		} else {
			base = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.S3Bucket, cfg.S3Region)
		}
	}
	return &S3Store{client: client, bucket: cfg.S3Bucket, publicBaseURL: base}, nil
}

func (s *S3Store) Save(ctx context.Context, data []byte, filename, contentType, forceKind string) (domain.MediaRef, error) {
	kind := KindFor(contentType, forceKind)
	key := keyPrefix + uniqueName(filename, kind)
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return domain.MediaRef{}, fmt.Errorf("upload %s: %w", key, err)
	}
	return domain.MediaRef{
		URL:        s.publicBaseURL + "/" + key,
		Storage:    domain.StorageS3,
		ProviderID: key,
		Kind:       kind,
	}, nil
}

func (s *S3Store) Remove(ctx context.Context, ref domain.MediaRef) error {
	if ref.Storage != domain.StorageS3 || ref.ProviderID == "" {
		return nil
	}
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(ref.ProviderID),
	})
	if err != nil {
		return fmt.Errorf("delete %s: %w", ref.ProviderID, err)
	}
	return nil
}
