// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package source

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/pdiddy/doctor-directory/pkg/types"
)

const defaultS3Region = "us-east-1"

// ObjectGetter is the subset of the S3 client used by S3Source.
type ObjectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Source reads the doctor list from a single S3 object. The object key's
// extension selects the format, as for FileSource.
type S3Source struct {
	Client ObjectGetter
	Bucket string
	Key    string
}

// NewS3Source creates an S3Source backed by an S3 client built from cfg.
// Static credentials are used when cfg carries an access key; otherwise the
// default AWS credential chain applies.
func NewS3Source(ctx context.Context, bucket, key string, cfg types.S3Config) (*S3Source, error) {
	region := cfg.Region
	if region == "" {
		region = defaultS3Region
	}
	loadOpts := []func(*config.LoadOptions) error{config.WithRegion(region)}
	if cfg.AccessKeyID != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, cfg.SessionToken),
		))
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.PathStyle
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})
	return &S3Source{Client: client, Bucket: bucket, Key: key}, nil
}

// ParseS3Location splits s3://bucket/key into its bucket and key.
func ParseS3Location(loc string) (bucket, key string, err error) {
	u, err := url.Parse(loc)
	if err != nil {
		return "", "", fmt.Errorf("parsing S3 location %q: %w", loc, err)
	}
	if u.Scheme != "s3" {
		return "", "", fmt.Errorf("S3 location %q must use the s3:// scheme", loc)
	}
	key = strings.TrimPrefix(u.Path, "/")
	if u.Host == "" || key == "" {
		return "", "", fmt.Errorf("S3 location %q must name a bucket and key", loc)
	}
	return u.Host, key, nil
}

// Name returns the source identifier.
func (s *S3Source) Name() string { return "s3" }

// Load downloads and decodes the object.
func (s *S3Source) Load(ctx context.Context) ([]types.Doctor, error) {
	out, err := s.Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String(s.Key),
	})
	if err != nil {
		return nil, fmt.Errorf("getting S3 object s3://%s/%s: %w", s.Bucket, s.Key, err)
	}
	defer out.Body.Close()

	return DecodeNamed(s.Key, out.Body)
}
