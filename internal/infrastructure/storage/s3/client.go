package s3

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
)

// Config carries everything needed to talk to S3/MinIO/R2.
type Config struct {
	Endpoint string
	// ExternalEndpoint is what browsers reach; presigned PUT signatures must
	// be computed against it or they fail validation. Empty falls back to
	// Endpoint.
	ExternalEndpoint string
	Region           string
	AccessKeyID      string
	SecretAccessKey  string
	Bucket           string
	UsePathStyle     bool
	CDNBaseURL       string
	PresignTTL       time.Duration
}

// Client wraps the AWS S3 client for the photo bucket.
type Client struct {
	client            *s3.Client
	externalPresigner *s3.PresignClient
	cfg               Config
	log               zerolog.Logger
}

func NewClient(cfg Config, log zerolog.Logger) (*Client, error) {
	if cfg.PresignTTL <= 0 {
		cfg.PresignTTL = 15 * time.Minute
	}
	if cfg.ExternalEndpoint == "" {
		cfg.ExternalEndpoint = cfg.Endpoint
	}

	internal, err := newS3(cfg, cfg.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	external, err := newS3(cfg, cfg.ExternalEndpoint)
	if err != nil {
		return nil, fmt.Errorf("load external aws config: %w", err)
	}

	return &Client{
		client:            internal,
		externalPresigner: s3.NewPresignClient(external),
		cfg:               cfg,
		log:               log,
	}, nil
}

func newS3(cfg Config, endpoint string) (*s3.Client, error) {
	resolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
		return aws.Endpoint{URL: endpoint, HostnameImmutable: true}, nil
	})

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithEndpointResolverWithOptions(resolver),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, err
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.UsePathStyle
	}), nil
}

// PresignPut returns a URL the browser PUTs the image bytes to. The content
// type is part of the signature so the client cannot smuggle another type.
func (c *Client) PresignPut(ctx context.Context, objectKey, contentType string) (string, error) {
	req, err := c.externalPresigner.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(c.cfg.Bucket),
		Key:         aws.String(objectKey),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(c.cfg.PresignTTL))
	if err != nil {
		return "", fmt.Errorf("presign put %s: %w", objectKey, err)
	}
	return req.URL, nil
}

// ResolveURL maps a storage-relative key to a fetchable URL. Absolute refs
// pass through unchanged so resolving is idempotent.
func (c *Client) ResolveURL(ref string) string {
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return ref
	}
	return c.cfg.CDNBaseURL + "/" + ref
}

// DeleteObject removes an uploaded image. Used only by admin cleanup paths.
func (c *Client) DeleteObject(ctx context.Context, objectKey string) error {
	_, err := c.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.cfg.Bucket),
		Key:    aws.String(objectKey),
	})
	return err
}

// EnsureBucket creates the photo bucket if it does not exist and sets a
// public read policy so revealed galleries can serve straight from the CDN.
func (c *Client) EnsureBucket(ctx context.Context) error {
	_, err := c.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(c.cfg.Bucket),
	})
	if err != nil {
		c.log.Info().Str("bucket", c.cfg.Bucket).Msg("creating bucket")
		if _, createErr := c.client.CreateBucket(ctx, &s3.CreateBucketInput{
			Bucket: aws.String(c.cfg.Bucket),
		}); createErr != nil {
			return fmt.Errorf("create bucket %s: %w", c.cfg.Bucket, createErr)
		}
	}

	policy := fmt.Sprintf(`{
		"Version": "2012-10-17",
		"Statement": [{
			"Effect": "Allow",
			"Principal": {"AWS": ["*"]},
			"Action": ["s3:GetObject"],
			"Resource": ["arn:aws:s3:::%s/*"]
		}]
	}`, c.cfg.Bucket)

	if _, err := c.client.PutBucketPolicy(ctx, &s3.PutBucketPolicyInput{
		Bucket: aws.String(c.cfg.Bucket),
		Policy: aws.String(policy),
	}); err != nil {
		// bucket might already carry a policy
		c.log.Warn().Err(err).Msg("failed to set public bucket policy")
	}
	return nil
}
