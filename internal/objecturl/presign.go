package objecturl

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/letshang/internal/models"
	"github.com/dmitrijs2005/letshang/internal/repositories/images"
)

// seams for tests
var (
	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

// DefaultPresignExpiry bounds the lifetime of a presigned URL.
const DefaultPresignExpiry = 15 * time.Minute

// Presigner mints presigned S3 GET URLs for images stored by
// images.S3Repository. Revoke is a no-op: a presigned URL cannot be
// withdrawn and simply expires.
type Presigner struct {
	pc     *s3.PresignClient
	bucket string
	expiry time.Duration
}

func NewPresigner(client *s3.Client, bucket string, expiry time.Duration) *Presigner {
	if expiry <= 0 {
		expiry = DefaultPresignExpiry
	}
	return &Presigner{pc: newS3PresignClient(client), bucket: bucket, expiry: expiry}
}

func (p *Presigner) Mint(ctx context.Context, keyspace models.Keyspace, id string) (string, error) {
	req, err := presignGetObject(p.pc, ctx, &s3.GetObjectInput{
		Bucket: aws.String(p.bucket),
		Key:    aws.String(images.ObjectKey(keyspace, id)),
	}, s3.WithPresignExpires(p.expiry))
	if err != nil {
		return "", fmt.Errorf("failed to presign %s: %w", images.ObjectKey(keyspace, id), err)
	}
	return req.URL, nil
}

func (p *Presigner) Revoke(string) {}
