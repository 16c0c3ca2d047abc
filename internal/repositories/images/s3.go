package images

import (
	"bytes"
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/url"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/dmitrijs2005/letshang/internal/common"
	"github.com/dmitrijs2005/letshang/internal/models"
)

const (
	metaFilename   = "filename"
	metaChecksum   = "checksum"
	metaUploadedAt = "uploaded-at"
)

// S3API is the part of *s3.Client used by S3Repository.
type S3API interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	HeadObject(ctx context.Context, in *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// S3Repository implements Repository on an S3 bucket.
type S3Repository struct {
	client   S3API
	bucket   string
	keyspace models.Keyspace
}

func NewS3Repository(client S3API, bucket string, keyspace models.Keyspace) (*S3Repository, error) {
	if !keyspace.Valid() {
		return nil, fmt.Errorf("unknown keyspace %q", keyspace)
	}
	return &S3Repository{client: client, bucket: bucket, keyspace: keyspace}, nil
}

// ObjectKey returns the object key of an image id in keyspace.
func ObjectKey(keyspace models.Keyspace, id string) string {
	return string(keyspace) + "/" + id
}

func (r *S3Repository) Keyspace() models.Keyspace {
	return r.keyspace
}

func (r *S3Repository) Insert(ctx context.Context, rec *models.ImageRecord) error {
	ensureChecksum(rec)
	_, err := r.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(r.bucket),
		Key:           aws.String(ObjectKey(r.keyspace, rec.ID)),
		Body:          bytes.NewReader(rec.Payload),
		ContentLength: aws.Int64(int64(len(rec.Payload))),
		Metadata: map[string]string{
			metaFilename:   url.QueryEscape(rec.Filename),
			metaChecksum:   hex.EncodeToString(rec.Checksum),
			metaUploadedAt: rec.UploadedAt.UTC().Format(time.RFC3339Nano),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to put object %s: %w", ObjectKey(r.keyspace, rec.ID), err)
	}
	return nil
}

func (r *S3Repository) Get(ctx context.Context, id string) (*models.ImageRecord, error) {
	key := ObjectKey(r.keyspace, id)
	out, err := r.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(key),
	})
	if isMissing(err) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get object %s: %w", key, err)
	}
	defer out.Body.Close()

	payload, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read object %s: %w", key, err)
	}

	rec := &models.ImageRecord{ID: id, Payload: payload}
	if rec.Filename, err = url.QueryUnescape(out.Metadata[metaFilename]); err != nil {
		rec.Filename = out.Metadata[metaFilename]
	}
	if rec.Checksum, err = hex.DecodeString(out.Metadata[metaChecksum]); err != nil {
		return nil, fmt.Errorf("%w: bad checksum metadata on %s", common.ErrStorageFault, key)
	}
	if rec.UploadedAt, err = time.Parse(time.RFC3339Nano, out.Metadata[metaUploadedAt]); err != nil {
		return nil, fmt.Errorf("%w: bad uploaded-at metadata on %s", common.ErrStorageFault, key)
	}
	if err := verify(rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (r *S3Repository) Exists(ctx context.Context, id string) (bool, error) {
	key := ObjectKey(r.keyspace, id)
	_, err := r.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(key),
	})
	if isMissing(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to head object %s: %w", key, err)
	}
	return true, nil
}

// Delete removes the object. S3 treats deleting a missing key as success.
func (r *S3Repository) Delete(ctx context.Context, id string) error {
	key := ObjectKey(r.keyspace, id)
	_, err := r.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(key),
	})
	if err != nil && !isMissing(err) {
		return fmt.Errorf("failed to delete object %s: %w", key, err)
	}
	return nil
}

func isMissing(err error) bool {
	if err == nil {
		return false
	}
	var nsk *types.NoSuchKey
	if errors.As(err, &nsk) {
		return true
	}
	var nf *types.NotFound
	if errors.As(err, &nf) {
		return true
	}
	var apiErr smithy.APIError
	return errors.As(err, &apiErr) && (apiErr.ErrorCode() == "NoSuchKey" || apiErr.ErrorCode() == "NotFound")
}
