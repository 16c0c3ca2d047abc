package objecturl

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/letshang/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stubPresign(t *testing.T, fn func(in *s3.GetObjectInput, opts s3.PresignOptions) (*v4.PresignedHTTPRequest, error)) {
	t.Helper()
	origNew, origGet := newS3PresignClient, presignGetObject
	t.Cleanup(func() {
		newS3PresignClient, presignGetObject = origNew, origGet
	})

	newS3PresignClient = func(*s3.Client) *s3.PresignClient { return &s3.PresignClient{} }
	presignGetObject = func(_ *s3.PresignClient, _ context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		var o s3.PresignOptions
		for _, f := range optFns {
			f(&o)
		}
		return fn(in, o)
	}
}

func TestPresigner_Mint(t *testing.T) {
	var gotKey, gotBucket string
	var gotExpiry time.Duration
	stubPresign(t, func(in *s3.GetObjectInput, o s3.PresignOptions) (*v4.PresignedHTTPRequest, error) {
		gotKey, gotBucket, gotExpiry = aws.ToString(in.Key), aws.ToString(in.Bucket), o.Expires
		return &v4.PresignedHTTPRequest{URL: "https://s3.example/" + gotKey + "?sig=1"}, nil
	})

	p := NewPresigner(nil, "letshang", 0)
	u, err := p.Mint(context.Background(), models.KeyspaceBackground, "b1")
	require.NoError(t, err)

	assert.Equal(t, "https://s3.example/background-images/b1?sig=1", u)
	assert.Equal(t, "background-images/b1", gotKey)
	assert.Equal(t, "letshang", gotBucket)
	assert.Equal(t, DefaultPresignExpiry, gotExpiry)

	p.Revoke(u)
}

func TestPresigner_MintError(t *testing.T) {
	stubPresign(t, func(*s3.GetObjectInput, s3.PresignOptions) (*v4.PresignedHTTPRequest, error) {
		return nil, errors.New("no credentials")
	})

	p := NewPresigner(nil, "letshang", time.Minute)
	_, err := p.Mint(context.Background(), models.KeyspaceFlyer, "f1")
	require.ErrorContains(t, err, "failed to presign flyer-images/f1")
}
