package app

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/letshang/internal/config"
	"github.com/dmitrijs2005/letshang/internal/s3x"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	c := &config.Config{}
	c.LoadDefaults()
	c.DatabaseDSN = filepath.Join(t.TempDir(), "data", "letshang.db")
	c.ViewerAddr = ""
	c.Latency = config.Latency{}
	return c
}

func TestNew_LocalBackend(t *testing.T) {
	c := testConfig(t)

	a, err := New(context.Background(), c, io.Discard)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })

	require.NotNil(t, a.registry)
	assert.Nil(t, a.Viewer())

	c.ViewerAddr = "127.0.0.1:0"
	assert.NotNil(t, a.Viewer())
}

func TestNew_BadDSN(t *testing.T) {
	c := testConfig(t)
	c.DatabaseDriver = "mysql"

	_, err := New(context.Background(), c, io.Discard)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db init error")
}

func TestNew_S3Presign(t *testing.T) {
	orig := newS3Client
	t.Cleanup(func() { newS3Client = orig })

	var got s3x.Config
	newS3Client = func(_ context.Context, c s3x.Config) (*s3.Client, error) {
		got = c
		return s3.New(s3.Options{Region: c.Region}), nil
	}

	c := testConfig(t)
	c.BlobBackend = config.BlobBackendS3
	c.URLMode = config.URLModePresign

	a, err := New(context.Background(), c, io.Discard)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })

	assert.Equal(t, c.S3Bucket, got.Bucket)
	assert.Nil(t, a.registry)

	c.ViewerAddr = "127.0.0.1:0"
	assert.NotNil(t, a.Viewer())
}

func TestRun_ScriptedSession(t *testing.T) {
	c := testConfig(t)

	a, err := New(context.Background(), c, io.Discard)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })

	in := strings.NewReader(strings.Join([]string{
		"set name Birthday",
		"set date 2026-07-04 18:00",
		"set location Park",
		"publish",
		"exit",
	}, "\n") + "\n")
	var out bytes.Buffer

	require.NoError(t, a.Run(context.Background(), "", in, &out))
	assert.Contains(t, out.String(), "Event is Live!")

	list, err := a.Events.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Birthday", list[0].EventName)
}

func TestRun_UnknownRoute(t *testing.T) {
	c := testConfig(t)

	a, err := New(context.Background(), c, io.Discard)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })

	var out bytes.Buffer
	require.NoError(t, a.Run(context.Background(), "/event/missing", strings.NewReader("exit\n"), &out))
	assert.Contains(t, out.String(), "Event not found: missing")
}
