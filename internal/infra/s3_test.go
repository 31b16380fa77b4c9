package infra

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPutter struct {
	bucket, key string
	body        string
	size        int64
	opts        minio.PutObjectOptions
	err         error
}

func (s *stubPutter) PutObject(_ context.Context, bucket, key string, r io.Reader, size int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	b, _ := io.ReadAll(r)
	s.bucket, s.key, s.body, s.size, s.opts = bucket, key, string(b), size, opts
	return minio.UploadInfo{}, s.err
}

func TestS3Client_PutObject(t *testing.T) {
	putter := &stubPutter{}
	c := &s3Client{client: putter, bucket: "clips", host: "https://s3.local"}

	url, err := c.PutObject(context.Background(), "stt/2026-10-17/a b.webm", strings.NewReader("data"), 4, "audio/webm")
	require.NoError(t, err)

	assert.Equal(t, "https://s3.local/clips/stt%2F2026-10-17%2Fa%20b.webm", url)
	assert.Equal(t, "clips", putter.bucket)
	assert.Equal(t, "data", putter.body)
	assert.Equal(t, int64(4), putter.size)
	assert.Equal(t, "audio/webm", putter.opts.ContentType)
	assert.NotEmpty(t, putter.opts.UserMetadata["uploaded-at"])
}

func TestS3Client_PutObjectError(t *testing.T) {
	c := &s3Client{client: &stubPutter{err: errors.New("denied")}, bucket: "clips", host: "https://s3.local"}

	_, err := c.PutObject(context.Background(), "k", strings.NewReader("x"), 1, "audio/wav")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "denied")
}
