package domain

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/Vovarama1992/voice_chat/internal/ports"
)

type clipService struct {
	client ports.S3Client
	now    func() time.Time
}

func NewClipService(client ports.S3Client) ports.ClipArchive {
	return &clipService{client: client, now: time.Now}
}

// ObjectKey — путь в бакете
func (s *clipService) ObjectKey(filename string) string {
	date := s.now().Format("2006-01-02")
	clean := filepath.Base(filename)
	if clean == "." || clean == "/" || clean == "" {
		clean = "clip"
	}
	return fmt.Sprintf("stt/%s/%s-%s", date, uuid.NewString(), clean)
}

func (s *clipService) SaveClip(ctx context.Context, data []byte, filename, contentType string) (string, error) {
	key := s.ObjectKey(filename)
	return s.client.PutObject(ctx, key, bytes.NewReader(data), int64(len(data)), contentType)
}

// NopArchive is used when no bucket is configured.
type NopArchive struct{}

func (NopArchive) ObjectKey(filename string) string { return filepath.Base(filename) }

func (NopArchive) SaveClip(context.Context, []byte, string, string) (string, error) {
	return "", nil
}
