package ports

import "context"

// ClipArchive keeps a copy of uploaded audio clips.
type ClipArchive interface {
	ObjectKey(filename string) string
	SaveClip(ctx context.Context, data []byte, filename, contentType string) (string, error)
}
