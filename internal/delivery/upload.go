package delivery

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/Vovarama1992/voice_chat/internal/speech"
)

const (
	multipartMemory = 20 << 20
	noFileMessage   = "No file uploaded"
)

var (
	errNoFile       = errors.New("no file uploaded")
	errFileTooBig   = errors.New("uploaded file is too large")
	errBadMultipart = errors.New("invalid multipart")
)

// readClip pulls the "file" part of a multipart request fully into memory.
func readClip(w http.ResponseWriter, r *http.Request, maxSize int64) (speech.Clip, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxSize)

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		switch {
		case isTooLarge(err):
			return speech.Clip{}, errFileTooBig
		case errors.Is(err, http.ErrNotMultipart):
			return speech.Clip{}, errNoFile
		}
		return speech.Clip{}, fmt.Errorf("%w: %v", errBadMultipart, err)
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return speech.Clip{}, errNoFile
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return speech.Clip{}, fmt.Errorf("read upload: %w", err)
	}
	if len(data) == 0 {
		return speech.Clip{}, errNoFile
	}

	return speech.Clip{
		Data:        data,
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
	}, nil
}

func isTooLarge(err error) bool {
	var tooBig *http.MaxBytesError
	if errors.As(err, &tooBig) {
		return true
	}
	// older multipart readers flatten the cause into the message
	return strings.Contains(err.Error(), "request body too large")
}
