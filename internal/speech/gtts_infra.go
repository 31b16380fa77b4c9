package speech

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// translate_tts rejects long inputs; chunks are spoken separately and concatenated.
const gttsMaxChunk = 100

// GoogleTTS speaks text through the public Google Translate voice, no API key needed.
// MP3 frames are self-contained, so chunk responses are joined byte by byte.
type GoogleTTS struct {
	baseURL string
	httpCli *http.Client
}

func NewGoogleTTS() *GoogleTTS {
	return &GoogleTTS{
		baseURL: "https://translate.google.com",
		httpCli: http.DefaultClient,
	}
}

func (g *GoogleTTS) Synthesize(ctx context.Context, text, language string) ([]byte, error) {
	chunks := splitForTTS(text, gttsMaxChunk)
	if len(chunks) == 0 {
		return nil, fmt.Errorf("gtts: nothing to speak")
	}

	var out bytes.Buffer
	for i, chunk := range chunks {
		if err := g.fetch(ctx, &out, chunk, language, i, len(chunks)); err != nil {
			return nil, err
		}
	}
	return out.Bytes(), nil
}

func (g *GoogleTTS) fetch(ctx context.Context, w io.Writer, chunk, language string, idx, total int) error {
	q := url.Values{}
	q.Set("ie", "UTF-8")
	q.Set("client", "tw-ob")
	q.Set("tl", isoLanguage(language))
	q.Set("q", chunk)
	q.Set("idx", strconv.Itoa(idx))
	q.Set("total", strconv.Itoa(total))
	q.Set("textlen", strconv.Itoa(utf8.RuneCountInString(chunk)))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"/translate_tts?"+q.Encode(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")
	req.Header.Set("Referer", "http://translate.google.com/")

	resp, err := g.httpCli.Do(req)
	if err != nil {
		return fmt.Errorf("gtts request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("gtts error: %d %s", resp.StatusCode, b)
	}

	if _, err := io.Copy(w, resp.Body); err != nil {
		return fmt.Errorf("gtts read: %w", err)
	}
	return nil
}

// splitForTTS cuts text into pieces of at most max runes,
// preferring sentence punctuation, then whitespace, then a hard cut.
func splitForTTS(text string, max int) []string {
	var chunks []string
	rest := []rune(strings.TrimSpace(text))

	for len(rest) > 0 {
		if len(rest) <= max {
			chunks = appendChunk(chunks, string(rest))
			break
		}

		cut := -1
		for i := max - 1; i > 0; i-- {
			if isSentenceEnd(rest[i]) {
				cut = i + 1
				break
			}
		}
		if cut < 0 {
			for i := max; i > 0; i-- {
				if unicode.IsSpace(rest[i]) {
					cut = i
					break
				}
			}
		}
		if cut < 0 {
			cut = max
		}

		chunks = appendChunk(chunks, string(rest[:cut]))
		rest = []rune(strings.TrimSpace(string(rest[cut:])))
	}
	return chunks
}

func appendChunk(chunks []string, s string) []string {
	if s = strings.TrimSpace(s); s != "" {
		chunks = append(chunks, s)
	}
	return chunks
}

func isSentenceEnd(r rune) bool {
	switch r {
	case '.', '!', '?', ',', ';', ':', '。', '！', '？', '、', '\n':
		return true
	}
	return false
}
