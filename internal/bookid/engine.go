// AngelaMos | 2026
// engine.go

package bookid

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// ErrEngineUnavailable reports that no text could be recognized because
// the engine itself failed, as opposed to the image containing no text.
var ErrEngineUnavailable = errors.New("recognition engine unavailable")

// Engine turns image bytes into recognized text.
type Engine interface {
	Recognize(ctx context.Context, image []byte) (string, error)
}

// TesseractEngine runs gosseract with a fresh client per call; the
// client is not safe for reuse across goroutines.
type TesseractEngine struct {
	clientFactory func() *gosseract.Client
	languages     []string
}

func NewTesseractEngine(languages []string) *TesseractEngine {
	if len(languages) == 0 {
		languages = []string{"tur", "eng"}
	}
	return &TesseractEngine{
		clientFactory: gosseract.NewClient,
		languages:     languages,
	}
}

func (e *TesseractEngine) Recognize(
	ctx context.Context,
	image []byte,
) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}

	c := e.clientFactory()
	defer c.Close() //nolint:errcheck // nothing to do with a close failure

	if err := c.SetLanguage(e.languages...); err != nil {
		return "", fmt.Errorf("set languages: %w", err)
	}

	if err := c.SetImageFromBytes(image); err != nil {
		return "", fmt.Errorf("set image: %w", err)
	}

	text, err := c.Text()
	if err != nil {
		return "", fmt.Errorf("recognize text: %w", err)
	}

	return strings.TrimSpace(text), nil
}
