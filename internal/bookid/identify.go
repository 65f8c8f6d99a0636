// AngelaMos | 2026
// identify.go

package bookid

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// Result is the best-effort identification outcome. Matched=false is a
// degraded-but-successful answer, not an error.
type Result struct {
	Title   string
	Author  string
	Matched bool
}

type Identifier struct {
	engine       Engine
	providers    []Provider
	targetHeight int
	logger       *slog.Logger
}

func NewIdentifier(
	engine Engine,
	providers []Provider,
	targetHeight int,
	logger *slog.Logger,
) *Identifier {
	if targetHeight <= 0 {
		targetHeight = 1000
	}
	return &Identifier{
		engine:       engine,
		providers:    providers,
		targetHeight: targetHeight,
		logger:       logger,
	}
}

// Identify runs the full pipeline: dual-variant recognition, candidate
// extraction, query composition and provider lookup. The first provider
// hit wins; exhausting every query returns Matched=false.
func (i *Identifier) Identify(
	ctx context.Context,
	data []byte,
) (Result, error) {
	text, err := i.recognize(ctx, data)
	if err != nil {
		return Result{}, err
	}

	lines := splitLines(text)
	if len(lines) == 0 {
		return Result{}, nil
	}

	authors := authorCandidates(lines)
	dominant := isTurkishDominant(text)
	titles := titleCandidates(lines, dominant)

	queries := buildQueries(authors, titles, lines)

	for _, query := range queries {
		keywords := turkishKeywords(query)

		for _, provider := range i.providers {
			match, err := provider.Search(ctx, query, keywords)
			if err != nil {
				// A provider failure means this query yielded
				// nothing from that provider, never a fatal error.
				i.logger.Warn("provider lookup failed",
					"query", query,
					"error", err,
				)
				continue
			}
			if match != nil {
				return Result{
					Title:   match.Title,
					Author:  match.Author,
					Matched: true,
				}, nil
			}
		}

		if ctx.Err() != nil {
			return Result{}, ctx.Err()
		}
	}

	return Result{}, nil
}

// recognize runs the engine on the original bytes and on the resized,
// sharpened variant, keeping whichever text carries more tokens longer
// than 2 characters. Preprocess failure falls back to the original
// bytes; both recognitions failing means the engine is unusable.
func (i *Identifier) recognize(
	ctx context.Context,
	data []byte,
) (string, error) {
	variant, err := preprocess(data, i.targetHeight)
	if err != nil {
		i.logger.Warn("preprocess image", "error", err)
		variant = data
	}

	original, origErr := i.engine.Recognize(ctx, data)
	processed, procErr := i.engine.Recognize(ctx, variant)

	if origErr != nil && procErr != nil {
		return "", fmt.Errorf(
			"%w: %v",
			ErrEngineUnavailable,
			procErr,
		)
	}
	if origErr != nil {
		return processed, nil
	}
	if procErr != nil {
		return original, nil
	}

	if plausibleWords(processed) > plausibleWords(original) {
		return processed, nil
	}
	return original, nil
}

// plausibleWords counts tokens longer than 2 characters.
func plausibleWords(text string) int {
	count := 0
	for _, t := range strings.Fields(text) {
		if len([]rune(t)) > 2 {
			count++
		}
	}
	return count
}
