package app

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"sedi/internal/domain"
)

// Extractor implements domain.Interpreter on top of a language model.
type Extractor struct {
	llm domain.Completer
	now func() time.Time
}

func NewExtractor(llm domain.Completer, now func() time.Time) *Extractor {
	if now == nil {
		now = time.Now
	}
	return &Extractor{llm: llm, now: now}
}

// Extract makes exactly one completion call. Errors wrap domain.ErrCompletion or domain.ErrNotUnderstood.
func (e *Extractor) Extract(ctx context.Context, text string) (*domain.Preferences, error) {
	prompt := BuildPrompt(text, e.now().UTC().Format(dateLayout))

	raw, err := e.llm.Complete(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCompletion, err)
	}

	p, err := ParsePreferences(raw)
	if err != nil {
		log.Warn().Err(err).Str("raw", StripCodeFences(raw)).Msg("failed to parse structured output")
		return nil, err
	}
	return p, nil
}

// ParsePreferences decodes a model answer, tolerating code fences around the JSON object.
func ParsePreferences(raw string) (*domain.Preferences, error) {
	var m map[string]any
	if err := json.Unmarshal([]byte(StripCodeFences(raw)), &m); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrNotUnderstood, err)
	}
	if len(m) == 0 {
		return nil, fmt.Errorf("%w: empty object", domain.ErrNotUnderstood)
	}
	p := mapPreferences(m)
	return &p, nil
}

// StripCodeFences removes ``` fences and an optional "json" label around a model answer.
func StripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimSpace(strings.Trim(s, "`"))
	if len(s) >= 4 && strings.EqualFold(s[:4], "json") {
		s = strings.TrimSpace(s[4:])
	}
	return s
}
