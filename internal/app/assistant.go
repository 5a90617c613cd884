package app

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"sedi/internal/adapters/observability"
	"sedi/internal/domain"
)

type Status string

const (
	StatusOK            Status = "ok"
	StatusEmptyQuery    Status = "empty_query"
	StatusNotUnderstood Status = "not_understood"
	StatusNoResults     Status = "no_results"
)

// Message is the user-facing text for a status.
func (s Status) Message() string {
	switch s {
	case StatusEmptyQuery:
		return "Please describe what you're looking for to begin your search."
	case StatusNotUnderstood:
		return "We couldn't understand your preferences. Try rephrasing your request."
	case StatusNoResults:
		return "No matching hotels were found. Please adjust your preferences and try again."
	}
	return ""
}

type Result struct {
	SearchID    string              `json:"search_id"`
	Status      Status              `json:"status"`
	Message     string              `json:"message,omitempty"`
	Preferences *domain.Preferences `json:"preferences,omitempty"`
	Matches     []domain.Match      `json:"matches"`
}

// Assistant runs the whole text -> matches pipeline.
type Assistant struct {
	interp      domain.Interpreter
	search      *SearchService
	affiliateID string
	now         func() time.Time
}

// NewAssistant wires the pipeline. affiliateID is the default used when a run does not supply one.
func NewAssistant(i domain.Interpreter, s *SearchService, affiliateID string, now func() time.Time) *Assistant {
	if now == nil {
		now = time.Now
	}
	return &Assistant{interp: i, search: s, affiliateID: affiliateID, now: now}
}

// Run never returns an error; every failure maps to a Status.
func (a *Assistant) Run(ctx context.Context, text, affiliateID string) (res Result) {
	res = Result{SearchID: uuid.NewString(), Matches: []domain.Match{}}
	l := log.With().Str("search_id", res.SearchID).Logger()
	defer func() {
		res.Message = res.Status.Message()
		observability.ObservePipeline(string(res.Status))
	}()

	if strings.TrimSpace(text) == "" {
		res.Status = StatusEmptyQuery
		return res
	}

	prefs, err := a.interp.Extract(ctx, text)
	if err != nil || prefs == nil {
		ev := l.Warn()
		if errors.Is(err, domain.ErrCompletion) {
			ev = l.Error()
		}
		ev.Err(err).Msg("preference extraction failed")
		res.Status = StatusNotUnderstood
		return res
	}

	p := NormalizeDates(*prefs, a.now())
	res.Preferences = &p
	l.Info().
		Str("city", p.CityCode).
		Bool("geocode", p.HasCoordinates()).
		Str("check_in", p.CheckInDate).
		Str("check_out", p.CheckOutDate).
		Msg("preferences extracted")

	if affiliateID == "" {
		affiliateID = a.affiliateID
	}
	blocks := a.search.Search(ctx, p)
	res.Matches = FormatMatches(blocks, affiliateID)
	if len(res.Matches) == 0 {
		res.Status = StatusNoResults
		return res
	}

	l.Info().Int("hotels", len(blocks)).Int("matches", len(res.Matches)).Msg("search completed")
	res.Status = StatusOK
	return res
}
