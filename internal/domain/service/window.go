package service

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/diegoclair/oncall-phone-agent/internal/domain"
	"github.com/diegoclair/oncall-phone-agent/internal/domain/entity"
)

// referenceLayouts are tried in order; layouts without a zone are read in the local zone.
var referenceLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05-0700",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ResolveReference turns the literal given on the command line into the run's reference time.
func ResolveReference(literal string, now time.Time, loc *time.Location) (time.Time, error) {
	value := strings.TrimSpace(literal)
	if slices.Contains(domain.NowSentinels, strings.ToLower(value)) {
		return now.In(loc), nil
	}

	for _, layout := range referenceLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("%w: %q", domain.ErrInvalidReference, literal)
}

// ResolveWindow returns [reference - lookahead, reference + lookahead].
func ResolveWindow(reference time.Time, lookahead time.Duration) entity.TimeWindow {
	if lookahead < 0 {
		lookahead = -lookahead
	}
	return entity.TimeWindow{
		Start: reference.Add(-lookahead),
		End:   reference.Add(lookahead),
	}
}
