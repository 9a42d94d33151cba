package reports

import (
	"strings"
	"time"
)

// PeriodKind selects how far back a reporting window reaches.
type PeriodKind string

const (
	PeriodDaily        PeriodKind = "daily"
	PeriodWeekly       PeriodKind = "weekly"
	PeriodMonthly      PeriodKind = "monthly"
	PeriodQuarterly    PeriodKind = "quarterly"
	PeriodSemiAnnually PeriodKind = "semiannually"
	PeriodAnnually     PeriodKind = "annually"
)

// ReportingPeriod is the resolved date window for a report request.
// It is derived per request and never persisted.
type ReportingPeriod struct {
	Kind PeriodKind
	From time.Time
	To   time.Time
}

// ParseAsOf interprets a YYYY-MM-DD date string, falling back to today when
// the value is empty or unparseable.
func ParseAsOf(raw string, now time.Time) time.Time {
	if raw != "" {
		if t, err := time.Parse("2006-01-02", raw); err == nil {
			return t
		}
	}
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

// ResolvePeriod computes the window [From, To] for a period kind ending at the
// as-of date. Unknown kinds fall back to monthly.
func ResolvePeriod(kind string, asOf time.Time) ReportingPeriod {
	asOf = time.Date(asOf.Year(), asOf.Month(), asOf.Day(), 0, 0, 0, 0, asOf.Location())
	k := PeriodKind(strings.ToLower(strings.TrimSpace(kind)))
	var from time.Time
	switch k {
	case PeriodDaily:
		from = asOf
	case PeriodWeekly:
		// ISO week starts Monday.
		offset := (int(asOf.Weekday()) + 6) % 7
		from = asOf.AddDate(0, 0, -offset)
	case PeriodQuarterly:
		startMonth := time.Month((int(asOf.Month())-1)/3*3 + 1)
		from = time.Date(asOf.Year(), startMonth, 1, 0, 0, 0, 0, asOf.Location())
	case PeriodSemiAnnually:
		startMonth := time.January
		if asOf.Month() >= time.July {
			startMonth = time.July
		}
		from = time.Date(asOf.Year(), startMonth, 1, 0, 0, 0, 0, asOf.Location())
	case PeriodAnnually:
		from = time.Date(asOf.Year(), time.January, 1, 0, 0, 0, 0, asOf.Location())
	case PeriodMonthly:
		from = time.Date(asOf.Year(), asOf.Month(), 1, 0, 0, 0, 0, asOf.Location())
	default:
		k = PeriodMonthly
		from = time.Date(asOf.Year(), asOf.Month(), 1, 0, 0, 0, 0, asOf.Location())
	}
	return ReportingPeriod{Kind: k, From: from, To: asOf}
}

// Label renders the window as "2006-01-02 — 2006-01-02" for display.
func (p ReportingPeriod) Label() string {
	return p.From.Format("2006-01-02") + " — " + p.To.Format("2006-01-02")
}
