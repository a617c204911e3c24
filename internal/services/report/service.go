package report

import (
	"context"
	"log/slog"
	"sort"

	"github.com/hmori/dopabalance/internal/ledger"
	"github.com/hmori/dopabalance/internal/model"
)

// Service computes leaderboards and personal trend views from ledger
// snapshots. Every read recomputes from raw entries; nothing derived is
// ever trusted from storage.
type Service struct {
	store  ledger.Store
	logger *slog.Logger
}

// New creates a new report Service
func New(store ledger.Store, logger *slog.Logger) *Service {
	return &Service{store: store, logger: logger}
}

// Total is one (nickname, team) group's summed points. Rankings group by
// nickname and team rather than real name so real names never appear in a
// displayed ranking; two identities sharing a nickname and team collapse
// into one row (accepted collision risk).
type Total struct {
	Nickname string
	Team     string
	Total    float64
}

// RankingRow is one leaderboard row
type RankingRow struct {
	Nickname string
	Team     string
	Total    float64
	Tier     Tier
}

// TeamRow is one team-competition row
type TeamRow struct {
	Team      string
	MeanTotal float64
}

// SeriesPoint is one day of a personal trend series
type SeriesPoint struct {
	Date       model.Date
	Points     float64
	Cumulative float64
}

// Profile is one identity's personal view
type Profile struct {
	RealName string
	Total    float64
	Tier     Tier
	Series   []SeriesPoint
}

// Rankings returns the leaderboard, highest total first
func (s *Service) Rankings(ctx context.Context) ([]RankingRow, error) {
	records := s.records(ctx)
	totals := Rank(Totals(records))
	rows := make([]RankingRow, len(totals))
	for i, t := range totals {
		rows[i] = RankingRow{
			Nickname: t.Nickname,
			Team:     t.Team,
			Total:    t.Total,
			Tier:     TierFor(t.Total),
		}
	}
	return rows, nil
}

// TeamRollup returns mean totals per team, highest first
func (s *Service) TeamRollup(ctx context.Context) ([]TeamRow, error) {
	records := s.records(ctx)
	return Rollup(Totals(records)), nil
}

// Profile returns one identity's cumulative total, tier and trend series.
// Unlike rankings, profiles are keyed by real name; the caller is expected
// to have authenticated the identity.
func (s *Service) Profile(ctx context.Context, realName string) (*Profile, error) {
	if realName == "" {
		return nil, model.NewValidationError("real name is required")
	}

	records := s.records(ctx)
	series := CumulativeSeries(records, realName)

	total := 0.0
	if len(series) > 0 {
		total = series[len(series)-1].Cumulative
	}

	return &Profile{
		RealName: realName,
		Total:    total,
		Tier:     TierFor(total),
		Series:   series,
	}, nil
}

// records reads a snapshot for display. An unavailable store degrades to
// an empty view, logged as a distinct condition from a genuinely empty
// ledger; only display reads get this treatment, writes never do.
func (s *Service) records(ctx context.Context) []ledger.Record {
	snap, err := s.store.ReadAll(ctx)
	if err != nil {
		s.logger.Warn("ledger store unavailable, serving empty view",
			slog.String("error", err.Error()),
		)
		return nil
	}
	return snap.Records
}

// Totals sums points per (nickname, team) group in first-appearance order
func Totals(records []ledger.Record) []Total {
	type key struct {
		nickname string
		team     string
	}
	index := make(map[key]int)
	var totals []Total
	for _, r := range records {
		k := key{nickname: r.Nickname, team: r.Team}
		i, ok := index[k]
		if !ok {
			i = len(totals)
			index[k] = i
			totals = append(totals, Total{Nickname: r.Nickname, Team: r.Team})
		}
		totals[i].Total += r.Points
	}
	return totals
}

// Rank orders totals descending; ties keep their input order, there is no
// secondary key.
func Rank(totals []Total) []Total {
	ranked := make([]Total, len(totals))
	copy(ranked, totals)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Total > ranked[j].Total
	})
	return ranked
}

// Rollup averages group totals per team, ordered descending by mean
func Rollup(totals []Total) []TeamRow {
	index := make(map[string]int)
	var sums []TeamRow
	counts := make([]int, 0)
	for _, t := range totals {
		i, ok := index[t.Team]
		if !ok {
			i = len(sums)
			index[t.Team] = i
			sums = append(sums, TeamRow{Team: t.Team})
			counts = append(counts, 0)
		}
		sums[i].MeanTotal += t.Total
		counts[i]++
	}
	for i := range sums {
		sums[i].MeanTotal /= float64(counts[i])
	}
	sort.SliceStable(sums, func(i, j int) bool {
		return sums[i].MeanTotal > sums[j].MeanTotal
	})
	return sums
}

// CumulativeSeries computes the date-ordered running sum for one identity,
// always from the raw entries: a persisted running total would drift when
// entries are edited out of chronological order.
func CumulativeSeries(records []ledger.Record, realName string) []SeriesPoint {
	entries := ledger.EntriesFor(records, realName)
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date.Before(entries[j].Date)
	})

	series := make([]SeriesPoint, 0, len(entries))
	running := 0.0
	for _, e := range entries {
		running += e.Points
		series = append(series, SeriesPoint{
			Date:       e.Date,
			Points:     e.Points,
			Cumulative: running,
		})
	}
	return series
}
