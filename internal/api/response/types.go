package response

import (
	"time"

	"github.com/hmori/dopabalance/internal/model"
	"github.com/hmori/dopabalance/internal/services/entry"
	"github.com/hmori/dopabalance/internal/services/identity"
	"github.com/hmori/dopabalance/internal/services/report"
)

// LoginResponse is the response for the login endpoint
type LoginResponse struct {
	Resolution   string    `json:"resolution"`
	SessionToken string    `json:"session_token"`
	RealName     string    `json:"real_name"`
	Nickname     string    `json:"nickname"`
	Team         string    `json:"team"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// LoginResponseFromSession creates a LoginResponse from a session
func LoginResponseFromSession(s *identity.Session) LoginResponse {
	return LoginResponse{
		Resolution:   string(s.Resolution),
		SessionToken: s.Token,
		RealName:     s.Identity.RealName,
		Nickname:     s.Identity.Nickname,
		Team:         s.Identity.Team,
		ExpiresAt:    s.ExpiresAt,
	}
}

// Entry represents a saved entry in API responses. The credential snapshot
// never leaves the server.
type Entry struct {
	Nickname  string  `json:"nickname"`
	Team      string  `json:"team"`
	Date      string  `json:"date"`
	Points    float64 `json:"points"`
	EntryDate string  `json:"entry_date"`
}

// EntryFromModel converts a model.Entry to a response Entry
func EntryFromModel(e model.Entry) Entry {
	return Entry{
		Nickname:  e.Nickname,
		Team:      e.Team,
		Date:      e.Date.String(),
		Points:    e.Points,
		EntryDate: e.EntryDate.String(),
	}
}

// SubmitEntryResponse is the response after saving an entry
type SubmitEntryResponse struct {
	Score float64 `json:"score"`
	Entry Entry   `json:"entry"`
}

// SubmitEntryResponseFromResult converts an entry.SubmitResult
func SubmitEntryResponseFromResult(r *entry.SubmitResult) SubmitEntryResponse {
	return SubmitEntryResponse{
		Score: r.Score,
		Entry: EntryFromModel(r.Applied),
	}
}

// RankingRow is one leaderboard row
type RankingRow struct {
	Nickname string  `json:"nickname"`
	Team     string  `json:"team"`
	Total    float64 `json:"total"`
	Tier     string  `json:"tier"`
	Title    string  `json:"title"`
}

// RankingsResponse is the leaderboard
type RankingsResponse struct {
	Rankings []RankingRow `json:"rankings"`
}

// RankingsResponseFromRows converts report ranking rows
func RankingsResponseFromRows(rows []report.RankingRow) RankingsResponse {
	out := make([]RankingRow, len(rows))
	for i, r := range rows {
		out[i] = RankingRow{
			Nickname: r.Nickname,
			Team:     r.Team,
			Total:    r.Total,
			Tier:     string(r.Tier),
			Title:    r.Tier.Title(),
		}
	}
	return RankingsResponse{Rankings: out}
}

// TeamRow is one team-competition row
type TeamRow struct {
	Team      string  `json:"team"`
	MeanTotal float64 `json:"mean_total"`
}

// TeamRollupResponse is the team competition standing
type TeamRollupResponse struct {
	Teams []TeamRow `json:"teams"`
}

// TeamRollupResponseFromRows converts report team rows
func TeamRollupResponseFromRows(rows []report.TeamRow) TeamRollupResponse {
	out := make([]TeamRow, len(rows))
	for i, r := range rows {
		out[i] = TeamRow{Team: r.Team, MeanTotal: r.MeanTotal}
	}
	return TeamRollupResponse{Teams: out}
}

// SeriesPoint is one day of a personal trend series
type SeriesPoint struct {
	Date       string  `json:"date"`
	Points     float64 `json:"points"`
	Cumulative float64 `json:"cumulative"`
}

// ProfileResponse is the personal view
type ProfileResponse struct {
	Nickname string        `json:"nickname"`
	Team     string        `json:"team"`
	Total    float64       `json:"total"`
	Tier     string        `json:"tier"`
	Title    string        `json:"title"`
	Series   []SeriesPoint `json:"series"`
}

// ProfileResponseFromReport converts a report.Profile for one session
func ProfileResponseFromReport(p *report.Profile, ident model.Identity) ProfileResponse {
	series := make([]SeriesPoint, len(p.Series))
	for i, sp := range p.Series {
		series[i] = SeriesPoint{
			Date:       sp.Date.String(),
			Points:     sp.Points,
			Cumulative: sp.Cumulative,
		}
	}
	return ProfileResponse{
		Nickname: ident.Nickname,
		Team:     ident.Team,
		Total:    p.Total,
		Tier:     string(p.Tier),
		Title:    p.Tier.Title(),
		Series:   series,
	}
}

// CatalogItem is one selectable habit
type CatalogItem struct {
	Name   string `json:"name"`
	Weight int    `json:"weight"`
}

// CatalogResponse is the habit and team catalog
type CatalogResponse struct {
	Assets      []CatalogItem `json:"assets"`
	Liabilities []CatalogItem `json:"liabilities"`
	Bonuses     []CatalogItem `json:"bonuses"`
	Teams       []string      `json:"teams"`
	WindowDays  int           `json:"window_days"`
}

// CatalogResponseFromModel converts a model.Catalog
func CatalogResponseFromModel(c *model.Catalog, windowDays int) CatalogResponse {
	convert := func(items []model.Item) []CatalogItem {
		out := make([]CatalogItem, len(items))
		for i, item := range items {
			out[i] = CatalogItem{Name: item.Name, Weight: item.Weight}
		}
		return out
	}
	return CatalogResponse{
		Assets:      convert(c.Assets),
		Liabilities: convert(c.Liabilities),
		Bonuses:     convert(c.Bonuses),
		Teams:       c.Teams,
		WindowDays:  windowDays,
	}
}
