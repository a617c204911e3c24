package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case LoginResult:
		o.printLoginResult(v)
	case SubmitResult:
		o.printSubmitResult(v)
	case Rankings:
		o.printRankings(v)
	case TeamRollup:
		o.printTeamRollup(v)
	case Profile:
		o.printProfile(v)
	case Catalog:
		o.printCatalog(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// LoginResult response type (matches API)
type LoginResult struct {
	Resolution   string `json:"resolution"`
	SessionToken string `json:"session_token"`
	RealName     string `json:"real_name"`
	Nickname     string `json:"nickname"`
	Team         string `json:"team"`
	ExpiresAt    string `json:"expires_at"`
}

// Entry response type
type Entry struct {
	Nickname  string  `json:"nickname"`
	Team      string  `json:"team"`
	Date      string  `json:"date"`
	Points    float64 `json:"points"`
	EntryDate string  `json:"entry_date"`
}

// SubmitResult response type
type SubmitResult struct {
	Score float64 `json:"score"`
	Entry Entry   `json:"entry"`
}

// RankingRow response type
type RankingRow struct {
	Nickname string  `json:"nickname"`
	Team     string  `json:"team"`
	Total    float64 `json:"total"`
	Tier     string  `json:"tier"`
	Title    string  `json:"title"`
}

// Rankings response type
type Rankings struct {
	Rankings []RankingRow `json:"rankings"`
}

// TeamRow response type
type TeamRow struct {
	Team      string  `json:"team"`
	MeanTotal float64 `json:"mean_total"`
}

// TeamRollup response type
type TeamRollup struct {
	Teams []TeamRow `json:"teams"`
}

// SeriesPoint response type
type SeriesPoint struct {
	Date       string  `json:"date"`
	Points     float64 `json:"points"`
	Cumulative float64 `json:"cumulative"`
}

// Profile response type
type Profile struct {
	Nickname string        `json:"nickname"`
	Team     string        `json:"team"`
	Total    float64       `json:"total"`
	Tier     string        `json:"tier"`
	Title    string        `json:"title"`
	Series   []SeriesPoint `json:"series"`
}

// CatalogItem response type
type CatalogItem struct {
	Name   string `json:"name"`
	Weight int    `json:"weight"`
}

// Catalog response type
type Catalog struct {
	Assets      []CatalogItem `json:"assets"`
	Liabilities []CatalogItem `json:"liabilities"`
	Bonuses     []CatalogItem `json:"bonuses"`
	Teams       []string      `json:"teams"`
	WindowDays  int           `json:"window_days"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printLoginResult(r LoginResult) {
	fmt.Printf("Logged in as %s (%s / team %s)\n", r.RealName, r.Nickname, r.Team)
	fmt.Printf("Resolution: %s\n", r.Resolution)
	fmt.Printf("Session expires: %s\n", r.ExpiresAt)
}

func (o *Output) printSubmitResult(r SubmitResult) {
	fmt.Printf("Saved %s: %+.1f points (%s / team %s)\n",
		r.Entry.Date, r.Score, r.Entry.Nickname, r.Entry.Team)
}

func (o *Output) printRankings(r Rankings) {
	if len(r.Rankings) == 0 {
		fmt.Println("No entries yet")
		return
	}
	for i, row := range r.Rankings {
		fmt.Printf("%3d. %-20s %-10s %8.1f  %s (%s)\n",
			i+1, row.Nickname, row.Team, row.Total, row.Tier, row.Title)
	}
}

func (o *Output) printTeamRollup(r TeamRollup) {
	if len(r.Teams) == 0 {
		fmt.Println("No entries yet")
		return
	}
	for i, row := range r.Teams {
		fmt.Printf("%3d. %-10s %8.1f\n", i+1, row.Team, row.MeanTotal)
	}
}

func (o *Output) printProfile(p Profile) {
	fmt.Printf("%s (team %s)\n", p.Nickname, p.Team)
	fmt.Printf("Total: %.1f points, %s (%s)\n", p.Total, p.Tier, p.Title)
	if len(p.Series) > 0 {
		fmt.Println()
		for _, sp := range p.Series {
			fmt.Printf("  %s  %+8.1f  (cumulative %.1f)\n", sp.Date, sp.Points, sp.Cumulative)
		}
	}
}

func (o *Output) printCatalog(c Catalog) {
	printItems := func(header string, items []CatalogItem) {
		fmt.Println(header)
		for _, item := range items {
			fmt.Printf("  %-25s %+d\n", item.Name, item.Weight)
		}
	}
	printItems("Assets:", c.Assets)
	printItems("Liabilities:", c.Liabilities)
	printItems("Bonuses:", c.Bonuses)
	fmt.Printf("Teams: %s\n", strings.Join(c.Teams, ", "))
	fmt.Printf("Backfill window: %d days\n", c.WindowDays)
}

func (o *Output) printHealthResult(r HealthResult) {
	fmt.Printf("Status: %s\n", r.Status)
}
