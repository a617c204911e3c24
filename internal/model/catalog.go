package model

import "fmt"

// Category groups habit items by how they affect the daily score
type Category string

const (
	CategoryAsset     Category = "asset"
	CategoryLiability Category = "liability"
	CategoryBonus     Category = "bonus"
)

// Item is one selectable habit with its point weight
type Item struct {
	Name   string `json:"name" toml:"name"`
	Weight int    `json:"weight" toml:"weight"`
}

// Catalog is the static habit and team configuration supplied at startup.
// It is immutable for the lifetime of the process.
type Catalog struct {
	Assets      []Item   `json:"assets" toml:"assets"`
	Liabilities []Item   `json:"liabilities" toml:"liabilities"`
	Bonuses     []Item   `json:"bonuses" toml:"bonuses"`
	Teams       []string `json:"teams" toml:"teams"`
}

// Selections are the items a user ticked for one entry
type Selections struct {
	Assets      []string `json:"assets"`
	Bonuses     []string `json:"bonuses"`
	Liabilities []string `json:"liabilities"`
}

// Weight looks up the point weight of an item within a category
func (c *Catalog) Weight(category Category, name string) (int, bool) {
	for _, item := range c.items(category) {
		if item.Name == name {
			return item.Weight, true
		}
	}
	return 0, false
}

// ValidTeam reports whether the team name is part of the catalog
func (c *Catalog) ValidTeam(name string) bool {
	for _, t := range c.Teams {
		if t == name {
			return true
		}
	}
	return false
}

// Validate checks structural invariants: no duplicate item names within a
// category, positive asset/bonus weights, negative liability weights, and a
// non-empty unique team list.
func (c *Catalog) Validate() error {
	for _, category := range []Category{CategoryAsset, CategoryLiability, CategoryBonus} {
		seen := make(map[string]bool)
		for _, item := range c.items(category) {
			if item.Name == "" {
				return fmt.Errorf("%s catalog contains an unnamed item", category)
			}
			if seen[item.Name] {
				return fmt.Errorf("duplicate %s item %q", category, item.Name)
			}
			seen[item.Name] = true

			switch {
			case category == CategoryLiability && item.Weight >= 0:
				return fmt.Errorf("liability %q must have a negative weight", item.Name)
			case category != CategoryLiability && item.Weight <= 0:
				return fmt.Errorf("%s %q must have a positive weight", category, item.Name)
			}
		}
	}

	if len(c.Teams) == 0 {
		return fmt.Errorf("team catalog is empty")
	}
	seen := make(map[string]bool)
	for _, t := range c.Teams {
		if t == "" {
			return fmt.Errorf("team catalog contains an empty name")
		}
		if seen[t] {
			return fmt.Errorf("duplicate team %q", t)
		}
		seen[t] = true
	}

	return nil
}

func (c *Catalog) items(category Category) []Item {
	switch category {
	case CategoryAsset:
		return c.Assets
	case CategoryLiability:
		return c.Liabilities
	case CategoryBonus:
		return c.Bonuses
	default:
		return nil
	}
}

// DefaultCatalog returns the built-in habit and team configuration
func DefaultCatalog() *Catalog {
	return &Catalog{
		Assets: []Item{
			{Name: "walking_per_1k_steps", Weight: 10},
			{Name: "taking_stairs", Weight: 30},
			{Name: "early_start", Weight: 50},
			{Name: "strength_training", Weight: 40},
			{Name: "sleep_7h_plus", Weight: 50},
			{Name: "no_phone_at_bedtime", Weight: 40},
			{Name: "veggies_first", Weight: 20},
			{Name: "alcohol_free_day", Weight: 50},
		},
		Liabilities: []Item{
			{Name: "doomscrolling", Weight: -30},
			{Name: "phone_in_bed", Weight: -50},
			{Name: "late_night_gaming", Weight: -60},
			{Name: "binge_eating", Weight: -40},
			{Name: "midnight_ramen", Weight: -50},
			{Name: "sitting_all_day", Weight: -30},
		},
		Bonuses: []Item{
			{Name: "urge_reset", Weight: 100},
			{Name: "detox_success", Weight: 80},
			{Name: "urge_to_exercise", Weight: 100},
		},
		Teams: []string{"red", "blue", "green", "yellow"},
	}
}
