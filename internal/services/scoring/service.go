package scoring

import (
	"github.com/hmori/dopabalance/internal/model"
)

// confessionFactor halves the liability sum's magnitude when the user
// owns up to their slips. It never touches the asset or bonus side.
const confessionFactor = 0.5

// Service computes entry scores from catalog item selections
type Service struct {
	catalog *model.Catalog
}

// New creates a new scoring Service
func New(catalog *model.Catalog) *Service {
	return &Service{catalog: catalog}
}

// Catalog returns the catalog the service scores against
func (s *Service) Catalog() *model.Catalog {
	return s.catalog
}

// Score computes one entry's point value:
//
//	Σ asset weights + Σ bonus weights + Σ liability weights × (0.5 if confess)
//
// Liability weights are negative, so confession strictly reduces the
// penalty. No clamping or rounding is applied. An unknown item name is a
// validation error, never silently ignored.
func (s *Service) Score(sel model.Selections, confess bool) (float64, error) {
	assets, err := s.sum(model.CategoryAsset, sel.Assets)
	if err != nil {
		return 0, err
	}
	bonuses, err := s.sum(model.CategoryBonus, sel.Bonuses)
	if err != nil {
		return 0, err
	}
	liabilities, err := s.sum(model.CategoryLiability, sel.Liabilities)
	if err != nil {
		return 0, err
	}

	factor := 1.0
	if confess {
		factor = confessionFactor
	}

	return assets + bonuses + liabilities*factor, nil
}

func (s *Service) sum(category model.Category, names []string) (float64, error) {
	total := 0.0
	for _, name := range names {
		weight, ok := s.catalog.Weight(category, name)
		if !ok {
			return 0, model.NewValidationError("unknown %s item %q", category, name)
		}
		total += float64(weight)
	}
	return total, nil
}
