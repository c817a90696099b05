package service

import (
	"strings"

	"github.com/ahoin001/soma/internal/model"
)

// ServingSet builds the resolvable serving options for a food: the food's
// own base portion first (exactly one base option per set), then gram and
// ounce weight units, then any brand-declared custom servings fetched from
// the catalog. Customs without a usable gram weight are excluded.
func ServingSet(food model.FoodItem, customs []model.ServingOption) []model.ServingOption {
	baseLabel := strings.TrimSpace(food.Portion)
	if baseLabel == "" {
		baseLabel = "1 serving"
	}
	base := model.ServingOption{ID: "base", Label: baseLabel, Kind: model.ServingKindBase}
	if grams, ok := BasePortionGrams(food); ok {
		// kept for display ("1 cup · 240 g"); resolution still treats the
		// base option by count, not weight
		base.GramsPer = grams
	}

	options := []model.ServingOption{
		base,
		{ID: "g", Label: "Grams", GramsPer: 1, Kind: model.ServingKindWeight},
		{ID: "oz", Label: "Ounces", GramsPer: 28.3495, Kind: model.ServingKindWeight},
	}
	for _, c := range customs {
		if c.GramsPer <= 0 {
			continue
		}
		c.Kind = model.ServingKindCustom
		options = append(options, c)
	}
	return options
}

// FindServing locates an option by id or case-insensitive label.
func FindServing(options []model.ServingOption, idOrLabel string) (model.ServingOption, bool) {
	needle := normalizeName(idOrLabel)
	for _, o := range options {
		if normalizeName(o.ID) == needle || normalizeName(o.Label) == needle {
			return o, true
		}
	}
	return model.ServingOption{}, false
}
