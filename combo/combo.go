// Package combo validates grouped option selections for combo menu items
// and prices the resulting variant.
package combo

import (
	"github.com/shopspring/decimal"

	"github.com/haiminh/hotpot-pos/models"
)

// IsGroupValid reports whether a group's selected count satisfies its
// cardinality bounds.
func IsGroupValid(group models.ComboGroup, selectedCount int) bool {
	return selectedCount >= group.Min && selectedCount <= group.Max
}

// IsComboValid reports whether every group's selection is within bounds.
// A combo with no groups is invalid: it cannot be ordered unconfigured.
// Selections are keyed by group ID.
func IsComboValid(groups []models.ComboGroup, selections map[string][]string) bool {
	if len(groups) == 0 {
		return false
	}
	for _, group := range groups {
		if !IsGroupValid(group, len(selections[group.ID])) {
			return false
		}
	}
	return true
}

// ToggleOption applies the picker contract to a group's selection set and
// returns the new set:
//   - toggling a selected option removes it
//   - toggling a new option adds it while under Max
//   - at capacity with Max 1, the new option replaces the old one
//   - at capacity with Max > 1, the toggle is rejected silently
func ToggleOption(group models.ComboGroup, selected []string, optionName string) []string {
	for i, name := range selected {
		if name == optionName {
			return append(append([]string{}, selected[:i]...), selected[i+1:]...)
		}
	}
	if len(selected) >= group.Max {
		if group.Max == 1 {
			return []string{optionName}
		}
		return selected
	}
	return append(append([]string{}, selected...), optionName)
}

// VariantPrice is the combo base price plus the surcharge of every selected
// option, matched by display name against the option catalog. Options
// without a surcharge contribute zero.
func VariantPrice(basePrice decimal.Decimal, selectedNames []string, catalog []models.ComboOption) decimal.Decimal {
	total := basePrice
	for _, name := range selectedNames {
		for _, opt := range catalog {
			if opt.Name == name && opt.Price != nil {
				total = total.Add(*opt.Price)
				break
			}
		}
	}
	return total
}

// CatalogOf flattens a combo's groups into a single option catalog.
func CatalogOf(groups []models.ComboGroup) []models.ComboOption {
	var catalog []models.ComboOption
	for _, group := range groups {
		catalog = append(catalog, group.Options...)
	}
	return catalog
}

// FlattenSelections collapses per-group selections into the display-string
// list carried on the order item, in group order.
func FlattenSelections(groups []models.ComboGroup, selections map[string][]string) []string {
	var flat []string
	for _, group := range groups {
		flat = append(flat, selections[group.ID]...)
	}
	return flat
}
