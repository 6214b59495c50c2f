package combo

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/haiminh/hotpot-pos/models"
)

func surcharge(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func sampleGroups() []models.ComboGroup {
	return []models.ComboGroup{
		{
			ID: "broth", Title: "Broth", Min: 1, Max: 1,
			Options: []models.ComboOption{
				{ID: "b1", Name: "Spicy Sichuan"},
				{ID: "b2", Name: "Mushroom", Price: surcharge(20000)},
			},
		},
		{
			ID: "meats", Title: "Meats", Min: 2, Max: 2,
			Options: []models.ComboOption{
				{ID: "m1", Name: "Beef Brisket"},
				{ID: "m2", Name: "Lamb Shoulder"},
				{ID: "m3", Name: "Wagyu", Price: surcharge(50000)},
			},
		},
	}
}

func TestIsGroupValidBounds(t *testing.T) {
	group := models.ComboGroup{Min: 2, Max: 2}

	assert.False(t, IsGroupValid(group, 1))
	assert.True(t, IsGroupValid(group, 2))
	assert.False(t, IsGroupValid(group, 3))
}

func TestIsComboValid(t *testing.T) {
	groups := sampleGroups()

	valid := map[string][]string{
		"broth": {"Spicy Sichuan"},
		"meats": {"Beef Brisket", "Lamb Shoulder"},
	}
	assert.True(t, IsComboValid(groups, valid))

	missingMeat := map[string][]string{
		"broth": {"Spicy Sichuan"},
		"meats": {"Beef Brisket"},
	}
	assert.False(t, IsComboValid(groups, missingMeat))

	noBroth := map[string][]string{
		"meats": {"Beef Brisket", "Lamb Shoulder"},
	}
	assert.False(t, IsComboValid(groups, noBroth))
}

func TestIsComboValidNoGroups(t *testing.T) {
	assert.False(t, IsComboValid(nil, map[string][]string{}))
}

func TestToggleOptionRemovesSelected(t *testing.T) {
	group := models.ComboGroup{Min: 1, Max: 2}
	result := ToggleOption(group, []string{"A", "B"}, "A")
	assert.Equal(t, []string{"B"}, result)
}

func TestToggleOptionAddsUnderCapacity(t *testing.T) {
	group := models.ComboGroup{Min: 1, Max: 2}
	result := ToggleOption(group, []string{"A"}, "B")
	assert.Equal(t, []string{"A", "B"}, result)
}

func TestToggleOptionMaxOneReplaces(t *testing.T) {
	group := models.ComboGroup{Min: 1, Max: 1}
	result := ToggleOption(group, []string{"A"}, "B")
	assert.Equal(t, []string{"B"}, result)
}

func TestToggleOptionAtCapacityRejected(t *testing.T) {
	group := models.ComboGroup{Min: 1, Max: 2}
	result := ToggleOption(group, []string{"A", "B"}, "C")
	assert.Equal(t, []string{"A", "B"}, result)
}

func TestVariantPriceAddsSurcharges(t *testing.T) {
	groups := sampleGroups()
	base := decimal.NewFromInt(300000)

	price := VariantPrice(base, []string{"Mushroom", "Beef Brisket", "Wagyu"}, CatalogOf(groups))
	assert.True(t, decimal.NewFromInt(370000).Equal(price), "got %s", price)
}

func TestVariantPriceNoSurcharges(t *testing.T) {
	groups := sampleGroups()
	base := decimal.NewFromInt(300000)

	price := VariantPrice(base, []string{"Spicy Sichuan", "Beef Brisket"}, CatalogOf(groups))
	assert.True(t, base.Equal(price))
}

func TestFlattenSelectionsKeepsGroupOrder(t *testing.T) {
	groups := sampleGroups()
	selections := map[string][]string{
		"meats": {"Beef Brisket", "Lamb Shoulder"},
		"broth": {"Mushroom"},
	}

	flat := FlattenSelections(groups, selections)
	assert.Equal(t, []string{"Mushroom", "Beef Brisket", "Lamb Shoulder"}, flat)
}
