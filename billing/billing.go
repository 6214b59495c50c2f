// Package billing holds the pure money pipeline: subtotal, discount, VAT
// and grand total. All arithmetic is decimal, rounded to 2 places at every
// stage boundary so repeated recomputation never drifts.
package billing

import (
	"os"

	"github.com/shopspring/decimal"

	"github.com/haiminh/hotpot-pos/models"
)

// DefaultVATRate is the configured VAT rate, overridable with the VAT_RATE
// env var (e.g. "0.08").
var DefaultVATRate = decimal.NewFromFloat(0.08)

func init() {
	if raw := os.Getenv("VAT_RATE"); raw != "" {
		if rate, err := decimal.NewFromString(raw); err == nil && rate.IsPositive() {
			DefaultVATRate = rate
		}
	}
}

// Totals is the full checkout breakdown. Every field is rounded to 2
// decimal places.
type Totals struct {
	Subtotal      decimal.Decimal `json:"subtotal"`
	Discount      decimal.Decimal `json:"discount"`
	AfterDiscount decimal.Decimal `json:"after_discount"`
	VAT           decimal.Decimal `json:"vat"`
	GrandTotal    decimal.Decimal `json:"grand_total"`
}

// CalculateSubtotal sums price*quantity over items, skipping CANCELLED
// lines. Cancelled items never contribute to totals at any stage.
func CalculateSubtotal(items []models.OrderItem) decimal.Decimal {
	sum := decimal.Zero
	for _, item := range items {
		if item.Status == models.ItemCancelled {
			continue
		}
		sum = sum.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return sum.Round(2)
}

// ApplyDiscount reduces amount by the discount. PERCENT scales the amount,
// FIXED subtracts an absolute value clamped at zero. A nil discount leaves
// the amount unchanged.
func ApplyDiscount(amount decimal.Decimal, discount *models.Discount) decimal.Decimal {
	if discount == nil {
		return amount
	}
	if discount.Type == models.DiscountPercent {
		factor := decimal.NewFromInt(1).Sub(discount.Value.Div(decimal.NewFromInt(100)))
		return amount.Mul(factor).Round(2)
	}
	result := amount.Sub(discount.Value)
	if result.IsNegative() {
		return decimal.Zero
	}
	return result.Round(2)
}

// CalculateVAT returns base*rate rounded to 2 decimal places.
func CalculateVAT(base decimal.Decimal, rate decimal.Decimal) decimal.Decimal {
	return base.Mul(rate).Round(2)
}

// DiscountAmount is the absolute value a discount takes off the given
// subtotal.
func DiscountAmount(subtotal decimal.Decimal, discount *models.Discount) decimal.Decimal {
	return subtotal.Sub(ApplyDiscount(subtotal, discount)).Round(2)
}

// CalculateOrderTotal runs the full pipeline:
// subtotal -> after-discount -> VAT -> grand total.
func CalculateOrderTotal(items []models.OrderItem, discount *models.Discount, includeVAT bool) Totals {
	subtotal := CalculateSubtotal(items)
	afterDiscount := ApplyDiscount(subtotal, discount)
	vat := decimal.Zero
	if includeVAT {
		vat = CalculateVAT(afterDiscount, DefaultVATRate)
	}
	return Totals{
		Subtotal:      subtotal,
		Discount:      subtotal.Sub(afterDiscount).Round(2),
		AfterDiscount: afterDiscount,
		VAT:           vat,
		GrandTotal:    afterDiscount.Add(vat).Round(2),
	}
}

// ValidDiscount reports whether a discount is well formed: PERCENT within
// [0,100], FIXED non-negative.
func ValidDiscount(d models.Discount) bool {
	switch d.Type {
	case models.DiscountPercent:
		return !d.Value.IsNegative() && d.Value.LessThanOrEqual(decimal.NewFromInt(100))
	case models.DiscountFixed:
		return !d.Value.IsNegative()
	}
	return false
}
