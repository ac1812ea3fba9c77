// Package pricing computes order totals in minor currency units.
package pricing

import (
	"github.com/festhq/gatekeeper/pkg/models"
	"github.com/shopspring/decimal"
)

// DefaultFeePercent is the platform fee applied to every order subtotal.
const DefaultFeePercent = 5.0

// Calculator applies the platform fee to order baskets.
//
// Rounding policy: fees on fractional minor-currency units round half away
// from zero (round-half-up for the positive amounts used here). The policy is
// fixed so that replaying ledger entries always reproduces the same totals.
type Calculator struct {
	feePercent decimal.Decimal
}

// NewCalculator creates a Calculator with the given fee percentage.
func NewCalculator(feePercent float64) Calculator {
	return Calculator{feePercent: decimal.NewFromFloat(feePercent)}
}

// Quote fills the UnitPrice of each item from the ticket type price lookup
// and returns subtotal, platform fee and total.
func (c Calculator) Quote(items []models.OrderItem, priceOf func(ticketTypeID string) int64) (subtotal, fees, total int64) {
	for i := range items {
		items[i].UnitPrice = priceOf(items[i].TicketTypeId)
		subtotal += items[i].UnitPrice * items[i].Quantity
	}
	fees = c.Fee(subtotal)
	return subtotal, fees, subtotal + fees
}

// Fee computes the platform fee for a subtotal.
func (c Calculator) Fee(subtotal int64) int64 {
	fee := decimal.NewFromInt(subtotal).
		Mul(c.feePercent).
		Div(decimal.NewFromInt(100)).
		Round(0)
	return fee.IntPart()
}
