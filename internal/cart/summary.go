package cart

import (
	"strings"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"indusrobotix/storefront/internal/domain"
)

// Discount is a display-only discount code. Percentage discounts carry a
// fraction in Amount (0.10 for 10%), fixed discounts a currency amount.
type Discount struct {
	Code        string
	Amount      decimal.Decimal
	Fixed       bool
	MinPurchase int64
}

// Shipping is an optional shipping line in the breakdown.
type Shipping struct {
	Name  string
	Price int64
	Days  string
}

type Line struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	UnitPrice int64  `json:"unit_price"`
	Quantity  int    `json:"quantity"`
	Subtotal  int64  `json:"subtotal"`
}

// Summary is the price breakdown for display. All derived amounts are exact
// decimals rendered as strings; no rounding surprises in JSON.
type Summary struct {
	Lines    []Line `json:"lines"`
	Count    int    `json:"count"`
	Subtotal string `json:"subtotal"`
	Discount string `json:"discount,omitempty"`
	Tax      string `json:"tax"`
	Shipping string `json:"shipping,omitempty"`
	Total    string `json:"total"`
	Warning  string `json:"warning,omitempty"`
}

// Calculator derives cart summaries from the ledger plus configured tax rate,
// discount codes and shipping options.
type Calculator struct {
	taxRate   decimal.Decimal
	discounts map[string]Discount
}

func NewCalculator(taxRate float64, discounts []Discount) *Calculator {
	idx := make(map[string]Discount, len(discounts))
	for _, d := range discounts {
		idx[strings.ToUpper(d.Code)] = d
	}
	return &Calculator{
		taxRate:   decimal.NewFromFloat(taxRate),
		discounts: idx,
	}
}

// HasDiscount reports whether a code is configured, case-insensitively.
func (c *Calculator) HasDiscount(code string) bool {
	_, ok := c.discounts[strings.ToUpper(code)]
	return ok
}

// Summarize builds the full breakdown. An unknown discount code yields a
// warning on the summary, not an error; a code below its minimum purchase is
// ignored the same way.
func (c *Calculator) Summarize(l *Ledger, resolve PriceResolver, discountCode string, shipping *Shipping) Summary {
	summary := Summary{Lines: make([]Line, 0, len(l.entries))}

	subtotal := decimal.Zero
	for _, e := range l.entries {
		p := resolve(e.ProductID)
		if p == nil {
			log.Debugf("cart entry %s no longer in catalog, skipping", e.ProductID)
			continue
		}
		lineTotal := p.Pricing.FinalPrice * int64(e.Quantity)
		summary.Lines = append(summary.Lines, Line{
			ProductID: e.ProductID,
			Name:      p.Name,
			UnitPrice: p.Pricing.FinalPrice,
			Quantity:  e.Quantity,
			Subtotal:  lineTotal,
		})
		summary.Count += e.Quantity
		subtotal = subtotal.Add(decimal.NewFromInt(lineTotal))
	}
	summary.Subtotal = subtotal.String()

	discount := decimal.Zero
	if discountCode != "" {
		d, ok := c.discounts[strings.ToUpper(discountCode)]
		switch {
		case !ok:
			summary.Warning = "unknown discount code"
		case subtotal.LessThan(decimal.NewFromInt(d.MinPurchase)):
			summary.Warning = "cart total below discount minimum"
		case d.Fixed:
			discount = d.Amount
		default:
			discount = subtotal.Mul(d.Amount)
		}
	}
	if discount.GreaterThan(subtotal) {
		discount = subtotal
	}
	if !discount.IsZero() {
		summary.Discount = discount.String()
	}

	taxed := subtotal.Sub(discount)
	tax := taxed.Mul(c.taxRate).Round(2)
	summary.Tax = tax.String()

	total := taxed.Add(tax)
	if shipping != nil {
		ship := decimal.NewFromInt(shipping.Price)
		summary.Shipping = ship.String()
		total = total.Add(ship)
	}
	summary.Total = total.String()

	return summary
}
