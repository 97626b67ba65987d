// Package cart implements the in-memory quantity-per-product ledger. Unit
// prices are resolved against the current catalog record at read time, so a
// catalog price change propagates to an unpurchased cart.
package cart

import (
	log "github.com/sirupsen/logrus"

	"indusrobotix/storefront/internal/domain"
)

// PriceResolver looks up the current product record for a cart line. A nil
// result marks the line as a stale reference; totals skip it.
type PriceResolver func(productID string) *domain.Product

type Entry struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"` // Always >= 1; reaching 0 removes the entry
}

// Ledger maps product ids to quantities. Insertion order is preserved for
// display. The ledger is not safe for concurrent use; the owning session
// serializes access.
type Ledger struct {
	entries []Entry
	index   map[string]int
	maxQty  int
}

func NewLedger(maxQuantity int) *Ledger {
	if maxQuantity < 1 {
		maxQuantity = 10
	}
	return &Ledger{
		index:  make(map[string]int),
		maxQty: maxQuantity,
	}
}

// Add increments an existing line or creates one. Quantities clamp at the
// per-line cap; qty values below 1 count as 1.
func (l *Ledger) Add(productID string, qty int) {
	if qty < 1 {
		qty = 1
	}

	if i, ok := l.index[productID]; ok {
		l.entries[i].Quantity = min(l.entries[i].Quantity+qty, l.maxQty)
		return
	}

	l.entries = append(l.entries, Entry{ProductID: productID, Quantity: min(qty, l.maxQty)})
	l.index[productID] = len(l.entries) - 1
}

// SetQuantity replaces a line's quantity. A value <= 0 removes the line; a
// value above the cap clamps to it. Setting a quantity for an absent product
// creates the line.
func (l *Ledger) SetQuantity(productID string, qty int) {
	if qty <= 0 {
		l.Remove(productID)
		return
	}
	qty = min(qty, l.maxQty)

	if i, ok := l.index[productID]; ok {
		l.entries[i].Quantity = qty
		return
	}
	l.entries = append(l.entries, Entry{ProductID: productID, Quantity: qty})
	l.index[productID] = len(l.entries) - 1
}

// ChangeQuantity applies a signed delta to a line. Dropping to 0 or below
// removes the line; changing an absent line is a no-op.
func (l *Ledger) ChangeQuantity(productID string, delta int) {
	i, ok := l.index[productID]
	if !ok {
		return
	}
	l.SetQuantity(productID, l.entries[i].Quantity+delta)
}

func (l *Ledger) Remove(productID string) {
	i, ok := l.index[productID]
	if !ok {
		return
	}

	l.entries = append(l.entries[:i], l.entries[i+1:]...)
	delete(l.index, productID)
	for j := i; j < len(l.entries); j++ {
		l.index[l.entries[j].ProductID] = j
	}
}

func (l *Ledger) Clear() {
	l.entries = nil
	l.index = make(map[string]int)
}

// Count returns the sum of quantities across lines, the number shown in the
// cart badge.
func (l *Ledger) Count() int {
	total := 0
	for _, e := range l.entries {
		total += e.Quantity
	}
	return total
}

// Items returns the cart lines in insertion order.
func (l *Ledger) Items() []Entry {
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Total sums unit price times quantity across lines, resolving unit prices
// from the current catalog. Stale lines referencing missing products are
// skipped, never fatal.
func (l *Ledger) Total(resolve PriceResolver) int64 {
	var total int64
	for _, e := range l.entries {
		p := resolve(e.ProductID)
		if p == nil {
			log.Debugf("cart entry %s no longer in catalog, skipping", e.ProductID)
			continue
		}
		total += p.Pricing.FinalPrice * int64(e.Quantity)
	}
	return total
}
