package domain

// Reserved category identifiers with built-in filter behavior.
const (
	CategoryAll = "all"
	CategoryNew = "new"
)

// CategoryRule is a declarative predicate for synthetic categories. A rule
// matches when the product price exceeds MinPrice (if set) or when the product
// carries any of the listed tags. Rules never embed executable logic.
type CategoryRule struct {
	MinPrice int64    `json:"min_price,omitempty" mapstructure:"min_price"` // Match products priced strictly above this
	AnyTag   []string `json:"any_tag,omitempty" mapstructure:"any_tag"`     // Match products carrying any of these tags
}

func (r *CategoryRule) Empty() bool {
	return r == nil || (r.MinPrice == 0 && len(r.AnyTag) == 0)
}

// Matches applies the rule to a product.
func (r *CategoryRule) Matches(p *Product) bool {
	if r == nil {
		return false
	}
	if r.MinPrice > 0 && p.Pricing.FinalPrice > r.MinPrice {
		return true
	}
	for _, tag := range r.AnyTag {
		if p.HasTag(tag) {
			return true
		}
	}
	return false
}

type CategoryDescriptor struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description,omitempty"`
	Order       int           `json:"order,omitempty"`
	Rule        *CategoryRule `json:"rule,omitempty"` // Synthetic categories only
}
