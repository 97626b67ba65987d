package domain

type AnnouncementType string

const (
	AnnouncementSingle    AnnouncementType = "single"
	AnnouncementMultiple  AnnouncementType = "multiple"
	AnnouncementPromotion AnnouncementType = "promotion"
)

type Priority string

const (
	PriorityUrgent Priority = "urgent"
	PriorityHigh   Priority = "high"
	PriorityNormal Priority = "normal"
)

// Rank orders priorities for display: urgent before high before normal.
func (p Priority) Rank() int {
	switch p {
	case PriorityUrgent:
		return 0
	case PriorityHigh:
		return 1
	default:
		return 2
	}
}

type Announcement struct {
	Type       AnnouncementType `json:"type"`
	Title      string           `json:"title"`
	Message    string           `json:"message"`
	ProductID  string           `json:"product_id,omitempty"`
	ValidUntil string           `json:"valid_until,omitempty"` // Promotions carry their own expiry
	Priority   Priority         `json:"priority"`
}
