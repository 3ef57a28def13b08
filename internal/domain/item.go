package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type ItemType string

const (
	ItemTypeLost  ItemType = "LOST"
	ItemTypeFound ItemType = "FOUND"
)

// Opposite returns the counterpart type for the claim workflow.
func (t ItemType) Opposite() ItemType {
	if t == ItemTypeLost {
		return ItemTypeFound
	}
	return ItemTypeLost
}

func (t ItemType) Valid() bool {
	return t == ItemTypeLost || t == ItemTypeFound
}

type ItemStatus string

const (
	ItemStatusActive   ItemStatus = "ACTIVE"
	ItemStatusResolved ItemStatus = "RESOLVED"
)

// Item is a lost or found posting. The Type discriminant selects which
// of the variant fields apply: DateLost and Reward for LOST items,
// DateFound for FOUND items.
type Item struct {
	ID          uuid.UUID  `json:"id"`
	Type        ItemType   `json:"type"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	Location    string     `json:"location"`
	PostedAt    time.Time  `json:"posted_at"`
	Status      ItemStatus `json:"status"`
	OwnerID     uuid.UUID  `json:"owner_id"`
	ImagePath   *string    `json:"image_path,omitempty"`

	DateLost  *time.Time `json:"date_lost,omitempty"`
	Reward    *float64   `json:"reward,omitempty"`
	DateFound *time.Time `json:"date_found,omitempty"`
}

// Resolve moves the item to RESOLVED. The transition is one-way; a
// resolved item stays resolved.
func (i *Item) Resolve() {
	i.Status = ItemStatusResolved
}

// SearchCriteria filters items. A zero-value criteria matches every
// item. FromDate and ToDate are carried for the search form but are not
// consulted by Matches.
type SearchCriteria struct {
	Keywords string     `json:"keywords,omitempty"`
	Category string     `json:"category,omitempty"`
	Location string     `json:"location,omitempty"`
	Type     ItemType   `json:"type,omitempty"`
	FromDate *time.Time `json:"from_date,omitempty"`
	ToDate   *time.Time `json:"to_date,omitempty"`
}

// Matches reports whether the item satisfies every set field of the
// criteria. A nil criteria matches everything.
//
//   - Keywords: case-insensitive substring of title or description.
//   - Category: exact match as stored.
//   - Location: case-insensitive substring.
//   - Type: exact match on the item variant.
func (i *Item) Matches(c *SearchCriteria) bool {
	if c == nil {
		return true
	}
	if kw := strings.TrimSpace(c.Keywords); kw != "" {
		kw = strings.ToLower(kw)
		title := strings.ToLower(i.Title)
		desc := strings.ToLower(i.Description)
		if !strings.Contains(title, kw) && !strings.Contains(desc, kw) {
			return false
		}
	}
	if c.Category != "" && i.Category != c.Category {
		return false
	}
	if loc := strings.TrimSpace(c.Location); loc != "" {
		if !strings.Contains(strings.ToLower(i.Location), strings.ToLower(loc)) {
			return false
		}
	}
	if c.Type != "" && i.Type != c.Type {
		return false
	}
	return true
}
