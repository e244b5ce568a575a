package model

import (
	"encoding/json"
	"strings"
	"time"
)

// Category classifies a notification and drives filtering and icons.
type Category string

const (
	CategoryGovernance Category = "governance"
	CategorySecurity   Category = "security"
	CategoryAirdrop    Category = "airdrop"
	CategoryUpgrade    Category = "upgrade"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryGovernance,
	CategorySecurity,
	CategoryAirdrop,
	CategoryUpgrade,
}

// ParseCategory normalizes s and reports whether it names a known category.
func ParseCategory(s string) (Category, bool) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	switch c {
	case CategoryGovernance, CategorySecurity, CategoryAirdrop, CategoryUpgrade:
		return c, true
	}
	return "", false
}

// Priority is the urgency of a notification.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// AirdropStatus is the claim window state of an airdrop.
type AirdropStatus string

const (
	AirdropActive   AirdropStatus = "active"
	AirdropUpcoming AirdropStatus = "upcoming"
	AirdropExpired  AirdropStatus = "expired"
)

// AirdropDetails is the payload carried only by airdrop notifications.
type AirdropDetails struct {
	Status  AirdropStatus
	Amount  string
	EndDate string
}

// Notification is a single Web3 event surfaced to the user.
// Records are immutable once created; they are only ever deleted.
type Notification struct {
	// ID is unique within the repository.
	ID string

	Type        Category
	Title       string
	Description string

	// Timestamp is the creation instant in Unix milliseconds.
	Timestamp int64

	Priority  Priority
	ActionURL string

	// Airdrop is non-nil only when Type is CategoryAirdrop.
	Airdrop *AirdropDetails
}

// Time returns the creation instant.
func (n Notification) Time() time.Time {
	return time.UnixMilli(n.Timestamp)
}

// Normalize lower-cases the category and drops an airdrop payload
// attached to a non-airdrop record.
func (n Notification) Normalize() Notification {
	if c, ok := ParseCategory(string(n.Type)); ok {
		n.Type = c
	}
	if n.Type != CategoryAirdrop {
		n.Airdrop = nil
	}
	return n
}

// notificationJSON is the persisted shape: airdrop fields sit flat on the record.
type notificationJSON struct {
	ID            string        `json:"id"`
	Type          Category      `json:"type"`
	Title         string        `json:"title"`
	Description   string        `json:"description"`
	Timestamp     int64         `json:"timestamp"`
	Priority      Priority      `json:"priority"`
	ActionURL     string        `json:"actionUrl,omitempty"`
	AirdropStatus AirdropStatus `json:"airdropStatus,omitempty"`
	Amount        string        `json:"amount,omitempty"`
	EndDate       string        `json:"endDate,omitempty"`
}

// MarshalJSON flattens the airdrop payload into the record.
func (n Notification) MarshalJSON() ([]byte, error) {
	n = n.Normalize()
	out := notificationJSON{
		ID:          n.ID,
		Type:        n.Type,
		Title:       n.Title,
		Description: n.Description,
		Timestamp:   n.Timestamp,
		Priority:    n.Priority,
		ActionURL:   n.ActionURL,
	}
	if n.Airdrop != nil {
		out.AirdropStatus = n.Airdrop.Status
		out.Amount = n.Airdrop.Amount
		out.EndDate = n.Airdrop.EndDate
	}
	return json.Marshal(out)
}

// UnmarshalJSON reads the flat persisted shape. Airdrop fields found on a
// non-airdrop record are discarded.
func (n *Notification) UnmarshalJSON(data []byte) error {
	var in notificationJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*n = Notification{
		ID:          in.ID,
		Type:        in.Type,
		Title:       in.Title,
		Description: in.Description,
		Timestamp:   in.Timestamp,
		Priority:    in.Priority,
		ActionURL:   in.ActionURL,
	}
	if in.AirdropStatus != "" || in.Amount != "" || in.EndDate != "" {
		n.Airdrop = &AirdropDetails{
			Status:  in.AirdropStatus,
			Amount:  in.Amount,
			EndDate: in.EndDate,
		}
	}
	*n = n.Normalize()
	return nil
}
