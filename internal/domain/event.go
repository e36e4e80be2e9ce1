package domain

const (
	ItemCreated = "created"
	ItemDeleted = "deleted"
)

// ItemEvent is pushed to change feed subscribers after a write succeeds.
type ItemEvent struct {
	Type string `json:"type"`
	Item *Item  `json:"item,omitempty"`
	ID   string `json:"id,omitempty"`
}
