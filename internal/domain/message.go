package domain

import "time"

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type Suggestion struct {
	ID          string
	Label       string
	SearchQuery string
}

type QuickActionKind string

const (
	ActionContinueShopping QuickActionKind = "continue_shopping"
	ActionViewCart         QuickActionKind = "view_cart"
	ActionCheckout         QuickActionKind = "checkout"
)

type QuickAction struct {
	ID     string
	Label  string
	Action QuickActionKind
}

// Message is one entry of the chat history. Messages are never changed once appended.
type Message struct {
	ID            string
	Role          Role
	Text          string
	Timestamp     time.Time
	Products      []Product
	VendorGroups  []VendorGroup
	QuickActions  []QuickAction
	Suggestions   []Suggestion
	SearchContext string
	Voice         bool
}
