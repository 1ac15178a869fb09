package models

import (
	"fmt"
	"time"
)

type Role string

const (
	RoleBuyer    Role = "Buyer"
	RoleSupplier Role = "Supplier"
)

// ParseRole accepts the role names as rendered in forms.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleBuyer, RoleSupplier:
		return Role(s), nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

func (r Role) Valid() bool {
	return r == RoleBuyer || r == RoleSupplier
}

type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
}

type Requirement struct {
	ID          string    `json:"id"`
	BuyerID     string    `json:"buyer_id"`
	BuyerName   string    `json:"buyer_name"`
	Product     string    `json:"product"`
	Description string    `json:"description"`
	Quantity    string    `json:"quantity"`    // free text, e.g. "5 Tons"
	Destination string    `json:"destination"` // port or city
	Timestamp   time.Time `json:"timestamp"`
}

type Message struct {
	ID            string    `json:"id"`
	RequirementID string    `json:"requirement_id"`
	SenderID      string    `json:"sender_id"`
	SenderName    string    `json:"sender_name"`
	ReceiverID    string    `json:"receiver_id"`
	Content       string    `json:"content"`
	Timestamp     time.Time `json:"timestamp"`
}

// RequirementInput is what a buyer submits; the rest is filled from the session.
type RequirementInput struct {
	Product     string `json:"product"`
	Description string `json:"description"`
	Quantity    string `json:"quantity"`
	Destination string `json:"destination"`
}

type MessageInput struct {
	Content       string `json:"content"`
	RequirementID string `json:"requirement_id"`
	ReceiverID    string `json:"receiver_id"`
}
