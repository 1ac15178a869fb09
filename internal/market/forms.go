package market

import (
	"strings"

	"github.com/savioss/FreeSupplierBuyer/internal/models"
)

// Alert texts shown when a form is rejected.
const (
	LoginErrorText       = "Please provide your details to continue."
	RequirementAlertText = "Please fill out all fields."
	MessageAlertText     = "Please enter a message."
)

func blank(s string) bool { return strings.TrimSpace(s) == "" }

// ValidateRequirement reports every blank field of in as a *FieldError.
func ValidateRequirement(in models.RequirementInput) error {
	var missing []string
	for _, f := range []struct{ name, value string }{
		{"product", in.Product},
		{"description", in.Description},
		{"quantity", in.Quantity},
		{"destination", in.Destination},
	} {
		if blank(f.value) {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return &FieldError{Fields: missing}
	}
	return nil
}

func ValidateMessage(in models.MessageInput) error {
	if blank(in.Content) {
		return &FieldError{Fields: []string{"content"}}
	}
	return nil
}
