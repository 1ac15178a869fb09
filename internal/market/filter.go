package market

import (
	"strings"

	"github.com/savioss/FreeSupplierBuyer/internal/models"
)

// Projections below never modify their input and are recomputed on every read.

// Mine keeps the requirements posted by userID, in input order.
func Mine(reqs []models.Requirement, userID string) []models.Requirement {
	var out []models.Requirement
	for _, r := range reqs {
		if r.BuyerID == userID {
			out = append(out, r)
		}
	}
	return out
}

// Search matches query case-insensitively against product or description.
// A blank query returns reqs as is.
func Search(reqs []models.Requirement, query string) []models.Requirement {
	if strings.TrimSpace(query) == "" {
		return reqs
	}
	q := strings.ToLower(query)
	var out []models.Requirement
	for _, r := range reqs {
		if strings.Contains(strings.ToLower(r.Product), q) ||
			strings.Contains(strings.ToLower(r.Description), q) {
			out = append(out, r)
		}
	}
	return out
}

// AddressedTo keeps the messages received by userID.
func AddressedTo(msgs []models.Message, userID string) []models.Message {
	var out []models.Message
	for _, m := range msgs {
		if m.ReceiverID == userID {
			out = append(out, m)
		}
	}
	return out
}

// GroupByRequirement partitions msgs by requirement id. Each group keeps the
// relative order of msgs.
func GroupByRequirement(msgs []models.Message) map[string][]models.Message {
	groups := make(map[string][]models.Message)
	for _, m := range msgs {
		groups[m.RequirementID] = append(groups[m.RequirementID], m)
	}
	return groups
}

// Thread is one section of the buyer's message panel.
type Thread struct {
	Requirement models.Requirement `json:"requirement"`
	Messages    []models.Message   `json:"messages"`
}

// Threads orders groups by reqs, skipping requirements without messages and
// groups whose requirement is not in reqs.
func Threads(reqs []models.Requirement, groups map[string][]models.Message) []Thread {
	var out []Thread
	for _, r := range reqs {
		if msgs := groups[r.ID]; len(msgs) > 0 {
			out = append(out, Thread{Requirement: r, Messages: msgs})
		}
	}
	return out
}
