package market

import (
	"time"

	"github.com/savioss/FreeSupplierBuyer/internal/models"
)

// SeedRequirements returns the demo requirements in read order (newest first).
// Every call returns a fresh slice.
func SeedRequirements() []models.Requirement {
	return []models.Requirement{
		{
			ID:          "req-1",
			BuyerID:     "buyer-1",
			BuyerName:   "Global Imports Inc.",
			Product:     "Organic Arabica Coffee Beans",
			Description: "Looking for high-quality, ethically sourced Arabica coffee beans. Must be certified organic. Initial order of 5 tons.",
			Quantity:    "5 Tons",
			Destination: "Port of Rotterdam, Netherlands",
			Timestamp:   time.Date(2023, 10, 26, 10, 0, 0, 0, time.UTC),
		},
		{
			ID:          "req-2",
			BuyerID:     "buyer-2",
			BuyerName:   "TechParts Direct",
			Product:     "High-Performance RAM Modules",
			Description: "Seeking DDR5 RAM modules, 16GB sticks, CL36 or better. Need 10,000 units for our next production run.",
			Quantity:    "10,000 Units",
			Destination: "San Francisco, CA, USA",
			Timestamp:   time.Date(2023, 10, 25, 14, 30, 0, 0, time.UTC),
		},
		{
			ID:          "req-3",
			BuyerID:     "buyer-1",
			BuyerName:   "Global Imports Inc.",
			Product:     "Hand-woven Cotton Textiles",
			Description: "Sourcing authentic, hand-woven cotton textiles from India. Various patterns and colors. Please provide catalog and pricing for bulk orders.",
			Quantity:    "5000 meters",
			Destination: "Port of Hamburg, Germany",
			Timestamp:   time.Date(2023, 10, 24, 9, 0, 0, 0, time.UTC),
		},
	}
}

// SeedMessages returns the demo messages in read order (oldest first).
func SeedMessages() []models.Message {
	return []models.Message{
		{
			ID:            "msg-1",
			RequirementID: "req-1",
			SenderID:      "supplier-1",
			SenderName:    "Andes Mountain Coffee Co.",
			ReceiverID:    "buyer-1",
			Content:       "Hello Global Imports, we can supply premium organic Arabica beans from our farms in Colombia. We are fully certified and can meet your quantity requirements. I've sent our spec sheet to your profile.",
			Timestamp:     time.Date(2023, 10, 26, 11, 0, 0, 0, time.UTC),
		},
		{
			ID:            "msg-2",
			RequirementID: "req-1",
			SenderID:      "supplier-2",
			SenderName:    "Ethiopian Sun Grains",
			ReceiverID:    "buyer-1",
			Content:       "We have excellent Yirgacheffe coffee beans available. They are known for their distinct floral notes. Can we send a sample?",
			Timestamp:     time.Date(2023, 10, 26, 12, 30, 0, 0, time.UTC),
		},
	}
}
