package card

import "github.com/google/uuid"

// Card stores only the masked form of the number; the full PAN never
// reaches persistence.
type Card struct {
	ID           uuid.UUID `json:"id"`
	UserID       uint      `json:"userId"`
	HolderName   string    `json:"holderName"`
	MaskedNumber string    `json:"maskedNumber"`
	ExpiryMonth  int       `json:"expiryMonth"`
	ExpiryYear   int       `json:"expiryYear"`
}

type NewCardInput struct {
	HolderName  string `json:"holderName"`
	Number      string `json:"number"`
	ExpiryMonth int    `json:"expiryMonth"`
	ExpiryYear  int    `json:"expiryYear"`
}
