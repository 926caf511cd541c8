// Package payments wraps the external payment processor behind a small
// provider interface so the booking flow never touches SDK types directly.
package payments

import "context"

// IntentStatus is the processor's intent lifecycle as an explicit enum.
// Confirmation switches on it exhaustively instead of comparing raw SDK
// strings.
type IntentStatus string

const (
	IntentStatusRequiresPaymentMethod IntentStatus = "requires_payment_method"
	IntentStatusRequiresConfirmation  IntentStatus = "requires_confirmation"
	IntentStatusRequiresAction        IntentStatus = "requires_action"
	IntentStatusProcessing            IntentStatus = "processing"
	IntentStatusRequiresCapture       IntentStatus = "requires_capture"
	IntentStatusCanceled              IntentStatus = "canceled"
	IntentStatusSucceeded             IntentStatus = "succeeded"
)

// Metadata keys stamped onto every intent so confirmation can verify the
// intent belongs to the requesting user and hotel.
const (
	MetadataHotelID = "hotel_id"
	MetadataUserID  = "user_id"
)

type Intent struct {
	ID           string
	ClientSecret string
	Amount       int64
	Status       IntentStatus
	Metadata     map[string]string
}

type Provider interface {
	CreateIntent(ctx context.Context, amount int64, metadata map[string]string) (*Intent, error)
	GetIntent(ctx context.Context, id string) (*Intent, error)
}
