package wizard

import (
	"strconv"
	"strings"
	"time"

	"github.com/karansingh008/Tourizio/domain"
)

// CardInput carries the raw payment fields. They exist only for the duration
// of the submit request; nothing here is persisted or forwarded to a
// processor.
type CardInput struct {
	Number string `json:"cardNumber"`
	Expiry string `json:"cardExpiry"`
	CVV    string `json:"cardCvv"`
}

// FormatCardNumber keeps digits only, caps them at 16 and inserts a separator
// every 4: "1234567890123456" -> "1234-5678-9012-3456".
func FormatCardNumber(raw string) string {
	digits := DigitsOnly(raw)
	if len(digits) > 16 {
		digits = digits[:16]
	}

	var formatted strings.Builder
	for i, d := range digits {
		if i > 0 && i%4 == 0 {
			formatted.WriteByte('-')
		}
		formatted.WriteRune(d)
	}
	return formatted.String()
}

// FormatExpiry keeps digits only, caps them at 4 and renders MM/YY once two or
// more digits are present.
func FormatExpiry(raw string) string {
	digits := DigitsOnly(raw)
	if len(digits) > 4 {
		digits = digits[:4]
	}
	if len(digits) >= 2 {
		return digits[:2] + "/" + digits[2:]
	}
	return digits
}

// FormatCVV keeps digits only, capped at 3.
func FormatCVV(raw string) string {
	digits := DigitsOnly(raw)
	if len(digits) > 3 {
		digits = digits[:3]
	}
	return digits
}

// ExpiryFieldError is the inline month message shown while the expiry field is
// edited. Empty string means the value is not flagged yet.
func ExpiryFieldError(raw string) string {
	digits := DigitsOnly(raw)
	if len(digits) < 2 {
		return ""
	}
	month, _ := strconv.Atoi(digits[:2])
	if month == 0 {
		return "Month cannot be 0. Enter between 1 and 12."
	}
	if month > 12 {
		return "Month cannot be more than 12. Enter between 1 and 12."
	}
	return ""
}

// ValidateCard shapes the raw inputs and runs the submit-time checks. These
// are structural checks only; nothing is verified against a card network.
func ValidateCard(card CardInput, now time.Time) *StepError {
	number := FormatCardNumber(card.Number)
	expiry := FormatExpiry(card.Expiry)
	cvv := FormatCVV(card.CVV)

	// 16 digits plus three separators.
	if len(number) < 19 {
		return &StepError{Field: "cardNumber", Message: "Card Number must be 16 digits."}
	}

	if len(expiry) < 5 {
		return &StepError{Field: "cardExpiry", Message: "Expiry Date must be in MM/YY format."}
	}
	parts := strings.Split(expiry, "/")
	expMonth, _ := strconv.Atoi(parts[0])
	if expMonth == 0 || expMonth > 12 {
		return &StepError{Field: "cardExpiry", Message: "Expiry Month must be between 01 and 12."}
	}

	expYear, _ := strconv.Atoi(parts[1])
	currentYear := now.Year() % 100
	currentMonth := int(now.Month())
	if expYear < currentYear || (expYear == currentYear && expMonth < currentMonth) {
		return &StepError{Field: "cardExpiry", Message: "Card has expired."}
	}

	if len(cvv) < 3 {
		return &StepError{Field: "cardCvv", Message: "CVV must be 3 digits."}
	}

	return nil
}

// Submit validates the payment fields and assembles the final booking payload.
// On failure the wizard stays on Payment and no guest data is altered.
func (w *Wizard) Submit(card CardInput, now time.Time) (*domain.BookingRequest, error) {
	if w.Step != StepPayment {
		return nil, &StepError{Field: "", Message: "cannot submit from " + string(w.Step)}
	}

	if stepErr := ValidateCard(card, now); stepErr != nil {
		return nil, stepErr
	}

	guests := make([]domain.GuestRequest, 0, len(w.Guests))
	for _, guest := range w.Guests {
		guests = append(guests, domain.GuestRequest{
			FirstName: guest.FirstName,
			LastName:  guest.LastName,
			Age:       guest.Age,
			Gender:    guest.Gender,
		})
	}

	quote, _ := w.Quote()

	return &domain.BookingRequest{
		Destination: w.Destination,
		CheckIn:     w.CheckIn,
		CheckOut:    w.CheckOut,
		GuestsCount: strconv.Itoa(w.GuestsCount),
		Guests:      guests,
		Total:       quote.Display(),
	}, nil
}
