package wizard

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/karansingh008/Tourizio/domain"
	"github.com/karansingh008/Tourizio/pricing"
)

type Step string

const (
	StepDetails Step = "Details"
	StepReview  Step = "Review"
	StepPayment Step = "Payment"
)

// StepError is a blocking validation failure. Field names the input that
// should receive focus; validation stops at the first failure.
type StepError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *StepError) Error() string {
	return e.Message
}

type GuestRow struct {
	FirstName string        `json:"firstName"`
	LastName  string        `json:"lastName"`
	Age       string        `json:"age"`
	Gender    domain.Gender `json:"gender"`
}

// ReviewSnapshot is display-only. It is taken when the wizard advances and is
// not re-validated against later edits.
type ReviewSnapshot struct {
	Destination string   `json:"destination"`
	DateRange   string   `json:"dateRange"`
	Nights      int      `json:"nights"`
	GuestsCount int      `json:"guestsCount"`
	Total       string   `json:"total"`
	GuestNames  []string `json:"guestNames"`
}

// Wizard drives one booking attempt through Details, Review and Payment. It is
// serialized into the session cache between requests and discarded on submit.
type Wizard struct {
	Step         Step            `json:"step"`
	Destination  string          `json:"destination"`
	RatePerNight int             `json:"ratePerNight"`
	CheckIn      string          `json:"checkin"`
	CheckOut     string          `json:"checkout"`
	GuestsCount  int             `json:"guestsCount"`
	Guests       []GuestRow      `json:"guests"`
	Review       *ReviewSnapshot `json:"review,omitempty"`
}

func New() *Wizard {
	w := &Wizard{
		Step:        StepDetails,
		GuestsCount: 1,
	}
	w.regenerateGuests()
	return w
}

var (
	nonDigits    = regexp.MustCompile(`[^0-9]`)
	nonNameChars = regexp.MustCompile(`[^a-zA-Z\s]`)
)

// DigitsOnly strips everything that is not a digit, the way numeric inputs are
// restricted as the user types.
func DigitsOnly(value string) string {
	return nonDigits.ReplaceAllString(value, "")
}

// LettersOnly strips everything that is not a letter or space.
func LettersOnly(value string) string {
	return nonNameChars.ReplaceAllString(value, "")
}

// CoerceGuestCount turns raw guest-count input into a positive integer.
// Non-numeric characters are dropped; empty or sub-1 input becomes 1.
func CoerceGuestCount(raw string) int {
	digits := DigitsOnly(raw)
	count, err := strconv.Atoi(digits)
	if err != nil || count < 1 {
		return 1
	}
	return count
}

func (w *Wizard) SetDestination(id string, ratePerNight int) {
	w.Destination = id
	w.RatePerNight = ratePerNight
}

func (w *Wizard) SetDates(checkIn, checkOut string) {
	w.CheckIn = checkIn
	w.CheckOut = checkOut
}

// SetGuestsCount regenerates the roster for the requested count. Regeneration
// always discards previously entered rows, even when the count is unchanged.
func (w *Wizard) SetGuestsCount(raw string) {
	w.GuestsCount = CoerceGuestCount(raw)
	w.regenerateGuests()
}

func (w *Wizard) regenerateGuests() {
	rows := make([]GuestRow, w.GuestsCount)
	for i := range rows {
		rows[i] = GuestRow{Gender: domain.Male}
	}
	w.Guests = rows
}

// SetGuest fills one roster row, applying the same input restrictions the form
// applies while typing.
func (w *Wizard) SetGuest(index int, row GuestRow) error {
	if index < 0 || index >= len(w.Guests) {
		return fmt.Errorf("guest index %d out of range", index)
	}
	if row.Gender != domain.Male && row.Gender != domain.Female && row.Gender != domain.Other {
		row.Gender = domain.Male
	}
	w.Guests[index] = GuestRow{
		FirstName: LettersOnly(row.FirstName),
		LastName:  LettersOnly(row.LastName),
		Age:       DigitsOnly(row.Age),
		Gender:    row.Gender,
	}
	return nil
}

// AgeFieldError is the inline per-row message shown while the age field is
// edited. Empty string means the value is not flagged.
func AgeFieldError(raw string) string {
	if raw == "" {
		return ""
	}
	age, err := strconv.Atoi(raw)
	if err != nil {
		return ""
	}
	if age == 0 {
		return "Age cannot be 0. Enter between 1 and 150."
	}
	if age > 150 {
		return "Age cannot be more than 150. Enter between 1 and 150."
	}
	return ""
}

// Quote recomputes the price from the current inputs. It never caches.
func (w *Wizard) Quote() (pricing.Quote, bool) {
	return pricing.Calculate(w.RatePerNight, pricing.ParseDate(w.CheckIn), pricing.ParseDate(w.CheckOut), w.GuestsCount)
}

func (w *Wizard) validateDetails() *StepError {
	if w.Destination == "" {
		return &StepError{Field: "destination", Message: "Please select a destination."}
	}
	if w.CheckIn == "" {
		return &StepError{Field: "checkin", Message: "Please select a check-in date."}
	}
	if w.CheckOut == "" {
		return &StepError{Field: "checkout", Message: "Please select a check-out date."}
	}

	for i, guest := range w.Guests {
		if strings.TrimSpace(guest.FirstName) == "" {
			return &StepError{
				Field:   fmt.Sprintf("guests[%d].firstName", i),
				Message: fmt.Sprintf("Please enter First Name for Guest %d", i+1),
			}
		}
		if strings.TrimSpace(guest.LastName) == "" {
			return &StepError{
				Field:   fmt.Sprintf("guests[%d].lastName", i),
				Message: fmt.Sprintf("Please enter Last Name for Guest %d", i+1),
			}
		}
		age, err := strconv.Atoi(guest.Age)
		if err != nil || age < 1 || age > 150 {
			return &StepError{
				Field:   fmt.Sprintf("guests[%d].age", i),
				Message: fmt.Sprintf("Please enter a valid Age (1-150) for Guest %d", i+1),
			}
		}
	}

	return nil
}

// Advance moves Details -> Review. It runs the full ordered validation, then
// requires a non-zero recomputed total, then snapshots the review view.
func (w *Wizard) Advance() (*ReviewSnapshot, error) {
	if w.Step != StepDetails {
		return nil, fmt.Errorf("cannot advance from %s", w.Step)
	}

	if stepErr := w.validateDetails(); stepErr != nil {
		return nil, stepErr
	}

	quote, ok := w.Quote()
	if !ok || quote.Total == 0 {
		return nil, &StepError{Field: "checkout", Message: "Please select valid dates and destination."}
	}

	names := make([]string, 0, len(w.Guests))
	for _, guest := range w.Guests {
		names = append(names, fmt.Sprintf("%s %s", guest.FirstName, guest.LastName))
	}

	w.Review = &ReviewSnapshot{
		Destination: w.Destination,
		DateRange:   fmt.Sprintf("%s to %s", w.CheckIn, w.CheckOut),
		Nights:      quote.Nights,
		GuestsCount: quote.GuestsCount,
		Total:       quote.Display(),
		GuestNames:  names,
	}
	w.Step = StepReview
	return w.Review, nil
}

// Edit returns to Details with all entered values intact.
func (w *Wizard) Edit() error {
	if w.Step != StepReview {
		return fmt.Errorf("cannot edit from %s", w.Step)
	}
	w.Step = StepDetails
	return nil
}

// Proceed moves Review -> Payment unconditionally.
func (w *Wizard) Proceed() error {
	if w.Step != StepReview {
		return fmt.Errorf("cannot proceed from %s", w.Step)
	}
	w.Step = StepPayment
	return nil
}
