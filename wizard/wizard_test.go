package wizard

import (
	"testing"

	"github.com/karansingh008/Tourizio/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func filledWizard() *Wizard {
	w := New()
	w.SetDestination("agra", 2500)
	w.SetDates("2026-03-01", "2026-03-04")
	w.SetGuestsCount("2")
	w.SetGuest(0, GuestRow{FirstName: "Asha", LastName: "Verma", Age: "30", Gender: domain.Female})
	w.SetGuest(1, GuestRow{FirstName: "Rohan", LastName: "Verma", Age: "34", Gender: domain.Male})
	return w
}

func TestNew(t *testing.T) {
	w := New()

	assert.Equal(t, StepDetails, w.Step)
	assert.Equal(t, 1, w.GuestsCount)
	require.Len(t, w.Guests, 1)
	assert.Equal(t, domain.Gender(domain.Male), w.Guests[0].Gender)
}

func TestInputCoercion(t *testing.T) {
	assert.Equal(t, "123", DigitsOnly("1a2b3c"))
	assert.Equal(t, "Asha Verma", LettersOnly("Asha Verma123!"))

	assert.Equal(t, 3, CoerceGuestCount("3"))
	assert.Equal(t, 1, CoerceGuestCount(""))
	assert.Equal(t, 1, CoerceGuestCount("0"))
	assert.Equal(t, 1, CoerceGuestCount("abc"))
	assert.Equal(t, 12, CoerceGuestCount("1x2"))
}

func TestSetGuestsCount_AlwaysDiscardsRoster(t *testing.T) {
	w := New()
	w.SetGuestsCount("2")
	w.SetGuest(0, GuestRow{FirstName: "Asha", LastName: "Verma", Age: "30"})

	// Same count still regenerates; entered rows are gone.
	w.SetGuestsCount("2")

	require.Len(t, w.Guests, 2)
	assert.Empty(t, w.Guests[0].FirstName)
}

func TestSetGuest_CoercesInput(t *testing.T) {
	w := New()

	err := w.SetGuest(0, GuestRow{FirstName: "Asha123", LastName: "Verma!", Age: "3x0", Gender: "Dragon"})
	require.NoError(t, err)

	assert.Equal(t, "Asha", w.Guests[0].FirstName)
	assert.Equal(t, "Verma", w.Guests[0].LastName)
	assert.Equal(t, "30", w.Guests[0].Age)
	assert.Equal(t, domain.Gender(domain.Male), w.Guests[0].Gender)

	err = w.SetGuest(5, GuestRow{})
	assert.Error(t, err)
}

func TestAgeFieldError(t *testing.T) {
	assert.Equal(t, "", AgeFieldError(""))
	assert.Equal(t, "", AgeFieldError("30"))
	assert.Equal(t, "", AgeFieldError("150"))
	assert.Equal(t, "Age cannot be 0. Enter between 1 and 150.", AgeFieldError("0"))
	assert.Equal(t, "Age cannot be more than 150. Enter between 1 and 150.", AgeFieldError("151"))
}

func TestAdvance_ValidationOrder(t *testing.T) {
	w := New()

	_, err := w.Advance()
	stepErr := requireStepError(t, err)
	assert.Equal(t, "destination", stepErr.Field)

	w.SetDestination("agra", 2500)
	_, err = w.Advance()
	stepErr = requireStepError(t, err)
	assert.Equal(t, "checkin", stepErr.Field)

	w.SetDates("2026-03-01", "")
	_, err = w.Advance()
	stepErr = requireStepError(t, err)
	assert.Equal(t, "checkout", stepErr.Field)

	w.SetDates("2026-03-01", "2026-03-04")
	_, err = w.Advance()
	stepErr = requireStepError(t, err)
	assert.Equal(t, "guests[0].firstName", stepErr.Field)
	assert.Equal(t, "Please enter First Name for Guest 1", stepErr.Message)

	w.SetGuest(0, GuestRow{FirstName: "Asha"})
	_, err = w.Advance()
	stepErr = requireStepError(t, err)
	assert.Equal(t, "guests[0].lastName", stepErr.Field)

	w.SetGuest(0, GuestRow{FirstName: "Asha", LastName: "Verma"})
	_, err = w.Advance()
	stepErr = requireStepError(t, err)
	assert.Equal(t, "guests[0].age", stepErr.Field)
	assert.Equal(t, "Please enter a valid Age (1-150) for Guest 1", stepErr.Message)
}

func TestAdvance_RejectsInvalidDateRange(t *testing.T) {
	w := New()
	w.SetDestination("agra", 2500)
	w.SetDates("2026-03-04", "2026-03-01")
	w.SetGuest(0, GuestRow{FirstName: "Asha", LastName: "Verma", Age: "30"})

	_, err := w.Advance()
	stepErr := requireStepError(t, err)
	assert.Equal(t, "checkout", stepErr.Field)
	assert.Equal(t, "Please select valid dates and destination.", stepErr.Message)
	assert.Equal(t, StepDetails, w.Step)
}

func TestAdvance_SnapshotsReview(t *testing.T) {
	w := filledWizard()

	snapshot, err := w.Advance()
	require.NoError(t, err)

	assert.Equal(t, StepReview, w.Step)
	assert.Equal(t, "agra", snapshot.Destination)
	assert.Equal(t, "2026-03-01 to 2026-03-04", snapshot.DateRange)
	assert.Equal(t, 3, snapshot.Nights)
	assert.Equal(t, 2, snapshot.GuestsCount)
	assert.Equal(t, "₹15,000", snapshot.Total)
	assert.Equal(t, []string{"Asha Verma", "Rohan Verma"}, snapshot.GuestNames)
}

func TestEditAndProceed(t *testing.T) {
	w := filledWizard()

	// No backward or forward jumps outside the allowed transitions.
	assert.Error(t, w.Edit())
	assert.Error(t, w.Proceed())

	_, err := w.Advance()
	require.NoError(t, err)

	require.NoError(t, w.Edit())
	assert.Equal(t, StepDetails, w.Step)
	assert.Equal(t, "Asha", w.Guests[0].FirstName)

	_, err = w.Advance()
	require.NoError(t, err)
	require.NoError(t, w.Proceed())
	assert.Equal(t, StepPayment, w.Step)

	// There is no way back from Payment.
	assert.Error(t, w.Edit())
}

func requireStepError(t *testing.T, err error) *StepError {
	t.Helper()
	require.Error(t, err)
	stepErr, ok := err.(*StepError)
	require.True(t, ok, "expected a StepError, got %T", err)
	return stepErr
}
