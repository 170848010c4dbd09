package wizard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var submitTime = time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)

func validCard() CardInput {
	return CardInput{Number: "1234567890123456", Expiry: "12/28", CVV: "123"}
}

func TestFormatCardNumber(t *testing.T) {
	assert.Equal(t, "1234-5678-9012-3456", FormatCardNumber("1234567890123456"))
	assert.Equal(t, "1234-5678-9012-3456", FormatCardNumber("1234 5678 9012 3456 789"))
	assert.Equal(t, "1234-567", FormatCardNumber("1234567"))
	assert.Equal(t, "", FormatCardNumber("abcd"))
}

func TestFormatExpiry(t *testing.T) {
	assert.Equal(t, "12/28", FormatExpiry("1228"))
	assert.Equal(t, "12/28", FormatExpiry("12/28"))
	assert.Equal(t, "12/2", FormatExpiry("122"))
	assert.Equal(t, "1", FormatExpiry("1"))
	assert.Equal(t, "12/34", FormatExpiry("123456"))
}

func TestFormatCVV(t *testing.T) {
	assert.Equal(t, "123", FormatCVV("123"))
	assert.Equal(t, "123", FormatCVV("12345"))
	assert.Equal(t, "12", FormatCVV("1x2"))
}

func TestExpiryFieldError(t *testing.T) {
	assert.Equal(t, "", ExpiryFieldError("1"))
	assert.Equal(t, "", ExpiryFieldError("12"))
	assert.Equal(t, "Month cannot be 0. Enter between 1 and 12.", ExpiryFieldError("00"))
	assert.Equal(t, "Month cannot be more than 12. Enter between 1 and 12.", ExpiryFieldError("13"))
}

func TestValidateCard(t *testing.T) {
	assert.Nil(t, ValidateCard(validCard(), submitTime))

	stepErr := ValidateCard(CardInput{Number: "123456789012345", Expiry: "12/28", CVV: "123"}, submitTime)
	require.NotNil(t, stepErr)
	assert.Equal(t, "cardNumber", stepErr.Field)
	assert.Equal(t, "Card Number must be 16 digits.", stepErr.Message)

	stepErr = ValidateCard(CardInput{Number: "1234567890123456", Expiry: "12", CVV: "123"}, submitTime)
	require.NotNil(t, stepErr)
	assert.Equal(t, "Expiry Date must be in MM/YY format.", stepErr.Message)

	stepErr = ValidateCard(CardInput{Number: "1234567890123456", Expiry: "13/28", CVV: "123"}, submitTime)
	require.NotNil(t, stepErr)
	assert.Equal(t, "Expiry Month must be between 01 and 12.", stepErr.Message)

	stepErr = ValidateCard(CardInput{Number: "1234567890123456", Expiry: "12/24", CVV: "123"}, submitTime)
	require.NotNil(t, stepErr)
	assert.Equal(t, "Card has expired.", stepErr.Message)

	// Same month as now is still valid.
	assert.Nil(t, ValidateCard(CardInput{Number: "1234567890123456", Expiry: "03/26", CVV: "123"}, submitTime))

	stepErr = ValidateCard(CardInput{Number: "1234567890123456", Expiry: "12/28", CVV: "12"}, submitTime)
	require.NotNil(t, stepErr)
	assert.Equal(t, "CVV must be 3 digits.", stepErr.Message)
}

func TestSubmit(t *testing.T) {
	w := filledWizard()
	_, err := w.Advance()
	require.NoError(t, err)
	require.NoError(t, w.Proceed())

	request, err := w.Submit(validCard(), submitTime)
	require.NoError(t, err)

	assert.Equal(t, "agra", request.Destination)
	assert.Equal(t, "2026-03-01", request.CheckIn)
	assert.Equal(t, "2026-03-04", request.CheckOut)
	assert.Equal(t, "2", request.GuestsCount)
	require.Len(t, request.Guests, 2)
	assert.Equal(t, "Asha", request.Guests[0].FirstName)
	assert.Equal(t, "₹15,000", request.Total)
}

func TestSubmit_WrongStep(t *testing.T) {
	w := filledWizard()

	_, err := w.Submit(validCard(), submitTime)
	assert.Error(t, err)
}

func TestSubmit_InvalidCardKeepsState(t *testing.T) {
	w := filledWizard()
	_, err := w.Advance()
	require.NoError(t, err)
	require.NoError(t, w.Proceed())

	_, err = w.Submit(CardInput{Number: "1234", Expiry: "12/28", CVV: "123"}, submitTime)
	require.Error(t, err)

	assert.Equal(t, StepPayment, w.Step)
	assert.Equal(t, "Asha", w.Guests[0].FirstName)
}
