package pricing

import (
	"fmt"
	"math"
	"strconv"
	"time"
)

// Quote is the computed price for one booking attempt.
type Quote struct {
	RatePerNight int `json:"ratePerNight"`
	Nights       int `json:"nights"`
	GuestsCount  int `json:"guestsCount"`
	Total        int `json:"total"`
}

// Calculate returns the total for a stay. There is no valid price when either
// date is missing or check-out is not strictly after check-in; callers get
// ok=false and should display a zero total. Nights are the ceiling of the
// absolute day difference, so partial days round up.
func Calculate(ratePerNight int, checkIn, checkOut time.Time, guestsCount int) (Quote, bool) {
	if ratePerNight < 0 {
		ratePerNight = 0
	}
	if guestsCount < 1 {
		guestsCount = 1
	}

	if checkIn.IsZero() || checkOut.IsZero() || !checkOut.After(checkIn) {
		return Quote{}, false
	}

	diff := checkOut.Sub(checkIn)
	if diff < 0 {
		diff = -diff
	}
	nights := int(math.Ceil(diff.Hours() / 24))

	return Quote{
		RatePerNight: ratePerNight,
		Nights:       nights,
		GuestsCount:  guestsCount,
		Total:        ratePerNight * nights * guestsCount,
	}, true
}

// Display renders the total with the currency prefix, "₹0" when there is no
// valid price yet.
func (q Quote) Display() string {
	return FormatINR(q.Total)
}

// FormatINR renders an amount in Indian digit grouping with the rupee prefix:
// 15000 -> "₹15,000", 150000 -> "₹1,50,000". The last group has three digits,
// every group before it has two.
func FormatINR(amount int) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}

	digits := strconv.Itoa(amount)
	if len(digits) <= 3 {
		return fmt.Sprintf("₹%s%s", sign, digits)
	}

	grouped := digits[len(digits)-3:]
	rest := digits[:len(digits)-3]
	for len(rest) > 2 {
		grouped = rest[len(rest)-2:] + "," + grouped
		rest = rest[:len(rest)-2]
	}
	if rest != "" {
		grouped = rest + "," + grouped
	}

	return fmt.Sprintf("₹%s%s", sign, grouped)
}

// ParseDate parses the yyyy-mm-dd strings the booking form posts. A missing
// value parses to the zero time so Calculate rejects it.
func ParseDate(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}
	}
	return t
}
