package checkout

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/quickhaul/quote-backend/internal/quote"
)

// MinimumAmountCents is Stripe's smallest chargeable USD amount.
// Anything below it is rejected before the provider is called.
const MinimumAmountCents = 50

// ErrAmountTooLow rejects quotes under the provider minimum.
var ErrAmountTooLow = errors.New("quoted amount is below the minimum chargeable amount")

// maxSummaryLen caps the order summary shown on the hosted checkout
// page. When over budget the first-stop address is what gets truncated.
const maxSummaryLen = 200

// AmountCents converts a dollar quote to minor currency units.
func AmountCents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// BuildSummary assembles the human-readable order line shown at
// checkout: stop count, distance, pickup date/time, vehicle, and the
// first-stop address.
func BuildSummary(sub *quote.Submission) string {
	parts := []string{fmt.Sprintf("%d stops", len(sub.StopsData))}
	if miles, ok := sub.Miles(); ok {
		parts = append(parts, fmt.Sprintf("%.1f mi", miles))
	}
	if date := strings.TrimSpace(sub.ServiceDetails.PickupDate); date != "" {
		if at := strings.TrimSpace(sub.ServiceDetails.PickupTime); at != "" {
			date += " " + at
		}
		parts = append(parts, date)
	}
	if vehicle := strings.TrimSpace(sub.ServiceDetails.VehicleType); vehicle != "" {
		parts = append(parts, vehicle)
	}
	fixed := "Delivery quote: " + strings.Join(parts, ", ")

	var address string
	if len(sub.StopsData) > 0 {
		address = strings.TrimSpace(sub.StopsData[0].Address)
	}
	if address == "" {
		if len(fixed) > maxSummaryLen {
			return fixed[:maxSummaryLen]
		}
		return fixed
	}

	const fromSep = ", from "
	budget := maxSummaryLen - len(fixed) - len(fromSep)
	if budget < 1 {
		if len(fixed) > maxSummaryLen {
			return fixed[:maxSummaryLen]
		}
		return fixed
	}
	if len(address) > budget {
		address = address[:budget]
	}
	return fixed + fromSep + address
}
