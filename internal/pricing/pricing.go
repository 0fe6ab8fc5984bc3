// Package pricing derives the money fields of a booking from its duration
// and billing inputs. Everything here is pure and total: negative inputs
// are clamped, never rejected, and there is no error path.
package pricing

// Status is the payment status of a booking.
type Status string

const (
	StatusPending Status = "pending"
	StatusPaid    Status = "paid"
)

// ServiceRate is the pricing template taken from a service: a nominal
// price for a nominal duration. The actual booking duration may diverge
// and the price scales proportionally.
type ServiceRate struct {
	Price   int64
	Minutes int
}

// Quote is the full money derivation for a booking.
type Quote struct {
	Total    int64
	Discount int64
	Due      int64
	Deposit  int64
	Balance  int64
	Status   Status
}

// ServiceTotal computes the pre-discount total for service-based billing:
// the nominal price scaled by actualMinutes/nominalMinutes. A nil rate
// yields 0; a zero nominal duration yields the nominal price unscaled.
func ServiceTotal(rate *ServiceRate, actualMinutes int) int64 {
	if rate == nil {
		return 0
	}
	if rate.Minutes <= 0 {
		return rate.Price
	}
	return roundHalfUpRatio(rate.Price, int64(actualMinutes), int64(rate.Minutes))
}

// HourlyTotal computes the pre-discount total for flat hourly billing.
func HourlyTotal(rate int64, actualMinutes int) int64 {
	return roundHalfUpRatio(rate, int64(actualMinutes), 60)
}

// Derive applies the discount/deposit chain to a total and normalizes the
// payment status. The clamp order is fixed: discount against total, then
// deposit against what remains.
func Derive(total, discountIn, depositIn int64) Quote {
	if total < 0 {
		total = 0
	}

	discount := clamp(discountIn, 0, total)
	due := total - discount
	deposit := clamp(depositIn, 0, due)
	balance := due - deposit

	status := StatusPending
	if balance == 0 && due > 0 {
		status = StatusPaid
	}

	return Quote{
		Total:    total,
		Discount: discount,
		Due:      due,
		Deposit:  deposit,
		Balance:  balance,
		Status:   status,
	}
}

// roundHalfUpRatio computes value*num/den rounded half-up. All pricing
// ratios go through here so repeated edits cannot drift by a cent.
func roundHalfUpRatio(value, num, den int64) int64 {
	if den == 0 {
		return value
	}
	if num < 0 {
		num = 0
	}
	return (value*num + den/2) / den
}

func clamp(v, lo, hi int64) int64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
