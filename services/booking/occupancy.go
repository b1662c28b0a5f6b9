package booking

// ChargeableAdults returns the number of adults charged at the base
// adult rate: extra adults are priced separately, so they come off
// the total. Every pricing path (draft, checkout, EMI) uses this one
// function; the occupancy math must never be re-derived at call
// sites.
func ChargeableAdults(totalAdults, extraAdults int) int {
	if totalAdults <= 0 {
		return 0
	}
	if extraAdults < 0 {
		extraAdults = 0
	}
	n := totalAdults - extraAdults
	if n < 0 {
		return 0
	}
	return n
}
