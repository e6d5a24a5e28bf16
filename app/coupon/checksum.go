package coupon

const checkMultiplier = 19

// checkDigit returns the check symbol for data symbols of the part at 1-based position partNumber.
// The accumulator is reduced by the modulus on every step, which keeps the result equal to
// the unbounded sum for any data length.
func checkDigit(partNumber int, data []byte) (byte, error) {
	modulus := len(alphabet) - 1
	check := partNumber % modulus
	for _, c := range data {
		idx, err := symbolIndex(c)
		if err != nil {
			return 0, err
		}
		check = (check*checkMultiplier + idx) % modulus
	}
	return indexSymbol(check), nil
}
