package normalize

import "strconv"

// CleanAmount converts currency-formatted text into a numeric amount.
// Thousands separators, currency words, symbols and whitespace are stripped;
// only digits, the decimal point and a leading sign survive. Text that is
// empty or unparseable after stripping yields nil, never an error. Whether
// nil means zero is the caller's decision.
func CleanAmount(s string) *float64 {
	cleaned := make([]rune, 0, len(s))
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9', r == '.':
			cleaned = append(cleaned, r)
		case r == '-' || r == '+':
			if len(cleaned) == 0 {
				cleaned = append(cleaned, r)
			}
		}
	}
	if len(cleaned) == 0 {
		return nil
	}

	v, err := strconv.ParseFloat(string(cleaned), 64)
	if err != nil {
		return nil
	}
	return &v
}

// cleanAmountOrZero is the adapter-side zero-fill for sources whose
// credit/debit columns treat a blank cell as zero.
func cleanAmountOrZero(s string) float64 {
	if v := CleanAmount(s); v != nil {
		return *v
	}
	return 0
}
