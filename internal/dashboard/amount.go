package dashboard

import (
	"errors"
	"math"
	"regexp"
	"strconv"
)

var (
	nonNumeric  = regexp.MustCompile(`[^0-9.-]+`)
	floatPrefix = regexp.MustCompile(`^-?(?:\d+\.?\d*|\.\d+)`)
)

// ParseAmount turns a display string such as "$1,234.56" or "-$45.00" into
// a number. Everything but digits, '.' and '-' is dropped and the longest
// leading decimal prefix is parsed, so "1.2.3" yields 1.2. Strings without a
// numeric prefix yield NaN.
func ParseAmount(s string) float64 {
	m := floatPrefix.FindString(nonNumeric.ReplaceAllString(s, ""))
	if m == "" {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return math.NaN()
	}
	return v
}

// FormatFixed2 formats v with two decimals the way browsers do: exact ties
// round away from zero, negative zero prints as "0.00" and NaN as "NaN".
// Magnitudes of 1e21 and above use exponent notation, as toFixed does.
func FormatFixed2(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	case v == 0:
		return "0.00"
	case math.Abs(v) >= 1e21:
		return strconv.FormatFloat(v, 'g', -1, 64)
	}

	// A value sitting exactly on a third-decimal 5 has a fraction in
	// {1/8, 3/8, 5/8, 7/8}; strconv would round it to even.
	if eighths := math.Abs(v) * 8; eighths == math.Trunc(eighths) && math.Mod(eighths, 2) == 1 {
		// Three decimals are exact here; drop the 5 and round up by hand.
		exact := strconv.FormatFloat(v, 'f', 3, 64)
		return roundUpLastDigit(exact[:len(exact)-1])
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// roundUpLastDigit adds one unit in the last place to a decimal string,
// carrying through the digits and keeping any sign.
func roundUpLastDigit(s string) string {
	b := []byte(s)
	for i := len(b) - 1; i >= 0; i-- {
		switch {
		case b[i] == '.' || b[i] == '-':
			continue
		case b[i] == '9':
			b[i] = '0'
		default:
			b[i]++
			return string(b)
		}
	}
	if b[0] == '-' {
		return "-1" + string(b[1:])
	}
	return "1" + string(b)
}

// FormatDollars renders v as "$" followed by two decimals.
func FormatDollars(v float64) string {
	return "$" + FormatFixed2(v)
}
