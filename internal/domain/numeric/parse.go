// Package numeric converts raw form input into numbers.
// Blank input counts as zero and surrounding whitespace is ignored.
package numeric

import (
	"math"
	"math/big"
	"regexp"
	"strconv"
	"strings"
)

// decimalPattern matches signed decimal literals with optional fraction and exponent.
var decimalPattern = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)

// radixPrefixes maps the accepted integer prefixes to their base.
var radixPrefixes = map[string]int{
	"0x": 16,
	"0o": 8,
	"0b": 2,
}

// Parse converts raw into a float64.
// PRE: none
// POST: ok is false when raw is not a number; value is 0 for blank input
func Parse(raw string) (value float64, ok bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, true
	}

	switch s {
	case "Infinity", "+Infinity":
		return math.Inf(1), true
	case "-Infinity":
		return math.Inf(-1), true
	}

	if len(s) > 2 {
		if base, found := radixPrefixes[strings.ToLower(s[:2])]; found {
			return parseRadix(s[2:], base)
		}
	}

	if !decimalPattern.MatchString(s) {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		// Out-of-range literals still parse to ±Inf.
		if ne, isNum := err.(*strconv.NumError); isNum && ne.Err == strconv.ErrRange {
			return f, true
		}
		return 0, false
	}
	return f, true
}

// parseRadix converts unsigned digits in base, rounding literals wider than
// 64 bits to the nearest float64 (or +Inf).
func parseRadix(digits string, base int) (float64, bool) {
	if strings.ContainsAny(digits, "_+-") {
		return 0, false
	}
	if n, err := strconv.ParseUint(digits, base, 64); err == nil {
		return float64(n), true
	}
	n, ok := new(big.Int).SetString(digits, base)
	if !ok {
		return 0, false
	}
	f, _ := new(big.Float).SetInt(n).Float64()
	return f, true
}

// Format renders v in its shortest decimal form ("4", "2.5").
func Format(v float64) string {
	switch {
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	case v == 0:
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
