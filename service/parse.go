package service

import (
	"math"
	"strconv"
	"strings"
	"unicode"

	"retirement-calc/domain"
)

// ParseField reads the leading integer of raw (optional sign followed by
// digits; anything after the digits is ignored). When no digits are found
// it returns fallback. "12.9" parses as 12 and "abc" as fallback.
func ParseField(raw string, fallback float64) float64 {
	value, ok := parseLeadingInt(raw)
	if !ok {
		return fallback
	}
	return value
}

// FieldFallback returns the substitute used when a numeric field fails to parse.
func FieldFallback(key string) float64 {
	if key == domain.KeyPostRetirementReturnRate {
		return PostRetirementReturnRateFallback
	}
	return ParseFallback
}

func parseLeadingInt(raw string) (float64, bool) {
	s := strings.TrimLeftFunc(raw, unicode.IsSpace)

	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digitsStart := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digitsStart {
		return 0, false
	}

	// ParseFloat no desborda con cadenas largas de dígitos
	value, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return 0, false
	}
	if value == 0 {
		// evita -0
		value = 0
	}
	return value, true
}

// clampAge convierte a int dentro de [0, MaxInt32]; una edad negativa
// alargaría la búsqueda más allá del horizonte de MaxRetirementAge años
func clampAge(value float64) int {
	if value > math.MaxInt32 {
		return math.MaxInt32
	}
	if value < 0 {
		return 0
	}
	return int(value)
}
