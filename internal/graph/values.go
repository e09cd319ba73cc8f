package graph

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// parseWeight accepts finite, non-negative numbers. Anything else is treated as
// unweighted.
func parseWeight(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	w, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(w) || math.IsInf(w, 0) || w < 0 {
		return nil
	}
	return &w
}

// parseInterval reads an integer interval. A whole number is taken exactly;
// any other number, including exponent forms like "2.02e3", is truncated
// toward zero. Otherwise the leading integer is used: optional whitespace, an
// optional sign, then digits, so "2020-05-01" yields 2020.
func parseInterval(s string) *int {
	s = strings.TrimSpace(s)
	if v, err := strconv.Atoi(s); err == nil {
		return &v
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil || errors.Is(err, strconv.ErrRange) {
		f = math.Trunc(f)
		if f >= math.MinInt64 && f < math.MaxInt64 {
			v := int(f)
			return &v
		}
		return nil
	}

	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return nil
	}
	v, err := strconv.Atoi(s[:end])
	if err != nil {
		return nil
	}
	return &v
}
