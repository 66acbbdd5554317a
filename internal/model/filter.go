package model

import (
	"math"
	"strconv"
	"strings"
)

const (
	DefaultSubmissionThreshold = 50
	DefaultJudgeThreshold      = 20
	DefaultVisitorThreshold    = 10
	DefaultMinJudgeScore       = 30
	TopWinnersLimit            = 3
)

// ParseThreshold reads an optional numeric cutoff. Empty, malformed and NaN
// values fall back to def; "Infinity" is accepted.
func ParseThreshold(raw string, def float64) float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(value) {
		return def
	}
	return value
}
