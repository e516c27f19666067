package config

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

var sizeUnits = map[string]int64{
	"":  1,
	"K": 1 << 10,
	"M": 1 << 20,
	"G": 1 << 30,
	"T": 1 << 40,
}

// ParseSize parses a human-readable size into bytes. Units are powers of
// 1024 and case-insensitive: 10240, 10K, 1.5M, 1MB, 1MiB, 512B.
func ParseSize(s string) (int64, error) {
	orig := s
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return 0, fmt.Errorf("empty size string")
	}

	s = strings.TrimSuffix(s, "IB")
	s = strings.TrimSuffix(s, "B")
	if s == "" {
		return 0, fmt.Errorf("invalid size: %q", orig)
	}

	unit := ""
	if last := s[len(s)-1:]; last >= "A" && last <= "Z" {
		unit, s = last, s[:len(s)-1]
	}
	mult, ok := sizeUnits[unit]
	if !ok || s == "" {
		return 0, fmt.Errorf("invalid size: %q", orig)
	}

	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		if n < 0 {
			return 0, fmt.Errorf("invalid size: %q: negative", orig)
		}
		if n > math.MaxInt64/mult {
			return 0, fmt.Errorf("invalid size: %q: too large", orig)
		}
		return n * mult, nil
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f < 0 || math.IsNaN(f) {
		return 0, fmt.Errorf("invalid size: %q", orig)
	}
	// float64(MaxInt64) rounds up to 2^63, so >= rejects it too.
	v := f * float64(mult)
	if v >= float64(math.MaxInt64) {
		return 0, fmt.Errorf("invalid size: %q: too large", orig)
	}
	return int64(v), nil
}
