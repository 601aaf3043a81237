package questionnaires

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseRange reads an inclusive "low-high" band key such as "0-25" or
// "25.5-50". A leading minus belongs to the low bound.
func ParseRange(key string) (float64, float64, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return 0, 0, ErrUnknownBandRange
	}

	separator := strings.Index(key[1:], "-")
	if separator < 0 {
		return 0, 0, fmt.Errorf("%w: %q", ErrUnknownBandRange, key)
	}
	separator++

	low, err := strconv.ParseFloat(strings.TrimSpace(key[:separator]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrUnknownBandRange, key)
	}
	high, err := strconv.ParseFloat(strings.TrimSpace(key[separator+1:]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrUnknownBandRange, key)
	}
	return low, high, nil
}

func FormatRange(low, high float64) string {
	return strconv.FormatFloat(low, 'f', -1, 64) + "-" + strconv.FormatFloat(high, 'f', -1, 64)
}
