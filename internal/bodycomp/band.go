package bodycomp

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Band is an inclusive age range. "40+" parses to an open-ended band.
type Band struct {
	Min int
	Max int
}

func ParseBand(s string) (Band, error) {
	s = strings.TrimSpace(s)
	if open, ok := strings.CutSuffix(s, "+"); ok {
		lo, err := strconv.Atoi(strings.TrimSpace(open))
		if err != nil {
			return Band{}, fmt.Errorf("band %q: %w", s, err)
		}
		return Band{Min: lo, Max: math.MaxInt}, nil
	}

	loText, hiText, ok := strings.Cut(s, "-")
	if !ok {
		return Band{}, fmt.Errorf("band %q: expected lo-hi or lo+", s)
	}
	lo, err := strconv.Atoi(strings.TrimSpace(loText))
	if err != nil {
		return Band{}, fmt.Errorf("band %q: %w", s, err)
	}
	hi, err := strconv.Atoi(strings.TrimSpace(hiText))
	if err != nil {
		return Band{}, fmt.Errorf("band %q: %w", s, err)
	}
	if hi < lo {
		return Band{}, fmt.Errorf("band %q: upper bound below lower bound", s)
	}
	return Band{Min: lo, Max: hi}, nil
}

func (b Band) Contains(age int) bool {
	return age >= b.Min && age <= b.Max
}

func (b Band) String() string {
	if b.Max == math.MaxInt {
		return fmt.Sprintf("%d+", b.Min)
	}
	return fmt.Sprintf("%d-%d", b.Min, b.Max)
}

// bandIndex returns the first band containing age.
func bandIndex(bands []Band, age *int) (int, bool) {
	if age == nil {
		return 0, false
	}
	for i, b := range bands {
		if b.Contains(*age) {
			return i, true
		}
	}
	return 0, false
}
