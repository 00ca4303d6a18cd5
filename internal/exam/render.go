package exam

import (
	"fmt"
	"strings"
)

// Mode selects how a parsed date field is rendered into output columns.
type Mode string

const (
	// ModeSplit keeps only the first and last moment as start_time/end_time.
	ModeSplit Mode = "split"
	// ModeMerged renders every moment into a single dates column.
	ModeMerged Mode = "merged"
)

// ParseMode validates a mode name. The empty string selects ModeSplit.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeSplit:
		return ModeSplit, nil
	case ModeMerged:
		return ModeMerged, nil
	default:
		return "", fmt.Errorf("invalid mode: %s (must be 'split' or 'merged')", s)
	}
}

// Separators used by merged rendering.
const (
	RangeSeparator = " to "
	ListSeparator  = "; "
)

// DeriveStartEnd returns the first and last moment. Interior moments are dropped;
// a single moment has no end.
func DeriveStartEnd(seq Sequence) (start, end string) {
	switch n := len(seq.Moments); n {
	case 0:
		return "", ""
	case 1:
		return seq.Moments[0].String(), ""
	default:
		return seq.Moments[0].String(), seq.Moments[n-1].String()
	}
}

// RenderMerged renders all moments into one string. With nothing recognized the
// source lines are kept, joined by single spaces, so no text is lost.
func RenderMerged(seq Sequence) string {
	switch len(seq.Moments) {
	case 0:
		return strings.Join(seq.Texts(), " ")
	case 1:
		return seq.Moments[0].String()
	case 2:
		// Two separate dates and a true range share this shape; see Sequence.Ranged.
		return seq.Moments[0].String() + RangeSeparator + seq.Moments[1].String()
	default:
		return strings.Join(seq.Strings(), ListSeparator)
	}
}

// SplitMerged recovers start and end from a merged dates value. Fallback text
// that holds no canonical timestamps yields empty strings.
func SplitMerged(dates string) (start, end string) {
	var parts []string
	switch {
	case strings.Contains(dates, ListSeparator):
		parts = strings.Split(dates, ListSeparator)
	case strings.Contains(dates, RangeSeparator):
		parts = strings.Split(dates, RangeSeparator)
	default:
		parts = []string{dates}
	}

	valid := make([]string, 0, len(parts))
	for _, p := range parts {
		if m, ok := ParseMoment(p); ok {
			valid = append(valid, m.String())
		}
	}
	if len(valid) != len(parts) {
		return "", ""
	}

	switch len(valid) {
	case 0:
		return "", ""
	case 1:
		return valid[0], ""
	default:
		return valid[0], valid[len(valid)-1]
	}
}
