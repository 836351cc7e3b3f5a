package legal

import (
	"fmt"
	"strconv"
	"strings"
)

// Bump thresholds, inclusive on the lower band: a diff of exactly 5.0
// is a patch bump and exactly 15.0 a minor bump. This is a user-visible
// versioning contract; do not change the comparison operators.
const (
	patchThreshold = 5.0
	minorThreshold = 15.0
)

// NextLabel maps the previous version label and a dissimilarity percentage
// to the next semantic label. An empty prevLabel means no prior version and
// always yields "1.0.0". A prior label that does not parse as three
// dot-separated integers is recovered as a (1,0,0) base, never an error.
func NextLabel(prevLabel string, diffPercent float64) string {
	if prevLabel == "" {
		return "1.0.0"
	}

	major, minor, patch, ok := parseLabel(prevLabel)
	if !ok {
		major, minor, patch = 1, 0, 0
	}

	switch {
	case diffPercent <= patchThreshold:
		patch++
	case diffPercent <= minorThreshold:
		minor++
		patch = 0
	default:
		major++
		minor = 0
		patch = 0
	}

	return fmt.Sprintf("%d.%d.%d", major, minor, patch)
}

func parseLabel(label string) (major, minor, patch int, ok bool) {
	parts := strings.Split(label, ".")
	if len(parts) != 3 {
		return 0, 0, 0, false
	}
	numbers := make([]int, 3)
	for i, part := range parts {
		value, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || value < 0 {
			return 0, 0, 0, false
		}
		numbers[i] = value
	}
	return numbers[0], numbers[1], numbers[2], true
}
