// backend/src/parsing/anchor.go
package parsing

import (
	"fmt"
	"strings"
)

// FindAnchor returns the index of the first line containing label. Broker
// statements place the authoritative instance of a label before any repeated
// or summary instance, so the lowest index always wins. Absence is a normal
// outcome reported through ok, never through an error.
func FindAnchor(lines []string, label string) (int, bool) {
	for i, line := range lines {
		if strings.Contains(line, label) {
			return i, true
		}
	}
	return 0, false
}

// FindAnyAnchor tries the given labels in priority order and returns the
// first one that matches anywhere in the line sequence, along with its index.
func FindAnyAnchor(lines []string, labels ...string) (int, string, bool) {
	for _, label := range labels {
		if idx, ok := FindAnchor(lines, label); ok {
			return idx, label, true
		}
	}
	return 0, "", false
}

// LineAt reads the line at base+offset. Offsets are small integers fixed per
// field per format version; an offset that resolves outside the sequence is a
// hard failure, not a silent default.
func LineAt(lines []string, base, offset int) (string, error) {
	idx := base + offset
	if idx < 0 || idx >= len(lines) {
		return "", fmt.Errorf("line %d%+d: %w", base, offset, ErrOffsetOutOfRange)
	}
	return lines[idx], nil
}

// ContainsLine reports whether any line of the page contains the given
// substring. Classifiers use this for issuer and version fingerprints.
func ContainsLine(lines []string, substr string) bool {
	_, ok := FindAnchor(lines, substr)
	return ok
}
