package config

import (
	"regexp"
	"strconv"
)

// Bytes is a byte-count quantity parsed from human-readable config strings
// such as "10M" or "1G".
type Bytes uint64

var bytesPattern = regexp.MustCompile(`^\s*(\d+)([GKM])?\s*$`)

func scale(quantity uint64, unit string) Bytes {
	switch unit {
	case "K":
		return Bytes(quantity * 1_000)
	case "M":
		return Bytes(quantity * 1_000_000)
	case "G":
		return Bytes(quantity * 1_000_000_000)
	default:
		return Bytes(quantity)
	}
}

// ParseBytes parses a human-readable byte quantity. Malformed input silently
// falls back to def, matching the source config loader's lenient behavior.
func ParseBytes(s string, def Bytes) Bytes {
	m := bytesPattern.FindStringSubmatch(s)
	if m == nil {
		return def
	}
	n, err := strconv.ParseUint(m[1], 10, 64)
	if err != nil {
		return def
	}
	return scale(n, m[2])
}
