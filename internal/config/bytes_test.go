package config

import (
	"strconv"
	"testing"
	"testing/quick"
)

func TestParseBytesExamples(t *testing.T) {
	cases := map[string]Bytes{
		"10M": 10_000_000,
		"10":  10,
		"33":  33,
		"1G":  1_000_000_000,
	}
	for input, want := range cases {
		if got := ParseBytes(input, 0); got != want {
			t.Errorf("ParseBytes(%q) = %d, want %d", input, got, want)
		}
	}
}

func TestParseBytesMalformedFallsBackToDefault(t *testing.T) {
	if got := ParseBytes("not-a-size", 42); got != 42 {
		t.Errorf("ParseBytes(malformed) = %d, want default 42", got)
	}
}

func TestParseBytesRoundtripWithoutUnit(t *testing.T) {
	f := func(n uint32) bool {
		s := strconv.FormatUint(uint64(n), 10)
		return ParseBytes(s, 0) == Bytes(n)
	}
	if err := quick.Check(f, nil); err != nil {
		t.Error(err)
	}
}
