package provider

import (
	"strconv"
	"strings"
	"sync/atomic"
	"time"
	"unicode"
)

// maxNameLen bounds the length of a sanitized name in runes
const maxNameLen = 200

var lastSuffix atomic.Int64

// Sanitize turns a title into a filesystem safe name.
// Letters, digits and '.' are kept; every run of other characters becomes a
// single '_'. Trailing underscores are dropped. Names longer than maxNameLen
// are cut and given a unique time based suffix.
func Sanitize(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	substituted := false
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsNumber(r) || r == '.' {
			b.WriteRune(r)
			substituted = false
			continue
		}
		if !substituted {
			b.WriteByte('_')
			substituted = true
		}
	}

	out := strings.TrimRight(b.String(), "_")
	if out == "" {
		return "_"
	}

	runes := []rune(out)
	if len(runes) <= maxNameLen {
		return out
	}

	suffix := strconv.FormatInt(nextSuffix(), 10)
	keep := maxNameLen - 1 - len(suffix)
	return strings.TrimRight(string(runes[:keep]), "_") + "_" + suffix
}

// nextSuffix returns a strictly increasing nanosecond timestamp
func nextSuffix() int64 {
	for {
		last := lastSuffix.Load()
		next := time.Now().UnixNano()
		if next <= last {
			next = last + 1
		}
		if lastSuffix.CompareAndSwap(last, next) {
			return next
		}
	}
}
