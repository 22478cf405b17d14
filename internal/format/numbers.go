package format

import (
	"fmt"
	"strings"
)

// FormatNumberString inserts thousands separators into a decimal integer
// string, preserving a leading minus sign.
func FormatNumberString(s string) string {
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	if len(s) <= 3 {
		if neg {
			return "-" + s
		}
		return s
	}
	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	head := len(s) % 3
	if head == 0 {
		head = 3
	}
	b.WriteString(s[:head])
	for i := head; i < len(s); i += 3 {
		b.WriteByte(',')
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// FormatBytes renders a byte count with binary units ("1.5 KiB").
func FormatBytes(n uint64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := uint64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}

// TruncateDigits shortens a long digit string to its first and last edge
// characters joined by an ellipsis, reporting how many were elided.
func TruncateDigits(s string, limit, edge int) string {
	if len(s) <= limit || 2*edge >= len(s) {
		return s
	}
	return fmt.Sprintf("%s...%s (%s digits elided)", s[:edge], s[len(s)-edge:], FormatNumberString(fmt.Sprint(len(s)-2*edge)))
}
