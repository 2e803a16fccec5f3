package retry

import (
	"strconv"
	"strings"
	"time"
)

// ShortInterval renders d like "2m 32.9s", dropping zero parts
func ShortInterval(d time.Duration) string {
	return formatInterval(d, false)
}

// LongInterval renders d like "2m 32.900s", seconds and milliseconds always present
func LongInterval(d time.Duration) string {
	return formatInterval(d, true)
}

func formatInterval(d time.Duration, long bool) string {
	var b strings.Builder

	minutes := d / time.Minute
	rest := d - minutes*time.Minute
	if minutes >= 1 {
		b.WriteString(strconv.FormatInt(int64(minutes), 10))
		b.WriteByte('m')
	}

	if long || rest > 0 || b.Len() == 0 {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(strconv.FormatInt(int64(rest/time.Second), 10))

		// milliseconds are truncated, never rounded
		millis := strconv.FormatInt(int64(d%time.Second/time.Millisecond), 10)
		millis = strings.Repeat("0", 3-len(millis)) + millis
		if !long {
			millis = strings.TrimRight(millis, "0")
		}
		if millis != "" {
			b.WriteByte('.')
			b.WriteString(millis)
		}
		b.WriteByte('s')
	}
	return b.String()
}
