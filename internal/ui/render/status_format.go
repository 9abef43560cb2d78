package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/kk-code-lab/rgallery/internal/catalog"
)

func formatCompactNumber(n int) string {
	switch {
	case n >= 1_000_000:
		return trimTrailingZero(fmt.Sprintf("%.1f", float64(n)/1_000_000.0)) + "M"
	case n >= 10_000:
		return trimTrailingZero(fmt.Sprintf("%.1f", float64(n)/1_000.0)) + "k"
	default:
		return fmt.Sprintf("%d", n)
	}
}

func trimTrailingZero(s string) string {
	if !strings.Contains(s, ".") {
		return s
	}
	return strings.TrimSuffix(strings.TrimRight(s, "0"), ".")
}

func formatDurationShort(d time.Duration) string {
	switch {
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	case d < time.Minute:
		return trimTrailingZero(fmt.Sprintf("%.1f", d.Seconds())) + "s"
	default:
		return trimTrailingZero(fmt.Sprintf("%.1f", d.Minutes())) + "m"
	}
}

func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return trimTrailingZero(fmt.Sprintf("%.1f", float64(n)/float64(div))) + " " + string("KMGTPE"[exp]) + "iB"
}

func formatCreated(unix int64) string {
	if unix <= 0 {
		return "unknown date"
	}
	return time.Unix(unix, 0).UTC().Format("2006-01-02")
}

func formatDimensions(d catalog.Dimensions) string {
	if d.X == 0 && d.Y == 0 && d.Z == 0 {
		return ""
	}
	return fmt.Sprintf("%d×%d×%d", d.X, d.Y, d.Z)
}

// formatRange is the 1-based visible range label for the summary block.
func formatRange(start, end, total int) string {
	if total == 0 {
		return "0 entries"
	}
	return fmt.Sprintf("%d–%d of %s", start+1, end, formatCompactNumber(total))
}
