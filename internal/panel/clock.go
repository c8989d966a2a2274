package panel

import "time"

const (
	clockLayout = "03:04 PM"
	dateLayout  = "Monday, January 02, 2006"
)

// ClockText renders the 12-hour time shown at the top of the panel.
func ClockText(t time.Time) string {
	return t.Format(clockLayout)
}

// DateText renders the long-form date.
func DateText(t time.Time) string {
	return t.Format(dateLayout)
}
