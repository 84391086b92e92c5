package datefmt

import (
	"regexp"
	"strings"
	"time"
)

var (
	dmy = regexp.MustCompile(`^(\d{2})/(\d{2})/(\d{4})$`)
	iso = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})`)
)

var fallbackLayouts = []string{
	time.RFC3339,
	time.RFC1123,
	time.RFC1123Z,
	"Jan 2, 2006",
	"2 Jan 2006",
}

// DDMMYYYY formats a date for display. Empty input renders as "N/A" and
// anything unparseable is returned trimmed but otherwise unchanged.
func DDMMYYYY(input string) string {
	s := strings.TrimSpace(input)
	if s == "" {
		return "N/A"
	}
	if dmy.MatchString(s) {
		return s
	}
	if m := iso.FindStringSubmatch(s); m != nil {
		return m[3] + "/" + m[2] + "/" + m[1]
	}
	for _, layout := range fallbackLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("02/01/2006")
		}
	}
	return s
}
