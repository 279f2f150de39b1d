package gcal

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidFeed means the fetched payload is not an iCalendar document.
var ErrInvalidFeed = errors.New("payload is not an iCalendar feed")

var (
	icsDateTimeRegex = regexp.MustCompile(`(\d{4})(\d{2})(\d{2})T(\d{2})(\d{2})(\d{2})`)
	icsDateRegex     = regexp.MustCompile(`(\d{4})(\d{2})(\d{2})`)
)

// ParseICSDate decodes a DTSTART value. Full date-times are UTC instants,
// bare dates map to local midnight (time to be confirmed).
func ParseICSDate(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	if m := icsDateTimeRegex.FindStringSubmatch(value); m != nil {
		return time.Date(atoi(m[1]), time.Month(atoi(m[2])), atoi(m[3]), atoi(m[4]), atoi(m[5]), atoi(m[6]), 0, time.UTC), true
	}
	if m := icsDateRegex.FindStringSubmatch(value); m != nil {
		return time.Date(atoi(m[1]), time.Month(atoi(m[2])), atoi(m[3]), 0, 0, 0, 0, time.Local), true
	}
	return time.Time{}, false
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

// UnfoldLines reverses iCalendar line folding: a physical line starting with
// a space or tab continues the previous logical line.
func UnfoldLines(lines []string) []string {
	unfolded := make([]string, 0, len(lines))
	for _, line := range lines {
		if strings.HasPrefix(line, " ") || strings.HasPrefix(line, "\t") {
			if len(unfolded) > 0 {
				unfolded[len(unfolded)-1] += strings.TrimSpace(line)
			}
			continue
		}
		unfolded = append(unfolded, line)
	}
	return unfolded
}

var lineBreaks = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// ParseFeed extracts the VEVENT blocks of an ICS payload and classifies each
// into a Fixture. Events without a DTSTART or SUMMARY, or with an
// undecodable date, are dropped; the rest of the feed is still processed.
func ParseFeed(payload string, now time.Time) ([]Fixture, error) {
	if !strings.Contains(payload, "BEGIN:VCALENDAR") {
		return nil, ErrInvalidFeed
	}

	lines := UnfoldLines(strings.Split(lineBreaks.Replace(payload), "\n"))
	fixtures := []Fixture{}
	var current RawEvent

	for _, line := range lines {
		if strings.HasPrefix(line, "BEGIN:VEVENT") {
			current = RawEvent{}
			continue
		}
		if strings.HasPrefix(line, "END:VEVENT") {
			if current != nil && current["DTSTART"] != "" && current["SUMMARY"] != "" {
				if date, ok := ParseICSDate(current["DTSTART"]); ok {
					fixtures = append(fixtures, MapEventToFixture(current, date, now))
				}
			}
			current = nil
			continue
		}
		if current == nil {
			continue
		}
		idx := strings.Index(line, ":")
		if idx < 0 {
			continue
		}
		// Property parameters after ";" are discarded: "DTSTART;TZID=..." -> DTSTART.
		name, _, _ := strings.Cut(line[:idx], ";")
		current[name] = line[idx+1:]
	}

	return fixtures, nil
}
