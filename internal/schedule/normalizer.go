// Package schedule normalizes the heterogeneous date and time encodings
// found in band guide entries and locally saved records into absolute
// instants. Everything here is pure: "now" is always an explicit input.
package schedule

import (
	"strconv"
	"strings"
	"time"
)

// DefaultTimeLabel is assumed when an entry carries no time at all.
const DefaultTimeLabel = "6:00 PM"

// Month lookup is case-sensitive English, matching the guide's encoding.
var monthsByName = map[string]time.Month{
	"January":   time.January,
	"February":  time.February,
	"March":     time.March,
	"April":     time.April,
	"May":       time.May,
	"June":      time.June,
	"July":      time.July,
	"August":    time.August,
	"September": time.September,
	"October":   time.October,
	"November":  time.November,
	"December":  time.December,
}

// Occurrence is one resolved (instant, original labels) tuple.
type Occurrence struct {
	At        time.Time
	DateLabel string
	TimeLabel string
}

// ExpandDates expands a guide-style date expression ("July 17, August 24")
// and an optional time expression ("6:00 PM / 4:00 PM") into one occurrence
// per date segment. Dates and times pair positionally; missing time
// positions fall back to the first time segment, or DefaultTimeLabel when
// no time expression is given.
//
// A segment without an explicit year resolves to the current year, rolling
// forward to the next year when the instant would land strictly before now,
// so a perpetual schedule always shows the next performance. An explicit
// year — "June 21, 2025" arrives as a bare "2025" segment after comma
// splitting, or as a third field — pins the date and suppresses rollover.
//
// Malformed segments are dropped, never fatal.
func ExpandDates(dateExpr, timeExpr string, now time.Time) []Occurrence {
	if strings.TrimSpace(dateExpr) == "" {
		return nil
	}

	segments := splitTrim(dateExpr, ",")

	var times []string
	if strings.TrimSpace(timeExpr) != "" {
		times = splitTrim(timeExpr, "/")
	}

	var out []Occurrence
	pos := 0 // pairing index for time segments; year segments do not advance it

	for _, seg := range segments {
		if seg == "" {
			continue
		}

		// A bare 4-digit segment is the explicit year of the preceding date.
		if year, ok := parseYear(seg); ok {
			if n := len(out); n > 0 {
				out[n-1].At = withYear(out[n-1].At, year)
			}
			continue
		}

		fields := strings.Fields(seg)
		if len(fields) < 2 {
			continue
		}
		month, ok := monthsByName[fields[0]]
		if !ok {
			continue
		}
		day, err := strconv.Atoi(fields[1])
		if err != nil || day < 1 || day > 31 {
			continue
		}

		label := timeLabelFor(times, pos)
		hour, minute := clockOrDefault(label)

		at := time.Date(now.Year(), month, day, hour, minute, 0, 0, now.Location())
		if len(fields) >= 3 {
			if year, ok := parseYear(fields[2]); ok {
				at = withYear(at, year)
			} else if at.Before(now) {
				at = withYear(at, now.Year()+1)
			}
		} else if at.Before(now) {
			at = withYear(at, now.Year()+1)
		}

		out = append(out, Occurrence{At: at, DateLabel: seg, TimeLabel: label})
		pos++
	}

	return out
}

// At combines a YYYY-MM-DD date string with a clock label into one instant
// in loc. Used for locally saved records whose forms emit ISO dates.
func At(dateStr, timeLabel string, loc *time.Location) (time.Time, error) {
	d, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(dateStr), loc)
	if err != nil {
		return time.Time{}, err
	}
	hour, minute := clockOrDefault(timeLabel)
	return time.Date(d.Year(), d.Month(), d.Day(), hour, minute, 0, 0, loc), nil
}

// ParseClock parses labels like "6:00 PM", "4 PM" or "18:00".
func ParseClock(label string) (hour, minute int, err error) {
	label = strings.TrimSpace(label)

	var t time.Time
	for _, layout := range []string{"3:04 PM", "3:04PM", "3 PM", "3PM", "15:04"} {
		t, err = time.Parse(layout, label)
		if err == nil {
			return t.Hour(), t.Minute(), nil
		}
	}
	return 0, 0, err
}

func clockOrDefault(label string) (hour, minute int) {
	if h, m, err := ParseClock(label); err == nil {
		return h, m
	}
	h, m, _ := ParseClock(DefaultTimeLabel)
	return h, m
}

func timeLabelFor(times []string, pos int) string {
	if pos < len(times) && times[pos] != "" {
		return times[pos]
	}
	if len(times) > 0 && times[0] != "" {
		return times[0]
	}
	return DefaultTimeLabel
}

func parseYear(s string) (int, bool) {
	if len(s) != 4 {
		return 0, false
	}
	year, err := strconv.Atoi(s)
	if err != nil || year < 1900 || year > 2200 {
		return 0, false
	}
	return year, true
}

func withYear(t time.Time, year int) time.Time {
	return time.Date(year, t.Month(), t.Day(), t.Hour(), t.Minute(), 0, 0, t.Location())
}

func splitTrim(s, sep string) []string {
	parts := strings.Split(s, sep)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		out = append(out, strings.TrimSpace(p))
	}
	return out
}
