package lexer

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/gerunddev/orgparse/internal/token"
)

var (
	timestampRe = regexp.MustCompile(
		`^([<\[])(\d{4}-\d{2}-\d{2})` +
			`(?: +([^\s\d>\]+\-][^\s>\]]*))?` +
			`(?: +(\d{1,2}:\d{2})(?:-(\d{1,2}:\d{2}))?)?` +
			`((?: +(?:\.\+|\+\+|\+|--?)\d+[hdwmy])*)` +
			` *([>\]])`)
	dateShapeRe = regexp.MustCompile(`^[<\[]\d{4}-\d{2}-\d{2}`)

	errBadTimestamp = errors.New("malformed timestamp")
)

// scanTimestamp reads a timestamp at the start of s. It returns n == 0 when
// s does not look like a timestamp at all. When s starts like one but does
// not parse, it returns an error together with the number of bytes to skip.
func scanTimestamp(s string) (token.Time, int, error) {
	m := timestampRe.FindStringSubmatch(s)
	if m == nil {
		shape := dateShapeRe.FindString(s)
		if shape == "" {
			return token.Time{}, 0, nil
		}
		skip := len(shape)
		if i := strings.IndexAny(s[skip:], ">]"); i >= 0 {
			skip += i + 1
		}
		return token.Time{}, skip, errBadTimestamp
	}

	n := len(m[0])
	if (m[1] == "<") != (m[7] == ">") {
		return token.Time{}, n, fmt.Errorf("%w: mismatched brackets", errBadTimestamp)
	}
	date, err := time.Parse("2006-01-02", m[2])
	if err != nil {
		return token.Time{}, n, fmt.Errorf("%w: invalid date %q", errBadTimestamp, m[2])
	}

	t := token.Time{Date: date, Active: m[1] == "<", Repeater: strings.TrimSpace(m[6])}
	if m[4] != "" {
		clock, err := time.Parse("15:04", m[4])
		if err != nil {
			return token.Time{}, n, fmt.Errorf("%w: invalid time %q", errBadTimestamp, m[4])
		}
		t.Date = withClock(date, clock)
		t.HasTime = true
		if m[5] != "" {
			end, err := time.Parse("15:04", m[5])
			if err != nil {
				return token.Time{}, n, fmt.Errorf("%w: invalid time %q", errBadTimestamp, m[5])
			}
			t.End = withClock(date, end)
			t.HasEnd = true
		}
	}
	return t, n, nil
}

func withClock(date, clock time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), clock.Hour(), clock.Minute(), 0, 0, time.UTC)
}
