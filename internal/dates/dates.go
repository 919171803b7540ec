// Package dates resolves natural-language date expressions into absolute
// calendar dates. It is pure: no network access, no shared state.
package dates

import (
	"strings"
	"time"

	naturaldate "github.com/tj/go-naturaldate"
)

// ISODate is the wire format expected by the weather provider.
const ISODate = "2006-01-02"

// Today returns the current date as YYYY-MM-DD.
func Today() string {
	return time.Now().Format(ISODate)
}

// Resolve converts a relative date expression ("tomorrow", "next Friday")
// into YYYY-MM-DD. Ambiguous weekday references resolve forward: a user
// asking about the weather on "Tuesday" almost always means the upcoming
// one. An empty expression resolves to today. Already-absolute dates pass
// through untouched, and anything unparseable is returned as-is so the
// downstream provider can reject it itself.
func Resolve(expression string) string {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return Today()
	}

	if _, err := time.Parse(ISODate, expression); err == nil {
		return expression
	}

	parsed, err := naturaldate.Parse(expression, time.Now(), naturaldate.WithDirection(naturaldate.Future))
	if err != nil {
		return expression
	}
	return parsed.Format(ISODate)
}
