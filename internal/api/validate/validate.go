// Package validate holds the shape checks applied to public form input
// before anything is sent to the backend. Checks are pure: no I/O.
package validate

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
	"time"
)

type ErrField struct {
	Field string `json:"field"`
	Msg   string `json:"msg"`
}

type Errs []ErrField

func (e Errs) Error() string { // error interface
	var b strings.Builder
	for i, ef := range e {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(ef.Field + ": " + ef.Msg)
	}
	return b.String()
}

// Messages returns the user-facing messages in the order they were found.
func (e Errs) Messages() []string {
	if len(e) == 0 {
		return nil
	}
	out := make([]string, len(e))
	for i, ef := range e {
		out[i] = ef.Msg
	}
	return out
}

func (e *Errs) add(ef *ErrField) {
	if ef != nil {
		*e = append(*e, *ef)
	}
}

func check(ok bool, field, msg string) *ErrField {
	if ok {
		return nil
	}
	return &ErrField{Field: field, Msg: msg}
}

// Helpers
func Required(field, value string) *ErrField {
	if strings.TrimSpace(value) == "" {
		return &ErrField{Field: field, Msg: "required"}
	}
	return nil
}

var (
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRe = regexp.MustCompile(`^\+?[\d\s\-()]{10,}$`)
)

// Email accepts anything shaped like local@domain.tld, with no whitespace.
func Email(s string) bool { return emailRe.MatchString(s) }

// Phone accepts an optional leading + and at least ten digits, spaces, dashes or parentheses.
func Phone(s string) bool { return phoneRe.MatchString(s) }

const DateLayout = "2006-01-02"

// BookingDate reports whether s is a calendar date on or after today,
// where today starts at local midnight in now's location.
func BookingDate(s string, now time.Time) bool {
	d, err := time.ParseInLocation(DateLayout, strings.TrimSpace(s), now.Location())
	if err != nil {
		return false
	}
	y, m, day := now.Date()
	return !d.Before(time.Date(y, m, day, 0, 0, 0, 0, now.Location()))
}

// PartySize parses a head count in [1, 12].
func PartySize(s string) (int, bool) {
	return intIn(s, 1, 12)
}

// Rating parses a star rating in [1, 5].
func Rating(s string) (int, bool) {
	return intIn(s, 1, 5)
}

func intIn(s string, min, max int) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < min || n > max {
		return 0, false
	}
	return n, true
}

// MinLen counts runes of the trimmed text.
func MinLen(s string, n int) bool {
	return len([]rune(strings.TrimSpace(s))) >= n
}

// Raw is form input that JSON clients may send as a string or a number.
type Raw string

func (r *Raw) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*r = Raw(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*r = Raw(n.String())
	return nil
}
