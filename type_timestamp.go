package balancelog

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// TimeFormat is the canonical display form of a balance-log instant.
const TimeFormat = "2006-01-02 15:04:05"

// Timestamp couples the canonical display form of a balance-log instant
// with its epoch-millisecond value. Both are UTC; the local timezone is
// never consulted. The zero Timestamp is "no time".
type Timestamp struct {
	text string
	ms   int64
}

var (
	// timeExact accepts a 1- or 2-digit hour, as pasted exports often drop
	// the leading zero.
	timeExact = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2}) (\d{1,2}):(\d{2}):(\d{2})$`)
	timeAny   = regexp.MustCompile(`\d{4}-\d{2}-\d{2} \d{1,2}:\d{2}:\d{2}`)
)

// NormalizeTime canonicalizes a `YYYY-MM-DD H:MM:SS` string to its
// zero-padded UTC form. The second return value is false when the input
// does not match; the caller decides whether to fall back or skip.
func NormalizeTime(s string) (Timestamp, bool) {
	m := timeExact.FindStringSubmatch(s)
	if m == nil {
		return Timestamp{}, false
	}
	atoi := func(x string) int { v, _ := strconv.Atoi(x); return v }
	year, month, day := atoi(m[1]), atoi(m[2]), atoi(m[3])
	hour, min, sec := atoi(m[4]), atoi(m[5]), atoi(m[6])
	t := time.Date(year, time.Month(month), day, hour, min, sec, 0, time.UTC)
	// time.Date normalizes out-of-range components, so "hour 99" would
	// silently land on the next day. A changed component means the input
	// was not a real instant.
	if t.Year() != year || t.Month() != time.Month(month) || t.Day() != day ||
		t.Hour() != hour || t.Minute() != min || t.Second() != sec {
		return Timestamp{}, false
	}
	return Timestamp{text: t.Format(TimeFormat), ms: t.UnixMilli()}, true
}

// FindTime scans a whole line for the first date-time substring and
// normalizes it.
func FindTime(line string) (Timestamp, bool) {
	m := timeAny.FindString(line)
	if m == "" {
		return Timestamp{}, false
	}
	return NormalizeTime(m)
}

// Valid reports whether the timestamp carries an actual instant.
func (t Timestamp) Valid() bool { return t.text != "" }

// Text returns the canonical `YYYY-MM-DD HH:MM:SS` form, or "" for the zero
// Timestamp.
func (t Timestamp) Text() string { return t.text }

// UnixMilli returns the UTC epoch milliseconds of the instant.
func (t Timestamp) UnixMilli() int64 { return t.ms }

// Before reports whether t is strictly before x.
func (t Timestamp) Before(x Timestamp) bool { return t.ms < x.ms }

// After reports whether t is strictly after x.
func (t Timestamp) After(x Timestamp) bool { return t.ms > x.ms }

func (t Timestamp) String() string { return t.text }

// MarshalJSON encodes the timestamp as its canonical text, "" for the zero
// Timestamp.
func (t Timestamp) MarshalJSON() ([]byte, error) { return json.Marshal(t.text) }

// UnmarshalJSON implements the json.Unmarshaler interface for Timestamp.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		*t = Timestamp{}
		return nil
	}
	ts, ok := NormalizeTime(s)
	if !ok {
		return fmt.Errorf("not a timestamp: %q", s)
	}
	*t = ts
	return nil
}

// ParseAnchor is a slightly more forgiving NormalizeTime for user-typed
// anchor instants: a bare date is accepted and means midnight UTC.
func ParseAnchor(s string) (Timestamp, error) {
	if ts, ok := NormalizeTime(s); ok {
		return ts, nil
	}
	if ts, ok := NormalizeTime(s + " 0:00:00"); ok {
		return ts, nil
	}
	return Timestamp{}, fmt.Errorf("not a recognizable time: %q (want YYYY-MM-DD HH:MM:SS)", s)
}
