// Package date holds the timestamp type used by portfolio snapshots.
//
// A Time keeps the wall-clock value found in the source document. Formatting
// never converts to another time zone: "2025-03-01T23:30:00-05:00" prints as
// "2025-03-01 23:30:00".
package date

import (
	"encoding/json"
	"fmt"
	"time"
)

// Format is the sortable layout used by every textual export.
const Format = "2006-01-02 15:04:05"

// DayFormat is the ISO-8601 day layout.
const DayFormat = "2006-01-02"

// readFormats are tried in order by Parse.
var readFormats = []string{
	time.RFC3339Nano,
	Format,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05.999999999",
	"2006-1-2", // permissive, allows single-digit month/day.
}

// Time is an instant as written in the source snapshot.
type Time struct {
	t time.Time
}

// New returns the Time for the given wall-clock values.
func New(year int, month time.Month, day, hour, min, sec int) Time {
	return Time{time.Date(year, month, day, hour, min, sec, 0, time.UTC)}
}

// Of wraps t, keeping its location.
func Of(t time.Time) Time { return Time{t} }

// IsZero reports whether t was never set.
func (t Time) IsZero() bool { return t.t.IsZero() }

// wall returns the wall-clock value of t as a UTC time.
func (t Time) wall() time.Time {
	y, mo, d := t.t.Date()
	h, mi, sec := t.t.Clock()
	return time.Date(y, mo, d, h, mi, sec, t.t.Nanosecond(), time.UTC)
}

// Before reports whether the wall clock of t is before the one of x. Offsets are ignored.
func (t Time) Before(x Time) bool { return t.wall().Before(x.wall()) }

// After reports whether the wall clock of t is after the one of x.
func (t Time) After(x Time) bool { return t.wall().After(x.wall()) }

// Equal reports whether t and x have the same wall clock.
func (t Time) Equal(x Time) bool { return t.wall().Equal(x.wall()) }

// Compare returns -1, 0 or +1 like time.Time.Compare, on wall clocks.
func (t Time) Compare(x Time) int { return t.wall().Compare(x.wall()) }

// Std returns the underlying time.Time.
func (t Time) Std() time.Time { return t.t }

// String formats t with Format, using the literal wall-clock value.
func (t Time) String() string {
	if t.IsZero() {
		return ""
	}
	return t.t.Format(Format)
}

// Day formats the calendar day of t.
func (t Time) Day() string {
	if t.IsZero() {
		return ""
	}
	return t.t.Format(DayFormat)
}

// Parse parses a timestamp. It is lenient and accepts RFC 3339, "2025-07-01 10:00:00",
// "2025-07-01T10:00:00" and "2025-7-1".
func Parse(str string) (Time, error) {
	for _, layout := range readFormats {
		if on, err := time.Parse(layout, str); err == nil {
			return Time{on}, nil
		}
	}
	return Time{}, fmt.Errorf("invalid timestamp %q want RFC 3339 or %q", str, Format)
}

// MustParse is like Parse but panics on error.
func MustParse(str string) Time {
	t, err := Parse(str)
	if err != nil {
		panic(err.Error())
	}
	return t
}

// UnmarshalJSON implements the json specific way to unmarshall a timestamp from a json string.
func (t *Time) UnmarshalJSON(bytes []byte) error {
	var str string
	if err := json.Unmarshal(bytes, &str); err != nil {
		return err
	}
	if str == "" {
		*t = Time{}
		return nil
	}
	v, err := Parse(str)
	if err != nil {
		return err
	}
	*t = v
	return nil
}

func (t Time) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return json.Marshal("")
	}
	return json.Marshal(t.t.Format(time.RFC3339Nano))
}

// check that a Time pointer is a valid json marshall/unmarshaller type.
var _ json.Marshaler = (*Time)(nil)
var _ json.Unmarshaler = (*Time)(nil)
