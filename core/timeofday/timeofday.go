package timeofday

import "fmt"

// TimeOfDay is a validated clock time. Values built through Normalize always
// hold an hour in [0,23] and a minute in [0,59].
type TimeOfDay struct {
	Hour   int
	Minute int
}

// FormatError reports a token that is not a 3- or 4-character digit string.
type FormatError struct {
	Token  string
	Reason string
}

func (e FormatError) Error() string {
	return fmt.Sprintf("invalid time token %q: %s", e.Token, e.Reason)
}

// RangeError reports a well-formed token whose hour or minute is out of range.
type RangeError struct {
	Token  string
	Hour   int
	Minute int
}

func (e RangeError) Error() string {
	return fmt.Sprintf("time token %q out of range: hour=%d minute=%d", e.Token, e.Hour, e.Minute)
}

// Normalize converts a compact clock token into a TimeOfDay. A 3-character
// token is always read as a single-digit hour ("930" is 09:30, never a
// truncated minute or second field); it is left-padded to the fixed-width
// HHMM shape before parsing. The function is pure and idempotent on the
// canonical Token form of its result.
func Normalize(token string) (TimeOfDay, error) {
	padded := token
	switch len(token) {
	case 3:
		padded = "0" + token
	case 4:
	default:
		return TimeOfDay{}, FormatError{Token: token, Reason: "length must be 3 or 4"}
	}
	for _, c := range []byte(padded) {
		if c < '0' || c > '9' {
			return TimeOfDay{}, FormatError{Token: token, Reason: "non-digit character"}
		}
	}
	hour := int(padded[0]-'0')*10 + int(padded[1]-'0')
	minute := int(padded[2]-'0')*10 + int(padded[3]-'0')
	if hour > 23 || minute > 59 {
		return TimeOfDay{}, RangeError{Token: token, Hour: hour, Minute: minute}
	}
	return TimeOfDay{Hour: hour, Minute: minute}, nil
}

// String returns the canonical "HH:MM" form.
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// Token returns the canonical four-digit "HHMM" form. Normalize(t.Token())
// yields t again.
func (t TimeOfDay) Token() string {
	return fmt.Sprintf("%02d%02d", t.Hour, t.Minute)
}

// MinutesOfDay returns the number of minutes since midnight.
func (t TimeOfDay) MinutesOfDay() int {
	return t.Hour*60 + t.Minute
}

// Before reports whether t is earlier in the day than u.
func (t TimeOfDay) Before(u TimeOfDay) bool {
	return t.MinutesOfDay() < u.MinutesOfDay()
}

// Compare orders two times of day. It returns -1, 0 or 1.
func (t TimeOfDay) Compare(u TimeOfDay) int {
	switch a, b := t.MinutesOfDay(), u.MinutesOfDay(); {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
