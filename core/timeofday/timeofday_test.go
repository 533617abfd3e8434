package timeofday

import (
	"errors"
	"fmt"
	"testing"
)

func TestNormalizeValid(t *testing.T) {
	cases := []struct {
		token  string
		hour   int
		minute int
	}{
		{"000", 0, 0},
		{"0000", 0, 0},
		{"930", 9, 30},
		{"959", 9, 59},
		{"1045", 10, 45},
		{"1200", 12, 0},
		{"2359", 23, 59},
		{"001", 0, 1},
	}
	for _, c := range cases {
		got, err := Normalize(c.token)
		if err != nil {
			t.Fatalf("Normalize(%q): %v", c.token, err)
		}
		if got.Hour != c.hour || got.Minute != c.minute {
			t.Errorf("Normalize(%q) = %v, want %02d:%02d", c.token, got, c.hour, c.minute)
		}
	}
}

func TestNormalizeRejected(t *testing.T) {
	format := []string{"", "1", "12", "12345", "abcd", "9a0", "12:45", " 930"}
	for _, token := range format {
		_, err := Normalize(token)
		var fe FormatError
		if !errors.As(err, &fe) {
			t.Errorf("Normalize(%q) err = %v, want FormatError", token, err)
		}
	}

	ranged := []string{"2400", "2460", "960", "1299", "2530"}
	for _, token := range ranged {
		_, err := Normalize(token)
		var re RangeError
		if !errors.As(err, &re) {
			t.Errorf("Normalize(%q) err = %v, want RangeError", token, err)
		}
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	for hour := 0; hour < 24; hour++ {
		for _, minute := range []int{0, 1, 30, 59} {
			token := fmt.Sprintf("%02d%02d", hour, minute)
			first, err := Normalize(token)
			if err != nil {
				t.Fatalf("Normalize(%q): %v", token, err)
			}
			second, err := Normalize(first.Token())
			if err != nil {
				t.Fatalf("Normalize(%q): %v", first.Token(), err)
			}
			if first != second {
				t.Fatalf("round trip changed value: %v != %v", first, second)
			}
		}
	}
}

func TestThreeDigitAlwaysSingleDigitHour(t *testing.T) {
	got, err := Normalize("930")
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	want := TimeOfDay{Hour: 9, Minute: 30}
	if got != want {
		t.Fatalf("Normalize(\"930\") = %v, want %v", got, want)
	}
}

func TestTimeOfDayOrdering(t *testing.T) {
	early := TimeOfDay{Hour: 6, Minute: 15}
	late := TimeOfDay{Hour: 18, Minute: 5}
	if !early.Before(late) || late.Before(early) {
		t.Fatalf("ordering broken for %v vs %v", early, late)
	}
	if early.Compare(late) != -1 || late.Compare(early) != 1 || early.Compare(early) != 0 {
		t.Fatalf("compare broken")
	}
}

func TestTimeOfDayString(t *testing.T) {
	tod := TimeOfDay{Hour: 9, Minute: 5}
	if tod.String() != "09:05" {
		t.Errorf("String() = %q", tod.String())
	}
	if tod.Token() != "0905" {
		t.Errorf("Token() = %q", tod.Token())
	}
	if tod.MinutesOfDay() != 545 {
		t.Errorf("MinutesOfDay() = %d", tod.MinutesOfDay())
	}
}
