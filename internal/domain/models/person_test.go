package models

import (
	"testing"
	"time"
)

func date(s string) time.Time {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestAgeAt(t *testing.T) {
	cases := []struct {
		name     string
		dob, now string
		want     int
	}{
		{"first birthday after leap year", "2000-03-01", "2001-03-01", 1},
		{"birthday in leap year", "1999-03-01", "2000-03-01", 1},
		{"day before birthday", "1990-10-05", "2020-10-04", 29},
		{"on birthday", "1990-10-05", "2020-10-05", 30},
		{"leap day in common year", "2000-02-29", "2001-02-28", 0},
		{"leap day next march", "2000-02-29", "2001-03-01", 1},
		{"end of year", "1990-12-31", "2020-12-30", 29},
	}
	for _, tc := range cases {
		if got := ageAt(date(tc.dob), date(tc.now)); got != tc.want {
			t.Fatalf("%s: ageAt(%s, %s) = %d, want %d", tc.name, tc.dob, tc.now, got, tc.want)
		}
	}
}

func TestToPersonNormalizesGender(t *testing.T) {
	cases := map[string]Gender{
		"male":    GenderMale,
		" FEMALE": GenderFemale,
		"Other":   GenderOther,
		"":        "",
		"robot":   "robot",
	}
	for in, want := range cases {
		if got := (PersonAddRequest{Gender: in}).ToPerson().Gender; got != want {
			t.Fatalf("add request gender %q -> %q, want %q", in, got, want)
		}
		if got := (PersonUpdateRequest{Gender: in}).ToPerson().Gender; got != want {
			t.Fatalf("update request gender %q -> %q, want %q", in, got, want)
		}
	}
}
