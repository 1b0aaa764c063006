package timeutil

import (
	"testing"
	"time"
)

func TestFormatLocal_ZeroPadsAndTruncatesSeconds(t *testing.T) {
	in := time.Date(2026, 2, 5, 9, 7, 42, 0, time.Local)

	got := FormatLocal(in)
	want := "2026-02-05T09:07:00"
	if got != want {
		t.Fatalf("FormatLocal = %q, want %q", got, want)
	}
}

func TestParseLocal_AcceptedForms(t *testing.T) {
	want := time.Date(2026, 2, 15, 9, 30, 0, 0, time.Local)

	cases := []struct {
		name string
		in   string
	}{
		{"seconds", "2026-02-15T09:30:00"},
		{"minutes", "2026-02-15T09:30"},
		{"zulu suffix stripped", "2026-02-15T09:30:00Z"},
		{"positive offset stripped", "2026-02-15T09:30:00+05:30"},
		{"negative offset stripped", "2026-02-15T09:30:00-07:00"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseLocal(tc.in)
			if err != nil {
				t.Fatalf("ParseLocal(%q): %v", tc.in, err)
			}
			if !got.Equal(want) {
				t.Fatalf("ParseLocal(%q) = %s, want %s", tc.in, got, want)
			}
		})
	}
}

func TestParseLocal_Rejects(t *testing.T) {
	for _, in := range []string{"", "  ", "tomorrow", "2026-02-15", "15:04"} {
		if _, err := ParseLocal(in); err == nil {
			t.Errorf("ParseLocal(%q) succeeded, want error", in)
		}
	}
}

func TestRoundTrip_PreservesWallClockToTheMinute(t *testing.T) {
	in := time.Date(2026, 12, 31, 23, 59, 0, 0, time.Local)

	parsed, err := ParseLocal(FormatLocal(in))
	if err != nil {
		t.Fatal(err)
	}

	if parsed.Year() != in.Year() || parsed.Month() != in.Month() ||
		parsed.Day() != in.Day() || parsed.Hour() != in.Hour() ||
		parsed.Minute() != in.Minute() {
		t.Fatalf("round trip: got %s, want %s", parsed, in)
	}
}

func TestComposeLocal(t *testing.T) {
	cases := []struct {
		name         string
		date, clock  string
		defaultClock string
		want         string
		wantErr      bool
	}{
		{"date with clock", "2026-02-15", "09:30", "00:00", "2026-02-15T09:30:00", false},
		{"start date defaults to midnight", "2026-02-15", "", "00:00", "2026-02-15T00:00:00", false},
		{"finish date defaults to end of day", "2026-02-15", "", "23:59", "2026-02-15T23:59:00", false},
		{"empty date", "", "09:30", "00:00", "", true},
		{"bad date", "15/02/2026", "", "00:00", "", true},
		{"bad clock", "2026-02-15", "9.30am", "00:00", "", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ComposeLocal(tc.date, tc.clock, tc.defaultClock)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("ComposeLocal succeeded with %q, want error", got)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if got != tc.want {
				t.Fatalf("ComposeLocal = %q, want %q", got, tc.want)
			}
		})
	}
}
