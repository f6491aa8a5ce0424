package neis

import (
	"testing"
	"time"
)

func TestFormatDate(t *testing.T) {
	tests := []struct {
		date time.Time
		want string
	}{
		{time.Date(2025, 10, 11, 0, 0, 0, 0, time.UTC), "20251011"},
		{time.Date(2025, 1, 2, 23, 59, 0, 0, time.UTC), "20250102"},
		{time.Date(999, 12, 31, 0, 0, 0, 0, time.UTC), "09991231"},
	}
	for _, tt := range tests {
		got := FormatDate(tt.date)
		if got != tt.want {
			t.Errorf("FormatDate(%v) = %q, want %q", tt.date, got, tt.want)
		}
	}
}

func TestFormatDate_AlwaysEightDigits(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 366*2; i++ {
		key := FormatDate(start.AddDate(0, 0, i))
		if len(key) != 8 {
			t.Fatalf("FormatDate gave %q", key)
		}
		for _, r := range key {
			if r < '0' || r > '9' {
				t.Fatalf("FormatDate gave non-digit %q", key)
			}
		}
	}
}

func TestFormatDate_UsesOwnLocation(t *testing.T) {
	seoul := time.FixedZone("KST", 9*60*60)
	// 00:30 in Seoul is still the previous day in UTC
	d := time.Date(2025, 3, 2, 0, 30, 0, 0, seoul)
	if got := FormatDate(d); got != "20250302" {
		t.Errorf("FormatDate = %q, want 20250302", got)
	}
}

func TestDisplayDate(t *testing.T) {
	if got := DisplayDate(time.Date(2025, 3, 7, 0, 0, 0, 0, time.UTC)); got != "3월 7일" {
		t.Errorf("DisplayDate = %q", got)
	}
	if got := DisplayKey("20250307"); got != "03월 07일" {
		t.Errorf("DisplayKey = %q", got)
	}
	if got := DisplayKey("bad"); got != "bad" {
		t.Errorf("DisplayKey on malformed key = %q", got)
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("20251011", time.UTC)
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}
	if FormatDate(d) != "20251011" {
		t.Errorf("round trip gave %s", FormatDate(d))
	}
	for _, bad := range []string{"", "2025-10-11", "20251341", "abcdefgh"} {
		if _, err := ParseDate(bad, time.UTC); err == nil {
			t.Errorf("ParseDate(%q) should fail", bad)
		}
	}
}

func TestResolveDate(t *testing.T) {
	seoul := time.FixedZone("KST", 9*60*60)
	now := time.Date(2025, 3, 2, 21, 15, 0, 0, seoul)

	d, err := ResolveDate("", now)
	if err != nil || !d.Equal(time.Date(2025, 3, 2, 0, 0, 0, 0, seoul)) {
		t.Errorf("ResolveDate(\"\") = %v, %v", d, err)
	}
	d, err = ResolveDate("20250310", now)
	if err != nil || FormatDate(d) != "20250310" || d.Location() != seoul {
		t.Errorf("ResolveDate = %v, %v", d, err)
	}
	if _, err := ResolveDate("2025-03-10", now); err == nil {
		t.Error("malformed date should fail")
	}
}
