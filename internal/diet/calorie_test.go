package diet

import (
	"errors"
	"testing"
)

func TestEstimate_Scenario(t *testing.T) {
	got := Estimate(800, 1000, 50)

	if got.ConsumedCalorie != 400 {
		t.Errorf("ConsumedCalorie = %v, want 400", got.ConsumedCalorie)
	}
	if got.Delta != -600 {
		t.Errorf("Delta = %v, want -600", got.Delta)
	}
	if got.PercentDelta != -60 {
		t.Errorf("PercentDelta = %v, want -60", got.PercentDelta)
	}
	if got.Trend != Decreased {
		t.Errorf("Trend = %q, want %q", got.Trend, Decreased)
	}
}

func TestEstimate_ZeroYesterday(t *testing.T) {
	for _, pct := range []float64{0, 33, 100} {
		got := Estimate(812.5, 0, pct)
		if got.PercentDelta != 0 {
			t.Errorf("pct %v: PercentDelta = %v, want 0", pct, got.PercentDelta)
		}
		if got.Delta != got.ConsumedCalorie {
			t.Errorf("pct %v: Delta = %v, want %v", pct, got.Delta, got.ConsumedCalorie)
		}
	}
}

func TestEstimate_Increase(t *testing.T) {
	got := Estimate(1000, 800, 100)
	if got.Trend != Increased || got.Delta != 200 || got.PercentDelta != 25 {
		t.Errorf("got %+v", got)
	}
	if same := Estimate(800, 800, 100); same.Trend != Increased || same.Delta != 0 {
		t.Errorf("no change should be labeled increased: %+v", same)
	}
}

func TestEstimate_ConsumedIsRoundedProduct(t *testing.T) {
	totals := []float64{0, 1, 650, 812.4, 1234.5}
	for _, total := range totals {
		for pct := 0.0; pct <= 100; pct += 7 {
			want := Round(total * pct / 100)
			if got := Estimate(total, 500, pct).ConsumedCalorie; got != want {
				t.Errorf("Estimate(%v, _, %v) consumed = %v, want %v", total, pct, got, want)
			}
		}
	}
}

func TestRound(t *testing.T) {
	tests := map[float64]float64{
		0.5:   1,
		1.49:  1,
		2.5:   3,
		-2.5:  -2,
		-2.51: -3,
		-0.4:  0,
	}
	for in, want := range tests {
		if got := Round(in); got != want {
			t.Errorf("Round(%v) = %v, want %v", in, got, want)
		}
	}
}

func TestParsePercentage(t *testing.T) {
	valid := map[string]float64{
		"0":      0,
		"100":    100,
		"50":     50,
		" 75.5 ": 75.5,
		"30%":    30,
		".5":     0.5,
	}
	for in, want := range valid {
		got, err := ParsePercentage(in)
		if err != nil || got != want {
			t.Errorf("ParsePercentage(%q) = %v, %v; want %v", in, got, err, want)
		}
	}

	for _, in := range []string{"150", "-1", "100.01", "", "abc", "  ", "-"} {
		if _, err := ParsePercentage(in); !errors.Is(err, ErrInvalidPercentage) {
			t.Errorf("ParsePercentage(%q) err = %v, want ErrInvalidPercentage", in, err)
		}
	}
}
