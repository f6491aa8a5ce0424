package diet

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// InvalidPercentageMessage is shown when a confirmed percentage is rejected
const InvalidPercentageMessage = "0~100 사이의 숫자를 입력해주세요"

// DefaultPercentage is assumed until the user confirms a value for the day
const DefaultPercentage = 100

var ErrInvalidPercentage = errors.New(InvalidPercentageMessage)

// leading decimal, the part of the input a browser number parse would accept
var leadingNumber = regexp.MustCompile(`^\s*[+-]?(?:\d+\.?\d*|\.\d+)`)

// Trend labels the direction of the day-over-day change
type Trend string

const (
	Decreased Trend = "decreased"
	Increased Trend = "increased"
)

// Estimation compares today's consumed calories with yesterday's total
type Estimation struct {
	TodayTotal      float64 `json:"todayTotal"`
	YesterdayTotal  float64 `json:"yesterdayTotal"`
	Percentage      float64 `json:"percentage"`
	ConsumedCalorie float64 `json:"consumedCalorie"`
	Delta           float64 `json:"delta"`
	PercentDelta    float64 `json:"percentDelta"`
	Trend           Trend   `json:"trend"`
}

// Estimate applies pct to todayTotal and compares the result with yesterdayTotal.
// pct is not range checked here; ParsePercentage guards writes.
func Estimate(todayTotal, yesterdayTotal, pct float64) Estimation {
	consumed := Round(todayTotal * pct / 100)
	delta := consumed - yesterdayTotal

	var percentDelta float64
	if yesterdayTotal > 0 {
		percentDelta = Round(delta / yesterdayTotal * 100)
	}

	trend := Increased
	if delta < 0 {
		trend = Decreased
	}

	return Estimation{
		TodayTotal:      todayTotal,
		YesterdayTotal:  yesterdayTotal,
		Percentage:      pct,
		ConsumedCalorie: consumed,
		Delta:           delta,
		PercentDelta:    percentDelta,
		Trend:           trend,
	}
}

// Round rounds half up, so -2.5 becomes -2
func Round(x float64) float64 {
	return math.Floor(x + 0.5)
}

// ParsePercentage reads the leading number of input and requires it in [0, 100]
func ParsePercentage(input string) (float64, error) {
	match := leadingNumber.FindString(input)
	if match == "" {
		return 0, ErrInvalidPercentage
	}
	pct, err := strconv.ParseFloat(strings.TrimSpace(match), 64)
	if err != nil || math.IsNaN(pct) || pct < 0 || pct > 100 {
		return 0, ErrInvalidPercentage
	}
	return pct, nil
}

/*
This project is the backend API for MealGo, a school meal and timetable companion built on open education data.
API Copyright (C) 2025 MealGo
    This program is free software: you can redistribute it and/or modify
    it under the terms of the GNU General Public License as published by
    the Free Software Foundation, either version 3 of the License, or
    (at your option) any later version.

    This program is distributed in the hope that it will be useful,
    but WITHOUT ANY WARRANTY; without even the implied warranty of
    MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
    GNU General Public License for more details.

    You should have received a copy of the GNU General Public License
    along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/
