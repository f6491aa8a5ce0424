package neis

import (
	"fmt"
	"time"
)

// DateLayout is the provider's query key format (MLSV_YMD, ALL_TI_YMD)
const DateLayout = "20060102"

// FormatDate renders the date's own year, month and day as YYYYMMDD.
// No timezone conversion is applied.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// DisplayDate renders the localized "M월 D일" label
func DisplayDate(t time.Time) string {
	return fmt.Sprintf("%d월 %d일", int(t.Month()), t.Day())
}

// ParseDate parses a YYYYMMDD key in loc
func ParseDate(key string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(DateLayout, key, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYYMMDD", key)
	}
	return t, nil
}

// DisplayKey renders a stored YYYYMMDD key as "MM월 DD일", keeping the padding of the key
func DisplayKey(key string) string {
	if len(key) != len(DateLayout) {
		return key
	}
	return key[4:6] + "월 " + key[6:8] + "일"
}

// Day truncates t to midnight in its own location
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// ResolveDate parses an optional YYYYMMDD query value; empty means the day of now
func ResolveDate(key string, now time.Time) (time.Time, error) {
	if key == "" {
		return Day(now), nil
	}
	return ParseDate(key, now.Location())
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
