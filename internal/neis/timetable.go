package neis

import (
	"strconv"
	"strings"
)

// MinPeriods is the display floor for a school day
const MinPeriods = 8

// MaxPeriods bounds the periods taken from a payload; higher periods are dropped
const MaxPeriods = 20

// NormalizeTimetable turns a raw timetable response into subject names indexed
// by period-1. Missing periods are "". A payload of the wrong shape gives an
// empty slice, which callers treat as "no timetable data".
func NormalizeTimetable(raw []byte, service string) []string {
	var rows []timetableRow
	if err := decodeRows(raw, service, &rows); err != nil {
		return []string{}
	}

	byPeriod := make(map[string]string, len(rows))
	for _, row := range rows {
		period := strings.TrimSpace(string(row.Period))
		if period == "" {
			period = strings.TrimSpace(string(row.Sequence))
		}
		if period == "" {
			continue
		}
		subject := string(row.Content)
		if subject == "" {
			subject = string(row.SubjectTitle)
		}
		byPeriod[period] = strings.TrimSpace(subject)
	}

	maxPeriod := MinPeriods
	for key := range byPeriod {
		if n, err := strconv.Atoi(key); err == nil && n > maxPeriod && n <= MaxPeriods {
			maxPeriod = n
		}
	}

	periods := make([]string, maxPeriod)
	for p := 1; p <= maxPeriod; p++ {
		periods[p-1] = byPeriod[strconv.Itoa(p)]
	}
	return periods
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
