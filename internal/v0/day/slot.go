package day

import (
	"time"

	"mealgo/internal/neis"
)

const (
	breakfastUntil = 8
	lunchUntil     = 13
)

// DefaultSlot picks the slot shown first at t: breakfast before 08:00,
// lunch before 13:00, dinner afterwards
func DefaultSlot(t time.Time) neis.Slot {
	switch h := t.Hour(); {
	case h < breakfastUntil:
		return neis.Breakfast
	case h < lunchUntil:
		return neis.Lunch
	default:
		return neis.Dinner
	}
}

// SlotRef addresses one slot of one day
type SlotRef struct {
	Date string    `json:"date"`
	Slot neis.Slot `json:"slot"`
}

// NextSlot moves forward one slot; after dinner comes the next day's breakfast
func NextSlot(date time.Time, slot neis.Slot) (time.Time, neis.Slot) {
	switch slot {
	case neis.Breakfast:
		return date, neis.Lunch
	case neis.Lunch:
		return date, neis.Dinner
	default:
		return date.AddDate(0, 0, 1), neis.Breakfast
	}
}

// PrevSlot moves back one slot; before breakfast comes the previous day's dinner
func PrevSlot(date time.Time, slot neis.Slot) (time.Time, neis.Slot) {
	switch slot {
	case neis.Dinner:
		return date, neis.Lunch
	case neis.Lunch:
		return date, neis.Breakfast
	default:
		return date.AddDate(0, 0, -1), neis.Dinner
	}
}

func ref(date time.Time, slot neis.Slot) SlotRef {
	return SlotRef{Date: neis.FormatDate(date), Slot: slot}
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
