package neis

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Slot is one of the three cafeteria meal slots
type Slot string

const (
	Breakfast Slot = "breakfast"
	Lunch     Slot = "lunch"
	Dinner    Slot = "dinner"
)

// Slots lists the meal slots in serving order
var Slots = []Slot{Breakfast, Lunch, Dinner}

// ParseSlot reports whether s names a meal slot
func ParseSlot(s string) (Slot, bool) {
	for _, slot := range Slots {
		if string(slot) == s {
			return slot, true
		}
	}
	return "", false
}

// Meals holds the cleaned dish names of each slot.
// The three fields are always non-nil after normalization.
type Meals struct {
	Breakfast []string `json:"breakfast"`
	Lunch     []string `json:"lunch"`
	Dinner    []string `json:"dinner"`
}

// Get returns the dishes of slot
func (m Meals) Get(slot Slot) []string {
	switch slot {
	case Breakfast:
		return m.Breakfast
	case Lunch:
		return m.Lunch
	case Dinner:
		return m.Dinner
	}
	return nil
}

func (m *Meals) set(slot Slot, dishes []string) {
	switch slot {
	case Breakfast:
		m.Breakfast = dishes
	case Lunch:
		m.Lunch = dishes
	case Dinner:
		m.Dinner = dishes
	}
}

// CalorieLabels holds the raw CAL_INFO text of each slot, e.g. "650.3 Kcal"
type CalorieLabels struct {
	Breakfast string `json:"breakfast"`
	Lunch     string `json:"lunch"`
	Dinner    string `json:"dinner"`
}

// Get returns the label of slot
func (c CalorieLabels) Get(slot Slot) string {
	switch slot {
	case Breakfast:
		return c.Breakfast
	case Lunch:
		return c.Lunch
	case Dinner:
		return c.Dinner
	}
	return ""
}

func (c *CalorieLabels) set(slot Slot, label string) {
	switch slot {
	case Breakfast:
		c.Breakfast = label
	case Lunch:
		c.Lunch = label
	case Dinner:
		c.Dinner = label
	}
}

// MealDay is one calendar day's cafeteria offering
type MealDay struct {
	Meals        Meals         `json:"meals"`
	Calories     CalorieLabels `json:"calories"`
	TotalCalorie float64       `json:"totalCalorie"`
}

// EmptyMealDay has all three slots present and empty
func EmptyMealDay() MealDay {
	return MealDay{
		Meals: Meals{
			Breakfast: []string{},
			Lunch:     []string{},
			Dinner:    []string{},
		},
	}
}

// IsEmpty reports whether no slot has a dish
func (d MealDay) IsEmpty() bool {
	return len(d.Meals.Breakfast) == 0 && len(d.Meals.Lunch) == 0 && len(d.Meals.Dinner) == 0
}

// mealRow is one entry of mealServiceDietInfo[1].row
type mealRow struct {
	Dishes   string `json:"DDISH_NM"`
	Category string `json:"MMEAL_SC_NM"`
	Calories string `json:"CAL_INFO"`
}

// timetableRow is one entry of {his,mis,els}Timetable[1].row
type timetableRow struct {
	Period       looseString `json:"PERIO"`
	Sequence     looseString `json:"I_TRT_SEQ"`
	Content      looseString `json:"ITRT_CNTNT"`
	SubjectTitle looseString `json:"GSUBJECT_NM"`
}

// looseString accepts a JSON string, number or null
type looseString string

func (s *looseString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = looseString(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	if i, err := n.Int64(); err == nil {
		*s = looseString(strconv.FormatInt(i, 10))
		return nil
	}
	*s = looseString(n.String())
	return nil
}

// ResultStatus is the provider's error/info block, returned instead of data
type ResultStatus struct {
	Code    string `json:"CODE"`
	Message string `json:"MESSAGE"`
}

// CodeNoData is reported when the provider has no rows for the query
const CodeNoData = "INFO-200"

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
