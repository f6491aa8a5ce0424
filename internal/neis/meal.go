package neis

import (
	"regexp"
	"strconv"
	"strings"
)

// MealService is the provider endpoint and payload key for cafeteria menus
const MealService = "mealServiceDietInfo"

var (
	lineBreak     = regexp.MustCompile(`(?i)<br\s*/?>|\r?\n`)
	ordinalPrefix = regexp.MustCompile(`^\s*\d+\.`)
	parenthetical = regexp.MustCompile(`\([^)]*\)`)
	firstNumber   = regexp.MustCompile(`\d+(?:\.\d+)?`)
)

var slotTerms = []struct {
	slot  Slot
	terms []string
}{
	{Breakfast, []string{"조식", "breakfast"}},
	{Lunch, []string{"중식", "lunch"}},
	{Dinner, []string{"석식", "dinner"}},
}

// NormalizeMeal turns a raw mealServiceDietInfo response into a MealDay.
// Any structural problem yields EmptyMealDay for the whole payload.
func NormalizeMeal(raw []byte) MealDay {
	var rows []mealRow
	if err := decodeRows(raw, MealService, &rows); err != nil {
		return EmptyMealDay()
	}

	day := EmptyMealDay()
	for _, row := range rows {
		day.TotalCalorie += ParseCalorie(row.Calories)

		slot, ok := ClassifySlot(row.Category)
		if !ok {
			continue
		}
		day.Meals.set(slot, CleanDishes(row.Dishes))
		day.Calories.set(slot, row.Calories)
	}
	return day
}

// ClassifySlot matches a MMEAL_SC_NM label against the Korean and English slot names
func ClassifySlot(category string) (Slot, bool) {
	category = strings.ToLower(category)
	for _, st := range slotTerms {
		for _, term := range st.terms {
			if strings.Contains(category, term) {
				return st.slot, true
			}
		}
	}
	return "", false
}

// CleanDishes splits a DDISH_NM field into dish names without ordinals or allergen codes
func CleanDishes(field string) []string {
	dishes := []string{}
	for _, line := range lineBreak.Split(field, -1) {
		line = ordinalPrefix.ReplaceAllString(line, "")
		line = parenthetical.ReplaceAllString(line, "")
		line = strings.TrimSpace(line)
		if line != "" {
			dishes = append(dishes, line)
		}
	}
	return dishes
}

// ParseCalorie returns the first number in a CAL_INFO label, 0 when there is none
func ParseCalorie(label string) float64 {
	match := firstNumber.FindString(label)
	if match == "" {
		return 0
	}
	v, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0
	}
	return v
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
