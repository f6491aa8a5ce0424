package meal

import (
	"time"

	"mealgo/internal/bookmark"
	"mealgo/internal/neis"
)

// AnnotatedMeals holds each slot's dishes with their bookmark state
type AnnotatedMeals struct {
	Breakfast []bookmark.Dish `json:"breakfast"`
	Lunch     []bookmark.Dish `json:"lunch"`
	Dinner    []bookmark.Dish `json:"dinner"`
}

// Get returns the dishes of slot
func (m AnnotatedMeals) Get(slot neis.Slot) []bookmark.Dish {
	switch slot {
	case neis.Breakfast:
		return m.Breakfast
	case neis.Lunch:
		return m.Lunch
	case neis.Dinner:
		return m.Dinner
	}
	return nil
}

// Annotate marks every dish of meals against bookmarks
func Annotate(meals neis.Meals, bookmarks []string) AnnotatedMeals {
	return AnnotatedMeals{
		Breakfast: bookmark.Annotate(meals.Breakfast, bookmarks),
		Lunch:     bookmark.Annotate(meals.Lunch, bookmarks),
		Dinner:    bookmark.Annotate(meals.Dinner, bookmarks),
	}
}

// Response is the body of GET /api/v0/meals
type Response struct {
	Date         string             `json:"date"`
	Display      string             `json:"display"`
	Meals        AnnotatedMeals     `json:"meals"`
	Calories     neis.CalorieLabels `json:"calories"`
	TotalCalorie float64            `json:"totalCalorie"`
}

// NewResponse builds the response for date
func NewResponse(date time.Time, day neis.MealDay, bookmarks []string) Response {
	return Response{
		Date:         neis.FormatDate(date),
		Display:      neis.DisplayDate(date),
		Meals:        Annotate(day.Meals, bookmarks),
		Calories:     day.Calories,
		TotalCalorie: day.TotalCalorie,
	}
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
