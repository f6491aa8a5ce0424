package day

import (
	"mealgo/internal/neis"
	"mealgo/internal/v0/meal"
)

// Options selects the optional panels of the day screen
type Options struct {
	Timetable     bool
	CalorieDetail bool
	GradeClass    bool
}

// FullOptions enables every panel
func FullOptions() Options {
	return Options{Timetable: true, CalorieDetail: true, GradeClass: true}
}

// Query is the query string of GET /api/v0/day. Panel flags default to true.
type Query struct {
	Date       string `form:"date"`
	Slot       string `form:"slot" binding:"omitempty,oneof=breakfast lunch dinner"`
	Timetable  *bool  `form:"timetable"`
	Calories   *bool  `form:"calories"`
	GradeClass *bool  `form:"gradeClass"`
	Grade      string `form:"grade" binding:"omitempty,grade"`
	Class      string `form:"class" binding:"omitempty,classnm"`
}

// Options applies the query's flags over FullOptions
func (q Query) Options() Options {
	opts := FullOptions()
	if q.Timetable != nil {
		opts.Timetable = *q.Timetable
	}
	if q.Calories != nil {
		opts.CalorieDetail = *q.Calories
	}
	if q.GradeClass != nil {
		opts.GradeClass = *q.GradeClass
	}
	return opts
}

// CalorieDetail is the per-slot calorie panel
type CalorieDetail struct {
	Labels       neis.CalorieLabels `json:"labels"`
	TotalCalorie float64            `json:"totalCalorie"`
}

// Timetable is the timetable panel; an empty Periods means no data
type Timetable struct {
	Grade   string   `json:"grade"`
	Class   string   `json:"class"`
	Periods []string `json:"periods"`
}

// GradeClass feeds the grade and class selectors
type GradeClass struct {
	Grade    string `json:"grade"`
	Class    string `json:"class"`
	MaxGrade int    `json:"maxGrade"`
	MaxClass int    `json:"maxClass"`
}

// Screen is the body of GET /api/v0/day. Disabled panels are omitted.
type Screen struct {
	Date       string              `json:"date"`
	Display    string              `json:"display"`
	Slot       neis.Slot           `json:"slot"`
	Meals      meal.AnnotatedMeals `json:"meals"`
	Prev       SlotRef             `json:"prev"`
	Next       SlotRef             `json:"next"`
	Calories   *CalorieDetail      `json:"calories,omitempty"`
	Timetable  *Timetable          `json:"timetable,omitempty"`
	GradeClass *GradeClass         `json:"gradeClass,omitempty"`
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
