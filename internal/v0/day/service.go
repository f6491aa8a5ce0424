package day

import (
	"context"
	"time"

	"mealgo/internal/bookmark"
	"mealgo/internal/neis"
	"mealgo/internal/v0/meal"
	"mealgo/internal/v0/settings"

	"go.uber.org/zap"
)

// Service composes the day screen from the loader, settings and bookmarks
type Service struct {
	loader    *Loader
	settings  *settings.Service
	bookmarks *bookmark.Repository
	logger    *zap.Logger
	now       func() time.Time
}

func NewService(loader *Loader, settingsSvc *settings.Service, bookmarks *bookmark.Repository, logger *zap.Logger, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{loader: loader, settings: settingsSvc, bookmarks: bookmarks, logger: logger, now: now}
}

// Build loads and assembles the screen for date. An empty slot selects DefaultSlot of now.
// Grade and class override the stored settings when set.
func (s *Service) Build(ctx context.Context, owner string, date time.Time, slot neis.Slot, grade, class string, opts Options) (Screen, error) {
	prefs, err := s.settings.Get(ctx, owner)
	if err != nil {
		s.logger.Warn("failed to read settings, using defaults", zap.Error(err))
		prefs = settings.Defaults()
	}
	if grade == "" {
		grade, class = prefs.Grade, prefs.ClassNm
	}
	showTimetable := opts.Timetable && prefs.ShowTimetable()

	res, err := s.loader.Load(ctx, Request{
		Owner:     owner,
		Date:      date,
		Grade:     grade,
		Class:     class,
		Timetable: showTimetable,
	})
	if err != nil {
		return Screen{}, err
	}

	marks, err := s.bookmarks.List(ctx, owner)
	if err != nil {
		s.logger.Warn("failed to read bookmarks", zap.Error(err))
		marks = nil
	}

	if slot == "" {
		slot = DefaultSlot(s.now())
	}
	prevDate, prevSlot := PrevSlot(date, slot)
	nextDate, nextSlot := NextSlot(date, slot)

	screen := Screen{
		Date:    neis.FormatDate(date),
		Display: neis.DisplayDate(date),
		Slot:    slot,
		Meals:   meal.Annotate(res.Meal.Meals, marks),
		Prev:    ref(prevDate, prevSlot),
		Next:    ref(nextDate, nextSlot),
	}
	if opts.CalorieDetail {
		screen.Calories = &CalorieDetail{Labels: res.Meal.Calories, TotalCalorie: res.Meal.TotalCalorie}
	}
	if showTimetable {
		screen.Timetable = &Timetable{Grade: grade, Class: class, Periods: res.Periods}
	}
	if opts.GradeClass {
		screen.GradeClass = &GradeClass{Grade: grade, Class: class, MaxGrade: settings.MaxGrade, MaxClass: settings.MaxClass}
	}
	return screen, nil
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
