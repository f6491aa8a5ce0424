package day

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"mealgo/internal/neis"

	"golang.org/x/sync/errgroup"
)

// ErrStale is returned when a newer load for the same owner and source was
// issued while this one was in flight
var ErrStale = errors.New("superseded by a newer request")

type source string

const (
	sourceMeal      source = "meal"
	sourceTimetable source = "timetable"
)

// MealSource returns the normalized menu of a day; *neis.Client satisfies it
type MealSource interface {
	Meal(ctx context.Context, date time.Time) neis.MealDay
}

// TimetableSource returns the normalized periods of a class; *neis.Client satisfies it
type TimetableSource interface {
	Timetable(ctx context.Context, date time.Time, grade, class string) []string
}

// Request describes one screen load
type Request struct {
	Owner     string
	Date      time.Time
	Grade     string
	Class     string
	Timetable bool
}

// Result holds the fetched data. Periods is nil when the timetable was not requested.
type Result struct {
	Meal    neis.MealDay
	Periods []string
}

// Loader fetches a day's meal and timetable concurrently. Every load takes a
// sequence token per source; a result whose token is no longer the latest
// for its owner and source is discarded.
type Loader struct {
	meals     MealSource
	timetable TimetableSource
	seqs      sync.Map // owner + "/" + source -> *atomic.Uint64
}

func NewLoader(meals MealSource, timetable TimetableSource) *Loader {
	return &Loader{meals: meals, timetable: timetable}
}

func (l *Loader) counter(owner string, src source) *atomic.Uint64 {
	v, _ := l.seqs.LoadOrStore(owner+"/"+string(src), new(atomic.Uint64))
	return v.(*atomic.Uint64)
}

// issue returns a token newer than every token issued before for owner and src
func (l *Loader) issue(owner string, src source) uint64 {
	return l.counter(owner, src).Add(1)
}

func (l *Loader) latest(owner string, src source, token uint64) bool {
	return l.counter(owner, src).Load() == token
}

// Load fetches the data for req. It fails with ErrStale when a newer Load for
// the same owner finished issuing tokens before this one completed.
func (l *Loader) Load(ctx context.Context, req Request) (Result, error) {
	var res Result
	g, gctx := errgroup.WithContext(ctx)

	mealToken := l.issue(req.Owner, sourceMeal)
	g.Go(func() error {
		day := l.meals.Meal(gctx, req.Date)
		if !l.latest(req.Owner, sourceMeal, mealToken) {
			return ErrStale
		}
		res.Meal = day
		return nil
	})

	if req.Timetable {
		ttToken := l.issue(req.Owner, sourceTimetable)
		g.Go(func() error {
			periods := l.timetable.Timetable(gctx, req.Date, req.Grade, req.Class)
			if !l.latest(req.Owner, sourceTimetable, ttToken) {
				return ErrStale
			}
			res.Periods = periods
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return Result{}, err
	}
	return res, nil
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
