package timetable

import (
	"context"
	"net/http"
	"time"

	"mealgo/internal/auth"
	"mealgo/internal/common"
	"mealgo/internal/neis"
	"mealgo/internal/v0/settings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Source returns the normalized periods of a class; *neis.Client satisfies it
type Source interface {
	Timetable(ctx context.Context, date time.Time, grade, class string) []string
}

type Handler struct {
	source   Source
	settings *settings.Service
	logger   *zap.Logger
	now      func() time.Time
}

func NewHandler(source Source, settings *settings.Service, logger *zap.Logger, now func() time.Time) *Handler {
	if now == nil {
		now = time.Now
	}
	return &Handler{source: source, settings: settings, logger: logger, now: now}
}

// GetTimetable handles GET /api/v0/timetable?date=&grade=&class=
func (h *Handler) GetTimetable(c *gin.Context) {
	var q Query
	if err := c.ShouldBindQuery(&q); err != nil {
		common.Fail(c, http.StatusBadRequest, settings.ValidationMessages(err)...)
		return
	}
	date, err := neis.ResolveDate(q.Date, h.now())
	if err != nil {
		common.Fail(c, http.StatusBadRequest, err.Error())
		return
	}

	ctx := c.Request.Context()
	if q.Grade == "" {
		s, err := h.settings.Get(ctx, auth.Owner(c))
		if err != nil {
			h.logger.Warn("failed to read settings, using defaults", zap.Error(err))
			s = settings.Defaults()
		}
		q.Grade = s.Grade
		if q.Class == "" {
			q.Class = s.ClassNm
		}
	}

	common.Success(c, http.StatusOK, Response{
		Date:    neis.FormatDate(date),
		Display: neis.DisplayDate(date),
		Grade:   q.Grade,
		Class:   q.Class,
		Periods: h.source.Timetable(ctx, date, q.Grade, q.Class),
	})
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
