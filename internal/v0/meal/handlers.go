package meal

import (
	"context"
	"net/http"
	"time"

	"mealgo/internal/auth"
	"mealgo/internal/bookmark"
	"mealgo/internal/common"
	"mealgo/internal/neis"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Source returns the normalized menu of a day; *neis.Client satisfies it
type Source interface {
	Meal(ctx context.Context, date time.Time) neis.MealDay
}

type Handler struct {
	source    Source
	bookmarks *bookmark.Repository
	logger    *zap.Logger
	now       func() time.Time
}

func NewHandler(source Source, bookmarks *bookmark.Repository, logger *zap.Logger, now func() time.Time) *Handler {
	if now == nil {
		now = time.Now
	}
	return &Handler{source: source, bookmarks: bookmarks, logger: logger, now: now}
}

// GetMeals handles GET /api/v0/meals?date=YYYYMMDD
func (h *Handler) GetMeals(c *gin.Context) {
	date, err := neis.ResolveDate(c.Query("date"), h.now())
	if err != nil {
		common.Fail(c, http.StatusBadRequest, err.Error())
		return
	}

	ctx := c.Request.Context()
	day := h.source.Meal(ctx, date)

	// a broken bookmark list only loses the highlighting
	marks, err := h.bookmarks.List(ctx, auth.Owner(c))
	if err != nil {
		h.logger.Warn("failed to read bookmarks", zap.Error(err))
		marks = nil
	}

	common.Success(c, http.StatusOK, NewResponse(date, day, marks))
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
