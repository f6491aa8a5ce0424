package day

import (
	"errors"
	"net/http"
	"time"

	"mealgo/internal/auth"
	"mealgo/internal/common"
	"mealgo/internal/neis"
	"mealgo/internal/v0/settings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service *Service
	logger  *zap.Logger
	now     func() time.Time
}

func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger, now: service.now}
}

// GetDay handles GET /api/v0/day
func (h *Handler) GetDay(c *gin.Context) {
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

	screen, err := h.service.Build(c.Request.Context(), auth.Owner(c), date, neis.Slot(q.Slot), q.Grade, q.Class, q.Options())
	if errors.Is(err, ErrStale) {
		common.Fail(c, http.StatusConflict, err.Error())
		return
	}
	if err != nil {
		h.logger.Error("failed to build day screen", zap.Error(err))
		common.Fail(c, http.StatusInternalServerError, "failed to load day")
		return
	}
	common.Success(c, http.StatusOK, screen)
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
