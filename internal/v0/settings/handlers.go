package settings

import (
	"errors"
	"io"
	"net/http"

	"mealgo/internal/auth"
	"mealgo/internal/common"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

type Handler struct {
	service *Service
	logger  *zap.Logger
}

func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// GetSettings handles GET /api/v0/settings
func (h *Handler) GetSettings(c *gin.Context) {
	s, err := h.service.Get(c.Request.Context(), auth.Owner(c))
	if err != nil {
		h.logger.Error("failed to read settings", zap.Error(err))
		common.Fail(c, http.StatusInternalServerError, "failed to read settings")
		return
	}
	common.Success(c, http.StatusOK, s)
}

// PutSettings handles PUT /api/v0/settings. Absent fields keep their stored value.
func (h *Handler) PutSettings(c *gin.Context) {
	var p Patch
	if err := c.ShouldBindJSON(&p); err != nil {
		common.Fail(c, http.StatusBadRequest, ValidationMessages(err)...)
		return
	}

	s, err := h.service.Patch(c.Request.Context(), auth.Owner(c), p)
	if err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			common.Fail(c, http.StatusBadRequest, ValidationMessages(verrs)...)
			return
		}
		h.logger.Error("failed to save settings", zap.Error(err))
		common.Fail(c, http.StatusInternalServerError, "failed to save settings")
		return
	}
	common.Success(c, http.StatusOK, s)
}

// ResetSettings handles DELETE /api/v0/settings
func (h *Handler) ResetSettings(c *gin.Context) {
	s, err := h.service.Update(c.Request.Context(), auth.Owner(c), Defaults())
	if err != nil {
		h.logger.Error("failed to reset settings", zap.Error(err))
		common.Fail(c, http.StatusInternalServerError, "failed to reset settings")
		return
	}
	common.Success(c, http.StatusOK, s)
}

// StreamSettings handles GET /api/v0/settings/stream. It sends the current
// settings as a server-sent event, then one event per change.
func (h *Handler) StreamSettings(c *gin.Context) {
	ctx := c.Request.Context()
	owner := auth.Owner(c)

	updates, cancel := h.service.Subscribe(ctx, owner)
	defer cancel()

	current, err := h.service.Get(ctx, owner)
	if err != nil {
		h.logger.Error("failed to read settings", zap.Error(err))
		common.Fail(c, http.StatusInternalServerError, "failed to read settings")
		return
	}

	c.Header("Cache-Control", "no-cache")
	c.SSEvent(StreamEvent, current)
	c.Writer.Flush()

	c.Stream(func(w io.Writer) bool {
		next, ok := <-updates
		if !ok {
			return false
		}
		c.SSEvent(StreamEvent, next)
		return true
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
