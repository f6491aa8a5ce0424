package bookmarks

import (
	"errors"
	"net/http"

	"mealgo/internal/auth"
	"mealgo/internal/bookmark"
	"mealgo/internal/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	repo   *bookmark.Repository
	logger *zap.Logger
}

func NewHandler(repo *bookmark.Repository, logger *zap.Logger) *Handler {
	return &Handler{repo: repo, logger: logger}
}

// List handles GET /api/v0/bookmarks
func (h *Handler) List(c *gin.Context) {
	list, err := h.repo.List(c.Request.Context(), auth.Owner(c))
	if err != nil {
		h.fail(c, "failed to read bookmarks", err)
		return
	}
	common.Success(c, http.StatusOK, ListResponse{Bookmarks: list})
}

// Add handles POST /api/v0/bookmarks
func (h *Handler) Add(c *gin.Context) {
	var req AddRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Fail(c, http.StatusBadRequest, "name is required")
		return
	}
	list, err := h.repo.Add(c.Request.Context(), auth.Owner(c), req.Name)
	if errors.Is(err, bookmark.ErrEmptyBookmark) {
		common.Fail(c, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		h.fail(c, "failed to save bookmark", err)
		return
	}
	common.Success(c, http.StatusCreated, ListResponse{Bookmarks: list})
}

// Remove handles DELETE /api/v0/bookmarks?name=
func (h *Handler) Remove(c *gin.Context) {
	name := c.Query("name")
	if name == "" {
		common.Fail(c, http.StatusBadRequest, "name is required")
		return
	}
	list, err := h.repo.Remove(c.Request.Context(), auth.Owner(c), name)
	if err != nil {
		h.fail(c, "failed to remove bookmark", err)
		return
	}
	common.Success(c, http.StatusOK, ListResponse{Bookmarks: list})
}

// Replace handles PUT /api/v0/bookmarks
func (h *Handler) Replace(c *gin.Context) {
	var req ReplaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Fail(c, http.StatusBadRequest, "bookmarks must be a list")
		return
	}
	list, err := h.repo.Replace(c.Request.Context(), auth.Owner(c), req.Bookmarks)
	if err != nil {
		h.fail(c, "failed to save bookmarks", err)
		return
	}
	common.Success(c, http.StatusOK, ListResponse{Bookmarks: list})
}

// Match handles POST /api/v0/bookmarks/match
func (h *Handler) Match(c *gin.Context) {
	var req MatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Fail(c, http.StatusBadRequest, "dishes must be a list")
		return
	}
	list, err := h.repo.List(c.Request.Context(), auth.Owner(c))
	if err != nil {
		h.fail(c, "failed to read bookmarks", err)
		return
	}
	common.Success(c, http.StatusOK, gin.H{"dishes": bookmark.Annotate(req.Dishes, list)})
}

func (h *Handler) fail(c *gin.Context, msg string, err error) {
	h.logger.Error(msg, zap.String("owner", auth.Owner(c)), zap.Error(err))
	common.Fail(c, http.StatusInternalServerError, msg)
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
