package diet

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"mealgo/internal/auth"
	"mealgo/internal/common"
	calorie "mealgo/internal/diet"
	"mealgo/internal/neis"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Source returns the normalized menu of a day; *neis.Client satisfies it
type Source interface {
	Meal(ctx context.Context, date time.Time) neis.MealDay
}

type Handler struct {
	source  Source
	history *calorie.History
	logger  *zap.Logger
	now     func() time.Time
}

func NewHandler(source Source, history *calorie.History, logger *zap.Logger, now func() time.Time) *Handler {
	if now == nil {
		now = time.Now
	}
	return &Handler{source: source, history: history, logger: logger, now: now}
}

// GetOverview handles GET /api/v0/diet?date=
func (h *Handler) GetOverview(c *gin.Context) {
	date, err := neis.ResolveDate(c.Query("date"), h.now())
	if err != nil {
		common.Fail(c, http.StatusBadRequest, err.Error())
		return
	}

	overview, err := h.overview(c.Request.Context(), auth.Owner(c), date)
	if err != nil {
		h.logger.Error("failed to build diet overview", zap.Error(err))
		common.Fail(c, http.StatusInternalServerError, "failed to read consumption history")
		return
	}
	common.Success(c, http.StatusOK, overview)
}

// Confirm handles POST /api/v0/diet/confirm. An invalid percentage changes nothing.
func (h *Handler) Confirm(c *gin.Context) {
	var req ConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Fail(c, http.StatusBadRequest, calorie.InvalidPercentageMessage)
		return
	}
	pct, err := calorie.ParsePercentage(string(req.Percentage))
	if err != nil {
		common.Fail(c, http.StatusBadRequest, err.Error())
		return
	}
	date, err := neis.ResolveDate(req.Date, h.now())
	if err != nil {
		common.Fail(c, http.StatusBadRequest, err.Error())
		return
	}

	ctx := c.Request.Context()
	owner := auth.Owner(c)
	day := h.source.Meal(ctx, date)

	record := calorie.ConsumptionRecord{
		Date:         neis.FormatDate(date),
		TotalCalorie: day.TotalCalorie,
		Percentage:   pct,
	}
	if err := h.history.Upsert(ctx, owner, record); err != nil {
		h.logger.Error("failed to save consumption record", zap.Error(err))
		common.Fail(c, http.StatusInternalServerError, "failed to save consumption record")
		return
	}
	// the record is already stored; a lost note does not fail the confirmation
	if _, err := h.history.SaveNote(ctx, owner, record.Date, req.Note); err != nil {
		h.logger.Warn("failed to save note", zap.String("date", record.Date), zap.Error(err))
	}

	overview, err := h.overview(ctx, owner, date)
	if err != nil {
		h.logger.Error("failed to build diet overview", zap.Error(err))
		common.Fail(c, http.StatusInternalServerError, "failed to read consumption history")
		return
	}
	common.Success(c, http.StatusOK, overview)
}

// GetHistory handles GET /api/v0/diet/history?limit=
func (h *Handler) GetHistory(c *gin.Context) {
	limit := RecentLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			common.Fail(c, http.StatusBadRequest, "limit must be a positive number")
			return
		}
		limit = n
	}

	records, err := h.history.Recent(c.Request.Context(), auth.Owner(c), limit)
	if err != nil {
		h.logger.Error("failed to read consumption history", zap.Error(err))
		common.Fail(c, http.StatusInternalServerError, "failed to read consumption history")
		return
	}
	views := make([]RecordView, 0, len(records))
	for _, r := range records {
		views = append(views, newRecordView(r))
	}
	common.Success(c, http.StatusOK, gin.H{"records": views})
}

// GetNoteDates handles GET /api/v0/diet/notes
func (h *Handler) GetNoteDates(c *gin.Context) {
	dates, err := h.history.NoteDates(c.Request.Context(), auth.Owner(c))
	if err != nil {
		h.logger.Error("failed to list notes", zap.Error(err))
		common.Fail(c, http.StatusInternalServerError, "failed to list notes")
		return
	}
	common.Success(c, http.StatusOK, gin.H{"dates": dates})
}

func (h *Handler) overview(ctx context.Context, owner string, date time.Time) (Overview, error) {
	key := neis.FormatDate(date)

	var (
		today, yesterday neis.MealDay
		record           calorie.ConsumptionRecord
		confirmed        bool
		recent           []calorie.ConsumptionRecord
		note             string
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		today = h.source.Meal(gctx, date)
		return nil
	})
	g.Go(func() error {
		yesterday = h.source.Meal(gctx, date.AddDate(0, 0, -1))
		return nil
	})
	g.Go(func() (err error) {
		record, confirmed, err = h.history.Find(gctx, owner, key)
		return err
	})
	g.Go(func() (err error) {
		recent, err = h.history.Recent(gctx, owner, RecentLimit)
		return err
	})
	g.Go(func() (err error) {
		note, err = h.history.Note(gctx, owner, key)
		return err
	})
	if err := g.Wait(); err != nil {
		return Overview{}, err
	}

	pct := float64(calorie.DefaultPercentage)
	if confirmed {
		pct = record.Percentage
	}
	views := make([]RecordView, 0, len(recent))
	for _, r := range recent {
		views = append(views, newRecordView(r))
	}

	return Overview{
		Date:       key,
		Display:    neis.DisplayDate(date),
		Confirmed:  confirmed,
		Estimation: calorie.Estimate(today.TotalCalorie, yesterday.TotalCalorie, pct),
		Recent:     views,
		Note:       note,
	}, nil
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
