package neis

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// DefaultPrefetchSchedule runs once a day before breakfast
const DefaultPrefetchSchedule = "0 5 * * *"

// Prefetcher warms the meal cache for today and tomorrow on a cron schedule
type Prefetcher struct {
	client  *Client
	cron    *cron.Cron
	logger  *zap.Logger
	loc     *time.Location
	now     func() time.Time
	timeout time.Duration
}

// NewPrefetcher registers the prefetch job; call Start to run it.
// The schedule and "today" are both evaluated in loc.
func NewPrefetcher(client *Client, schedule string, loc *time.Location, logger *zap.Logger) (*Prefetcher, error) {
	if schedule == "" {
		schedule = DefaultPrefetchSchedule
	}
	if loc == nil {
		loc = time.Local
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	p := &Prefetcher{
		client:  client,
		cron:    cron.New(cron.WithLocation(loc)),
		logger:  logger,
		loc:     loc,
		now:     time.Now,
		timeout: time.Minute,
	}
	if _, err := p.cron.AddFunc(schedule, p.Run); err != nil {
		return nil, err
	}
	return p, nil
}

// Run fetches today's and tomorrow's menus once
func (p *Prefetcher) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()

	today := Day(p.now().In(p.loc))
	if err := p.client.Prefetch(ctx, today, today.AddDate(0, 0, 1)); err != nil {
		p.logger.Warn("meal prefetch incomplete", zap.Error(err))
		return
	}
	p.logger.Info("meal prefetch complete", zap.String("date", FormatDate(today)))
}

func (p *Prefetcher) Start() {
	p.cron.Start()
}

// Stop waits for a running job to finish
func (p *Prefetcher) Stop() {
	<-p.cron.Stop().Done()
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
