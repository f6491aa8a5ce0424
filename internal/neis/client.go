package neis

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
)

const (
	DefaultBaseURL    = "https://open.neis.go.kr/hub"
	DefaultOfficeCode = "G10"
	DefaultSchoolCode = "7430310"
	DefaultTimeout    = 10 * time.Second

	// bodies above this are not a meal or timetable payload
	maxPayloadSize = 4 << 20
)

// SchoolLevel selects the timetable service for the school
type SchoolLevel string

const (
	LevelHigh       SchoolLevel = "high"
	LevelMiddle     SchoolLevel = "middle"
	LevelElementary SchoolLevel = "elementary"
)

// TimetableService returns the endpoint and payload key for the level
func (l SchoolLevel) TimetableService() string {
	switch l {
	case LevelMiddle:
		return "misTimetable"
	case LevelElementary:
		return "elsTimetable"
	default:
		return "hisTimetable"
	}
}

// Config identifies the school and the API credentials
type Config struct {
	APIKey     string
	BaseURL    string
	OfficeCode string
	SchoolCode string
	Level      SchoolLevel
	Timeout    time.Duration
}

// Cache stores raw payloads; a kv.Scoped store satisfies it
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// Client fetches meal and timetable payloads from the NEIS open API
type Client struct {
	cfg    Config
	http   *http.Client
	cache  Cache
	logger *zap.Logger
}

// NewClient creates a provider client; zero config fields take the defaults
func NewClient(cfg Config, logger *zap.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.OfficeCode == "" {
		cfg.OfficeCode = DefaultOfficeCode
	}
	if cfg.SchoolCode == "" {
		cfg.SchoolCode = DefaultSchoolCode
	}
	if cfg.Level == "" {
		cfg.Level = LevelHigh
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: cfg.Timeout},
		logger: logger,
	}
}

// WithCache makes successful meal payloads available when the provider is down
func (c *Client) WithCache(cache Cache) *Client {
	c.cache = cache
	return c
}

// SchoolCode returns the configured school
func (c *Client) SchoolCode() string {
	return c.cfg.SchoolCode
}

// TimetableService returns the timetable payload key for the configured school level
func (c *Client) TimetableService() string {
	return c.cfg.Level.TimetableService()
}

// MealPayload fetches the raw mealServiceDietInfo body for date
func (c *Client) MealPayload(ctx context.Context, date time.Time) ([]byte, error) {
	params := c.baseParams()
	params.Set("MLSV_YMD", FormatDate(date))
	return c.get(ctx, MealService, params)
}

// TimetablePayload fetches the raw timetable body for date, grade and optional class
func (c *Client) TimetablePayload(ctx context.Context, date time.Time, grade, class string) ([]byte, error) {
	params := c.baseParams()
	params.Set("ALL_TI_YMD", FormatDate(date))
	if grade != "" {
		params.Set("GRADE", grade)
	}
	if class != "" {
		params.Set("CLASS_NM", class)
	}
	return c.get(ctx, c.TimetableService(), params)
}

// Meal returns the normalized menu for date. Provider failures are logged
// and fall back to the cached payload, then to an empty day.
func (c *Client) Meal(ctx context.Context, date time.Time) MealDay {
	key := mealCacheKey(date)

	raw, err := c.MealPayload(ctx, date)
	if err != nil {
		c.logger.Warn("meal fetch failed", zap.String("date", FormatDate(date)), zap.Error(err))
		return c.cachedMeal(ctx, key)
	}

	day := NormalizeMeal(raw)
	if !day.IsEmpty() && c.cache != nil {
		if err := c.cache.Set(ctx, key, raw); err != nil {
			c.logger.Warn("meal cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return day
}

// Timetable returns the normalized periods for date, or an empty slice on failure
func (c *Client) Timetable(ctx context.Context, date time.Time, grade, class string) []string {
	raw, err := c.TimetablePayload(ctx, date, grade, class)
	if err != nil {
		c.logger.Warn("timetable fetch failed",
			zap.String("date", FormatDate(date)),
			zap.String("grade", grade),
			zap.String("class", class),
			zap.Error(err),
		)
		return []string{}
	}
	return NormalizeTimetable(raw, c.TimetableService())
}

// TotalCalorie returns the day's summed CAL_INFO figure
func (c *Client) TotalCalorie(ctx context.Context, date time.Time) float64 {
	return c.Meal(ctx, date).TotalCalorie
}

// Prefetch fetches and caches the meal payload of each date
func (c *Client) Prefetch(ctx context.Context, dates ...time.Time) error {
	if c.cache == nil {
		return errors.New("prefetch requires a cache")
	}
	var errs []error
	for _, date := range dates {
		raw, err := c.MealPayload(ctx, date)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", FormatDate(date), err))
			continue
		}
		if NormalizeMeal(raw).IsEmpty() {
			continue
		}
		if err := c.cache.Set(ctx, mealCacheKey(date), raw); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (c *Client) cachedMeal(ctx context.Context, key string) MealDay {
	if c.cache == nil {
		return EmptyMealDay()
	}
	raw, err := c.cache.Get(ctx, key)
	if err != nil {
		return EmptyMealDay()
	}
	return NormalizeMeal(raw)
}

func (c *Client) baseParams() url.Values {
	params := url.Values{}
	params.Set("KEY", c.cfg.APIKey)
	params.Set("Type", "json")
	params.Set("ATPT_OFCDC_SC_CODE", c.cfg.OfficeCode)
	params.Set("SD_SCHUL_CODE", c.cfg.SchoolCode)
	return params
}

func (c *Client) get(ctx context.Context, service string, params url.Values) ([]byte, error) {
	reqURL, err := url.Parse(c.cfg.BaseURL + "/" + service)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}
	reqURL.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call %s: %w", service, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPayloadSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s response: %w", service, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s request failed with status %d: %s", service, resp.StatusCode, string(body))
	}
	return body, nil
}

func mealCacheKey(date time.Time) string {
	return "meal:" + FormatDate(date)
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
