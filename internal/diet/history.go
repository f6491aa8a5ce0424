package diet

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"mealgo/internal/kv"
)

const (
	// HistoryKey holds the JSON array of consumption records
	HistoryKey = "calorieHistory"

	notePrefix = "note_"
)

// ConsumptionRecord is the intake a user confirmed for one date.
// TotalCalorie is the provider figure when the record was written.
type ConsumptionRecord struct {
	Date         string  `json:"date"`
	TotalCalorie float64 `json:"totalCalorie"`
	Percentage   float64 `json:"percentage"`
}

// ConsumedCalorie applies the record's percentage to its total
func (r ConsumptionRecord) ConsumedCalorie() float64 {
	return Round(r.TotalCalorie * r.Percentage / 100)
}

// NoteKey returns the storage key of the free-text note for date
func NoteKey(date string) string {
	return notePrefix + date
}

// History persists consumption records and notes per owner. At most one
// record exists per date; writers race with last-writer-wins.
type History struct {
	store kv.Store
}

func NewHistory(store kv.Store) *History {
	return &History{store: store}
}

// All returns the owner's records in storage order. Missing or malformed data reads as empty.
func (h *History) All(ctx context.Context, owner string) ([]ConsumptionRecord, error) {
	raw, err := h.store.Get(ctx, owner, HistoryKey)
	if errors.Is(err, kv.ErrNotFound) {
		return []ConsumptionRecord{}, nil
	}
	if err != nil {
		return nil, err
	}

	var records []ConsumptionRecord
	if err := json.Unmarshal(raw, &records); err != nil || records == nil {
		return []ConsumptionRecord{}, nil
	}
	return records, nil
}

// Upsert drops any record with the same date and appends record
func (h *History) Upsert(ctx context.Context, owner string, record ConsumptionRecord) error {
	records, err := h.All(ctx, owner)
	if err != nil {
		return err
	}

	updated := make([]ConsumptionRecord, 0, len(records)+1)
	for _, r := range records {
		if r.Date != record.Date {
			updated = append(updated, r)
		}
	}
	updated = append(updated, record)

	raw, err := json.Marshal(updated)
	if err != nil {
		return err
	}
	return h.store.Set(ctx, owner, HistoryKey, raw)
}

// Recent returns up to n of the last stored records, most recent first
func (h *History) Recent(ctx context.Context, owner string, n int) ([]ConsumptionRecord, error) {
	records, err := h.All(ctx, owner)
	if err != nil {
		return nil, err
	}
	if n < 0 {
		n = 0
	}
	if n > len(records) {
		n = len(records)
	}

	recent := make([]ConsumptionRecord, 0, n)
	for i := len(records) - 1; i >= len(records)-n; i-- {
		recent = append(recent, records[i])
	}
	return recent, nil
}

// Find returns the record stored for date
func (h *History) Find(ctx context.Context, owner, date string) (ConsumptionRecord, bool, error) {
	records, err := h.All(ctx, owner)
	if err != nil {
		return ConsumptionRecord{}, false, err
	}
	for _, r := range records {
		if r.Date == date {
			return r, true, nil
		}
	}
	return ConsumptionRecord{}, false, nil
}

// SaveNote stores note for date unless it is blank. It reports whether a note was written.
func (h *History) SaveNote(ctx context.Context, owner, date, note string) (bool, error) {
	if strings.TrimSpace(note) == "" {
		return false, nil
	}
	if err := h.store.Set(ctx, owner, NoteKey(date), []byte(note)); err != nil {
		return false, err
	}
	return true, nil
}

// Note returns the note stored for date, or "" when there is none
func (h *History) Note(ctx context.Context, owner, date string) (string, error) {
	raw, err := h.store.Get(ctx, owner, NoteKey(date))
	if errors.Is(err, kv.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// NoteDates lists the dates that have a note, oldest first
func (h *History) NoteDates(ctx context.Context, owner string) ([]string, error) {
	keys, err := h.store.Keys(ctx, owner, notePrefix)
	if err != nil {
		return nil, err
	}
	dates := make([]string, 0, len(keys))
	for _, k := range keys {
		dates = append(dates, strings.TrimPrefix(k, notePrefix))
	}
	return dates, nil
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
