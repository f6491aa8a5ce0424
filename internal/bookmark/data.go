package bookmark

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"mealgo/internal/kv"
)

// StorageKey is the per-user key holding the JSON array of bookmarks
const StorageKey = "mealBookmarks"

// ErrEmptyBookmark is returned when a bookmark is blank after trimming
var ErrEmptyBookmark = errors.New("bookmark must not be empty")

type Repository struct {
	store kv.Store
}

// NewRepository creates a bookmark repository over store
func NewRepository(store kv.Store) *Repository {
	return &Repository{store: store}
}

// List returns the owner's bookmarks in insertion order.
// A missing or malformed value reads as an empty list.
func (r *Repository) List(ctx context.Context, owner string) ([]string, error) {
	raw, err := r.store.Get(ctx, owner, StorageKey)
	if errors.Is(err, kv.ErrNotFound) {
		return []string{}, nil
	}
	if err != nil {
		return nil, err
	}

	var bookmarks []string
	if err := json.Unmarshal(raw, &bookmarks); err != nil || bookmarks == nil {
		return []string{}, nil
	}
	return bookmarks, nil
}

// Add appends a trimmed bookmark. Duplicates are kept.
func (r *Repository) Add(ctx context.Context, owner, bookmark string) ([]string, error) {
	bookmark = strings.TrimSpace(bookmark)
	if bookmark == "" {
		return nil, ErrEmptyBookmark
	}
	bookmarks, err := r.List(ctx, owner)
	if err != nil {
		return nil, err
	}
	bookmarks = append(bookmarks, bookmark)
	return bookmarks, r.save(ctx, owner, bookmarks)
}

// Remove deletes every entry equal to bookmark
func (r *Repository) Remove(ctx context.Context, owner, bookmark string) ([]string, error) {
	bookmarks, err := r.List(ctx, owner)
	if err != nil {
		return nil, err
	}
	kept := make([]string, 0, len(bookmarks))
	for _, b := range bookmarks {
		if b != bookmark {
			kept = append(kept, b)
		}
	}
	return kept, r.save(ctx, owner, kept)
}

// Replace overwrites the whole list, dropping blank entries
func (r *Repository) Replace(ctx context.Context, owner string, bookmarks []string) ([]string, error) {
	cleaned := make([]string, 0, len(bookmarks))
	for _, b := range bookmarks {
		if b = strings.TrimSpace(b); b != "" {
			cleaned = append(cleaned, b)
		}
	}
	return cleaned, r.save(ctx, owner, cleaned)
}

func (r *Repository) save(ctx context.Context, owner string, bookmarks []string) error {
	raw, err := json.Marshal(bookmarks)
	if err != nil {
		return err
	}
	return r.store.Set(ctx, owner, StorageKey, raw)
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
