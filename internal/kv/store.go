package kv

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when the owner has no value under key
var ErrNotFound = errors.New("kv: key not found")

// SharedOwner owns entries that belong to no user, such as the provider cache
const SharedOwner = "_shared"

// Store persists opaque values per owner and key. Writes are last-writer-wins.
type Store interface {
	Get(ctx context.Context, owner, key string) ([]byte, error)
	Set(ctx context.Context, owner, key string, value []byte) error
	Delete(ctx context.Context, owner, key string) error
	// Keys lists the owner's keys starting with prefix, sorted
	Keys(ctx context.Context, owner, prefix string) ([]string, error)
}

// ScopedStore is a Store bound to one owner
type ScopedStore struct {
	store Store
	owner string
}

// Scoped binds store to owner
func Scoped(store Store, owner string) *ScopedStore {
	return &ScopedStore{store: store, owner: owner}
}

func (s *ScopedStore) Get(ctx context.Context, key string) ([]byte, error) {
	return s.store.Get(ctx, s.owner, key)
}

func (s *ScopedStore) Set(ctx context.Context, key string, value []byte) error {
	return s.store.Set(ctx, s.owner, key, value)
}

func (s *ScopedStore) Delete(ctx context.Context, key string) error {
	return s.store.Delete(ctx, s.owner, key)
}

func (s *ScopedStore) Keys(ctx context.Context, prefix string) ([]string, error) {
	return s.store.Keys(ctx, s.owner, prefix)
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
