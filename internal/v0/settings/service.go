package settings

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"mealgo/internal/kv"
)

// Service reads and writes per-user settings. Writes go through a
// notifying store, so subscribers see every change.
type Service struct {
	store  kv.Store
	broker *kv.Broker
}

// NewService expects store to publish its writes to broker
func NewService(store kv.Store, broker *kv.Broker) *Service {
	return &Service{store: store, broker: broker}
}

// Get returns the owner's settings, or Defaults when absent or malformed
func (s *Service) Get(ctx context.Context, owner string) (Settings, error) {
	raw, err := s.store.Get(ctx, owner, StorageKey)
	if errors.Is(err, kv.ErrNotFound) {
		return Defaults(), nil
	}
	if err != nil {
		return Settings{}, err
	}
	return Decode(raw), nil
}

// Update validates and stores the full record
func (s *Service) Update(ctx context.Context, owner string, next Settings) (Settings, error) {
	if err := validate.Struct(next); err != nil {
		return Settings{}, err
	}
	raw, err := json.Marshal(next)
	if err != nil {
		return Settings{}, err
	}
	if err := s.store.Set(ctx, owner, StorageKey, raw); err != nil {
		return Settings{}, err
	}
	return next, nil
}

// Patch applies p over the stored settings
func (s *Service) Patch(ctx context.Context, owner string, p Patch) (Settings, error) {
	current, err := s.Get(ctx, owner)
	if err != nil {
		return Settings{}, err
	}
	return s.Update(ctx, owner, p.Apply(current))
}

// Subscribe delivers the owner's settings after every change until cancel is called
// or ctx ends. The channel is closed afterwards.
func (s *Service) Subscribe(ctx context.Context, owner string) (<-chan Settings, func()) {
	changes, unsubscribe := s.broker.Subscribe(owner)
	out := make(chan Settings, kv.SubscriberBuffer)
	done := make(chan struct{})

	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				unsubscribe()
				return
			case <-done:
				unsubscribe()
				return
			case change, ok := <-changes:
				if !ok {
					return
				}
				if change.Key != StorageKey {
					continue
				}
				next := Defaults()
				if !change.Deleted() {
					next = Decode(change.Value)
				}
				select {
				case out <- next:
				default:
				}
			}
		}
	}()

	var once sync.Once
	return out, func() {
		once.Do(func() { close(done) })
	}
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
