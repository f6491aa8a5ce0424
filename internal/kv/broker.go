package kv

import (
	"context"
	"sync"
)

// SubscriberBuffer is the number of pending changes a subscriber may hold
const SubscriberBuffer = 32

// Change describes one write. Value is nil for a delete.
type Change struct {
	Owner string
	Key   string
	Value []byte
}

// Deleted reports whether the change removed the key
func (c Change) Deleted() bool {
	return c.Value == nil
}

type subscription struct {
	owner string
	ch    chan Change
}

// Broker fans out changes to in-process subscribers
type Broker struct {
	mu     sync.RWMutex
	nextID uint64
	subs   map[uint64]subscription
}

func NewBroker() *Broker {
	return &Broker{subs: make(map[uint64]subscription)}
}

// Subscribe receives the changes of owner, or of every owner when owner is empty.
// The returned function unsubscribes and closes the channel.
func (b *Broker) Subscribe(owner string) (<-chan Change, func()) {
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	ch := make(chan Change, SubscriberBuffer)
	b.subs[id] = subscription{owner: owner, ch: ch}
	b.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs, id)
			b.mu.Unlock()
			close(ch)
		})
	}
}

// Publish never blocks; a subscriber with a full buffer misses the change
func (b *Broker) Publish(change Change) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, sub := range b.subs {
		if sub.owner != "" && sub.owner != change.Owner {
			continue
		}
		select {
		case sub.ch <- change:
		default:
		}
	}
}

// NotifyingStore publishes every successful Set and Delete to a Broker
type NotifyingStore struct {
	Store
	broker *Broker
}

// Notifying decorates store so that writes reach broker's subscribers
func Notifying(store Store, broker *Broker) *NotifyingStore {
	return &NotifyingStore{Store: store, broker: broker}
}

func (s *NotifyingStore) Set(ctx context.Context, owner, key string, value []byte) error {
	if err := s.Store.Set(ctx, owner, key, value); err != nil {
		return err
	}
	if value == nil {
		value = []byte{}
	}
	s.broker.Publish(Change{Owner: owner, Key: key, Value: value})
	return nil
}

func (s *NotifyingStore) Delete(ctx context.Context, owner, key string) error {
	if err := s.Store.Delete(ctx, owner, key); err != nil {
		return err
	}
	s.broker.Publish(Change{Owner: owner, Key: key})
	return nil
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
