package wicker

import "slices"

// Signal is a typed observer list. Handlers run in connection order. The
// zero value is ready to use.
type Signal[T any] struct {
	handlers []signalHandler[T]
	nextID   uint32
}

type signalHandler[T any] struct {
	id uint32
	fn func(T)
}

// Subscription allows removing a connected handler. Removing twice, or
// removing the zero Subscription, is a no-op.
type Subscription struct {
	id     uint32
	remove func(uint32)
}

// Remove disconnects the handler so it no longer fires.
func (s Subscription) Remove() {
	if s.remove == nil {
		return
	}
	s.remove(s.id)
}

// Connect registers fn and returns a handle that disconnects it.
func (s *Signal[T]) Connect(fn func(T)) Subscription {
	s.nextID++
	id := s.nextID
	s.handlers = append(s.handlers, signalHandler[T]{id: id, fn: fn})
	return Subscription{id: id, remove: s.disconnect}
}

// disconnect removes the handler from the slice to avoid nil iteration waste.
func (s *Signal[T]) disconnect(id uint32) {
	for i := range s.handlers {
		if s.handlers[i].id == id {
			copy(s.handlers[i:], s.handlers[i+1:])
			s.handlers[len(s.handlers)-1] = signalHandler[T]{}
			s.handlers = s.handlers[:len(s.handlers)-1]
			return
		}
	}
}

// Emit calls every connected handler with v. Emission iterates a snapshot,
// so handlers may connect or disconnect freely; a handler disconnected by an
// earlier handler in the same emission is skipped.
func (s *Signal[T]) Emit(v T) {
	switch len(s.handlers) {
	case 0:
		return
	case 1:
		s.handlers[0].fn(v)
		return
	}
	snapshot := slices.Clone(s.handlers)
	for _, h := range snapshot {
		if !s.connected(h.id) {
			continue
		}
		h.fn(v)
	}
}

func (s *Signal[T]) connected(id uint32) bool {
	for i := range s.handlers {
		if s.handlers[i].id == id {
			return true
		}
	}
	return false
}

// Len returns the number of connected handlers.
func (s *Signal[T]) Len() int {
	return len(s.handlers)
}

// Clear disconnects every handler.
func (s *Signal[T]) Clear() {
	clear(s.handlers)
	s.handlers = s.handlers[:0]
}

// subscriptions is a set of handles revoked together.
type subscriptions []Subscription

func (s *subscriptions) add(sub Subscription) {
	*s = append(*s, sub)
}

func (s *subscriptions) removeAll() {
	for _, sub := range *s {
		sub.Remove()
	}
	*s = nil
}
