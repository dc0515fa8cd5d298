// Package singleton guarantees that a value is constructed at most once per
// process and shared by every caller.
//
//	var shared = singleton.New(func() (*HRSystem, error) {
//	    return &HRSystem{name: "Company HR System"}, nil
//	})
//
//	sys, err := shared.Get() // first call builds, later calls reuse
//
// A build that fails (or panics) leaves nothing recorded, so the next Get
// retries instead of handing out a half-built value.
package singleton

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
)

// ErrConstructionFailure wraps any error returned by a builder.
var ErrConstructionFailure = errors.New("singleton: construction failed")

// Builder constructs the shared value.
type Builder[T any] func() (T, error)

// Manager owns the lifecycle of exactly one value of type T.
type Manager[T any] struct {
	build Builder[T]

	mu    sync.Mutex
	done  atomic.Bool
	value T
}

// New returns a Manager that calls build on first Get.
func New[T any](build Builder[T]) *Manager[T] {
	if build == nil {
		panic("singleton: nil builder")
	}
	return &Manager[T]{build: build}
}

// Get returns the shared value, constructing it on first use.
//
// Concurrent first callers are serialised; none of them observes a value
// before construction has completed.
func (m *Manager[T]) Get() (T, error) {
	if m.done.Load() {
		return m.value, nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	// Another caller may have finished while we waited on the lock.
	if m.done.Load() {
		return m.value, nil
	}

	v, err := m.construct()
	if err != nil {
		var zero T
		return zero, err
	}

	m.value = v
	m.done.Store(true)
	return v, nil
}

// MustGet is Get for values whose builder cannot fail.
func (m *Manager[T]) MustGet() T {
	v, err := m.Get()
	if err != nil {
		panic(err)
	}
	return v
}

// Constructed reports whether a value has been recorded.
func (m *Manager[T]) Constructed() bool { return m.done.Load() }

// construct runs the builder, turning a panic into an error so the slot
// stays empty.
func (m *Manager[T]) construct() (v T, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: panic: %v", ErrConstructionFailure, r)
		}
	}()

	v, err = m.build()
	if err != nil {
		return v, fmt.Errorf("%w: %w", ErrConstructionFailure, err)
	}
	return v, nil
}
