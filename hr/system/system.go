// Package system holds the process-wide HR system.
//
// There is exactly one HRSystem per process. It is built on the first call to
// Instance and every caller receives the same pointer. The type has no
// exported constructor; Instance is the only way to reach it.
package system

import (
	"sync/atomic"

	"github.com/km-arc/go-hr/framework/singleton"
)

// DefaultName is the identifying name assigned at construction.
const DefaultName = "Company HR System"

// HRSystem is the shared HR system.
type HRSystem struct {
	name string
}

// Name returns the name fixed at construction.
func (s *HRSystem) Name() string { return s.name }

var (
	constructions atomic.Int64
	shared        = singleton.New(newHRSystem)
)

func newHRSystem() (*HRSystem, error) {
	constructions.Add(1)
	return &HRSystem{name: DefaultName}, nil
}

// Instance returns the shared HRSystem, building it on first use.
func Instance() (*HRSystem, error) {
	return shared.Get()
}

// MustInstance is Instance for call sites that cannot handle an error.
func MustInstance() *HRSystem {
	return shared.MustGet()
}

// Constructed reports whether the HRSystem has been built yet.
func Constructed() bool { return shared.Constructed() }

// Constructions reports how many times the constructor has run.
func Constructions() int64 { return constructions.Load() }
