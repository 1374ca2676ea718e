// Package simulation assembles a driver, a transcript recorder, and an
// optional monitor into one runnable simulation.
package simulation

import (
	"github.com/rs/xid"

	"github.com/sarchlab/hypertime/monitoring"
	"github.com/sarchlab/hypertime/recording"
	"github.com/sarchlab/hypertime/sim"
)

// A Simulation provides the services required to run a hypertime universe.
type Simulation struct {
	id string

	driver   *sim.Driver
	recorder recording.Recorder
	monitor  *monitoring.Monitor
}

// ID returns the simulation ID.
func (s *Simulation) ID() string {
	return s.id
}

// Driver returns the driver that advances the simulation.
func (s *Simulation) Driver() *sim.Driver {
	return s.driver
}

// Recorder returns the transcript recorder used in the simulation.
func (s *Simulation) Recorder() recording.Recorder {
	return s.recorder
}

// Monitor returns the monitor used in the simulation, nil when monitoring is
// off.
func (s *Simulation) Monitor() *monitoring.Monitor {
	return s.monitor
}

// RunUntil advances the universe until the clock reaches target or the
// universe goes quiescent.
func (s *Simulation) RunUntil(target sim.RealTime) error {
	return s.driver.RunUntil(target)
}

// Terminate flushes the transcript and releases the simulation's resources.
func (s *Simulation) Terminate() {
	s.recorder.Close()
}

func newID() string {
	return xid.New().String()
}
