package sim

import (
	"log"
	"sync"
)

// TimeTeller can be used to get the current time.
type TimeTeller interface {
	CurrentTime() RealTime
}

// A Driver owns a sequence of GodView snapshots and advances the newest one
// step by step. The snapshots themselves are immutable; the driver is the
// only stateful shell around them, so a presentation layer can scrub
// backward through everything the driver has produced.
type Driver struct {
	HookableBase

	stateLock sync.RWMutex
	snapshots []GodView

	isPaused     bool
	isPausedLock sync.Mutex
	pauseLock    sync.Mutex

	singleRunLock sync.Mutex
}

// NewDriver creates a driver positioned at the initial snapshot for the
// given ruleset.
func NewDriver(rules Ruleset) *Driver {
	d := new(Driver)
	d.snapshots = []GodView{NewGodView(rules)}

	return d
}

// View returns the newest snapshot.
func (d *Driver) View() GodView {
	d.stateLock.RLock()
	defer d.stateLock.RUnlock()

	return d.snapshots[len(d.snapshots)-1]
}

// CurrentTime returns the clock of the newest snapshot.
func (d *Driver) CurrentTime() RealTime {
	return d.View().Now
}

// SnapshotCount returns how many snapshots the driver has produced,
// including the initial one.
func (d *Driver) SnapshotCount() int {
	d.stateLock.RLock()
	defer d.stateLock.RUnlock()

	return len(d.snapshots)
}

// SnapshotAt returns the i-th snapshot produced.
func (d *Driver) SnapshotAt(i int) GodView {
	d.stateLock.RLock()
	defer d.stateLock.RUnlock()

	if i < 0 || i >= len(d.snapshots) {
		log.Panicf("snapshot index %d out of range [0, %d)",
			i, len(d.snapshots))
	}

	return d.snapshots[i]
}

// StepOnce applies one step to the newest snapshot, retains the result, and
// returns it. Hooks fire around the step; the after-step hook receives the
// new snapshot as Item and the boxes the step appended as Detail.
func (d *Driver) StepOnce() GodView {
	before := d.View()

	d.InvokeHook(HookCtx{
		Domain: d,
		Pos:    HookPosBeforeStep,
		Item:   before,
	})

	after := Step(before)

	d.stateLock.Lock()
	d.snapshots = append(d.snapshots, after)
	d.stateLock.Unlock()

	d.InvokeHook(HookCtx{
		Domain: d,
		Pos:    HookPosAfterStep,
		Item:   after,
		Detail: after.Past[len(before.Past):],
	})

	return after
}

// RunUntil steps until the clock reaches target or the universe goes
// quiescent.
func (d *Driver) RunUntil(target RealTime) error {
	d.singleRunLock.Lock()
	defer d.singleRunLock.Unlock()

	for {
		current := d.View()
		if current.Now >= target || IsEndOfTime(current.Now) {
			return nil
		}

		d.pauseLock.Lock()
		d.StepOnce()
		d.pauseLock.Unlock()
	}
}

// Pause prevents the driver from applying more steps.
func (d *Driver) Pause() {
	d.isPausedLock.Lock()
	defer d.isPausedLock.Unlock()

	if d.isPaused {
		return
	}

	d.pauseLock.Lock()
	d.isPaused = true
}

// Continue allows the driver to apply more steps.
func (d *Driver) Continue() {
	d.isPausedLock.Lock()
	defer d.isPausedLock.Unlock()

	if !d.isPaused {
		return
	}

	d.pauseLock.Unlock()
	d.isPaused = false
}
