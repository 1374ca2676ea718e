package sim

import "log"

// A LogHook is a hook that is responsible for recording information from the
// simulation.
type LogHook interface {
	Hook
}

// LogHookBase provides the common logic for all LogHooks.
type LogHookBase struct {
	*log.Logger
}

// BoxLogger is a hook that prints every transit box a step appends.
type BoxLogger struct {
	LogHookBase
}

// NewBoxLogger returns a BoxLogger that writes into the given logger.
func NewBoxLogger(logger *log.Logger) *BoxLogger {
	l := new(BoxLogger)
	l.Logger = logger

	return l
}

// Func writes the box information into the logger.
func (l *BoxLogger) Func(ctx HookCtx) {
	if ctx.Pos != HookPosAfterStep {
		return
	}

	boxes, ok := ctx.Detail.([]Box)
	if !ok {
		return
	}

	for _, b := range boxes {
		l.Printf("%.10f, trip %s in transit [%.10f, %.10f), %v -> %v",
			b.Start.R0, b.Start.TripID, b.Start.R0, b.Rf,
			b.Start.DepartH0, b.Start.ArriveH0)
	}
}
