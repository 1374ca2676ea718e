package simulation

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/sarchlab/hypertime/monitoring"
	"github.com/sarchlab/hypertime/recording"
	"github.com/sarchlab/hypertime/sim"
)

// A Builder can build a simulation. Settings come from a local .env file
// first; explicit With options override it.
//
// Recognized keys: HYPERTIME_OUTPUT (transcript file name without suffix),
// HYPERTIME_MONITOR ("true"/"false"), HYPERTIME_MONITOR_PORT.
type Builder struct {
	rules          sim.Ruleset
	monitorOn      bool
	monitorPort    int
	outputFileName string
}

// MakeBuilder creates a new builder with the default configuration.
func MakeBuilder() Builder {
	b := Builder{
		monitorOn: false,
	}

	return b.applyEnv()
}

func (b Builder) applyEnv() Builder {
	// A missing .env file is fine; the defaults stand.
	_ = godotenv.Load()

	if v := os.Getenv("HYPERTIME_OUTPUT"); v != "" {
		b.outputFileName = v
	}

	if v := os.Getenv("HYPERTIME_MONITOR"); v != "" {
		on, err := strconv.ParseBool(v)
		if err == nil {
			b.monitorOn = on
		}
	}

	if v := os.Getenv("HYPERTIME_MONITOR_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err == nil {
			b.monitorPort = port
		}
	}

	return b
}

// WithRules sets the ruleset the universe follows.
func (b Builder) WithRules(rules sim.Ruleset) Builder {
	b.rules = rules
	return b
}

// WithMonitoring turns the monitoring server on or off.
func (b Builder) WithMonitoring(on bool) Builder {
	b.monitorOn = on
	return b
}

// WithMonitorPort sets the port of the monitoring server.
func (b Builder) WithMonitorPort(port int) Builder {
	b.monitorPort = port
	return b
}

// WithOutputFileName sets the custom output file name for the transcript
// recorder, without the .sqlite3 suffix.
func (b Builder) WithOutputFileName(filename string) Builder {
	b.outputFileName = filename
	return b
}

// Build builds the simulation.
func (b Builder) Build() *Simulation {
	if b.rules == nil {
		panic("simulation requires a ruleset")
	}

	s := &Simulation{
		id: newID(),
	}

	outputPath := b.outputFileName
	if outputPath == "" {
		outputPath = "hypertime_sim_" + s.id
	}
	s.recorder = recording.New(outputPath)

	s.driver = sim.NewDriver(b.rules)
	s.driver.AcceptHook(recording.NewTranscript(s.recorder))

	if b.monitorOn {
		s.monitor = monitoring.NewMonitor()
		if b.monitorPort != 0 {
			s.monitor.WithPortNumber(b.monitorPort)
		}
		s.monitor.RegisterDriver(s.driver)
		s.monitor.StartServer()
	}

	return s
}
