// Package ruleset parses the textual rule-authoring format into the engine's
// Ruleset value. All user-input validation lives here; the engine only ever
// sees already-valid rulesets.
package ruleset

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/sarchlab/hypertime/sim"
)

// A ParseError reports invalid ruleset text. It is recoverable and meant to
// be displayed to the rule author.
type ParseError struct {
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("ruleset line %d: %s", e.Line, e.Msg)
}

// Parse reads one rule per line in the form
//
//	history -> id,depart,arrive; id,depart,arrive
//
// where history is a comma-separated (possibly empty) list of trip IDs left
// of the arrow and each trip right of the arrow carries its ID and the two
// calendar offsets. Blank lines and lines starting with # are ignored.
//
// Duplicate trip IDs anywhere in the ruleset and duplicate history keys are
// invalid.
func Parse(src string) (sim.Ruleset, error) {
	table := sim.NewTripTable()
	seenTrips := make(map[sim.TripID]int)
	seenHistories := make(map[string]int)

	for i, line := range strings.Split(src, "\n") {
		lineNo := i + 1

		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		history, trips, err := parseRule(lineNo, line)
		if err != nil {
			return nil, err
		}

		key := history.Key()
		if prev, ok := seenHistories[key]; ok {
			return nil, &ParseError{
				Line: lineNo,
				Msg: fmt.Sprintf("history %s already defined on line %d",
					history, prev),
			}
		}
		seenHistories[key] = lineNo

		for _, t := range trips {
			if prev, ok := seenTrips[t.ID]; ok {
				return nil, &ParseError{
					Line: lineNo,
					Msg: fmt.Sprintf("trip %q already defined on line %d",
						t.ID, prev),
				}
			}
			seenTrips[t.ID] = lineNo
		}

		table.Add(history, trips...)
	}

	return table, nil
}

// ParseFile reads and parses a ruleset file.
func ParseFile(path string) (sim.Ruleset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return Parse(string(data))
}

func parseRule(lineNo int, line string) (sim.History, []sim.Trip, error) {
	left, right, found := strings.Cut(line, "->")
	if !found {
		return nil, nil, &ParseError{Line: lineNo, Msg: "missing \"->\""}
	}

	history, err := parseHistory(lineNo, left)
	if err != nil {
		return nil, nil, err
	}

	var trips []sim.Trip
	for _, field := range strings.Split(right, ";") {
		trip, err := parseTrip(lineNo, field)
		if err != nil {
			return nil, nil, err
		}

		trips = append(trips, trip)
	}

	return history, trips, nil
}

func parseHistory(lineNo int, field string) (sim.History, error) {
	field = strings.TrimSpace(field)
	if field == "" {
		return sim.NewHistory(), nil
	}

	history := sim.NewHistory()
	for _, part := range strings.Split(field, ",") {
		id := strings.TrimSpace(part)
		if id == "" {
			return nil, &ParseError{Line: lineNo, Msg: "empty trip id in history"}
		}

		if history.Has(sim.TripID(id)) {
			return nil, &ParseError{
				Line: lineNo,
				Msg:  fmt.Sprintf("trip %q listed twice in history", id),
			}
		}

		history = history.With(sim.TripID(id))
	}

	return history, nil
}

func parseTrip(lineNo int, field string) (sim.Trip, error) {
	parts := strings.Split(field, ",")
	if len(parts) != 3 {
		return sim.Trip{}, &ParseError{
			Line: lineNo,
			Msg:  fmt.Sprintf("trip %q must be id,depart,arrive", strings.TrimSpace(field)),
		}
	}

	id := strings.TrimSpace(parts[0])
	if id == "" {
		return sim.Trip{}, &ParseError{Line: lineNo, Msg: "empty trip id"}
	}

	depart, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return sim.Trip{}, &ParseError{
			Line: lineNo,
			Msg:  fmt.Sprintf("bad depart offset %q", strings.TrimSpace(parts[1])),
		}
	}

	arrive, err := strconv.ParseFloat(strings.TrimSpace(parts[2]), 64)
	if err != nil {
		return sim.Trip{}, &ParseError{
			Line: lineNo,
			Msg:  fmt.Sprintf("bad arrive offset %q", strings.TrimSpace(parts[2])),
		}
	}

	return sim.Trip{
		ID:     sim.TripID(id),
		Depart: sim.CalTime(depart),
		Arrive: sim.CalTime(arrive),
	}, nil
}
