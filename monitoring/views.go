package monitoring

import "github.com/sarchlab/hypertime/sim"

// realTimeJSON maps the quiescent clock and the universe edge to JSON null,
// since JSON has no infinities.
func realTimeJSON(r sim.RealTime) *float64 {
	if sim.IsEndOfTime(r) {
		return nil
	}

	v := float64(r)

	return &v
}

type chunkJSON struct {
	Start   float64  `json:"start"`
	End     *float64 `json:"end"`
	History []string `json:"history"`
}

func chunksJSON(chunks []sim.Chunk) []chunkJSON {
	out := make([]chunkJSON, 0, len(chunks))
	for _, c := range chunks {
		ids := c.History.IDs()
		history := make([]string, len(ids))
		for i, id := range ids {
			history[i] = string(id)
		}

		out = append(out, chunkJSON{
			Start:   float64(c.Start),
			End:     realTimeJSON(sim.RealTime(c.End)),
			History: history,
		})
	}

	return out
}

type eventJSON struct {
	TripID   string  `json:"trip_id"`
	R0       float64 `json:"r0"`
	DepartH0 float64 `json:"depart_h0"`
	ArriveH0 float64 `json:"arrive_h0"`
}

func newEventJSON(e sim.Event) eventJSON {
	return eventJSON{
		TripID:   string(e.TripID),
		R0:       float64(e.R0),
		DepartH0: float64(e.DepartH0),
		ArriveH0: float64(e.ArriveH0),
	}
}

type boxJSON struct {
	Start eventJSON `json:"start"`
	Rf    float64   `json:"rf"`
}
