package builder

import (
	"github.com/jsphweid/scoretime/constants"
	"github.com/jsphweid/scoretime/model"
	"github.com/jsphweid/scoretime/sequence"
)

// wallClock integrates tick time into seconds under a piecewise-constant
// divisions/tempo regime.
type wallClock struct {
	divisions int
	tempo     float64
	time      int
	wall      float64
}

func (c *wallClock) secondsPerTick() float64 {
	return 60.0 / (float64(c.divisions) * c.tempo)
}

func (c *wallClock) advanceTo(tick int) {
	if tick > c.time {
		c.wall += c.secondsPerTick() * float64(tick-c.time)
		c.time = tick
	}
}

// resolveWallTimes walks events, attribute markers and tempo markers as three
// independent cursors. Elapsed time is split exactly at every change point,
// and an event's sounding duration is priced at the regime of its onset.
func resolveWallTimes(seq *sequence.EventSequence) {
	clock := wallClock{divisions: constants.DefaultDivisions, tempo: constants.DefaultTempo}
	attrs := seq.AttributesMarkers()
	tempos := seq.Tempos()
	ai, ti := 0, 0

	consumeThrough := func(limit int) {
		for {
			next, ok := nextChange(attrs, ai, tempos, ti)
			if !ok || next > limit {
				return
			}
			clock.advanceTo(next)
			for ; ai < len(attrs) && attrs[ai].Tick == next; ai++ {
				clock.divisions = attrs[ai].Divisions()
			}
			for ; ti < len(tempos) && tempos[ti].Tick == next; ti++ {
				if tempos[ti].Value > 0 {
					clock.tempo = tempos[ti].Value
				}
			}
		}
	}

	consumeThrough(0)
	for _, event := range seq.Events() {
		consumeThrough(event.Tick)
		clock.advanceTo(event.Tick)
		event.WallTime = clock.wall
		event.WallDuration = float64(event.MaxDuration()) * clock.secondsPerTick()
	}
}

func nextChange(attrs []model.AttributesMarker, ai int, tempos []model.TempoMarker, ti int) (int, bool) {
	switch {
	case ai < len(attrs) && ti < len(tempos):
		return min(attrs[ai].Tick, tempos[ti].Tick), true
	case ai < len(attrs):
		return attrs[ai].Tick, true
	case ti < len(tempos):
		return tempos[ti].Tick, true
	}
	return 0, false
}
