// Package sequence holds the tick-ordered timeline produced from a score:
// unique events per tick plus the attribute, tempo, dynamics, loop and ending
// markers that accompany them.
package sequence

import (
	"github.com/jsphweid/scoretime/model"
	"golang.org/x/exp/slices"
)

// EventSequence keeps every collection sorted by tick. Events are unique per
// tick; markers with equal ticks keep insertion order.
type EventSequence struct {
	Title    string
	NumParts int

	events      []*model.Event
	attributes  []model.AttributesMarker
	tempos      []model.TempoMarker
	dynamics    []model.DynamicsMarker
	loops       []model.Loop
	endings     []model.EndingRange
	diagnostics []model.Diagnostic
}

func New() *EventSequence {
	return &EventSequence{}
}

func (s *EventSequence) Clear() {
	*s = EventSequence{}
}

func compareTick(e *model.Event, tick int) int {
	switch {
	case e.Tick < tick:
		return -1
	case e.Tick > tick:
		return 1
	}
	return 0
}

// upperBound is the index of the first element whose tick is greater than
// tick.
func upperBound[E any](s []E, tick int, tickOf func(E) int) int {
	i, _ := slices.BinarySearchFunc(s, tick, func(e E, t int) int {
		if tickOf(e) <= t {
			return -1
		}
		return 1
	})
	return i
}

// Event returns the event at exactly tick, or nil.
func (s *EventSequence) Event(tick int) *model.Event {
	i, found := slices.BinarySearchFunc(s.events, tick, compareTick)
	if !found {
		return nil
	}
	return s.events[i]
}

// EventOrCreate returns the event at tick, creating it in place when none
// exists yet.
func (s *EventSequence) EventOrCreate(tick, measureIndex int) *model.Event {
	i, found := slices.BinarySearchFunc(s.events, tick, compareTick)
	if found {
		return s.events[i]
	}
	e := &model.Event{Tick: tick, MeasureIndex: measureIndex}
	s.events = slices.Insert(s.events, i, e)
	return e
}

// Events is ordered by increasing tick. Callers must not modify it.
func (s *EventSequence) Events() []*model.Event {
	return s.events
}

// EventsBetween returns the events with from <= tick < to.
func (s *EventSequence) EventsBetween(from, to int) []*model.Event {
	lo, _ := slices.BinarySearchFunc(s.events, from, compareTick)
	hi, _ := slices.BinarySearchFunc(s.events, to, compareTick)
	if hi < lo {
		return nil
	}
	return s.events[lo:hi]
}

func attributesTick(m model.AttributesMarker) int { return m.Tick }
func tempoTick(m model.TempoMarker) int { return m.Tick }
func dynamicsTick(m model.DynamicsMarker) int { return m.Tick }

func (s *EventSequence) AddAttributes(m model.AttributesMarker) {
	i := upperBound(s.attributes, m.Tick, attributesTick)
	s.attributes = slices.Insert(s.attributes, i, m)
}

func (s *EventSequence) AttributesMarkers() []model.AttributesMarker {
	return s.attributes
}

// Attributes returns the last marker at or before tick in any part.
func (s *EventSequence) Attributes(tick int) *model.AttributesMarker {
	i := upperBound(s.attributes, tick, attributesTick)
	if i == 0 {
		return nil
	}
	return &s.attributes[i-1]
}

// PartAttributes returns the last marker at or before tick owned by part.
func (s *EventSequence) PartAttributes(part, tick int) *model.AttributesMarker {
	for i := upperBound(s.attributes, tick, attributesTick) - 1; i >= 0; i-- {
		if s.attributes[i].Part == part {
			return &s.attributes[i]
		}
	}
	return nil
}

func (s *EventSequence) AddTempo(m model.TempoMarker) {
	i := upperBound(s.tempos, m.Tick, tempoTick)
	s.tempos = slices.Insert(s.tempos, i, m)
}

func (s *EventSequence) Tempos() []model.TempoMarker {
	return s.tempos
}

// Tempo returns the tempo marker in effect at tick, or nil.
func (s *EventSequence) Tempo(tick int) *model.TempoMarker {
	i := upperBound(s.tempos, tick, tempoTick)
	if i == 0 {
		return nil
	}
	return &s.tempos[i-1]
}

func (s *EventSequence) AddDynamics(m model.DynamicsMarker) {
	i := upperBound(s.dynamics, m.Tick, dynamicsTick)
	s.dynamics = slices.Insert(s.dynamics, i, m)
}

func (s *EventSequence) DynamicsMarkers() []model.DynamicsMarker {
	return s.dynamics
}

// Dynamics returns the dynamics marker of part in effect at tick, or nil.
func (s *EventSequence) Dynamics(part, tick int) *model.DynamicsMarker {
	for i := upperBound(s.dynamics, tick, dynamicsTick) - 1; i >= 0; i-- {
		if s.dynamics[i].Part == part {
			return &s.dynamics[i]
		}
	}
	return nil
}

func (s *EventSequence) AddLoop(l model.Loop) {
	s.loops = append(s.loops, l)
}

func (s *EventSequence) Loops() []model.Loop {
	return s.loops
}

// LastLoop is the most recently recorded loop, or nil.
func (s *EventSequence) LastLoop() *model.Loop {
	if len(s.loops) == 0 {
		return nil
	}
	return &s.loops[len(s.loops)-1]
}

func (s *EventSequence) AddEnding(e model.EndingRange) {
	s.endings = append(s.endings, e)
}

func (s *EventSequence) Endings() []model.EndingRange {
	return s.endings
}

func (s *EventSequence) AddDiagnostic(d model.Diagnostic) {
	s.diagnostics = append(s.diagnostics, d)
}

func (s *EventSequence) Diagnostics() []model.Diagnostic {
	return s.diagnostics
}

// Duration is the wall time of the last event, in seconds.
func (s *EventSequence) Duration() float64 {
	if len(s.events) == 0 {
		return 0
	}
	return s.events[len(s.events)-1].WallTime
}

// Timeline copies the sequence into a plain value.
func (s *EventSequence) Timeline() model.Timeline {
	events := make([]model.Event, len(s.events))
	for i, e := range s.events {
		events[i] = *e
	}
	return model.Timeline{
		Title:       s.Title,
		Events:      events,
		Attributes:  slices.Clone(s.attributes),
		Tempos:      slices.Clone(s.tempos),
		Dynamics:    slices.Clone(s.dynamics),
		Loops:       slices.Clone(s.loops),
		Endings:     slices.Clone(s.endings),
		Diagnostics: slices.Clone(s.diagnostics),
		Duration:    s.Duration(),
	}
}

func (s *EventSequence) Summary(name string) model.TimelineSummary {
	return model.TimelineSummary{
		Name:        name,
		Title:       s.Title,
		NumParts:    s.NumParts,
		NumEvents:   len(s.events),
		NumLoops:    len(s.loops),
		NumEndings:  len(s.endings),
		Duration:    s.Duration(),
		Diagnostics: len(s.diagnostics),
	}
}
