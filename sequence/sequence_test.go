package sequence

import (
	"testing"

	"github.com/jsphweid/scoretime/model"
	"github.com/stretchr/testify/assert"
)

func TestEventOrCreateKeepsOneEventPerTick(t *testing.T) {
	s := New()
	a := s.EventOrCreate(4, 1)
	b := s.EventOrCreate(0, 0)
	c := s.EventOrCreate(4, 2)
	s.EventOrCreate(2, 0)

	assert := assert.New(t)
	assert.Same(a, c)
	assert.NotSame(a, b)
	assert.Equal(1, a.MeasureIndex)

	var ticks []int
	for _, e := range s.Events() {
		ticks = append(ticks, e.Tick)
	}
	assert.Equal([]int{0, 2, 4}, ticks)
	assert.Same(a, s.Event(4))
	assert.Nil(s.Event(3))
}

func TestEventsBetween(t *testing.T) {
	s := New()
	for _, tick := range []int{8, 0, 4, 12} {
		s.EventOrCreate(tick, 0)
	}

	assert := assert.New(t)
	got := s.EventsBetween(4, 12)
	assert.Len(got, 2)
	assert.Equal(4, got[0].Tick)
	assert.Equal(8, got[1].Tick)
	assert.Empty(s.EventsBetween(13, 20))
	assert.Empty(s.EventsBetween(8, 4))
}

func TestMarkersInsertInTickOrderAfterEqualTicks(t *testing.T) {
	s := New()
	first := &model.Attributes{Divisions: 1}
	second := &model.Attributes{Divisions: 2}
	third := &model.Attributes{Divisions: 3}
	s.AddAttributes(model.AttributesMarker{Tick: 8, Part: 0, Attributes: first})
	s.AddAttributes(model.AttributesMarker{Tick: 0, Part: 1, Attributes: second})
	s.AddAttributes(model.AttributesMarker{Tick: 8, Part: 1, Attributes: third})

	assert := assert.New(t)
	markers := s.AttributesMarkers()
	assert.Equal(0, markers[0].Tick)
	assert.Same(first, markers[1].Attributes)
	assert.Same(third, markers[2].Attributes)
}

func TestAttributesLookup(t *testing.T) {
	s := New()
	s.AddAttributes(model.AttributesMarker{Tick: 0, Part: 0, Attributes: &model.Attributes{Divisions: 1}})
	s.AddAttributes(model.AttributesMarker{Tick: 0, Part: 1, Attributes: &model.Attributes{Divisions: 2}})
	s.AddAttributes(model.AttributesMarker{Tick: 16, Part: 0, Attributes: &model.Attributes{Divisions: 4}})

	assert := assert.New(t)
	assert.Equal(2, s.Attributes(10).Divisions())
	assert.Equal(4, s.Attributes(16).Divisions())
	assert.Equal(1, s.PartAttributes(0, 15).Divisions())
	assert.Equal(4, s.PartAttributes(0, 20).Divisions())
	assert.Equal(2, s.PartAttributes(1, 20).Divisions())
	assert.Nil(s.PartAttributes(2, 20))

	empty := New()
	assert.Nil(empty.Attributes(0))
}

func TestTempoAndDynamicsLookup(t *testing.T) {
	s := New()
	s.AddTempo(model.TempoMarker{Tick: 0, Value: 60})
	s.AddTempo(model.TempoMarker{Tick: 8, Value: 90})
	s.AddDynamics(model.DynamicsMarker{Tick: 0, Part: 0, Value: 40})
	s.AddDynamics(model.DynamicsMarker{Tick: 4, Part: 1, Value: 100})

	assert := assert.New(t)
	assert.Equal(60.0, s.Tempo(7).Value)
	assert.Equal(90.0, s.Tempo(8).Value)
	assert.Equal(40.0, s.Dynamics(0, 10).Value)
	assert.Equal(100.0, s.Dynamics(1, 10).Value)
	assert.Nil(s.Dynamics(1, 3))
}

func TestLastLoopIsMutable(t *testing.T) {
	s := New()
	assert.Nil(t, s.LastLoop())

	s.AddLoop(model.Loop{Begin: 0, End: 8, Count: 1})
	s.LastLoop().Count = 3
	assert.Equal(t, 3, s.Loops()[0].Count)
}

func TestTimelineIsACopy(t *testing.T) {
	s := New()
	s.Title = "Etude"
	e := s.EventOrCreate(0, 0)
	e.WallTime = 0
	last := s.EventOrCreate(4, 0)
	last.WallTime = 2.5
	s.AddLoop(model.Loop{Begin: 0, End: 4, Count: 1})

	tl := s.Timeline()
	tl.Events[0].Tick = 99
	tl.Loops[0].Count = 7

	assert := assert.New(t)
	assert.Equal("Etude", tl.Title)
	assert.Equal(2.5, tl.Duration)
	assert.Equal(0, s.Events()[0].Tick)
	assert.Equal(1, s.Loops()[0].Count)

	summary := s.Summary("etude")
	assert.Equal(2, summary.NumEvents)
	assert.Equal(1, summary.NumLoops)
	assert.Equal(2.5, summary.Duration)
}
