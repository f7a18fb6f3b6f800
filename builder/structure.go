package builder

import (
	"fmt"

	"github.com/jsphweid/scoretime/model"
)

func (f *Factory) processBarline(barline *model.Barline) {
	if barline == nil {
		f.diagnose(model.DiagnosticMissingNodePayload, "barline node without barline")
		return
	}
	if barline.Repeat != nil {
		f.processRepeat(*barline.Repeat)
	}
	if barline.Ending != nil {
		f.processEnding(*barline.Ending)
	}
}

func (f *Factory) processRepeat(repeat model.Repeat) {
	switch repeat.Direction {
	case model.RepeatForward:
		f.ctx.loopBegin = f.ctx.time
		f.ctx.loopOpen = true
	case model.RepeatBackward:
		if !f.ctx.loopOpen {
			f.diagnose(model.DiagnosticImplicitLoopStart, "backward repeat without forward repeat; repeating from the start")
			f.ctx.loopBegin = 0
		}
		f.seq.AddLoop(model.Loop{Begin: f.ctx.loopBegin, End: f.ctx.time, Count: 1})
		f.ctx.loopBegin = f.ctx.time
		f.ctx.loopOpen = true
	}
}

func (f *Factory) processEnding(ending model.Ending) {
	switch ending.Type {
	case model.EndingStart:
		f.ctx.endingBegin = f.ctx.time
		f.ctx.endingOpen = true
		return
	case model.EndingStop, model.EndingDiscontinue:
	default:
		return
	}

	if !f.ctx.endingOpen {
		f.diagnose(model.DiagnosticOrphanEndingStop, fmt.Sprintf("ending %v %s without start ignored", ending.Numbers, ending.Type))
		return
	}
	f.seq.AddEnding(model.EndingRange{
		Begin:   f.ctx.endingBegin,
		End:     f.ctx.time,
		Numbers: append([]int(nil), ending.Numbers...),
	})
	f.ctx.endingOpen = false

	if ending.Type == model.EndingDiscontinue {
		f.discontinueLoop()
	}
}

// discontinueLoop sets the repeat count of the last loop from the highest
// ending number seen since it began: endings 1 and 2 mean one repeat.
func (f *Factory) discontinueLoop() {
	loop := f.seq.LastLoop()
	if loop == nil {
		return
	}
	maxNumber := 0
	for _, e := range f.seq.Endings() {
		if e.Begin < loop.Begin {
			continue
		}
		for _, n := range e.Numbers {
			if n > maxNumber {
				maxNumber = n
			}
		}
	}
	if maxNumber == 0 {
		return
	}
	loop.Count = maxNumber - 1
}

func (f *Factory) processAttributes(attributes *model.Attributes) {
	if attributes == nil {
		f.diagnose(model.DiagnosticMissingNodePayload, "attributes node without attributes")
		return
	}
	f.seq.AddAttributes(model.AttributesMarker{
		Tick:       f.ctx.time,
		Part:       f.ctx.part,
		Attributes: attributes,
	})
}

func (f *Factory) processDirection(direction *model.Direction) {
	if direction == nil || direction.Sound == nil {
		return
	}
	sound := direction.Sound

	if sound.Tempo != nil {
		if *sound.Tempo <= 0 {
			f.diagnose(model.DiagnosticNonPositiveTempo, fmt.Sprintf("tempo %v ignored during playback", *sound.Tempo))
		}
		f.seq.AddTempo(model.TempoMarker{Tick: f.ctx.time, Value: *sound.Tempo})
	}

	if sound.Dynamics != nil {
		f.seq.AddDynamics(model.DynamicsMarker{
			Tick:  f.ctx.time,
			Part:  f.ctx.part,
			Value: *sound.Dynamics,
		})
	}
}
