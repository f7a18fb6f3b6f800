package builder

import (
	"fmt"

	"github.com/jsphweid/scoretime/model"
)

func (f *Factory) processTimedNode(node *model.Node) {
	duration := node.TickDuration()
	if duration < 0 {
		f.diagnose(model.DiagnosticNegativeNodeLength, fmt.Sprintf("%v with duration %d treated as 0", node.Kind, duration))
		duration = 0
	}

	switch node.Kind {
	case model.KindChord:
		if node.Chord == nil {
			f.diagnose(model.DiagnosticMissingNodePayload, "chord node without notes")
			return
		}
		f.processChord(node.Chord)
		f.ctx.time += duration
	case model.KindNote:
		if node.Note == nil {
			f.diagnose(model.DiagnosticMissingNodePayload, "note node without note")
			return
		}
		f.addNote(node.Note)
		f.ctx.time += duration
	case model.KindForward:
		f.ctx.time += duration
	case model.KindBackup:
		f.ctx.time -= duration
		if f.ctx.time < f.ctx.measureStart {
			f.diagnose(model.DiagnosticBackupClamped,
				fmt.Sprintf("backup of %d rewinds %d ticks before the measure start", duration, f.ctx.measureStart-f.ctx.time))
			f.ctx.time = f.ctx.measureStart
		}
	}
}

func (f *Factory) processChord(chord *model.Chord) {
	for _, note := range chord.Notes {
		if note != nil {
			f.addNote(note)
		}
	}
}

// addNote attaches note to the event at the cursor as an onset and to the
// event at cursor+duration as an offset, creating either event if needed.
func (f *Factory) addNote(note *model.Note) {
	ref := model.NoteRef{Part: f.ctx.part, Measure: f.ctx.measureIndex, Note: note}

	duration := note.Duration
	if duration < 0 {
		duration = 0
	}

	on := f.seq.EventOrCreate(f.ctx.time, f.ctx.measureIndex)
	on.MeasureIndex = f.ctx.measureIndex
	on.AddOnNote(ref)

	off := f.seq.EventOrCreate(f.ctx.time+duration, f.ctx.measureIndex)
	off.AddOffNote(ref)
}
