// Package builder turns a score document into an event sequence: one
// forward pass over every part's measures that records note onsets and
// offsets, attribute/tempo/dynamics markers and repeat structure, followed by
// one pass that assigns wall-clock times.
package builder

import (
	"fmt"

	"github.com/jsphweid/scoretime/model"
	"github.com/jsphweid/scoretime/sequence"
)

// buildContext is the cursor state of a single build. It is reset at the
// start of every build and never shared.
type buildContext struct {
	part         int
	measureIndex int
	time         int
	measureStart int

	loopBegin   int
	loopOpen    bool
	endingBegin int
	endingOpen  bool

	// firstPass is true only while walking the first part. Every part
	// repeats the same barlines, so loops and endings are taken from it alone.
	firstPass bool
}

func (c *buildContext) reset() {
	*c = buildContext{firstPass: true}
}

// Factory builds event sequences from one score. A Factory is not safe for
// concurrent use; use one per goroutine.
type Factory struct {
	score *model.Score
	seq   *sequence.EventSequence
	ctx   buildContext
}

func NewFactory(score *model.Score) *Factory {
	return &Factory{score: score}
}

// Build walks the score and returns a freshly allocated, fully resolved
// sequence. Building twice from the same score gives identical results.
func (f *Factory) Build() *sequence.EventSequence {
	f.seq = sequence.New()
	f.ctx.reset()
	if f.score == nil {
		return f.seq
	}
	f.seq.Title = f.score.Title
	f.seq.NumParts = len(f.score.Parts)

	for p := range f.score.Parts {
		part := &f.score.Parts[p]
		f.ctx.part = p
		f.ctx.measureStart = 0
		f.ctx.time = 0
		for m := range part.Measures {
			f.ctx.measureIndex = m
			f.processMeasure(&part.Measures[m])
		}
		f.ctx.firstPass = false
	}

	resolveWallTimes(f.seq)
	return f.seq
}

// Build is a shorthand for NewFactory(score).Build().
func Build(score *model.Score) *sequence.EventSequence {
	return NewFactory(score).Build()
}

func (f *Factory) currentAttributes() (int, model.Time) {
	attr := f.seq.PartAttributes(f.ctx.part, f.ctx.measureStart)
	if attr == nil {
		return 1, model.DefaultTime
	}
	return attr.Divisions(), attr.Time()
}

func (f *Factory) processMeasure(measure *model.Measure) {
	last := len(measure.Nodes) - 1
	for i := range measure.Nodes {
		node := &measure.Nodes[i]

		// A measure ending in non-sounding content leaves the cursor wherever
		// the last voice stopped; put it on the nominal measure end instead.
		if i == last && !node.Kind.Timed() && f.seq.PartAttributes(f.ctx.part, f.ctx.time) != nil {
			divisions, t := f.currentAttributes()
			f.ctx.time = f.ctx.measureStart + model.DivisionsPerMeasure(divisions, t)
		}

		switch node.Kind {
		case model.KindBarline:
			if f.ctx.firstPass {
				f.processBarline(node.Barline)
			}
		case model.KindAttributes:
			f.processAttributes(node.Attributes)
		case model.KindDirection:
			f.processDirection(node.Direction)
		case model.KindChord, model.KindNote, model.KindForward, model.KindBackup:
			f.processTimedNode(node)
		default:
			f.diagnose(model.DiagnosticMissingNodePayload, fmt.Sprintf("node %d has unknown kind %v", i, node.Kind))
		}
	}

	divisions, t := f.currentAttributes()
	f.ctx.measureStart += model.DivisionsPerMeasure(divisions, t)
	f.ctx.time = f.ctx.measureStart
}

func (f *Factory) diagnose(kind model.DiagnosticKind, msg string) {
	f.seq.AddDiagnostic(model.Diagnostic{
		Kind:    kind,
		Part:    f.ctx.part,
		Measure: f.ctx.measureIndex,
		Tick:    f.ctx.time,
		Message: msg,
	})
}
