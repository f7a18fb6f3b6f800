package builder

import (
	"github.com/jsphweid/scoretime/model"
)

func pitched(step string, octave, duration int) *model.Note {
	return &model.Note{Pitch: &model.Pitch{Step: step, Octave: octave}, Duration: duration}
}

func note(duration int) model.Node {
	return model.Node{Kind: model.KindNote, Note: pitched("C", 4, duration)}
}

func noteOf(n *model.Note) model.Node {
	return model.Node{Kind: model.KindNote, Note: n}
}

func chordOf(notes ...*model.Note) model.Node {
	return model.Node{Kind: model.KindChord, Chord: &model.Chord{Notes: notes}}
}

func attrs(divisions, beats int) model.Node {
	return model.Node{Kind: model.KindAttributes, Attributes: &model.Attributes{
		Divisions: divisions,
		Time:      &model.Time{Beats: beats, BeatType: 4},
	}}
}

func tempo(bpm float64) model.Node {
	return model.Node{Kind: model.KindDirection, Direction: &model.Direction{Sound: &model.Sound{Tempo: &bpm}}}
}

func dynamics(value float64) model.Node {
	return model.Node{Kind: model.KindDirection, Direction: &model.Direction{Sound: &model.Sound{Dynamics: &value}}}
}

func forward(d int) model.Node {
	return model.Node{Kind: model.KindForward, Duration: d}
}

func backup(d int) model.Node {
	return model.Node{Kind: model.KindBackup, Duration: d}
}

func repeat(dir model.RepeatDirection) model.Node {
	return model.Node{Kind: model.KindBarline, Barline: &model.Barline{Repeat: &model.Repeat{Direction: dir}}}
}

func ending(typ model.EndingType, numbers ...int) model.Node {
	return model.Node{Kind: model.KindBarline, Barline: &model.Barline{Ending: &model.Ending{Type: typ, Numbers: numbers}}}
}

func endingWithRepeat(typ model.EndingType, dir model.RepeatDirection, numbers ...int) model.Node {
	return model.Node{Kind: model.KindBarline, Barline: &model.Barline{
		Ending: &model.Ending{Type: typ, Numbers: numbers},
		Repeat: &model.Repeat{Direction: dir},
	}}
}

func part(measures ...[]model.Node) model.Part {
	var p model.Part
	for _, nodes := range measures {
		p.Measures = append(p.Measures, model.Measure{Nodes: nodes})
	}
	return p
}

func single(measures ...[]model.Node) *model.Score {
	return &model.Score{Parts: []model.Part{part(measures...)}}
}

func measure(nodes ...model.Node) []model.Node {
	return nodes
}
