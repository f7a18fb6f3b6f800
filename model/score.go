package model

import (
	"fmt"
	"strings"
)

// Score is an already-parsed score document: parts of measures of nodes. It
// is treated as immutable by everything in this module.
type Score struct {
	Title string `yaml:"title,omitempty" json:"title,omitempty"`
	Parts []Part `yaml:"parts" json:"parts"`
}

type Part struct {
	ID       string    `yaml:"id,omitempty" json:"id,omitempty"`
	Name     string    `yaml:"name,omitempty" json:"name,omitempty"`
	Measures []Measure `yaml:"measures" json:"measures"`
}

type Measure struct {
	Number string `yaml:"number,omitempty" json:"number,omitempty"`
	Nodes  []Node `yaml:"nodes" json:"nodes"`
}

// NodeKind tags which payload of a Node is populated. Kinds are mutually
// exclusive.
type NodeKind int

const (
	KindBarline NodeKind = iota + 1
	KindAttributes
	KindDirection
	KindChord
	KindNote
	KindForward
	KindBackup
)

var kindNames = map[NodeKind]string{
	KindBarline:    "barline",
	KindAttributes: "attributes",
	KindDirection:  "direction",
	KindChord:      "chord",
	KindNote:       "note",
	KindForward:    "forward",
	KindBackup:     "backup",
}

func (k NodeKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("NodeKind(%d)", int(k))
}

func (k NodeKind) MarshalText() ([]byte, error) {
	if _, ok := kindNames[k]; !ok {
		return nil, fmt.Errorf("unknown node kind %d", int(k))
	}
	return []byte(k.String()), nil
}

func (k *NodeKind) UnmarshalText(text []byte) error {
	s := strings.ToLower(strings.TrimSpace(string(text)))
	for kind, name := range kindNames {
		if name == s {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown node kind %q", s)
}

// Timed reports whether nodes of this kind move the tick cursor.
func (k NodeKind) Timed() bool {
	switch k {
	case KindChord, KindNote, KindForward, KindBackup:
		return true
	}
	return false
}

// Node is one child of a measure. Only the payload matching Kind is read;
// Forward and Backup carry their length in Duration.
type Node struct {
	Kind       NodeKind    `yaml:"kind" json:"kind"`
	Barline    *Barline    `yaml:"barline,omitempty" json:"barline,omitempty"`
	Attributes *Attributes `yaml:"attributes,omitempty" json:"attributes,omitempty"`
	Direction  *Direction  `yaml:"direction,omitempty" json:"direction,omitempty"`
	Chord      *Chord      `yaml:"chord,omitempty" json:"chord,omitempty"`
	Note       *Note       `yaml:"note,omitempty" json:"note,omitempty"`
	Duration   int         `yaml:"duration,omitempty" json:"duration,omitempty"`
}

// TickDuration is how far a timed node moves the cursor. Non-timed nodes and
// nodes missing their payload have no duration.
func (n Node) TickDuration() int {
	switch n.Kind {
	case KindNote:
		if n.Note != nil {
			return n.Note.Duration
		}
	case KindChord:
		if n.Chord != nil {
			return n.Chord.Duration()
		}
	case KindForward, KindBackup:
		return n.Duration
	}
	return 0
}

// Attributes carries the divisions (ticks per beat) and time signature. A
// zero Divisions or nil Time means the document left them unspecified.
type Attributes struct {
	Divisions int   `yaml:"divisions,omitempty" json:"divisions,omitempty"`
	Time      *Time `yaml:"time,omitempty" json:"time,omitempty"`
}

// EffectiveDivisions never returns less than 1.
func (a *Attributes) EffectiveDivisions() int {
	if a == nil || a.Divisions < 1 {
		return 1
	}
	return a.Divisions
}

// EffectiveTime falls back to 4/4.
func (a *Attributes) EffectiveTime() Time {
	if a == nil || a.Time == nil || a.Time.Beats < 1 {
		return DefaultTime
	}
	return *a.Time
}

type Time struct {
	Beats    int `yaml:"beats" json:"beats"`
	BeatType int `yaml:"beatType" json:"beatType"`
}

var DefaultTime = Time{Beats: 4, BeatType: 4}

// DivisionsPerMeasure is the nominal measure length in ticks. Divisions are
// per beat so the beat type does not enter the product.
func DivisionsPerMeasure(divisions int, t Time) int {
	return divisions * t.Beats
}

type Direction struct {
	Sound *Sound `yaml:"sound,omitempty" json:"sound,omitempty"`
}

// Sound holds playback hints. Tempo is in beats per minute; Dynamics is a
// percentage of the forte velocity.
type Sound struct {
	Tempo    *float64 `yaml:"tempo,omitempty" json:"tempo,omitempty"`
	Dynamics *float64 `yaml:"dynamics,omitempty" json:"dynamics,omitempty"`
}

type Barline struct {
	Location string  `yaml:"location,omitempty" json:"location,omitempty"`
	Repeat   *Repeat `yaml:"repeat,omitempty" json:"repeat,omitempty"`
	Ending   *Ending `yaml:"ending,omitempty" json:"ending,omitempty"`
}

type RepeatDirection string

const (
	RepeatForward  RepeatDirection = "forward"
	RepeatBackward RepeatDirection = "backward"
)

type Repeat struct {
	Direction RepeatDirection `yaml:"direction" json:"direction"`
}

type EndingType string

const (
	EndingStart       EndingType = "start"
	EndingStop        EndingType = "stop"
	EndingDiscontinue EndingType = "discontinue"
)

type Ending struct {
	Type    EndingType `yaml:"type" json:"type"`
	Numbers []int      `yaml:"numbers,flow" json:"numbers"`
}

// MaxNumber is the largest ending number, or 0 for an empty set.
func (e Ending) MaxNumber() int {
	m := 0
	for _, n := range e.Numbers {
		if n > m {
			m = n
		}
	}
	return m
}

type Chord struct {
	Notes []*Note `yaml:"notes" json:"notes"`
}

// Duration of a chord is the duration of its first note; every note of a
// chord starts together and the cursor moves once.
func (c *Chord) Duration() int {
	if c == nil || len(c.Notes) == 0 || c.Notes[0] == nil {
		return 0
	}
	return c.Notes[0].Duration
}

type Note struct {
	Pitch    *Pitch `yaml:"pitch,omitempty" json:"pitch,omitempty"`
	Rest     bool   `yaml:"rest,omitempty" json:"rest,omitempty"`
	Duration int    `yaml:"duration" json:"duration"`
	Voice    string `yaml:"voice,omitempty" json:"voice,omitempty"`
	Staff    int    `yaml:"staff,omitempty" json:"staff,omitempty"`
}

// Sounding is false for rests and unpitched notes.
func (n *Note) Sounding() bool {
	return n != nil && !n.Rest && n.Pitch != nil
}

type Pitch struct {
	Step   string `yaml:"step" json:"step"`
	Alter  int    `yaml:"alter,omitempty" json:"alter,omitempty"`
	Octave int    `yaml:"octave" json:"octave"`
}

var stepSemitones = map[string]int{"C": 0, "D": 2, "E": 4, "F": 5, "G": 7, "A": 9, "B": 11}

// Key returns the MIDI key number (C4 = 60), clamped to 0..127.
func (p Pitch) Key() uint8 {
	semis, ok := stepSemitones[strings.ToUpper(p.Step)]
	if !ok {
		semis = 0
	}
	key := (p.Octave+1)*12 + semis + p.Alter
	if key < 0 {
		key = 0
	}
	if key > 127 {
		key = 127
	}
	return uint8(key)
}

func (p Pitch) String() string {
	var acc string
	switch {
	case p.Alter > 0:
		acc = strings.Repeat("#", p.Alter)
	case p.Alter < 0:
		acc = strings.Repeat("b", -p.Alter)
	}
	return fmt.Sprintf("%s%s%d", strings.ToUpper(p.Step), acc, p.Octave)
}
