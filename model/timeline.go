package model

// NoteRef points back into the score document at a note that starts or ends
// at some tick.
type NoteRef struct {
	Part    int   `json:"part"`
	Measure int   `json:"measure"`
	Note    *Note `json:"note"`
}

// Event is everything that happens at one tick: the notes starting there and
// the notes ending there. WallTime and WallDuration are in seconds and are
// only meaningful once the sequence has been resolved.
type Event struct {
	Tick         int       `json:"tick"`
	MeasureIndex int       `json:"measure"`
	OnNotes      []NoteRef `json:"on,omitempty"`
	OffNotes     []NoteRef `json:"off,omitempty"`
	WallTime     float64   `json:"wallTime"`
	WallDuration float64   `json:"wallDuration"`
}

func (e *Event) AddOnNote(ref NoteRef) {
	e.OnNotes = append(e.OnNotes, ref)
}

func (e *Event) AddOffNote(ref NoteRef) {
	e.OffNotes = append(e.OffNotes, ref)
}

// MaxDuration is the longest tick duration among the notes starting here.
func (e *Event) MaxDuration() int {
	var res int
	for _, ref := range e.OnNotes {
		if ref.Note != nil && ref.Note.Duration > res {
			res = ref.Note.Duration
		}
	}
	return res
}

// End is the wall time at which the longest onset note stops sounding.
func (e *Event) End() float64 {
	return e.WallTime + e.WallDuration
}

// AttributesMarker records the attributes node in effect from Tick onward in
// one part.
type AttributesMarker struct {
	Tick       int         `json:"tick"`
	Part       int         `json:"part"`
	Attributes *Attributes `json:"attributes"`
}

func (m AttributesMarker) Divisions() int {
	return m.Attributes.EffectiveDivisions()
}

func (m AttributesMarker) Time() Time {
	return m.Attributes.EffectiveTime()
}

// TempoMarker is global: a tempo applies to every part.
type TempoMarker struct {
	Tick  int     `json:"tick"`
	Value float64 `json:"bpm"`
}

type DynamicsMarker struct {
	Tick  int     `json:"tick"`
	Part  int     `json:"part"`
	Value float64 `json:"value"`
}

// Loop is a repeated tick range [Begin, End). Count is how many extra times
// the range plays, so the default of 1 means it is heard twice.
type Loop struct {
	Begin int `json:"begin"`
	End   int `json:"end"`
	Count int `json:"count"`
}

// EndingRange is an alternate ending [Begin, End) and the passes it belongs
// to.
type EndingRange struct {
	Begin   int   `json:"begin"`
	End     int   `json:"end"`
	Numbers []int `json:"numbers"`
}

type DiagnosticKind string

const (
	DiagnosticImplicitLoopStart  DiagnosticKind = "backward-repeat-without-forward"
	DiagnosticOrphanEndingStop   DiagnosticKind = "ending-stop-without-start"
	DiagnosticBackupClamped      DiagnosticKind = "backup-before-measure-start"
	DiagnosticNonPositiveTempo   DiagnosticKind = "non-positive-tempo"
	DiagnosticNegativeNodeLength DiagnosticKind = "negative-duration"
	DiagnosticMissingNodePayload DiagnosticKind = "missing-node-payload"
)

// Diagnostic describes a structural inconsistency the builder recovered
// from.
type Diagnostic struct {
	Kind    DiagnosticKind `json:"kind"`
	Part    int            `json:"part"`
	Measure int            `json:"measure"`
	Tick    int            `json:"tick"`
	Message string         `json:"message"`
}

// Timeline is a plain copy of a finished event sequence, used for snapshots
// and API responses.
type Timeline struct {
	Title       string             `json:"title,omitempty"`
	Events      []Event            `json:"events"`
	Attributes  []AttributesMarker `json:"attributes"`
	Tempos      []TempoMarker      `json:"tempos"`
	Dynamics    []DynamicsMarker   `json:"dynamics"`
	Loops       []Loop             `json:"loops"`
	Endings     []EndingRange      `json:"endings"`
	Diagnostics []Diagnostic       `json:"diagnostics,omitempty"`
	Duration    float64            `json:"duration"`
}
