package midi

import (
	"bytes"
	"math"
	"os"
	"sort"
	"time"

	"github.com/jsphweid/scoretime/constants"
	"github.com/jsphweid/scoretime/sequence"
	"github.com/jsphweid/scoretime/util"
	"github.com/pkg/errors"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

// exported files run at a fixed 60 bpm so one quarter is one second and
// positions come straight from wall time
const exportTempo = 60.0

type timedMessage struct {
	tick  uint32
	isOff bool
	msg   midi.Message
}

func ticksAt(seconds float64) uint32 {
	if seconds <= 0 {
		return 0
	}
	return uint32(math.Round(seconds * constants.MidiResolution * exportTempo / 60))
}

// ChannelForPart spreads parts over the 15 melodic channels, skipping the
// drum channel.
func ChannelForPart(part int) uint8 {
	ch := uint8(part % 15)
	if ch >= 9 {
		ch++
	}
	return ch
}

// VelocityFor maps the part's dynamics at tick to a note-on velocity.
func VelocityFor(seq *sequence.EventSequence, part, tick int) uint8 {
	d := seq.Dynamics(part, tick)
	if d == nil {
		return constants.DefaultVelocity
	}
	v := int(math.Round(d.Value * constants.ForteVelocity / 100))
	return uint8(util.Clamp(v, 1, 127))
}

// Export renders the whole resolved sequence, one track per part after a
// conductor track.
func Export(seq *sequence.EventSequence) *smf.SMF {
	return ExportRange(seq, math.MinInt, math.MaxInt)
}

// ExportRange renders the notes starting in [from, to). Times are shifted so
// the first exported onset plays at zero, which makes it suitable for
// auditioning a single loop.
func ExportRange(seq *sequence.EventSequence, from, to int) *smf.SMF {
	events := seq.EventsBetween(from, to)
	byPart := make(map[int][]timedMessage)

	var base float64
	if len(events) > 0 {
		base = events[0].WallTime
	}

	for _, e := range events {
		for _, ref := range e.OnNotes {
			if !ref.Note.Sounding() {
				continue
			}
			key := ref.Note.Pitch.Key()
			ch := ChannelForPart(ref.Part)
			end := e.WallTime
			if off := seq.Event(e.Tick + max(ref.Note.Duration, 0)); off != nil {
				end = off.WallTime
			}
			byPart[ref.Part] = append(byPart[ref.Part],
				timedMessage{tick: ticksAt(e.WallTime - base), msg: midi.NoteOn(ch, key, VelocityFor(seq, ref.Part, e.Tick))},
				timedMessage{tick: ticksAt(end - base), isOff: true, msg: midi.NoteOff(ch, key)},
			)
		}
	}

	s := smf.NewSMF1()
	s.TimeFormat = smf.MetricTicks(constants.MidiResolution)

	var conductor smf.Track
	if seq.Title != "" {
		conductor.Add(0, smf.MetaTrackSequenceName(seq.Title))
	}
	conductor.Add(0, smf.MetaTempo(exportTempo))
	conductor.Close(0)
	s.Add(conductor)

	for _, part := range util.GetSortedKeys(byPart) {
		s.Add(buildTrack(byPart[part]))
	}
	return s
}

func buildTrack(msgs []timedMessage) smf.Track {
	// note-offs sort before note-ons at the same tick so repeated keys retrigger
	sort.SliceStable(msgs, func(i, j int) bool {
		if msgs[i].tick != msgs[j].tick {
			return msgs[i].tick < msgs[j].tick
		}
		return msgs[i].isOff && !msgs[j].isOff
	})

	var tr smf.Track
	var last uint32
	for _, m := range msgs {
		tr.Add(m.tick-last, m.msg)
		last = m.tick
	}
	tr.Close(0)
	return tr
}

func WriteFile(s *smf.SMF, path string) error {
	var buf bytes.Buffer
	if _, err := s.WriteTo(&buf); err != nil {
		return errors.Wrap(err, "could not encode midi")
	}
	if err := os.WriteFile(path, buf.Bytes(), 0666); err != nil {
		return errors.Wrapf(err, "could not write midi file %s", path)
	}
	return nil
}

func ReadMidiFile(filepath string) (s *smf.SMF, e error) {
	// handle panics
	// https://github.com/gomidi/midi/issues/20
	defer func() {
		if r, ok := recover().(string); ok {
			s = nil
			e = errors.New(r)
		}
	}()

	dat, err := os.ReadFile(filepath)
	if err != nil {
		return nil, errors.Wrap(err, "Error reading midi file")
	}
	return ReadMidi(dat)
}

func ReadMidi(dat []byte) (*smf.SMF, error) {
	res, err := smf.ReadFrom(bytes.NewReader(dat))
	if err != nil {
		return nil, errors.Wrap(err, "Error parsing midi file")
	}
	return res, nil
}

type NoteStart struct {
	Track int
	Key   uint8
	At    time.Duration
}

// NoteStarts lists every note-on of a file with its absolute time.
func NoteStarts(s *smf.SMF) []NoteStart {
	var res []NoteStart
	for i, events := range s.Tracks {
		var absTicks int64
		for _, event := range events {
			absTicks += int64(event.Delta)
			var channel, key, velocity uint8
			if event.Message.GetNoteOn(&channel, &key, &velocity) {
				res = append(res, NoteStart{
					Track: i,
					Key:   key,
					At:    time.Duration(s.TimeAt(absTicks)) * time.Microsecond,
				})
			}
		}
	}
	sort.SliceStable(res, func(i, j int) bool {
		return res[i].At < res[j].At
	})
	return res
}
