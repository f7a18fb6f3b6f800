package chord

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jsphweid/scoretime/model"
)

// CreateChordKey sorts notes in place and joins them with "-", so equal
// pitch sets always produce equal keys.
func CreateChordKey(notes []uint8) string {
	sort.Slice(notes, func(i, j int) bool {
		return notes[i] < notes[j]
	})
	parts := make([]string, len(notes))
	for i, note := range notes {
		parts[i] = fmt.Sprintf("%v", note)
	}
	return strings.Join(parts, "-")
}

// OnsetKeys returns the distinct MIDI keys of the sounding notes starting at
// the event. Rests are skipped.
func OnsetKeys(e *model.Event) []uint8 {
	seen := make(map[uint8]bool)
	var keys []uint8
	for _, ref := range e.OnNotes {
		if !ref.Note.Sounding() {
			continue
		}
		key := ref.Note.Pitch.Key()
		if !seen[key] {
			seen[key] = true
			keys = append(keys, key)
		}
	}
	return keys
}

func OnsetKey(e *model.Event) string {
	return CreateChordKey(OnsetKeys(e))
}
