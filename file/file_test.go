package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jsphweid/scoretime/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadYamlScore(t *testing.T) {
	score, err := LoadScore("testdata/volta.yaml")
	require.NoError(t, err)

	assert := assert.New(t)
	assert.Equal("Volta Study", score.Title)
	require.Len(t, score.Parts, 1)
	measures := score.Parts[0].Measures
	require.Len(t, measures, 3)

	nodes := measures[0].Nodes
	assert.Equal(model.KindBarline, nodes[0].Kind)
	assert.Equal(model.RepeatForward, nodes[0].Barline.Repeat.Direction)
	assert.Equal(1, nodes[1].Attributes.Divisions)
	assert.Equal(120.0, *nodes[2].Direction.Sound.Tempo)
	assert.Equal(model.KindBackup, nodes[5].Kind)
	assert.Equal(4, nodes[5].TickDuration())
	assert.Len(nodes[6].Chord.Notes, 2)
	assert.Equal(4, nodes[6].TickDuration())

	last := measures[2].Nodes[2].Barline.Ending
	assert.Equal(model.EndingDiscontinue, last.Type)
	assert.Equal([]int{2}, last.Numbers)
}

func TestLoadJsonScore(t *testing.T) {
	score, err := LoadScore("testdata/rest.json")
	require.NoError(t, err)

	nodes := score.Parts[0].Measures[0].Nodes
	assert := assert.New(t)
	assert.Equal(model.KindNote, nodes[1].Kind)
	assert.True(nodes[1].Note.Rest)
	assert.Equal(model.KindForward, nodes[2].Kind)
	assert.Equal(uint8(78), nodes[3].Note.Pitch.Key())
}

func TestParseScoreRejectsUnknownKind(t *testing.T) {
	_, err := ParseScore([]byte("parts:\n  - measures:\n      - nodes:\n          - kind: glissando\n"), false)
	assert.Error(t, err)
}

func TestLoadScoreMissingFile(t *testing.T) {
	_, err := LoadScore("testdata/missing.yaml")
	assert.Error(t, err)
}

func TestGatherAllScorePaths(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.yaml", "b.json", "c.txt", "d.yml"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("parts: []"), 0666))
	}

	paths, err := GatherAllScorePaths(dir, 0)
	require.NoError(t, err)
	assert.Len(t, paths, 3)

	limited, err := GatherAllScorePaths(dir, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestSnapshotName(t *testing.T) {
	assert.Equal(t, "volta.dat", SnapshotName("scores/volta.yaml"))
}
