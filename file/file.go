package file

import (
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/jsphweid/scoretime/model"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

var scoreExtensions = []string{".yaml", ".yml", ".json"}

func IsScoreFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range scoreExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

// ParseScore decodes a score document tree. JSON is used when asJSON is set,
// YAML otherwise.
func ParseScore(data []byte, asJSON bool) (*model.Score, error) {
	var score model.Score
	if asJSON {
		if err := json.Unmarshal(data, &score); err != nil {
			return nil, errors.Wrap(err, "could not decode score json")
		}
		return &score, nil
	}
	if err := yaml.Unmarshal(data, &score); err != nil {
		return nil, errors.Wrap(err, "could not decode score yaml")
	}
	return &score, nil
}

func LoadScore(path string) (*model.Score, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "could not read score %s", path)
	}
	isJSON := strings.EqualFold(filepath.Ext(path), ".json")
	score, err := ParseScore(data, isJSON)
	if err != nil {
		return nil, errors.Wrapf(err, "could not load score %s", path)
	}
	return score, nil
}

// GatherAllScorePaths walks dir for score files, stopping at maxNum when it
// is non-zero.
func GatherAllScorePaths(dir string, maxNum int) ([]string, error) {
	var res []string
	walk := func(s string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && IsScoreFile(s) {
			if maxNum == 0 || len(res) < maxNum {
				res = append(res, s)
			}
		}
		return nil
	}
	if err := filepath.WalkDir(dir, walk); err != nil {
		return nil, errors.Wrapf(err, "could not walk %s", dir)
	}
	return res, nil
}

// SnapshotName derives the output file name for a score path.
func SnapshotName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base)) + ".dat"
}
