package board

import (
	"encoding/json"
	"os"
	"path/filepath"

	"StravaBoard/internal/model"
)

// Load reads a board artifact from a JSON file. Returns an empty board if the
// file doesn't exist.
func Load(path string) (*model.Board, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &model.Board{Athletes: map[string]*model.AthleteSummary{}}, nil
		}
		return nil, err
	}
	var b model.Board
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, err
	}
	if b.Athletes == nil {
		b.Athletes = map[string]*model.AthleteSummary{}
	}
	return &b, nil
}

// Save writes the board artifact, replacing any prior content.
func Save(path string, b *model.Board) error {
	return saveJSON(path, b)
}

func saveJSON(path string, v interface{}) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
