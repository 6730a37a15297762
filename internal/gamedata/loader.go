package gamedata

import (
	"encoding/json"
	"fmt"
)

const levelsFileName = "levels.json"

// LevelsFile is the layout of levels.json.
type LevelsFile struct {
	Levels  []LevelDef  `json:"levels"`
	Palette []TileColor `json:"palette"`
}

// Load decodes the embedded JSON file name into a T. Unknown keys are an
// error so a misspelt preset field fails loudly instead of reading as zero.
func Load[T any](name string) (T, error) {
	var out T

	f, err := dataFS.Open(name)
	if err != nil {
		return out, fmt.Errorf("opening %s: %w", name, err)
	}
	defer f.Close()

	dec := json.NewDecoder(f)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&out); err != nil {
		return out, fmt.Errorf("decoding %s: %w", name, err)
	}
	return out, nil
}

func loadLevelsFile() (LevelsFile, error) {
	return Load[LevelsFile](levelsFileName)
}
