// Package staticcatalog loads the world item catalog from a JSON file.
package staticcatalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"tavernbot/internal/domain/game"
)

var ErrEmptyCatalog = errors.New("catalog file holds no items")

type itemFile struct {
	Items []game.Item `json:"items"`
}

// Load reads and validates a catalog file. Stat order in the file is
// the display order.
func Load(path string) (game.Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return game.Catalog{}, fmt.Errorf("read catalog: %w", err)
	}

	var f itemFile
	if err := json.Unmarshal(raw, &f); err != nil {
		return game.Catalog{}, fmt.Errorf("parse catalog: %w", err)
	}
	if len(f.Items) == 0 {
		return game.Catalog{}, ErrEmptyCatalog
	}

	for i := range f.Items {
		if f.Items[i].Name == "" {
			f.Items[i].Name = f.Items[i].ID
		}
	}

	catalog, err := game.NewCatalog(f.Items)
	if err != nil {
		return game.Catalog{}, fmt.Errorf("catalog %s: %w", path, err)
	}
	return catalog, nil
}
