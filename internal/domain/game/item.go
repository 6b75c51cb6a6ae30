package game

import (
	"errors"
	"fmt"
)

var ErrDuplicateItemID = errors.New("duplicate item id")

// StatModifier is a single named, signed stat adjustment. Modifiers keep
// their declared order so inventory listings render deterministically.
type StatModifier struct {
	Name  string `json:"name"`
	Delta int    `json:"delta"`
}

func (m StatModifier) String() string {
	if m.Delta >= 0 {
		return fmt.Sprintf("%s +%d", m.Name, m.Delta)
	}
	return fmt.Sprintf("%s %d", m.Name, m.Delta)
}

type Item struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Stats       []StatModifier `json:"stats"`
	Description string         `json:"description"`
}

// Catalog is the fixed set of world items, loaded once at startup.
type Catalog struct {
	items []Item
	byID  map[string]Item
}

func NewCatalog(items []Item) (Catalog, error) {
	byID := make(map[string]Item, len(items))
	for _, it := range items {
		if it.ID == "" {
			return Catalog{}, errors.New("item with empty id")
		}
		if _, ok := byID[it.ID]; ok {
			return Catalog{}, fmt.Errorf("%w: %s", ErrDuplicateItemID, it.ID)
		}
		byID[it.ID] = it
	}
	return Catalog{items: items, byID: byID}, nil
}

func (c Catalog) Get(id string) (Item, bool) {
	it, ok := c.byID[id]
	return it, ok
}

func (c Catalog) Items() []Item {
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

func (c Catalog) IDs() []string {
	ids := make([]string, 0, len(c.items))
	for _, it := range c.items {
		ids = append(ids, it.ID)
	}
	return ids
}

func (c Catalog) Len() int {
	return len(c.items)
}
