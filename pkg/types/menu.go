package types

// Menu filter names accepted by FilterMenu.
const (
	FilterFeatured = "featured"
	FilterAll      = "all"
)

// MenuItem is one dish on the menu, as served by the backend. Read-only on
// the client: the menu is a per-session snapshot and is never mutated
// locally.
type MenuItem struct {
	ID          int64              `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Category    string             `json:"category"`
	Prices      map[string]float64 `json:"prices"` // price per plate, keyed by filling
	ImageURL    string             `json:"image_url"`
	IsAvailable bool               `json:"is_available"`
	IsFeatured  bool               `json:"is_featured"`
}

// PriceFor returns the price per plate for the given filling.
// The second return value is false if the item has no such filling.
func (m MenuItem) PriceFor(filling string) (float64, bool) {
	price, ok := m.Prices[filling]
	return price, ok
}

// FilterMenu returns the items matching the given filter: "featured" keeps
// featured items only, "all" keeps everything, and any other value is
// treated as a category name. Order is preserved.
func FilterMenu(items []MenuItem, filter string) []MenuItem {
	if filter == FilterAll {
		return items
	}
	var out []MenuItem
	for _, item := range items {
		switch filter {
		case FilterFeatured:
			if item.IsFeatured {
				out = append(out, item)
			}
		default:
			if item.Category == filter {
				out = append(out, item)
			}
		}
	}
	return out
}

// FindMenuItem returns the item with the given id from the snapshot.
// The second return value is false if no such item exists.
func FindMenuItem(items []MenuItem, id int64) (MenuItem, bool) {
	for _, item := range items {
		if item.ID == id {
			return item, true
		}
	}
	return MenuItem{}, false
}
