package types

// CartLine is one entry in the local cart: a chosen menu item, filling
// variant, and quantity. Name and PricePerPlate are denormalized copies
// taken from the menu snapshot at add time, so the cart renders and totals
// without the menu being loaded.
type CartLine struct {
	ID            int64   `json:"id"` // assigned by the store on insert
	ItemID        int64   `json:"itemId"`
	Name          string  `json:"name"`
	Filling       string  `json:"filling"`
	Quantity      int     `json:"quantity"`
	PricePerPlate float64 `json:"pricePerPlate"`
}

// Subtotal returns quantity times price per plate for this line.
func (l CartLine) Subtotal() float64 {
	return float64(l.Quantity) * l.PricePerPlate
}

// CartTotal returns the grand total over all lines. The total is always
// derived from the lines, never stored.
func CartTotal(lines []CartLine) float64 {
	var total float64
	for _, l := range lines {
		total += l.Subtotal()
	}
	return total
}
