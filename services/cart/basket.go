package cart

// Snapshot is the subset of product fields captured into a line at the
// moment it is added. It is not re-synchronized with the catalog afterwards.
type Snapshot struct {
	ProductUID    string   `json:"id"`
	Name          string   `json:"name"`
	ImageURL      string   `json:"image_url"`
	Price         *float64 `json:"price"`
	OriginalPrice *float64 `json:"original_price"`
	OnSale        bool     `json:"is_on_sale"`
}

// Line is one merged entry per distinct product in the basket.
type Line struct {
	ProductUID    string   `json:"id"`
	Name          string   `json:"name"`
	ImageURL      string   `json:"image_url"`
	Quantity      int      `json:"quantity"`
	Price         *float64 `json:"price"`
	OriginalPrice *float64 `json:"original_price"`
	OnSale        bool     `json:"is_on_sale"`
}

type Lines []Line

// The functions below are pure: they derive a new set of lines from the
// current one and never touch storage.

// Add merges a product into the basket. An existing line keeps exactly one
// entry per product uid and accumulates quantity. Price fields are only
// backfilled when they were absent so far, never overwritten.
func (l Lines) Add(p Snapshot, quantity int) Lines {
	if quantity < 0 {
		quantity = 0
	}

	result := make(Lines, 0, len(l)+1)
	merged := false
	for _, line := range l {
		if line.ProductUID == p.ProductUID {
			line.Quantity += quantity
			if line.Price == nil {
				line.Price = p.Price
			}
			if line.OriginalPrice == nil {
				line.OriginalPrice = p.OriginalPrice
			}
			if !line.OnSale {
				line.OnSale = p.OnSale
			}
			merged = true
		}
		result = append(result, line)
	}
	if merged {
		return result
	}

	// A quantity of zero on an unknown product must not create a line:
	// a line, once present, always has quantity >= 1.
	if quantity == 0 {
		return result
	}

	return append(result, Line{
		ProductUID:    p.ProductUID,
		Name:          p.Name,
		ImageURL:      p.ImageURL,
		Quantity:      quantity,
		Price:         p.Price,
		OriginalPrice: p.OriginalPrice,
		OnSale:        p.OnSale,
	})
}

// Remove drops the line for the given product. Removing an absent product is
// a no-op, not an error.
func (l Lines) Remove(productUID string) Lines {
	result := make(Lines, 0, len(l))
	for _, line := range l {
		if line.ProductUID != productUID {
			result = append(result, line)
		}
	}
	return result
}

// SetQuantity sets the quantity of an existing line to an absolute value.
// A quantity of zero or less removes the line. An absent line is left absent:
// a bare quantity-set never creates one.
func (l Lines) SetQuantity(productUID string, quantity int) Lines {
	if quantity <= 0 {
		return l.Remove(productUID)
	}

	result := make(Lines, 0, len(l))
	for _, line := range l {
		if line.ProductUID == productUID {
			line.Quantity = quantity
		}
		result = append(result, line)
	}
	return result
}

// ItemCount is the sum of quantities over all lines.
func (l Lines) ItemCount() int {
	count := 0
	for _, line := range l {
		count += line.Quantity
	}
	return count
}

// TotalPrice sums price*quantity over all lines. Lines without a price
// contribute zero: they still count towards ItemCount.
func (l Lines) TotalPrice() float64 {
	total := 0.0
	for _, line := range l {
		if line.Price != nil {
			total += *line.Price * float64(line.Quantity)
		}
	}
	return total
}

// TotalSavings sums (original-price - price)*quantity over the lines that
// are on sale and actually carry a discount.
func (l Lines) TotalSavings() float64 {
	savings := 0.0
	for _, line := range l {
		if line.OnSale && line.OriginalPrice != nil && line.Price != nil && *line.OriginalPrice > *line.Price {
			savings += (*line.OriginalPrice - *line.Price) * float64(line.Quantity)
		}
	}
	return savings
}
