package catalog

import "time"

type Product struct {
	UID            string    `json:"id"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	Price          float64   `json:"price"`
	OriginalPrice  *float64  `json:"original_price"`
	IsOnSale       bool      `json:"is_on_sale"`
	ImageURL       string    `json:"image_url"`
	CategoryUID    string    `json:"category_id"`
	SubcategoryUID string    `json:"subcategory_id"`
	IsFeatured     bool      `json:"is_featured"`
	IsNew          bool      `json:"is_new"`
	Features       []string  `json:"features"`
	CreatedAt      time.Time `json:"created_at"`
}

type Category struct {
	UID         string `json:"id"`
	Name        string `json:"name"`
	Icon        Icon   `json:"icon"`
	Description string `json:"description"`
}

type Subcategory struct {
	UID         string `json:"id"`
	Name        string `json:"name"`
	CategoryUID string `json:"category_id"`
}
