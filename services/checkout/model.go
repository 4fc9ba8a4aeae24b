package checkout

import (
	"time"

	"github.com/electromart/storefrontbackend/services/cart"
)

// OrderForm is what the storefront's checkout form posts, urlencoded.
type OrderForm struct {
	Name    string `form:"name" json:"name"`
	Email   string `form:"email" json:"email"`
	Phone   string `form:"phone" json:"phone"`
	Address string `form:"address" json:"address"`
	Message string `form:"message" json:"message"`
}

type Order struct {
	UID        string     `json:"id"`
	Customer   OrderForm  `json:"customer"`
	Lines      cart.Lines `json:"items" datastore:",noindex"`
	Subtotal   float64    `json:"subtotal"`
	Savings    float64    `json:"savings"`
	GrandTotal float64    `json:"grand_total"`
	CreatedAt  time.Time  `json:"created_at"`
}
