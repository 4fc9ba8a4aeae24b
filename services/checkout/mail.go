package checkout

import (
	"fmt"
	"strings"
)

// composeOrderMail renders the order confirmation the way the storefront
// always mailed it to the merchant: one block per line, then a summary.
func composeOrderMail(order Order) (string, string) {
	subject := fmt.Sprintf("New Order - %s - Ksh %.2f", order.UID, order.GrandTotal)

	details := make([]string, 0, len(order.Lines))
	for _, line := range order.Lines {
		sb := strings.Builder{}

		sb.WriteString(line.Name + "\n")
		sb.WriteString(fmt.Sprintf("Quantity: %d\n", line.Quantity))

		price := 0.0
		if line.Price != nil {
			price = *line.Price
			sb.WriteString(fmt.Sprintf("Unit Price: Ksh %.2f\n", price))
		} else {
			sb.WriteString("Unit Price: Not set\n")
		}

		discounted := line.OriginalPrice != nil && *line.OriginalPrice > price
		if discounted {
			sb.WriteString(fmt.Sprintf("Original: Ksh %.2f\n", *line.OriginalPrice))
		}

		itemTotal := price * float64(line.Quantity)
		sb.WriteString(fmt.Sprintf("Item Total: Ksh %.2f", itemTotal))

		if discounted {
			originalTotal := *line.OriginalPrice * float64(line.Quantity)
			sb.WriteString(fmt.Sprintf("\nSavings Made: Ksh %.2f", originalTotal-itemTotal))
		}

		details = append(details, sb.String())
	}

	summary := strings.Builder{}
	summary.WriteString("ORDER SUMMARY:\n")
	summary.WriteString("-------------\n")
	summary.WriteString(fmt.Sprintf("Subtotal: Ksh %.2f\n", order.Subtotal))
	if order.Savings > 0 {
		summary.WriteString(fmt.Sprintf("Total Savings: Ksh %.2f\n", order.Savings))
	}
	summary.WriteString(fmt.Sprintf("GRAND TOTAL: Ksh %.2f", order.GrandTotal))

	body := fmt.Sprintf("Order ID: %s\n\nORDER DETAILS:\n%s\n\n%s\n\nAdditional Message: %s",
		order.UID,
		strings.Join(details, "\n\n"),
		summary.String(),
		order.Customer.Message)

	return subject, body
}
