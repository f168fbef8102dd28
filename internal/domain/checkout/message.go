// Package checkout renders cart contents into the order message handed off to
// WhatsApp. There is no payment processing: checkout is a formatted text
// payload in a messaging URL.
package checkout

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/dukicks/storefront/internal/domain/cart"
	"github.com/dukicks/storefront/internal/domain/pricing"
)

// ErrEmptyCart is returned when building a checkout URL for an empty cart.
var ErrEmptyCart = errors.New("cart is empty")

// ErrInvalidPhone is returned when the store phone number is not a valid
// Mexican WhatsApp destination.
var ErrInvalidPhone = errors.New("invalid phone number")

const (
	messageHeader    = "*🛍️ PEDIDO DUKICKS*"
	messageSeparator = "━━━━━━━━━━━━━━━━"
	messageClosing   = "_Gracias por tu preferencia_ 🙌"
	noSize           = "N/A"
)

var prices = pricing.NewFormatter()

// OrderMessage renders the line items as a numbered list followed by a
// separator, a total line, and a closing remark. The output is deterministic
// and plain text; an empty cart renders as the empty string and callers must
// not send an empty order.
func OrderMessage(items []cart.LineItem, total decimal.Decimal) string {
	if len(items) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(messageHeader + "\n\n")

	for i, li := range items {
		size := li.Size
		if size == "" {
			size = noSize
		}
		fmt.Fprintf(&b, "%d. *%s*\n", i+1, li.Name)
		fmt.Fprintf(&b, "   Talla: %s\n", size)
		fmt.Fprintf(&b, "   Cantidad: %d\n", li.Quantity)
		fmt.Fprintf(&b, "   Precio: %s\n", prices.Format(li.Price))
		fmt.Fprintf(&b, "   Subtotal: %s\n\n", prices.Format(li.Subtotal()))
	}

	b.WriteString(messageSeparator + "\n")
	fmt.Fprintf(&b, "*TOTAL: %s %s*\n\n", prices.Format(total), prices.Code())
	b.WriteString(messageClosing)

	return b.String()
}

// WhatsAppURL builds the wa.me handoff URL carrying the percent-encoded order
// message. The phone number is normalized to its international form first.
func WhatsAppURL(phone string, items []cart.LineItem, total decimal.Decimal) (string, error) {
	msg := OrderMessage(items, total)
	if msg == "" {
		return "", ErrEmptyCart
	}
	if !ValidPhone(phone) {
		return "", ErrInvalidPhone
	}

	u := url.URL{
		Scheme:   "https",
		Host:     "wa.me",
		Path:     "/" + NormalizePhone(phone),
		RawQuery: url.Values{"text": {msg}}.Encode(),
	}
	return u.String(), nil
}

// ValidPhone reports whether phone is a ten-digit Mexican number, with or
// without the 52 country prefix. Separators and punctuation are ignored.
func ValidPhone(phone string) bool {
	digits := onlyDigits(phone)
	return len(digits) == 10 || (len(digits) == 12 && strings.HasPrefix(digits, "52"))
}

// NormalizePhone strips non-digits and prefixes the 52 country code when the
// number is a bare ten-digit national number.
func NormalizePhone(phone string) string {
	digits := onlyDigits(phone)
	if len(digits) == 10 {
		return "52" + digits
	}
	return digits
}

func onlyDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
