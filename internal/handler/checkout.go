package handler

import (
	"net/http"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"

	"github.com/dukicks/storefront/internal/domain/checkout"
)

// checkout renders the cart into the WhatsApp handoff URL. The destination
// defaults to the store's configured phone; a "phone" field in the payload
// overrides it. An empty cart is a conflict: there is no order to send.
func (h *Handler) checkout(w http.ResponseWriter, r *http.Request) {
	phone := h.storePhone
	if r.ContentLength != 0 {
		d := jx.Decode(r.Body, 512)
		err := d.Obj(func(d *jx.Decoder, key string) error {
			if key != "phone" {
				return d.Skip()
			}
			p, err := d.Str()
			if err != nil {
				return err
			}
			if p != "" {
				phone = p
			}
			return nil
		})
		if err != nil {
			respondError(w, r, http.StatusBadRequest, "invalid checkout payload")
			return
		}
	}

	items := h.cart.Items()
	total := h.cart.Total()

	url, err := checkout.WhatsAppURL(phone, items, total)
	switch {
	case errors.Is(err, checkout.ErrEmptyCart):
		respondError(w, r, http.StatusConflict, "cart is empty")
		return
	case errors.Is(err, checkout.ErrInvalidPhone):
		respondError(w, r, http.StatusBadRequest, "invalid phone number")
		return
	case err != nil:
		respondError(w, r, http.StatusInternalServerError, "internal error")
		return
	}

	respondJSON(w, r, http.StatusOK, func(e *jx.Encoder) {
		e.Obj(func(e *jx.Encoder) {
			e.Field("url", func(e *jx.Encoder) { e.Str(url) })
			e.Field("message", func(e *jx.Encoder) { e.Str(checkout.OrderMessage(items, total)) })
		})
	})
}
