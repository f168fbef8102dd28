package handler

import (
	"net/http"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/dukicks/storefront/internal/domain/cart"
	"github.com/dukicks/storefront/internal/domain/catalog"
)

// cartItemRequest is the shared payload for cart item mutations.
type cartItemRequest struct {
	ProductID string
	Size      string
	Quantity  int
}

func decodeCartItem(r *http.Request) (cartItemRequest, error) {
	var req cartItemRequest
	req.Quantity = 1

	d := jx.Decode(r.Body, 1024)
	err := d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "productId":
			req.ProductID, err = d.Str()
		case "size":
			req.Size, err = d.Str()
		case "quantity":
			req.Quantity, err = d.Int()
		default:
			err = d.Skip()
		}
		return err
	})
	if err != nil {
		return req, err
	}
	if req.ProductID == "" {
		return req, errors.New("productId required")
	}
	return req, nil
}

// getCart serves the current cart contents and aggregates.
func (h *Handler) getCart(w http.ResponseWriter, r *http.Request) {
	h.respondCart(w, r, http.StatusOK)
}

// addCartItem merges a product into the cart. Quantities beyond the line
// item maximum are silently capped, never rejected.
func (h *Handler) addCartItem(w http.ResponseWriter, r *http.Request) {
	req, err := decodeCartItem(r)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid cart item payload")
		return
	}

	p, err := h.products.GetByID(r.Context(), req.ProductID)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			respondError(w, r, http.StatusNotFound, "product not found")
			return
		}
		zctx.From(r.Context()).Error("get product", zap.Error(err))
		respondError(w, r, http.StatusInternalServerError, "internal error")
		return
	}

	h.cart.Add(*p, req.Size, req.Quantity)
	h.respondCart(w, r, http.StatusOK)
}

// updateCartItem replaces a line item's quantity. Out-of-range quantities
// and missing line items are no-ops by contract, so the response is always
// the (possibly unchanged) cart.
func (h *Handler) updateCartItem(w http.ResponseWriter, r *http.Request) {
	req, err := decodeCartItem(r)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid cart item payload")
		return
	}

	h.cart.UpdateQuantity(req.ProductID, req.Size, req.Quantity)
	h.respondCart(w, r, http.StatusOK)
}

// removeCartItem deletes a line item identified by query parameters.
func (h *Handler) removeCartItem(w http.ResponseWriter, r *http.Request) {
	productID := r.URL.Query().Get("product_id")
	if productID == "" {
		respondError(w, r, http.StatusBadRequest, "product_id required")
		return
	}

	h.cart.Remove(productID, r.URL.Query().Get("size"))
	h.respondCart(w, r, http.StatusOK)
}

// clearCart empties the cart.
func (h *Handler) clearCart(w http.ResponseWriter, r *http.Request) {
	h.cart.Clear()
	h.respondCart(w, r, http.StatusOK)
}

func (h *Handler) respondCart(w http.ResponseWriter, r *http.Request, status int) {
	items := h.cart.Items()
	subtotal := h.cart.Subtotal()
	total := h.cart.Total()

	respondJSON(w, r, status, func(e *jx.Encoder) {
		e.Obj(func(e *jx.Encoder) {
			e.Field("items", func(e *jx.Encoder) {
				e.Arr(func(e *jx.Encoder) {
					for _, li := range items {
						encodeLineItem(e, li)
					}
				})
			})
			e.Field("subtotal", func(e *jx.Encoder) { e.Float64(subtotal.InexactFloat64()) })
			e.Field("total", func(e *jx.Encoder) { e.Float64(total.InexactFloat64()) })
			e.Field("totalFormatted", func(e *jx.Encoder) { e.Str(h.prices.Format(total)) })
			e.Field("itemCount", func(e *jx.Encoder) { e.Int(h.cart.ItemCount()) })
			e.Field("uniqueItemCount", func(e *jx.Encoder) { e.Int(h.cart.UniqueItemCount()) })
			e.Field("isEmpty", func(e *jx.Encoder) { e.Bool(len(items) == 0) })
		})
	})
}

func encodeLineItem(e *jx.Encoder, li cart.LineItem) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("productId", func(e *jx.Encoder) { e.Str(li.ProductID) })
		e.Field("size", func(e *jx.Encoder) { e.Str(li.Size) })
		e.Field("name", func(e *jx.Encoder) { e.Str(li.Name) })
		e.Field("image", func(e *jx.Encoder) { e.Str(li.Image) })
		e.Field("category", func(e *jx.Encoder) { e.Str(li.Category) })
		e.Field("price", func(e *jx.Encoder) { e.Float64(li.Price.InexactFloat64()) })
		e.Field("quantity", func(e *jx.Encoder) { e.Int(li.Quantity) })
		e.Field("subtotal", func(e *jx.Encoder) { e.Float64(li.Subtotal().InexactFloat64()) })
	})
}
