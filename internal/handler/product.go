package handler

import (
	"net/http"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/go-faster/sdk/zctx"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/dukicks/storefront/internal/domain/catalog"
	"github.com/dukicks/storefront/internal/domain/pricing"
)

// listProducts serves the catalog with the full query pipeline the UI uses:
// source selection (category / featured / new), filters (brand, price range),
// then either relevance ranking (q) or an explicit sort key.
func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	var (
		products []catalog.Product
		err      error
	)
	switch {
	case q.Get("category") != "":
		products, err = h.products.GetByCategory(ctx, q.Get("category"))
	case q.Get("featured") == "true":
		products, err = h.products.Featured(ctx)
	case q.Get("new") == "true":
		products, err = h.products.New(ctx)
	default:
		products, err = h.products.List(ctx)
	}
	if err != nil {
		zctx.From(ctx).Error("fetch products", zap.Error(err))
		respondError(w, r, http.StatusInternalServerError, "internal error")
		return
	}

	products = catalog.ApplyFilters(products, catalog.Filters{
		Brands:   q["brand"],
		PriceMin: parsePrice(r, "price_min"),
		PriceMax: parsePrice(r, "price_max"),
	})

	if search := q.Get("q"); search != "" {
		products = catalog.Rank(products, search)
	} else if key := q.Get("sort"); key != "" {
		var ok bool
		products, ok = catalog.Sort(products, catalog.SortKey(key))
		if !ok {
			zctx.From(ctx).Warn("unknown sort key", zap.String("sort", key))
		}
	}

	respondJSON(w, r, http.StatusOK, func(e *jx.Encoder) {
		e.Arr(func(e *jx.Encoder) {
			for _, p := range products {
				h.encodeProduct(e, p)
			}
		})
	})
}

// getProduct serves a single product by ID.
func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.products.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			respondError(w, r, http.StatusNotFound, "product not found")
			return
		}
		zctx.From(r.Context()).Error("get product", zap.Error(err))
		respondError(w, r, http.StatusInternalServerError, "internal error")
		return
	}

	respondJSON(w, r, http.StatusOK, func(e *jx.Encoder) {
		h.encodeProduct(e, *p)
	})
}

// listBrands serves the deduplicated brand list, prefixed with the "All"
// sentinel unless all=false.
func (h *Handler) listBrands(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.List(r.Context())
	if err != nil {
		zctx.From(r.Context()).Error("fetch products", zap.Error(err))
		respondError(w, r, http.StatusInternalServerError, "internal error")
		return
	}

	brands := catalog.UniqueBrands(products, r.URL.Query().Get("all") != "false")
	respondJSON(w, r, http.StatusOK, func(e *jx.Encoder) {
		e.Arr(func(e *jx.Encoder) {
			for _, b := range brands {
				e.Str(b)
			}
		})
	})
}

func (h *Handler) createProduct(w http.ResponseWriter, r *http.Request) {
	var p catalog.Product
	if err := decodeProduct(r, &p); err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid product payload")
		return
	}

	if err := h.products.Create(r.Context(), &p); err != nil {
		zctx.From(r.Context()).Error("create product", zap.Error(err))
		respondError(w, r, http.StatusInternalServerError, "internal error")
		return
	}

	respondJSON(w, r, http.StatusCreated, func(e *jx.Encoder) {
		h.encodeProduct(e, p)
	})
}

func (h *Handler) updateProduct(w http.ResponseWriter, r *http.Request) {
	var p catalog.Product
	if err := decodeProduct(r, &p); err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid product payload")
		return
	}
	p.ID = r.PathValue("id")

	if err := h.products.Update(r.Context(), &p); err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			respondError(w, r, http.StatusNotFound, "product not found")
			return
		}
		zctx.From(r.Context()).Error("update product", zap.Error(err))
		respondError(w, r, http.StatusInternalServerError, "internal error")
		return
	}

	respondJSON(w, r, http.StatusOK, func(e *jx.Encoder) {
		h.encodeProduct(e, p)
	})
}

func (h *Handler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.products.Delete(r.Context(), r.PathValue("id")); err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			respondError(w, r, http.StatusNotFound, "product not found")
			return
		}
		zctx.From(r.Context()).Error("delete product", zap.Error(err))
		respondError(w, r, http.StatusInternalServerError, "internal error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// encodeProduct writes the product DTO, including the resolved display
// fields and the computed discount breakdown.
func (h *Handler) encodeProduct(e *jx.Encoder, p catalog.Product) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("id", func(e *jx.Encoder) { e.Str(p.ID) })
		e.Field("brand", func(e *jx.Encoder) { e.Str(p.Brand) })
		e.Field("model", func(e *jx.Encoder) { e.Str(p.Model) })
		e.Field("name", func(e *jx.Encoder) { e.Str(p.DisplayName()) })
		e.Field("category", func(e *jx.Encoder) { e.Str(p.Category) })
		e.Field("description", func(e *jx.Encoder) { e.Str(p.Description) })
		e.Field("type", func(e *jx.Encoder) { e.Str(p.Type) })
		e.Field("price", func(e *jx.Encoder) { e.Float64(p.Price.InexactFloat64()) })
		e.Field("discount", func(e *jx.Encoder) { e.Int(p.Discount) })
		e.Field("finalPrice", func(e *jx.Encoder) { e.Float64(pricing.FinalPrice(p).InexactFloat64()) })
		e.Field("savings", func(e *jx.Encoder) { e.Float64(pricing.Savings(p.Price, p.Discount).InexactFloat64()) })
		e.Field("priceFormatted", func(e *jx.Encoder) { e.Str(h.prices.Format(pricing.FinalPrice(p))) })
		e.Field("image", func(e *jx.Encoder) { e.Str(p.DisplayImage()) })
		e.Field("images", func(e *jx.Encoder) {
			e.Arr(func(e *jx.Encoder) {
				for _, img := range p.DisplayImages() {
					e.Str(img)
				}
			})
		})
		e.Field("sizes", func(e *jx.Encoder) {
			e.Arr(func(e *jx.Encoder) {
				for _, s := range p.Sizes {
					e.Str(s)
				}
			})
		})
		e.Field("isNew", func(e *jx.Encoder) { e.Bool(p.IsNew) })
		e.Field("isFeatured", func(e *jx.Encoder) { e.Bool(p.IsFeatured) })
		e.Field("inStock", func(e *jx.Encoder) { e.Bool(p.InStock) })
	})
}

// decodeProduct parses an admin product payload. Unknown fields are skipped,
// keeping the line-item schema narrow on the way in.
func decodeProduct(r *http.Request, p *catalog.Product) error {
	d := jx.Decode(r.Body, 4096)
	return d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "brand":
			p.Brand, err = d.Str()
		case "model":
			p.Model, err = d.Str()
		case "name":
			p.Name, err = d.Str()
		case "category":
			p.Category, err = d.Str()
		case "description":
			p.Description, err = d.Str()
		case "type":
			p.Type, err = d.Str()
		case "price":
			var f float64
			f, err = d.Float64()
			p.Price = decimal.NewFromFloat(f)
		case "discount":
			p.Discount, err = d.Int()
		case "image":
			p.Image, err = d.Str()
		case "images":
			err = d.Arr(func(d *jx.Decoder) error {
				s, err := d.Str()
				if err != nil {
					return err
				}
				p.Images = append(p.Images, s)
				return nil
			})
		case "sizes":
			err = d.Arr(func(d *jx.Decoder) error {
				s, err := d.Str()
				if err != nil {
					return err
				}
				p.Sizes = append(p.Sizes, s)
				return nil
			})
		case "isNew":
			p.IsNew, err = d.Bool()
		case "isFeatured":
			p.IsFeatured, err = d.Bool()
		case "inStock":
			p.InStock, err = d.Bool()
		default:
			err = d.Skip()
		}
		return err
	})
}

// parsePrice reads a decimal query parameter, treating absent or unparsable
// values as "no bound" with a warning.
func parsePrice(r *http.Request, name string) decimal.Decimal {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(raw)
	if err != nil || d.IsNegative() {
		zctx.From(r.Context()).Warn("invalid price bound",
			zap.String("param", name), zap.String("value", raw))
		return decimal.Zero
	}
	return d
}
