package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"indusrobotix/storefront/internal/controller"
	"indusrobotix/storefront/internal/domain"
)

// Handlers maps the UI event surface onto session operations. Each endpoint
// corresponds to exactly one browse, cart or preference action and returns
// the resulting view model.
type Handlers struct {
	session *controller.Session
}

func NewHandlers(session *controller.Session) *Handlers {
	return &Handlers{session: session}
}

// listProducts applies the browse parameters from the query string and
// returns the current page view. Queries arrive pre-debounced over HTTP, so
// this path applies the search immediately.
func (h *Handlers) listProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	if category := q.Get("category"); category != "" {
		h.session.SelectCategory(category)
	}
	if sortKey := q.Get("sort"); sortKey != "" {
		h.session.SetSort(domain.SortKey(sortKey))
	}
	h.session.SearchNow(q.Get("q"))

	if minStr, maxStr := q.Get("min_price"), q.Get("max_price"); minStr != "" || maxStr != "" {
		min, _ := strconv.ParseInt(minStr, 10, 64)
		max, err := strconv.ParseInt(maxStr, 10, 64)
		if maxStr == "" || err != nil {
			max = int64(1) << 62
		}
		h.session.SetPriceRange(&domain.PriceRange{Min: min, Max: max})
	} else {
		h.session.SetPriceRange(nil)
	}

	if pageStr := q.Get("page"); pageStr != "" {
		if page, err := strconv.Atoi(pageStr); err == nil {
			h.session.GoToPage(page)
		}
	}

	writeJSON(w, http.StatusOK, h.session.ProductList())
}

func (h *Handlers) getProduct(w http.ResponseWriter, r *http.Request) {
	card, err := h.session.Product(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, card)
}

func (h *Handlers) listCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.session.Categories())
}

func (h *Handlers) listRecent(w http.ResponseWriter, r *http.Request) {
	if format := r.URL.Query().Get("export"); format != "" {
		data, err := h.session.ExportRecent(format)
		if err != nil {
			writeError(w, err)
			return
		}
		if format == "csv" {
			w.Header().Set("Content-Type", "text/csv")
		} else {
			w.Header().Set("Content-Type", "application/json")
		}
		w.WriteHeader(http.StatusOK)
		w.Write(data)
		return
	}

	if daysStr := r.URL.Query().Get("days"); daysStr != "" {
		if days, err := strconv.Atoi(daysStr); err == nil && days > 0 {
			writeJSON(w, http.StatusOK, h.session.RecentWithin(days))
			return
		}
	}
	writeJSON(w, http.StatusOK, h.session.Recent())
}

func (h *Handlers) listAnnouncements(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.session.Announcements())
}

func (h *Handlers) getStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.session.Stats())
}

type cartItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

func (h *Handlers) addCartItem(w http.ResponseWriter, r *http.Request) {
	var req cartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ProductID == "" {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Code: http.StatusBadRequest, Message: "invalid cart item payload"})
		return
	}

	if err := h.session.AddToCart(req.ProductID, req.Quantity); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, h.session.Cart())
}

func (h *Handlers) updateCartItem(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Quantity *int `json:"quantity"`
		Delta    *int `json:"delta"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || (req.Quantity == nil && req.Delta == nil) {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Code: http.StatusBadRequest, Message: "expected quantity or delta"})
		return
	}

	id := chi.URLParam(r, "id")
	if req.Quantity != nil {
		h.session.SetQuantity(id, *req.Quantity)
	} else {
		h.session.ChangeQuantity(id, *req.Delta)
	}
	writeJSON(w, http.StatusOK, h.session.Cart())
}

func (h *Handlers) removeCartItem(w http.ResponseWriter, r *http.Request) {
	h.session.RemoveFromCart(chi.URLParam(r, "id"))
	writeJSON(w, http.StatusOK, h.session.Cart())
}

func (h *Handlers) getCart(w http.ResponseWriter, r *http.Request) {
	if code := r.URL.Query().Get("discount"); code != "" {
		if err := h.session.SetDiscountCode(code); err != nil {
			writeError(w, err)
			return
		}
	}
	if shipping := r.URL.Query().Get("shipping"); shipping != "" {
		h.session.SelectShipping(shipping)
	}
	writeJSON(w, http.StatusOK, h.session.Cart())
}

func (h *Handlers) toggleCompare(w http.ResponseWriter, r *http.Request) {
	if err := h.session.ToggleCompare(chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.session.Compare())
}

func (h *Handlers) getCompare(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.session.Compare())
}

func (h *Handlers) refresh(w http.ResponseWriter, r *http.Request) {
	h.session.Refresh(r.Context())
	writeJSON(w, http.StatusOK, h.session.ProductList())
}

func (h *Handlers) getPreferences(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.session.Preferences())
}

func (h *Handlers) putPreferences(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Theme        string `json:"theme"`
		ItemsPerPage int    `json:"items_per_page"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Code: http.StatusBadRequest, Message: "invalid preferences payload"})
		return
	}

	if req.Theme != "" {
		h.session.SetTheme(r.Context(), req.Theme)
	}
	if req.ItemsPerPage > 0 {
		h.session.SetItemsPerPage(r.Context(), req.ItemsPerPage)
	}
	writeJSON(w, http.StatusOK, h.session.Preferences())
}
