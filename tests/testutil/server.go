package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"github.com/light-bringer/procat-admin/internal/app/product/domain"
	"github.com/light-bringer/procat-admin/internal/models/m_product"
)

// RecordedRequest is what ProductServer saw for one call.
type RecordedRequest struct {
	Method        string
	Path          string
	Authorization string
	RequestID     string
}

// ProductServer serves the REST product API backed by a FakeGateway.
type ProductServer struct {
	*httptest.Server
	Gateway *FakeGateway
	Token   string

	mu       sync.Mutex
	requests []RecordedRequest
}

// SetupProductServer starts a REST fake and returns it with a cleanup function.
// When token is non-empty, requests without "Bearer <token>" get 401.
func SetupProductServer(t *testing.T, token string, seed ...domain.Product) (*ProductServer, func()) {
	t.Helper()

	ps := &ProductServer{
		Gateway: NewFakeGateway(seed...),
		Token:   token,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /products", ps.list)
	mux.HandleFunc("POST /products", ps.create)
	mux.HandleFunc("PUT /products/{id}", ps.update)
	mux.HandleFunc("DELETE /products/{id}", ps.delete)
	mux.HandleFunc("GET /categories", ps.categories)

	ps.Server = httptest.NewServer(ps.authorize(mux))

	return ps, ps.Server.Close
}

// Requests returns every request received so far.
func (ps *ProductServer) Requests() []RecordedRequest {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	return append([]RecordedRequest(nil), ps.requests...)
}

func (ps *ProductServer) authorize(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ps.mu.Lock()
		ps.requests = append(ps.requests, RecordedRequest{
			Method:        r.Method,
			Path:          r.URL.Path,
			Authorization: r.Header.Get("Authorization"),
			RequestID:     r.Header.Get("X-Request-ID"),
		})
		ps.mu.Unlock()

		if ps.Token != "" && r.Header.Get("Authorization") != "Bearer "+ps.Token {
			writeError(w, r, http.StatusUnauthorized, "Unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (ps *ProductServer) list(w http.ResponseWriter, r *http.Request) {
	products, err := ps.Gateway.List(r.Context())
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, "An unexpected error occurred")
		return
	}

	out := make([]*m_product.Data, 0, len(products))
	for _, p := range products {
		out = append(out, m_product.FromDomain(p))
	}
	writeJSON(w, http.StatusOK, out)
}

func (ps *ProductServer) create(w http.ResponseWriter, r *http.Request) {
	var body m_product.PayloadData
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, r, http.StatusBadRequest, "Malformed JSON request")
		return
	}

	p, err := ps.Gateway.Create(r.Context(), body.ToPayload())
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, "An unexpected error occurred")
		return
	}
	writeJSON(w, http.StatusCreated, m_product.FromDomain(p))
}

func (ps *ProductServer) update(w http.ResponseWriter, r *http.Request) {
	id, ok := ps.productID(w, r)
	if !ok {
		return
	}

	var body m_product.PayloadData
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, r, http.StatusBadRequest, "Malformed JSON request")
		return
	}

	p, err := ps.Gateway.Update(r.Context(), id, body.ToPayload())
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, "An unexpected error occurred")
		return
	}
	writeJSON(w, http.StatusOK, m_product.FromDomain(p))
}

func (ps *ProductServer) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := ps.productID(w, r)
	if !ok {
		return
	}

	if err := ps.Gateway.Delete(r.Context(), id); err != nil {
		writeError(w, r, http.StatusInternalServerError, "An unexpected error occurred")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (ps *ProductServer) categories(w http.ResponseWriter, r *http.Request) {
	categories, err := ps.Gateway.Categories(r.Context())
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, "An unexpected error occurred")
		return
	}

	names := make([]string, 0, len(categories))
	for _, c := range categories {
		names = append(names, string(c))
	}
	writeJSON(w, http.StatusOK, names)
}

func (ps *ProductServer) productID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid product id")
		return 0, false
	}
	for _, p := range ps.Gateway.Products() {
		if p.ID == id {
			return id, true
		}
	}
	writeError(w, r, http.StatusNotFound, "product not found")
	return 0, false
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, r *http.Request, status int, message string) {
	writeJSON(w, status, m_product.ErrorData{
		Status:  status,
		Error:   http.StatusText(status),
		Message: message,
		Path:    r.URL.Path,
	})
}
