package repo

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/light-bringer/procat-admin/internal/app/product/domain"
	"github.com/light-bringer/procat-admin/internal/models/m_product"
)

// DefaultTimeout bounds every remote call when no client is supplied.
const DefaultTimeout = 10 * time.Second

// RequestIDHeader carries a per-call correlation ID.
const RequestIDHeader = "X-Request-ID"

// TokenSource supplies the bearer token attached to each call.
type TokenSource interface {
	Token() string
}

// RemoteError describes a failed call. It matches domain.ErrRemoteFailure.
type RemoteError struct {
	Op         string
	StatusCode int // 0 when no response arrived
	Message    string
	Err        error
}

func (e *RemoteError) Error() string {
	var b strings.Builder
	b.WriteString(e.Op)
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, ": status %d", e.StatusCode)
	}
	if e.Message != "" {
		fmt.Fprintf(&b, ": %s", e.Message)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *RemoteError) Unwrap() []error {
	if e.Err != nil {
		return []error{domain.ErrRemoteFailure, e.Err}
	}
	return []error{domain.ErrRemoteFailure}
}

// Options configures an HTTPGateway.
type Options struct {
	BaseURL string
	Client  *http.Client
	Tokens  TokenSource
	Limiter *rate.Limiter // nil disables client-side throttling
	Logger  *slog.Logger
}

// HTTPGateway implements contracts.ProductGateway against the REST API.
type HTTPGateway struct {
	baseURL string
	client  *http.Client
	tokens  TokenSource
	limiter *rate.Limiter
	log     *slog.Logger
}

// NewHTTPGateway creates a new REST gateway.
func NewHTTPGateway(opts Options) *HTTPGateway {
	client := opts.Client
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &HTTPGateway{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		client:  client,
		tokens:  opts.Tokens,
		limiter: opts.Limiter,
		log:     logger.With("component", "product_gateway"),
	}
}

// List retrieves every product.
func (g *HTTPGateway) List(ctx context.Context) ([]domain.Product, error) {
	var data []m_product.Data
	if err := g.doRequest(ctx, "list products", http.MethodGet, m_product.ResourceProducts, nil, &data, http.StatusOK); err != nil {
		return nil, err
	}

	products := make([]domain.Product, 0, len(data))
	for i := range data {
		p, err := data[i].ToDomain()
		if err != nil {
			return nil, &RemoteError{Op: "list products", Message: "malformed product", Err: err}
		}
		products = append(products, p)
	}
	return products, nil
}

// Create posts a new product and returns the server's copy.
func (g *HTTPGateway) Create(ctx context.Context, payload domain.ProductPayload) (domain.Product, error) {
	var data m_product.Data
	if err := g.doRequest(ctx, "create product", http.MethodPost, m_product.ResourceProducts,
		m_product.FromPayload(payload), &data, http.StatusCreated, http.StatusOK); err != nil {
		return domain.Product{}, err
	}
	return g.decodeOne("create product", &data)
}

// Update replaces a product's fields.
func (g *HTTPGateway) Update(ctx context.Context, id int64, payload domain.ProductPayload) (domain.Product, error) {
	var data m_product.Data
	if err := g.doRequest(ctx, "update product", http.MethodPut, productPath(id),
		m_product.FromPayload(payload), &data, http.StatusOK); err != nil {
		return domain.Product{}, err
	}
	return g.decodeOne("update product", &data)
}

// Delete removes a product.
func (g *HTTPGateway) Delete(ctx context.Context, id int64) error {
	return g.doRequest(ctx, "delete product", http.MethodDelete, productPath(id), nil, nil,
		http.StatusNoContent, http.StatusOK)
}

// Categories lists the category names accepted by the server.
func (g *HTTPGateway) Categories(ctx context.Context) ([]domain.Category, error) {
	var names []string
	if err := g.doRequest(ctx, "list categories", http.MethodGet, m_product.ResourceCategories, nil, &names, http.StatusOK); err != nil {
		return nil, err
	}

	categories := make([]domain.Category, 0, len(names))
	for _, name := range names {
		c, err := domain.ParseCategory(name)
		if err != nil {
			g.log.Warn("skipping unknown category", "category", name)
			continue
		}
		categories = append(categories, c)
	}
	return categories, nil
}

func (g *HTTPGateway) decodeOne(op string, data *m_product.Data) (domain.Product, error) {
	p, err := data.ToDomain()
	if err != nil {
		return domain.Product{}, &RemoteError{Op: op, Message: "malformed product", Err: err}
	}
	return p, nil
}

func productPath(id int64) string {
	return m_product.ResourceProducts + "/" + strconv.FormatInt(id, 10)
}

// doRequest sends one JSON request and decodes the response into out
// when out is non-nil. Any status outside okStatuses is a RemoteError.
func (g *HTTPGateway) doRequest(ctx context.Context, op, method, endpoint string, body, out any, okStatuses ...int) error {
	if g.limiter != nil {
		if err := g.limiter.Wait(ctx); err != nil {
			return &RemoteError{Op: op, Err: err}
		}
	}

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return &RemoteError{Op: op, Message: "failed to marshal request body", Err: err}
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+endpoint, reader)
	if err != nil {
		return &RemoteError{Op: op, Message: "failed to create request", Err: err}
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if g.tokens != nil {
		if token := g.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	start := time.Now()
	resp, err := g.client.Do(req)
	if err != nil {
		g.log.Error("request failed", "op", op, "request_id", requestID, "error", err)
		if ctx.Err() != nil {
			return &RemoteError{Op: op, Message: "request was cancelled", Err: ctx.Err()}
		}
		return &RemoteError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	g.log.Debug("request completed",
		"op", op,
		"method", method,
		"endpoint", endpoint,
		"status", resp.StatusCode,
		"request_id", requestID,
		"duration", time.Since(start),
	)

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &RemoteError{Op: op, StatusCode: resp.StatusCode, Message: "failed to read response body", Err: err}
	}

	if !statusIn(resp.StatusCode, okStatuses) {
		remoteErr := &RemoteError{Op: op, StatusCode: resp.StatusCode, Message: errorMessage(respBody)}
		g.log.Warn("unexpected status", "op", op, "request_id", requestID, "error", remoteErr)
		return remoteErr
	}

	if out == nil || len(bytes.TrimSpace(respBody)) == 0 {
		if out != nil {
			return &RemoteError{Op: op, StatusCode: resp.StatusCode, Message: "empty response body"}
		}
		return nil
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return &RemoteError{Op: op, StatusCode: resp.StatusCode, Message: "failed to unmarshal response", Err: err}
	}
	return nil
}

func statusIn(code int, allowed []int) bool {
	for _, s := range allowed {
		if code == s {
			return true
		}
	}
	return false
}

// errorMessage extracts the server's message from an error body, if any.
func errorMessage(body []byte) string {
	var apiErr m_product.ErrorData
	if err := json.Unmarshal(body, &apiErr); err != nil {
		return ""
	}
	if len(apiErr.Errors) > 0 {
		return apiErr.Message + " (" + strings.Join(apiErr.Errors, "; ") + ")"
	}
	return apiErr.Message
}

// IsStatus reports whether err is a RemoteError with the given HTTP status.
func IsStatus(err error, code int) bool {
	var remoteErr *RemoteError
	return errors.As(err, &remoteErr) && remoteErr.StatusCode == code
}
