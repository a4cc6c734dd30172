package checkout

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/wovenlabs/store-api/models"
)

type mockCheckoutService struct {
	url string
	err error

	lastStoreID    string
	lastVariantIDs []string
}

func (m *mockCheckoutService) Checkout(ctx context.Context, storeID string, variantIDs []string) (string, error) {
	m.lastStoreID = storeID
	m.lastVariantIDs = variantIDs
	return m.url, m.err
}

func newCheckoutRouter(service CheckoutService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	r.POST("/api/:storeId/checkout", NewHandler(service, logger).HandleCheckout)
	return r
}

func TestHandleCheckout(t *testing.T) {
	testCases := []struct {
		name               string
		body               string
		service            *mockCheckoutService
		expectedStatusCode int
		checkResponse      func(t *testing.T, rec *httptest.ResponseRecorder)
	}{
		{
			name:               "success returns session url",
			body:               `{"productId":["v1","v2"]}`,
			service:            &mockCheckoutService{url: "https://pay.example/s/1"},
			expectedStatusCode: http.StatusOK,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var resp map[string]string
				assert.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
				assert.Equal(t, "https://pay.example/s/1", resp["url"])
			},
		},
		{
			name:               "empty cart rejected",
			body:               `{"productId":[]}`,
			service:            &mockCheckoutService{},
			expectedStatusCode: http.StatusBadRequest,
		},
		{
			name:               "invalid body rejected",
			body:               `{"productId":`,
			service:            &mockCheckoutService{},
			expectedStatusCode: http.StatusBadRequest,
		},
		{
			name:               "out of stock reports offending ids",
			body:               `{"productId":["v1","v2"]}`,
			service:            &mockCheckoutService{err: &OutOfStockError{VariantIDs: []string{"v1"}}},
			expectedStatusCode: http.StatusBadRequest,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var resp struct {
					Error                string   `json:"error"`
					OutOfStockProductIDs []string `json:"outOfStockProductIds"`
				}
				assert.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
				assert.Equal(t, "Out of stock", resp.Error)
				assert.Equal(t, []string{"v1"}, resp.OutOfStockProductIDs)
			},
		},
		{
			name:               "no matching products",
			body:               `{"productId":["missing"]}`,
			service:            &mockCheckoutService{err: ErrEmptyCart},
			expectedStatusCode: http.StatusBadRequest,
		},
		{
			name:               "unknown store",
			body:               `{"productId":["v1"]}`,
			service:            &mockCheckoutService{err: models.ErrStoreNotFound},
			expectedStatusCode: http.StatusNotFound,
		},
		{
			name:               "provider failure surfaces generically",
			body:               `{"productId":["v1"]}`,
			service:            &mockCheckoutService{err: fmt.Errorf("stripe: connection reset")},
			expectedStatusCode: http.StatusInternalServerError,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.NotContains(t, rec.Body.String(), "stripe")
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			router := newCheckoutRouter(tc.service)

			req := httptest.NewRequest(http.MethodPost, "/api/store-1/checkout", strings.NewReader(tc.body))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tc.expectedStatusCode, rec.Code)
			if tc.checkResponse != nil {
				tc.checkResponse(t, rec)
			}
		})
	}
}

func TestHandleCheckoutPassesStoreAndCart(t *testing.T) {
	service := &mockCheckoutService{url: "https://pay.example/s/1"}
	router := newCheckoutRouter(service)

	req := httptest.NewRequest(http.MethodPost, "/api/store-42/checkout",
		strings.NewReader(`{"productId":["v1","v1","v2"]}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "store-42", service.lastStoreID)
	// Duplicates pass through untouched; de-duplication is the assembler's job.
	assert.Equal(t, []string{"v1", "v1", "v2"}, service.lastVariantIDs)
}
