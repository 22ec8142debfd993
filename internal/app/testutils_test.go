package app

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/metinatakli/stripe-checkout-gateway/api"
	"github.com/metinatakli/stripe-checkout-gateway/internal/checkout"
	"github.com/metinatakli/stripe-checkout-gateway/internal/validator"
)

const testAPIKey = "sk_test_51Hx9ExampleSecretKey0000"

func testConfig() Config {
	return Config{
		Port: 3000,
		Env:  "test",
		Stripe: StripeConfig{
			Timeout: 5 * time.Second,
		},
		Checkout: CheckoutConfig{
			GatewayID:          "stripe",
			ShopURL:            "https://shop.example.com",
			SiteName:           "Acme",
			StockPolicy:        string(checkout.StockBeforeSession),
			IdempotentSessions: true,
		},
	}
}

func newTestApplication(opts ...func(*Application)) *Application {
	app := &Application{
		config:         testConfig(),
		validator:      validator.NewValidator(),
		logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
		sessionManager: scs.New(),
		registry:       checkout.NewRegistry(),
	}

	for _, opt := range opts {
		opt(app)
	}

	return app
}

func executeRequest(t *testing.T, method, url string, body any) (*httptest.ResponseRecorder, *http.Request) {
	var reader io.Reader

	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		jsonData, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		reader = bytes.NewReader(jsonData)
	}

	r := httptest.NewRequest(method, url, reader)
	if reader != nil {
		r.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()

	return w, r
}

func checkErrorResponse(t *testing.T, w *httptest.ResponseRecorder, tt struct {
	wantStatus     int
	wantErrMessage string
}) {
	if tt.wantStatus >= 200 && tt.wantStatus < 300 {
		return
	}

	var errorResp api.ErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&errorResp); err != nil {
		t.Fatalf("Failed to decode error response: %v", err)
	}

	if tt.wantErrMessage != "" && errorResp.Message != tt.wantErrMessage {
		t.Errorf("Error message = %v, want %v", errorResp.Message, tt.wantErrMessage)
	}
}
