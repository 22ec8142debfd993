package integration_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/stripe-checkout-gateway/internal/repository"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

var keysToIgnore = map[string]struct{}{
	"timestamp": {},
	"requestId": {},
}

func prepareRequest(
	method, path string,
	body io.Reader,
	headers map[string]string,
	cookies []http.Cookie) (*http.Request, error) {

	req := httptest.NewRequest(method, path, body)

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	for _, c := range cookies {
		req.AddCookie(&c)
	}

	return req, nil
}

func compareResponse(t *testing.T, body io.Reader, expectedResponse string) {
	var actual map[string]any
	require.NoError(t, json.NewDecoder(body).Decode(&actual))

	var expected map[string]any
	require.NoError(t, json.Unmarshal([]byte(expectedResponse), &expected))

	// ignore indetermistic fields while comparing
	opts := cmpopts.IgnoreMapEntries(func(k string, _ any) bool {
		_, ok := keysToIgnore[k]
		return ok
	})

	if diff := cmp.Diff(expected, actual, opts); diff != "" {
		t.Errorf("response mismatch (-want +got):\n%s", diff)
	}
}

func executeSQLFile(t testing.TB, db *pgxpool.Pool, path string) {
	t.Helper()

	query, err := os.ReadFile(path)
	require.NoError(t, err)

	_, err = db.Exec(context.Background(), string(query))
	require.NoError(t, err)
}

// resetCheckoutState reloads the seeded catalogue and orders and removes all
// saved gateway options.
func resetCheckoutState(t testing.TB, app *TestApp) {
	executeSQLFile(t, app.DB, "testdata/checkout_down.sql")
	executeSQLFile(t, app.DB, "testdata/checkout_up.sql")

	require.NoError(t, app.RedisClient.FlushDB(context.Background()).Err())

	app.Provider.Reset()
}

func setOption(t testing.TB, app *TestApp, key, value string) {
	require.NoError(t, app.Settings.SetOption(context.Background(), key, value))
}

// newShopperSession stores a session holding a cart and returns its cookie.
func newShopperSession(t testing.TB, app *TestApp, cartID string) http.Cookie {
	t.Helper()

	ctx, err := app.SessionManager.Load(context.Background(), "")
	require.NoError(t, err)

	app.SessionManager.Put(ctx, "guest", true)

	token, _, err := app.SessionManager.Commit(ctx)
	require.NoError(t, err)

	err = app.RedisClient.Set(context.Background(), repository.CartSessionKey(token), cartID, 0).Err()
	require.NoError(t, err)

	err = app.RedisClient.Set(context.Background(), repository.CartKey(cartID), `{"items":[{"productId":1,"quantity":2}]}`, 0).Err()
	require.NoError(t, err)

	return http.Cookie{Name: app.SessionManager.Cookie.Name, Value: token}
}

func requireKeyMissing(t testing.TB, client *redis.Client, key string) {
	t.Helper()

	n, err := client.Exists(context.Background(), key).Result()
	require.NoError(t, err)
	require.Zero(t, n, "key %s should have been deleted", key)
}

func productStock(t testing.TB, db *pgxpool.Pool, productID int) int {
	t.Helper()

	var stock int
	err := db.QueryRow(context.Background(), "SELECT stock FROM products WHERE id = $1", productID).Scan(&stock)
	require.NoError(t, err)

	return stock
}

func stockReduced(t testing.TB, db *pgxpool.Pool, orderID int) bool {
	t.Helper()

	var reduced bool
	err := db.QueryRow(context.Background(), "SELECT stock_reduced FROM orders WHERE id = $1", orderID).Scan(&reduced)
	require.NoError(t, err)

	return reduced
}
