package controllers

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stocksim.com/db"
	"stocksim.com/types"
)

func tradeTestApp(userID uint, lookup *stubQuotes) *fiber.App {
	tc := NewTradeController(lookup)

	app := fiber.New()
	app.Get("/buy", stubAuth(userID), tc.BuyPage)
	app.Post("/buy", stubAuth(userID), tc.Buy)
	app.Get("/sell", stubAuth(userID), tc.SellPage)
	app.Post("/sell", stubAuth(userID), tc.Sell)
	app.Post("/dirsell", stubAuth(userID), tc.DirSell)
	app.Post("/confsell", stubAuth(userID), tc.ConfSell)
	return app
}

func TestBuyEndpoint(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "10000.00")
	app := tradeTestApp(user.ID, &stubQuotes{prices: map[string]string{"AAPL": "150.00"}})

	resp, err := app.Test(formRequest(http.MethodPost, "/buy",
		url.Values{"symbol": {"aapl"}, "shares": {"2"}}))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))
	assert.Equal(t, "Bought!", noticeCookie(resp))

	var count int64
	db.DB.Model(&types.Transaction{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestBuyEndpointRejections(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "100.00")
	app := tradeTestApp(user.ID, &stubQuotes{prices: map[string]string{"AAPL": "150.00"}})

	cases := []struct {
		name    string
		form    url.Values
		wantErr string
	}{
		{"missing symbol", url.Values{"shares": {"1"}}, "missing symbol"},
		{"missing shares", url.Values{"symbol": {"AAPL"}}, "missing shares"},
		{"invalid shares", url.Values{"symbol": {"AAPL"}, "shares": {"1.5"}}, "invalid share amount"},
		{"unknown symbol", url.Values{"symbol": {"ZZZZ"}, "shares": {"1"}}, "invalid symbol"},
		{"insufficient fund", url.Values{"symbol": {"AAPL"}, "shares": {"1"}}, "insufficient fund"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, err := app.Test(formRequest(http.MethodPost, "/buy", tc.form))
			require.NoError(t, err)
			assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
			body := decodeResponse(t, resp)
			assert.False(t, body.Success)
			assert.Equal(t, tc.wantErr, body.Error)
		})
	}

	var count int64
	db.DB.Model(&types.Transaction{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestSellEndpoint(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "10000.00")
	app := tradeTestApp(user.ID, &stubQuotes{prices: map[string]string{"AAPL": "150.00"}})

	resp, err := app.Test(formRequest(http.MethodPost, "/buy",
		url.Values{"symbol": {"AAPL"}, "shares": {"5"}}))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusSeeOther, resp.StatusCode)

	resp, err = app.Test(formRequest(http.MethodPost, "/sell",
		url.Values{"symbol": {"AAPL"}, "share_qty": {"2"}}))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "Sold!", noticeCookie(resp))

	resp, err = app.Test(formRequest(http.MethodPost, "/sell",
		url.Values{"symbol": {"AAPL"}, "share_qty": {"9"}}))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "insufficient stock", decodeResponse(t, resp).Error)
}

func TestBuyAndSellPages(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "10000.00")
	app := tradeTestApp(user.ID, &stubQuotes{prices: map[string]string{"AAPL": "150.00"}})

	resp, err := app.Test(formRequest(http.MethodPost, "/buy",
		url.Values{"symbol": {"AAPL"}, "shares": {"3"}}))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusSeeOther, resp.StatusCode)

	req := formRequest(http.MethodGet, "/buy", nil)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := decodeResponse(t, resp)
	assert.Equal(t, "$9,550.00", body.Data.(map[string]interface{})["balance"])

	resp, err = app.Test(formRequest(http.MethodGet, "/sell", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	holdings := decodeResponse(t, resp).Data.([]interface{})
	require.Len(t, holdings, 1)
	assert.Equal(t, "AAPL", holdings[0].(map[string]interface{})["symbol"])
}

func TestDirSellStagesPosition(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "10000.00")
	app := tradeTestApp(user.ID, &stubQuotes{prices: map[string]string{"AAPL": "150.00", "MSFT": "300.00"}})

	resp, err := app.Test(formRequest(http.MethodPost, "/buy",
		url.Values{"symbol": {"AAPL"}, "shares": {"4"}}))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusSeeOther, resp.StatusCode)

	resp, err = app.Test(formRequest(http.MethodPost, "/dirsell",
		url.Values{"symbol": {"AAPL"}}))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	preview := decodeResponse(t, resp).Data.(map[string]interface{})
	assert.Equal(t, "AAPL", preview["symbol"])
	assert.Equal(t, float64(4), preview["quantity"])
	assert.Equal(t, "$150.00", preview["price"])

	// Quoted but never traded.
	resp, err = app.Test(formRequest(http.MethodPost, "/dirsell",
		url.Values{"symbol": {"MSFT"}}))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "Server Error", decodeResponse(t, resp).Error)
}

func TestConfSellCommitsAndCancels(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "10000.00")
	app := tradeTestApp(user.ID, &stubQuotes{prices: map[string]string{"AAPL": "150.00"}})

	resp, err := app.Test(formRequest(http.MethodPost, "/buy",
		url.Values{"symbol": {"AAPL"}, "shares": {"4"}}))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusSeeOther, resp.StatusCode)

	// Cancel is a plain redirect with no ledger row.
	resp, err = app.Test(formRequest(http.MethodPost, "/confsell",
		url.Values{"symbol": {"cancel"}}))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Empty(t, noticeCookie(resp))

	var count int64
	db.DB.Model(&types.Transaction{}).Count(&count)
	assert.Equal(t, int64(1), count)

	resp, err = app.Test(formRequest(http.MethodPost, "/confsell",
		url.Values{"symbol": {"AAPL"}}))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "Sold!", noticeCookie(resp))

	db.DB.Model(&types.Transaction{}).Count(&count)
	assert.Equal(t, int64(2), count)
}
