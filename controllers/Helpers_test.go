package controllers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"stocksim.com/db"
	"stocksim.com/quotes"
	"stocksim.com/types"
)

func setupTestDB(t *testing.T) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared",
		strings.ReplaceAll(t.Name(), "/", "_"))
	testDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := testDB.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, testDB.AutoMigrate(&types.User{}, &types.Transaction{}))
	db.DB = testDB
}

func createTestUser(t *testing.T, cash string) *types.User {
	c, err := decimal.NewFromString(cash)
	require.NoError(t, err)
	user := &types.User{
		Username:     "alice",
		PasswordHash: "irrelevant",
		Cash:         c,
		StartingCash: c,
	}
	require.NoError(t, db.DB.Create(user).Error)
	return user
}

type stubQuotes struct {
	prices map[string]string
	err    error
}

func (s *stubQuotes) Lookup(symbol string) (*quotes.Quote, error) {
	if s.err != nil {
		return nil, s.err
	}
	p, ok := s.prices[quotes.Normalize(symbol)]
	if !ok {
		return nil, quotes.ErrUnknownSymbol
	}
	price, _ := decimal.NewFromString(p)
	return &quotes.Quote{Symbol: quotes.Normalize(symbol), Name: "Test Corp", Price: price}, nil
}

// stubAuth stands in for the session middleware, planting the user id the way
// the JWT success handler does.
func stubAuth(userID uint) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("user_id", float64(userID))
		return c.Next()
	}
}

func formRequest(method, target string, form url.Values) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func decodeResponse(t *testing.T, resp *http.Response) types.Response {
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out types.Response
	require.NoError(t, json.Unmarshal(body, &out))
	return out
}

func noticeCookie(resp *http.Response) string {
	for _, c := range resp.Cookies() {
		if c.Name == "notice" {
			return c.Value
		}
	}
	return ""
}
