package quotes

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/shopspring/decimal"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// Gateway looks prices up from an internal market-data service that speaks
// OAuth2 client credentials. Token acquisition and refresh is handled by the
// oauth2 token source behind the HTTP client.
type Gateway struct {
	base string
	cli  *http.Client
}

func NewGateway() *Gateway {
	cc := &clientcredentials.Config{
		TokenURL:     os.Getenv("MARKET_DATA_TOKEN_URL"),
		ClientID:     os.Getenv("MARKET_DATA_CLIENT_ID"),
		ClientSecret: os.Getenv("MARKET_DATA_CLIENT_SECRET"),
		AuthStyle:    oauth2.AuthStyleInHeader,
	}

	ctx := context.Background()
	if ignoreSSL := os.Getenv("IGNORE_SSL_CERTS"); strings.ToLower(ignoreSSL) == "true" {
		log.Warn("SSL certificate verification disabled for market data gateway")
		insecure := &http.Client{Transport: &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		}}
		ctx = context.WithValue(ctx, oauth2.HTTPClient, insecure)
	}

	cli := cc.Client(ctx)
	cli.Timeout = 8 * time.Second

	return &Gateway{
		base: strings.TrimRight(os.Getenv("MARKET_DATA_URL"), "/"),
		cli:  cli,
	}
}

func (g *Gateway) Lookup(symbol string) (*Quote, error) {
	symbol = Normalize(symbol)
	if symbol == "" {
		return nil, ErrUnknownSymbol
	}

	resp, err := g.cli.Get(g.base + "/quotes/" + url.PathEscape(symbol))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrUnknownSymbol
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("market data gateway: HTTP %d", resp.StatusCode)
	}

	var body struct {
		Name  string          `json:"name"`
		Price decimal.Decimal `json:"price"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, err
	}
	if body.Price.LessThanOrEqual(decimal.Zero) {
		return nil, ErrUnknownSymbol
	}

	name := body.Name
	if name == "" {
		name = symbol
	}
	return &Quote{Symbol: symbol, Name: name, Price: body.Price}, nil
}
