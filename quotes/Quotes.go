package quotes

import (
	"context"
	"errors"
	"os"
	"strings"
	"time"

	finnhub "github.com/Finnhub-Stock-API/finnhub-go/v2"
	"github.com/shopspring/decimal"
)

var ErrUnknownSymbol = errors.New("unknown symbol")

type Quote struct {
	Symbol string
	Name   string
	Price  decimal.Decimal
}

// Lookuper resolves a ticker to its current name and price. Implementations
// return ErrUnknownSymbol for tickers the upstream does not recognize.
type Lookuper interface {
	Lookup(symbol string) (*Quote, error)
}

// FromEnv picks the provider configured by QUOTE_PROVIDER. The default is
// Finnhub; "gateway" selects the internal market-data gateway.
func FromEnv() Lookuper {
	if os.Getenv("QUOTE_PROVIDER") == "gateway" {
		return NewGateway()
	}
	return NewFinnhub(os.Getenv("FINNHUB_API_KEY"))
}

type Finnhub struct {
	api *finnhub.DefaultApiService
}

func NewFinnhub(apiKey string) *Finnhub {
	cfg := finnhub.NewConfiguration()
	cfg.AddDefaultHeader("X-Finnhub-Token", apiKey)
	return &Finnhub{api: finnhub.NewAPIClient(cfg).DefaultApi}
}

func (f *Finnhub) Lookup(symbol string) (*Quote, error) {
	symbol = Normalize(symbol)
	if symbol == "" {
		return nil, ErrUnknownSymbol
	}

	ctx, cancel := context.WithTimeout(context.Background(), 8*time.Second)
	defer cancel()

	res, _, err := f.api.Quote(ctx).Symbol(symbol).Execute()
	if err != nil {
		return nil, err
	}

	price := decimal.NewFromFloat32(res.GetC())
	// Finnhub reports an all-zero quote for tickers it does not know.
	if price.IsZero() {
		return nil, ErrUnknownSymbol
	}

	name := symbol
	profile, _, err := f.api.CompanyProfile2(ctx).Symbol(symbol).Execute()
	if err == nil && profile.GetName() != "" {
		name = profile.GetName()
	}

	return &Quote{Symbol: symbol, Name: name, Price: price}, nil
}

// Normalize uppercases and trims a user-supplied ticker.
func Normalize(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}
