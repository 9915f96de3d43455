// Package quote looks up live prices from a JSON web API.
package quote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/folio"
	"github.com/shopspring/decimal"
)

// SymbolPlaceholder is replaced by the symbol in HTTP.URL.
const SymbolPlaceholder = "{symbol}"

// HTTP is a folio.PriceProvider reading the price of a symbol from a JSON
// document at URL, where the price is found at the JSONPath Path.
type HTTP struct {
	Client *http.Client // http.DefaultClient if nil
	URL    string
	Path   string
}

// New returns a provider using the default client.
func New(urlTemplate, path string) *HTTP {
	return &HTTP{URL: urlTemplate, Path: path}
}

var _ folio.PriceProvider = (*HTTP)(nil)

// CurrentPrice implements folio.PriceProvider. Prices that are not positive
// numbers are errors.
func (h *HTTP) CurrentPrice(ctx context.Context, symbol folio.Symbol) (decimal.Decimal, error) {
	addr := strings.ReplaceAll(h.URL, SymbolPlaceholder, url.QueryEscape(string(symbol)))

	var jobj any
	if err := h.jwget(ctx, addr, &jobj); err != nil {
		return decimal.Zero, fmt.Errorf("error retrieving %q: %w", symbol, err)
	}
	jval, err := jsonpath.Get(h.Path, jobj)
	if err != nil {
		return decimal.Zero, fmt.Errorf("error parsing %q: %q %w", symbol, h.Path, err)
	}
	// jsonpath returns a list for filters and slices, keep the first answer.
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}

	price, err := toDecimal(jval)
	if err != nil {
		return decimal.Zero, fmt.Errorf("cannot read price of %q at %q: %w", symbol, h.Path, err)
	}
	if !price.IsPositive() {
		return decimal.Zero, fmt.Errorf("no price for %q: got %s", symbol, price)
	}
	return price, nil
}

// toDecimal reads a JSON number, or a string holding one as some APIs do.
func toDecimal(jval any) (decimal.Decimal, error) {
	switch v := jval.(type) {
	case json.Number:
		return decimal.NewFromString(v.String())
	case float64:
		return decimal.NewFromFloat(v), nil
	case string:
		v = strings.ReplaceAll(v, ",", ".")
		v = strings.ReplaceAll(v, " ", "")
		return decimal.NewFromString(v)
	default:
		return decimal.Zero, fmt.Errorf("neither a number nor a string: %v", jval)
	}
}

// jwget performs an HTTP GET request and unmarshals the JSON response into
// data. Numbers are kept as json.Number.
func (h *HTTP) jwget(ctx context.Context, addr string, data any) error {
	client := h.Client
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return err
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("cannot http GET %v%v: %v", resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, resp.Body); err != nil {
		return err
	}
	dec := json.NewDecoder(&buf)
	dec.UseNumber()
	return dec.Decode(data)
}
