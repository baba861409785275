package models

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// CartItemInput is one untrusted cart entry. Clients disagree on field names
// and types, so everything is decoded loosely and coerced afterwards.
type CartItemInput struct {
	ProductID any `json:"productId"`
	ID        any `json:"id"`
	Name      any `json:"name"`
	Qty       any `json:"qty"`
	Quantity  any `json:"quantity"`
	Price     any `json:"price"`
}

// NormalizedItem is the canonical form of a cart entry.
type NormalizedItem struct {
	ProductID string
	Qty       float64
	PriceSnap float64
}

// CheckoutRequest is the decoded checkout payload with defaults applied.
type CheckoutRequest struct {
	Campus        string          `json:"campus"`
	Pickup        string          `json:"pickup"`
	PaymentMethod string          `json:"paymentMethod"`
	GcashNumber   string          `json:"gcashNumber"`
	Items         []CartItemInput `json:"items"`
	Cart          []CartItemInput `json:"cart"`
}

// RawItems returns whichever list the client actually sent: items wins over
// cart. A bare-list body is decoded into Items by ParseCheckoutRequest.
func (r *CheckoutRequest) RawItems() []CartItemInput {
	if r.Items != nil {
		return r.Items
	}
	return r.Cart
}

// checkoutEnvelope defers the item lists so a non-list value under "items"
// or "cart" can be skipped instead of failing the whole decode.
type checkoutEnvelope struct {
	Campus        string          `json:"campus"`
	Pickup        string          `json:"pickup"`
	PaymentMethod string          `json:"paymentMethod"`
	GcashNumber   string          `json:"gcashNumber"`
	Items         json.RawMessage `json:"items"`
	Cart          json.RawMessage `json:"cart"`
}

// ParseCheckoutRequest decodes a checkout body that may be a bare JSON list
// of cart items or an object carrying an "items" or "cart" list. Whichever
// shape is an actual list is selected; non-list values under either key are
// ignored so the other shape can still win. Top-level fields default to an
// ADMU gcash order at Gate 2.5.
func ParseCheckoutRequest(body []byte) (*CheckoutRequest, error) {
	req := &CheckoutRequest{}

	trimmed := bytes.TrimLeft(body, " \t\r\n")
	if len(trimmed) > 0 && trimmed[0] == '[' {
		if err := json.Unmarshal(body, &req.Items); err != nil {
			return nil, err
		}
	} else {
		var envelope checkoutEnvelope
		if err := json.Unmarshal(body, &envelope); err != nil {
			return nil, err
		}
		req.Campus = envelope.Campus
		req.Pickup = envelope.Pickup
		req.PaymentMethod = envelope.PaymentMethod
		req.GcashNumber = envelope.GcashNumber

		items, err := decodeItemList(envelope.Items)
		if err != nil {
			return nil, err
		}
		req.Items = items

		cart, err := decodeItemList(envelope.Cart)
		if err != nil {
			return nil, err
		}
		req.Cart = cart
	}

	if req.Campus == "" {
		req.Campus = CampusADMU
	}
	if req.Pickup == "" {
		req.Pickup = "Gate 2.5"
	}
	if req.PaymentMethod == "" {
		req.PaymentMethod = PaymentGcash
	}
	return req, nil
}

// decodeItemList unmarshals raw only when it is an actual JSON list.
// Numbers, strings, objects, and null under the key yield no items rather
// than a decode error.
func decodeItemList(raw json.RawMessage) ([]CartItemInput, error) {
	trimmed := bytes.TrimLeft(raw, " \t\r\n")
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, nil
	}
	var items []CartItemInput
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// NormalizeCart maps raw cart entries to canonical items. It never drops an
// entry: bad quantities become 1 and bad prices become 0 so the pricing
// resolver can still match the identifier against the catalog.
func NormalizeCart(raw []CartItemInput) []NormalizedItem {
	items := make([]NormalizedItem, 0, len(raw))
	for _, in := range raw {
		items = append(items, NormalizedItem{
			ProductID: firstIdentifier(in.ProductID, in.ID, in.Name),
			Qty:       coerceQty(firstDefined(in.Qty, in.Quantity)),
			PriceSnap: coercePrice(in.Price),
		})
	}
	return items
}

// firstIdentifier returns the first candidate that coerces to a non-empty
// trimmed string.
func firstIdentifier(candidates ...any) string {
	for _, c := range candidates {
		if s := strings.TrimSpace(coerceString(c)); s != "" {
			return s
		}
	}
	return ""
}

func firstDefined(candidates ...any) any {
	for _, c := range candidates {
		if c != nil {
			return c
		}
	}
	return nil
}

// coerceQty turns a loosely typed quantity into a positive count,
// defaulting to 1 for anything missing, non-numeric, zero, or negative.
func coerceQty(v any) float64 {
	n, ok := coerceNumber(v)
	if !ok || math.IsNaN(n) || math.IsInf(n, 0) || n <= 0 {
		return 1
	}
	return n
}

// coercePrice turns a loosely typed price snapshot into a non-negative
// number, defaulting to 0.
func coercePrice(v any) float64 {
	n, ok := coerceNumber(v)
	if !ok || math.IsNaN(n) || math.IsInf(n, 0) || n < 0 {
		return 0
	}
	return n
}

func coerceNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func coerceString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case json.Number:
		return s.String()
	case int:
		return strconv.Itoa(s)
	default:
		return ""
	}
}
