package normalizer

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"nft-recon/internal/domain"
	"nft-recon/internal/provider"

	"github.com/shopspring/decimal"
)

// Field is the result of mapping one raw field: either a value or absent.
type Field struct {
	Value string
	OK    bool
}

func present(v string) Field { return Field{Value: v, OK: true} }

var missing = Field{}

// OrNA returns the value, or the not-available sentinel when absent.
func (f Field) OrNA() string {
	if !f.OK {
		return domain.NotAvailable
	}
	return f.Value
}

func (f Field) Map(fn func(string) string) Field {
	if !f.OK {
		return f
	}
	return present(fn(f.Value))
}

// lookup walks nested objects, e.g. lookup(raw, "payment", "quantity").
func lookup(raw provider.RawEvent, path ...string) (any, bool) {
	var cur any = map[string]any(raw)
	for _, key := range path {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = obj[key]
		if !ok || cur == nil {
			return nil, false
		}
	}
	return cur, true
}

// stringField reads a scalar as text. Empty strings count as absent.
func stringField(raw provider.RawEvent, path ...string) Field {
	v, ok := lookup(raw, path...)
	if !ok {
		return missing
	}
	s, ok := asString(v)
	if !ok || strings.TrimSpace(s) == "" {
		return missing
	}
	return present(s)
}

// intField reads an integer given as a JSON number or numeric string.
// ok is false when the field is absent; err is set when it is present but invalid.
func intField(raw provider.RawEvent, path ...string) (n int64, ok bool, err error) {
	f := stringField(raw, path...)
	if !f.OK {
		return 0, false, nil
	}
	n, err = strconv.ParseInt(strings.TrimSpace(f.Value), 10, 64)
	if err != nil {
		// Some feeds send integral floats such as "2.0".
		d, derr := decimal.NewFromString(strings.TrimSpace(f.Value))
		if derr != nil || !d.IsInteger() {
			return 0, true, fmt.Errorf("%s: invalid integer %q", strings.Join(path, "."), f.Value)
		}
		return d.IntPart(), true, nil
	}
	return n, true, nil
}

func decimalField(raw provider.RawEvent, path ...string) (d decimal.Decimal, ok bool, err error) {
	f := stringField(raw, path...)
	if !f.OK {
		return decimal.Zero, false, nil
	}
	d, err = decimal.NewFromString(strings.TrimSpace(f.Value))
	if err != nil {
		return decimal.Zero, true, fmt.Errorf("%s: invalid number %q", strings.Join(path, "."), f.Value)
	}
	return d, true, nil
}

func asString(v any) (string, bool) {
	switch n := v.(type) {
	case string:
		return n, true
	case json.Number:
		return n.String(), true
	case float64:
		return strconv.FormatFloat(n, 'f', -1, 64), true
	case int:
		return strconv.Itoa(n), true
	case int64:
		return strconv.FormatInt(n, 10), true
	case bool:
		return strconv.FormatBool(n), true
	default:
		return "", false
	}
}

func quantityPtr(n int64) *int64 { return &n }
