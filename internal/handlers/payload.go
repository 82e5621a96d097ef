package handlers

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"

	"finapp/internal/models"
)

// Number is a lenient money field. It accepts a JSON number or a numeric
// string; anything else, including values outside the stored money range,
// decodes to zero instead of failing the request.
type Number struct {
	decimal.Decimal
}

func (n *Number) UnmarshalJSON(data []byte) error {
	n.Decimal = decimal.Zero

	raw := bytes.TrimSpace(data)
	if len(raw) == 0 {
		return nil
	}

	text := string(raw)
	if raw[0] == '"' {
		if err := json.Unmarshal(raw, &text); err != nil {
			return nil
		}
		text = strings.TrimSpace(text)
	}

	if d, err := decimal.NewFromString(text); err == nil {
		if _, ok := models.NormalizeMoney(d); ok {
			n.Decimal = d
		}
	}
	return nil
}

// Text is a lenient string field. Strings are taken as-is, numbers and
// booleans keep their literal text, null and composite values become empty.
type Text string

func (t *Text) UnmarshalJSON(data []byte) error {
	*t = ""

	raw := bytes.TrimSpace(data)
	if len(raw) == 0 {
		return nil
	}

	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			*t = Text(s)
		}
	case '{', '[', 'n':
	default:
		*t = Text(raw)
	}
	return nil
}

// String returns the field value.
func (t Text) String() string { return string(t) }
