package request

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/yizeng/gab/gin/mongo/inventory/internal/domain"
)

// CreateItemRequest accepts the English field names and the Spanish ones used
// by the first deployment of the API. English wins when both are sent.
type CreateItemRequest struct {
	Name     *Text   `json:"name" swaggertype:"string" example:"pen"`
	Cost     *Number `json:"cost" swaggertype:"number" example:"1.5"`
	Quantity *Number `json:"quantity" swaggertype:"number" example:"10"`

	Nombre   *Text   `json:"nombre,omitempty" swaggerignore:"true"`
	Costo    *Number `json:"costo,omitempty" swaggerignore:"true"`
	Cantidad *Number `json:"cantidad,omitempty" swaggerignore:"true"`
}

func (r *CreateItemRequest) ToDomain() domain.Item {
	return domain.Item{
		Name:     string(firstText(r.Name, r.Nombre)),
		Cost:     float64(firstNumber(r.Cost, r.Costo)),
		Quantity: float64(firstNumber(r.Quantity, r.Cantidad)),
	}
}

func firstText(values ...*Text) Text {
	for _, v := range values {
		if v != nil {
			return *v
		}
	}
	return ""
}

func firstNumber(values ...*Number) Number {
	for _, v := range values {
		if v != nil {
			return *v
		}
	}
	return 0
}

// Number decodes any JSON value. Numbers and numeric strings keep their
// value, everything else becomes 0.
type Number float64

func (n *Number) UnmarshalJSON(b []byte) error {
	*n = 0

	var f float64
	if err := json.Unmarshal(b, &f); err == nil {
		*n = finite(f)
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			*n = finite(f)
		}
	}

	return nil
}

// finite maps NaN and the infinities to 0. JSON cannot encode them.
func finite(f float64) Number {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return Number(f)
}

// Text decodes any JSON scalar into its string form. Objects, arrays and null
// become "".
type Text string

func (t *Text) UnmarshalJSON(b []byte) error {
	*t = ""

	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*t = Text(s)
		return nil
	}

	trimmed := bytes.TrimSpace(b)
	var v interface{}
	if err := json.Unmarshal(trimmed, &v); err != nil {
		return nil
	}
	switch v.(type) {
	case float64, bool:
		*t = Text(trimmed)
	}

	return nil
}
