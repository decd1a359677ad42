package request

import (
	"encoding/json"
	"strconv"
	"strings"
)

// StatementRef normalizes the polymorphic statement reference shape at the
// API boundary. Clients send either a raw id string or a populated object
// such as {"_id": "...", "total": 123.45}; downstream code only ever sees
// the normalized form.
type StatementRef struct {
	ID    string
	Total *float64
}

// UnmarshalJSON accepts both reference shapes.
func (r *StatementRef) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		return nil
	}

	if strings.HasPrefix(trimmed, `"`) {
		return json.Unmarshal(data, &r.ID)
	}

	var populated struct {
		MongoID string   `json:"_id"`
		ID      string   `json:"id"`
		Total   *float64 `json:"total"`
	}
	if err := json.Unmarshal(data, &populated); err != nil {
		return err
	}

	r.ID = populated.MongoID
	if r.ID == "" {
		r.ID = populated.ID
	}
	r.Total = populated.Total
	return nil
}

// MarshalJSON always emits the raw id form.
func (r StatementRef) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.ID)
}

// Amount is a decimal amount that accepts both JSON numbers and strings.
// Non-numeric input coerces to 0 and negative values are passed through,
// mirroring the lenient parse the dashboard always applied to adjustment
// input fields.
type Amount float64

// UnmarshalJSON implements the lenient parse.
func (a *Amount) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		*a = 0
		return nil
	}

	if strings.HasPrefix(trimmed, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		parsed, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			*a = 0
			return nil
		}
		*a = Amount(parsed)
		return nil
	}

	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		*a = 0
		return nil
	}
	*a = Amount(f)
	return nil
}
