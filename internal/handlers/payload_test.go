package handlers

import (
	"encoding/json"
	"testing"
)

func TestTextUnmarshal(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{`"Jedzenie"`, "Jedzenie"},
		{`""`, ""},
		{`12.5`, "12.5"},
		{`true`, "true"},
		{`null`, ""},
		{`{"a":1}`, ""},
		{`["x"]`, ""},
	}
	for _, tt := range tests {
		var v struct {
			Field Text `json:"field"`
		}
		if err := json.Unmarshal([]byte(`{"field":`+tt.raw+`}`), &v); err != nil {
			t.Fatalf("%s: unexpected error %v", tt.raw, err)
		}
		if v.Field.String() != tt.want {
			t.Errorf("%s: expected %q, got %q", tt.raw, tt.want, v.Field)
		}
	}
}

func TestNumberUnmarshal(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{`150`, "150"},
		{`-3.25`, "-3.25"},
		{`"99.90"`, "99.9"},
		{`"1e3"`, "1000"},
		{`"NaN"`, "0"},
		{`""`, "0"},
		{`false`, "0"},
		{`null`, "0"},
		{`[1]`, "0"},
		{`1e50000000`, "0"},
		{`"1e-999999999"`, "0"},
		{`1000000000000`, "0"},
		{`999999999999.99`, "999999999999.99"},
	}
	for _, tt := range tests {
		var v struct {
			Field Number `json:"field"`
		}
		if err := json.Unmarshal([]byte(`{"field":`+tt.raw+`}`), &v); err != nil {
			t.Fatalf("%s: unexpected error %v", tt.raw, err)
		}
		if v.Field.String() != tt.want {
			t.Errorf("%s: expected %s, got %s", tt.raw, tt.want, v.Field.String())
		}
	}
}
