package output

import (
	"math"
	"strings"
	"testing"
)

type metricRow struct {
	ID    string  `json:"id"`
	Value float64 `json:"value"`
}

func TestDeterministicEncode(t *testing.T) {
	tests := []struct {
		name     string
		input    interface{}
		wantJSON string
	}{
		{
			name: "struct fields sorted and floats rounded",
			input: struct {
				Name  string  `json:"name"`
				Score float64 `json:"score"`
				Count int     `json:"count"`
			}{Name: "test", Score: 0.123456789, Count: 42},
			wantJSON: `{"count":42,"name":"test","score":0.123457}`,
		},
		{
			name: "nil pointer omitted",
			input: struct {
				Name  string   `json:"name"`
				Score *float64 `json:"score,omitempty"`
			}{Name: "test"},
			wantJSON: `{"name":"test"}`,
		},
		{
			name: "zero with omitempty omitted",
			input: struct {
				Name  string `json:"name"`
				Count int    `json:"count,omitempty"`
			}{Name: "test"},
			wantJSON: `{"name":"test"}`,
		},
		{
			name: "false without omitempty kept",
			input: struct {
				Disabled bool `json:"disabled"`
			}{},
			wantJSON: `{"disabled":false}`,
		},
		{
			name:     "map keys sorted",
			input:    map[string]interface{}{"zebra": "last", "alpha": "first", "beta": "second"},
			wantJSON: `{"alpha":"first","beta":"second","zebra":"last"}`,
		},
		{
			name:     "NaN metric omitted",
			input:    []metricRow{{ID: "cyclomatic", Value: 4}, {ID: "methods", Value: math.NaN()}},
			wantJSON: `[{"id":"cyclomatic","value":4},{"id":"methods"}]`,
		},
		{
			name: "skipped field",
			input: struct {
				Name   string `json:"name"`
				Hidden string `json:"-"`
			}{Name: "n", Hidden: "h"},
			wantJSON: `{"name":"n"}`,
		},
		{name: "nil value", input: nil, wantJSON: `null`},
		{name: "empty slice", input: []string{}, wantJSON: `null`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DeterministicEncode(tt.input)
			if err != nil {
				t.Fatalf("DeterministicEncode() error = %v", err)
			}
			if string(got) != tt.wantJSON {
				t.Errorf("DeterministicEncode() = %s, want %s", got, tt.wantJSON)
			}
		})
	}
}

func TestDeterministicEncodeConsistency(t *testing.T) {
	data := map[string]interface{}{
		"metrics":    []metricRow{{ID: "lines", Value: 6}, {ID: "wmc", Value: math.NaN()}},
		"attributes": []string{"Kind = identifier", "Named = true"},
		"badge":      map[string]interface{}{"available": 1, "disabled": false},
	}

	first, err := DeterministicEncode(data)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 20; i++ {
		got, err := DeterministicEncode(data)
		if err != nil {
			t.Fatal(err)
		}
		if string(got) != string(first) {
			t.Fatalf("encoding %d differs:\n%s\n%s", i, got, first)
		}
	}
}

func TestDeterministicEncodeIndented(t *testing.T) {
	got, err := DeterministicEncodeIndented(map[string]int{"b": 2, "a": 1}, "  ")
	if err != nil {
		t.Fatal(err)
	}
	want := "{\n  \"a\": 1,\n  \"b\": 2\n}"
	if string(got) != want {
		t.Errorf("DeterministicEncodeIndented() = %q, want %q", got, want)
	}
}

func TestDeterministicEncodeYAML(t *testing.T) {
	input := struct {
		File    string      `json:"file"`
		Metrics []metricRow `json:"metrics"`
		Empty   []string    `json:"empty"`
	}{
		File:    "main.go",
		Metrics: []metricRow{{ID: "lines", Value: 3}, {ID: "methods", Value: math.NaN()}},
	}

	got, err := DeterministicEncodeYAML(input)
	if err != nil {
		t.Fatal(err)
	}
	want := strings.Join([]string{
		"file: main.go",
		"metrics:",
		"  - id: lines",
		"    value: 3",
		"  - id: methods",
		"",
	}, "\n")
	if string(got) != want {
		t.Errorf("DeterministicEncodeYAML() =\n%s\nwant\n%s", got, want)
	}
}

func TestParseJSONTag(t *testing.T) {
	tests := []struct {
		tag       string
		name      string
		omitEmpty bool
	}{
		{"", "", false},
		{"id", "id", false},
		{"value,omitempty", "value", true},
		{",omitempty", "", true},
		{"x,string", "x", false},
	}

	for _, tt := range tests {
		name, omit := parseJSONTag(tt.tag)
		if name != tt.name || omit != tt.omitEmpty {
			t.Errorf("parseJSONTag(%q) = %q, %v; want %q, %v", tt.tag, name, omit, tt.name, tt.omitEmpty)
		}
	}
}
