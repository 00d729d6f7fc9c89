package metrics_test

import (
	"testing"

	"github.com/petasbytes/recordshim/internal/metrics"
)

func TestCountFeatures_Sizes(t *testing.T) {
	type exp struct {
		bytes int
		runes int
		words int
		lines int
	}
	cases := []struct {
		name string
		in   string
		exp  exp
	}{
		{"Empty", "", exp{0, 0, 0, 0}},
		{"ASCII", "hello world", exp{11, 11, 2, 1}},
		{"Multibyte", "héllö 世界", exp{14, 8, 2, 1}},
		{"Multiline_Trailing", "a\nb\n", exp{4, 4, 2, 3}},
		{"Sentinel", "[]", exp{2, 2, 1, 1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := metrics.CountFeatures(tc.in)
			got := exp{f.Bytes, f.Runes, f.Words, f.Lines}
			if got != tc.exp {
				t.Fatalf("got %+v want %+v", got, tc.exp)
			}
		})
	}
}

func TestCountFeatures_JSONShape(t *testing.T) {
	cases := []struct {
		name  string
		in    string
		valid bool
		list  bool
		items int
	}{
		{"EmptyList", "[]", true, true, 0},
		{"Records", `[{"id":1},{"id":2,"tags":["a","b"]}]`, true, true, 2},
		{"PrettyList", "[\n  1,\n  2,\n  3\n]\n", true, true, 3},
		{"Object", `{"id":1}`, true, false, 0},
		{"Scalar", `"text"`, true, false, 0},
		{"Null", "null", true, false, 0},
		{"PaddedList", " \n[1]", true, true, 1},
		{"NotJSON", "hello world", false, false, 0},
		{"Truncated", `[{"id":1}`, false, false, 0},
		{"Empty", "", false, false, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := metrics.CountFeatures(tc.in)
			if f.JSONValid != tc.valid || f.JSONList != tc.list || f.Items != tc.items {
				t.Fatalf("got valid=%v list=%v items=%d; want valid=%v list=%v items=%d",
					f.JSONValid, f.JSONList, f.Items, tc.valid, tc.list, tc.items)
			}
		})
	}
}
