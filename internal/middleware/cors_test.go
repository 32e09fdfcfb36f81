package middleware

import (
	"reflect"
	"testing"
)

func TestParseOrigins(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want []string
	}{
		{"empty defaults to wildcard", "", []string{"*"}},
		{"lone wildcard", "*", []string{"*"}},
		{"single origin", "https://vowselect.app", []string{"https://vowselect.app"}},
		{"list with spaces", "https://vowselect.app, http://localhost:5173", []string{"https://vowselect.app", "http://localhost:5173"}},
		{"wildcard anywhere wins", "https://vowselect.app,*", []string{"*"}},
		{"stray commas ignored", ",https://vowselect.app,,", []string{"https://vowselect.app"}},
		{"only commas defaults to wildcard", ",,", []string{"*"}},
	}
	for _, tc := range cases {
		if got := ParseOrigins(tc.in); !reflect.DeepEqual(got, tc.want) {
			t.Errorf("%s: ParseOrigins(%q) = %v, want %v", tc.name, tc.in, got, tc.want)
		}
	}
}
