package tabular

import (
	"reflect"
	"strings"
	"testing"
)

func TestParseListLiteralNotations(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  []string
	}{
		{"list of strings", "['Judo','Athletics']", []string{"Judo", "Athletics"}},
		{"double quotes", `["Judo", "Athletics"]`, []string{"Judo", "Athletics"}},
		{"tuple", "('Judo', 'Athletics')", []string{"Judo", "Athletics"}},
		{"set", "{'Judo'}", []string{"Judo"}},
		{"inner whitespace kept trimmed", "[' Judo ', '']", []string{"Judo"}},
		{"escaped quote", `['Men\'s Foil']`, []string{"Men's Foil"}},
		{"single quoted scalar", "'Judo'", []string{"Judo"}},
		{"empty list", "[]", nil},
		{"trailing comma", "['Judo',]", []string{"Judo"}},
		{"numbers", "[1, 2]", []string{"1", "2"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ParseList(tc.input)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("ParseList(%q) = %v, want %v", tc.input, got, tc.want)
			}
		})
	}
}

func TestParseListMalformedFallsBackToCommaSplit(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  []string
	}{
		{"bare words", "Judo, Athletics", []string{"Judo", "Athletics"}},
		{"unterminated list", "['Judo', 'Athletics'", []string{"['Judo'", "'Athletics'"}},
		{"unquoted item", "[Judo]", []string{"[Judo]"}},
		{"single word", "Judo", []string{"Judo"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ParseList(tc.input)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("ParseList(%q) = %v, want %v", tc.input, got, tc.want)
			}
		})
	}
}

func TestParseListEmptyInput(t *testing.T) {
	for _, input := range []string{"", "   ", "\t"} {
		if got := ParseList(input); len(got) != 0 {
			t.Fatalf("ParseList(%q) = %v, want empty", input, got)
		}
	}
}

func TestParseListRoundTripSerialization(t *testing.T) {
	items := ParseList("['Judo','Athletics']")
	if joined := strings.Join(items, ";"); joined != "Judo;Athletics" {
		t.Fatalf("joined = %q, want %q", joined, "Judo;Athletics")
	}
}
