package region

import (
	"sort"
	"testing"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "continental alias", input: "AMERICAS", want: []string{"CBLOL", "LCS", "LLA"}},
		{name: "lowercase alias", input: "emea", want: []string{"LEC"}},
		{name: "mixed case with spaces", input: "  Apac ", want: []string{"LJL", "PCS", "VCS"}},
		{name: "exact league code fallback", input: "LCK", want: []string{"LCK"}},
		{name: "lowercase league code", input: "lpl", want: []string{"LPL"}},
		{name: "country alias", input: "KR", want: []string{"LCK"}},
		{name: "unknown", input: "MOON", want: nil},
		{name: "empty", input: "", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(tt.input)
			sort.Strings(got)

			if len(got) != len(tt.want) {
				t.Fatalf("unexpected leagues: got=%v want=%v", got, tt.want)
			}
			for idx := range got {
				if got[idx] != tt.want[idx] {
					t.Fatalf("unexpected leagues: got=%v want=%v", got, tt.want)
				}
			}
		})
	}
}

func TestResolveReturnsCopy(t *testing.T) {
	first := Resolve("AMERICAS")
	first[0] = "MUTATED"

	second := Resolve("AMERICAS")
	for _, code := range second {
		if code == "MUTATED" {
			t.Fatalf("alias table was mutated through a returned slice")
		}
	}
}

func TestKnown(t *testing.T) {
	if !Known("eu") {
		t.Fatalf("expected eu to resolve")
	}
	if Known("ATLANTIS") {
		t.Fatalf("expected unknown region to not resolve")
	}
}
