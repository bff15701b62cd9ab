package tags

import (
	"reflect"
	"testing"
)

func TestNormalize(t *testing.T) {
	t.Parallel()
	cases := []struct {
		in   string
		want string
	}{
		{"Active", "active"},
		{" active ", "active"},
		{"Semi Active", "semiactive"},
		{"  Semi  Active  ", "semiactive"},
		{"CURIOUS", "curious"},
		{"", ""},
		{"   ", ""},
	}
	for _, c := range cases {
		if got := Normalize(c.in); got != c.want {
			t.Fatalf("Normalize(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestNormalize_CaseWhitespaceVariantsCollide(t *testing.T) {
	t.Parallel()
	if Normalize("Active") != Normalize(" active ") {
		t.Fatalf("case/whitespace variants must share one key")
	}
}

func TestSplitTemperament(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name string
		in   string
		want []string
	}{
		{"simple", "Active, Curious", []string{"Active", "Curious"}},
		{"empty", "", nil},
		{"only commas", ", ,,  ,", nil},
		{"exact duplicates dropped", "Active, Curious, Active", []string{"Active", "Curious"}},
		{"case variants kept", "Active, active", []string{"Active", "active"}},
		{"order preserved", "Playful,Active,Gentle", []string{"Playful", "Active", "Gentle"}},
		{"trimming", "  Playful ,  Gentle  ", []string{"Playful", "Gentle"}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := SplitTemperament(c.in)
			if len(got) == 0 && len(c.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, c.want) {
				t.Fatalf("SplitTemperament(%q) = %v, want %v", c.in, got, c.want)
			}
		})
	}
}
