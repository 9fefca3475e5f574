package pdf

import (
	"reflect"
	"testing"
)

func TestFindDOIs(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "doi in running text",
			text: "available at https://doi.org/10.21105/joss.01708 for details",
			want: []string{"10.21105/joss.01708"},
		},
		{
			name: "trailing sentence punctuation stripped",
			text: "see 10.1101/2020.03.27.001834.",
			want: []string{"10.1101/2020.03.27.001834"},
		},
		{
			name: "multiple dois in order",
			text: "first 10.1074/jbc.RA120.014132 then 10.7554/eLife.60675",
			want: []string{"10.1074/jbc.RA120.014132", "10.7554/eLife.60675"},
		},
		{
			name: "registrant too short",
			text: "section 10.2/a is not a doi",
			want: nil,
		},
		{
			name: "nothing after the slash",
			text: "10.12345/",
			want: nil,
		},
		{
			name: "no doi",
			text: "plain prose with no identifiers at all",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FindDOIs(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("FindDOIs(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestPlausibleDOI(t *testing.T) {
	tests := []struct {
		doi  string
		want bool
	}{
		{"10.1101/2020.03.27.001834", true},
		{"10.21105/joss.01708", true},
		{"10.1/x", false},
		{"11.1234/abcdef", false},
		{"10.1234567890", false},
	}

	for _, tt := range tests {
		if got := plausibleDOI(tt.doi); got != tt.want {
			t.Errorf("plausibleDOI(%q) = %v, want %v", tt.doi, got, tt.want)
		}
	}
}
