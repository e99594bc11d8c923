package store

import (
	"slices"
	"testing"
)

func TestProviderIDs(t *testing.T) {
	tests := []struct {
		name  string
		codes []string
		want  []int
	}{
		{"known codes", []string{"netflix", "prime_video"}, []int{8, 119}},
		{"unknown codes dropped", []string{"netflix", "blockbuster"}, []int{8}},
		{"all unknown", []string{"blockbuster"}, nil},
		{"empty", nil, nil},
		{"order preserved", []string{"hbo_max", "disney_plus", "filmin"}, []int{384, 337, 63}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ProviderIDs(tt.codes); !slices.Equal(got, tt.want) {
				t.Errorf("ProviderIDs(%v) = %v, want %v", tt.codes, got, tt.want)
			}
		})
	}
}
