package section

import (
	"reflect"
	"testing"
)

func TestParseRanges(t *testing.T) {
	tests := []struct {
		spec  string
		total int
		want  []int
	}{
		{"1-3,5,10-", 10, []int{0, 1, 2, 4, 9}},
		{"1", 5, []int{0}},
		{"2-4", 5, []int{1, 2, 3}},
		{"4-", 5, []int{3, 4}},
		{"10-5", 10, []int{4, 5, 6, 7, 8, 9}},
		{"3,1,3", 5, []int{0, 2}},
		{" 1 , 2 ", 5, []int{0, 1}},
		{"8-12", 5, nil},
		{"0", 5, nil},
	}
	for _, tt := range tests {
		got, err := ParseRanges(tt.spec, tt.total)
		if err != nil {
			t.Errorf("ParseRanges(%q, %d): %v", tt.spec, tt.total, err)
			continue
		}
		if len(got) == 0 && len(tt.want) == 0 {
			continue
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ParseRanges(%q, %d) = %v, want %v", tt.spec, tt.total, got, tt.want)
		}
	}
}

func TestParseRangesErrors(t *testing.T) {
	for _, spec := range []string{"", "  ", "1,,3", "a", "1-b", "-3", "1-2-3"} {
		if _, err := ParseRanges(spec, 10); err == nil {
			t.Errorf("ParseRanges(%q): expected error", spec)
		}
	}
}
