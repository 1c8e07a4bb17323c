package importer

import (
	"reflect"
	"testing"
)

func TestSplitList(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"simple", "a,b,c", []string{"a", "b", "c"}},
		{"trims whitespace", " a , b ,c ", []string{"a", "b", "c"}},
		{"drops empty tokens", "a,,b,", []string{"a", "b"}},
		{"empty input", "", nil},
		{"only separators", ", ,", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := splitList(tt.in); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("splitList(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestSplitIntList(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []int32
	}{
		{"simple", "1,2,3", []int32{1, 2, 3}},
		{"trims whitespace", " 10 , 20 ", []int32{10, 20}},
		{"drops non-numeric", "1,abc,2", []int32{1, 2}},
		{"drops signed", "-1,2", []int32{2}},
		{"drops decimal", "1.5,2", []int32{2}},
		{"all invalid", "a,b", nil},
		{"empty", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := splitIntList(tt.in); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("splitIntList(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestIsDigits(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"123", true},
		{"0", true},
		{"", false},
		{"-1", false},
		{"1.5", false},
		{"12a", false},
		{"١٢٣", false},
	}

	for _, tt := range tests {
		if got := isDigits(tt.in); got != tt.want {
			t.Errorf("isDigits(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestBoolToggle(t *testing.T) {
	tests := []struct {
		name string
		row  Row
		want bool
	}{
		{"true", Row{"upload": "true"}, true},
		{"mixed case", Row{"upload": "TRUE"}, true},
		{"padded", Row{"upload": " true "}, true},
		{"false", Row{"upload": "false"}, false},
		{"one", Row{"upload": "1"}, false},
		{"absent", Row{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := boolToggle(tt.row, "upload"); got != tt.want {
				t.Errorf("boolToggle() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTrimmed(t *testing.T) {
	row := Row{"name": "  Acme  ", "empty": "   "}

	if v, ok := trimmed(row, "name"); !ok || v != "Acme" {
		t.Errorf("trimmed(name) = %q, %v", v, ok)
	}
	if v, ok := trimmed(row, "empty"); !ok || v != "" {
		t.Errorf("trimmed(empty) = %q, %v, want empty string and present", v, ok)
	}
	if _, ok := trimmed(row, "missing"); ok {
		t.Error("trimmed(missing) reported the column as present")
	}
}
