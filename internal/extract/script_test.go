package extract

import "testing"

func TestContainsHan(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"苹果", true},
		{"苹果 apple", true},
		{"apple", false},
		{"/ˈæp.əl/", false},
		{"", false},
		{"１２３", false}, // fullwidth digits are not ideographs
	}
	for _, tt := range tests {
		if got := ContainsHan(tt.in); got != tt.want {
			t.Errorf("ContainsHan(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestContainsLatin(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"apple", true},
		{"Apple!", true},
		{"苹果", false},
		{"123", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := ContainsLatin(tt.in); got != tt.want {
			t.Errorf("ContainsLatin(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestContainsPhonetic(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"/ˈæp.əl/", true},
		{"[bəˈnænə]", true},
		{"ˈstress", true}, // bare stress mark
		{"ə", true},       // IPA Extensions block
		{"long ː mark", true},
		{"apple", false},
		{"苹果", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := ContainsPhonetic(tt.in); got != tt.want {
			t.Errorf("ContainsPhonetic(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestDigitsOnly(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"12", true},
		{"3", true},
		{"", false},
		{"12a", false},
		{"1 2", false},
	}
	for _, tt := range tests {
		if got := digitsOnly(tt.in); got != tt.want {
			t.Errorf("digitsOnly(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
