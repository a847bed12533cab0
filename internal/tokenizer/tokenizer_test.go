package tokenizer

import (
	"reflect"
	"testing"
)

var testStopwords = NewStopwordSet([]string{
	"the", "a", "an", "and", "or", "of", "for", "on", "in", "to", "from",
	"with", "by", "at", "is", "are", "was", "were", "this", "that",
	"these", "those", "it", "its", "as", "be", "can", "will", "has", "have",
})

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "stopword exclusion",
			text: "the gaming laptop is great",
			want: []string{"gaming", "laptop", "great"},
		},
		{
			name: "lowercasing and punctuation splitting",
			text: "Gaming-Laptop: RTX 4060!",
			want: []string{"gaming", "laptop", "rtx", "4060"},
		},
		{
			name: "underscores kept inside tokens",
			text: "daraz_12345 startech_999",
			want: []string{"daraz_12345", "startech_999"},
		},
		{
			name: "currency glyphs are separators",
			text: "price ৳1999 only",
			want: []string{"price", "1999", "only"},
		},
		{
			name: "empty input",
			text: "",
			want: []string{},
		},
		{
			name: "all stopwords",
			text: "the of and is",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.text, testStopwords)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tokenize(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestTokenizeDeterminism(t *testing.T) {
	text := "Gaming Laptop X with RTX 4060 under 95,000"
	first := Tokenize(text, testStopwords)
	for i := 0; i < 10; i++ {
		if got := Tokenize(text, testStopwords); !reflect.DeepEqual(got, first) {
			t.Fatalf("Tokenize is not deterministic: %v vs %v", got, first)
		}
	}
}

func TestTokenSet(t *testing.T) {
	set := TokenSet("laptop laptop gaming", testStopwords)
	if len(set) != 2 {
		t.Errorf("Expected 2 distinct tokens, got %d", len(set))
	}
	if _, ok := set["laptop"]; !ok {
		t.Error("Expected 'laptop' in token set")
	}
	if _, ok := set["gaming"]; !ok {
		t.Error("Expected 'gaming' in token set")
	}
}

func TestNewStopwordSetLowercases(t *testing.T) {
	set := NewStopwordSet([]string{"The", "AND"})
	if got := Tokenize("the and laptop", set); !reflect.DeepEqual(got, []string{"laptop"}) {
		t.Errorf("Expected stopword set to be case-insensitive, got %v", got)
	}
}
