package textutil

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"whitespace only", "   ", ""},
		{"lowercases", "Naruto", "naruto"},
		{"trims", "  Bleach \t", "bleach"},
		{"keeps punctuation", "Bleach: Thousand-Year Blood War", "bleach: thousand-year blood war"},
		{"full width", "ＮＡＲＵＴＯ", "naruto"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.input); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSameTitle(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"Naruto", "naruto", true},
		{"NARUTO ", "Naruto", true},
		{"Bleach", "Bleach: Thousand-Year Blood War", false},
		{"", "", false},
		{"One Piece", "One  Piece", false},
	}

	for _, tt := range tests {
		if got := SameTitle(tt.a, tt.b); got != tt.want {
			t.Errorf("SameTitle(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestChunk(t *testing.T) {
	if got := Chunk("", 50); got != nil {
		t.Fatalf("expected nil for empty text, got %#v", got)
	}
	got := Chunk("abcdefghij", 4)
	want := []string{"abcd", "efgh", "ij"}
	if len(got) != len(want) {
		t.Fatalf("Chunk returned %d pieces, want %d: %#v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("piece %d = %q, want %q", i, got[i], want[i])
		}
	}
	multi := Chunk("日本語テキスト", 3)
	if len(multi) != 3 || multi[0] != "日本語" || multi[2] != "ト" {
		t.Fatalf("unexpected multi-byte chunks: %#v", multi)
	}
}
