package statusync

import "testing"

func TestEmojiRender(t *testing.T) {
	path := "https://emoji.example.com/parrot.gif"

	tests := []struct {
		name  string
		emoji Emoji
		want  string
	}{
		{name: "image path wins", emoji: Emoji{Name: "party-parrot", ImagePath: &path}, want: path},
		{name: "builtin name resolves to glyph", emoji: Emoji{Name: "coffee"}, want: "☕"},
		{name: "unknown name falls back to colon form", emoji: Emoji{Name: "blobdance"}, want: ":blobdance:"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.emoji.Render(); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestGlyphLookupIsStatic(t *testing.T) {
	if g, ok := Glyph("thumbsup"); !ok || g != "👍" {
		t.Fatalf("expected thumbsup glyph, got %q (%v)", g, ok)
	}
	if _, ok := Glyph("definitely-not-an-emoji"); ok {
		t.Fatal("expected unknown name to miss")
	}
}
