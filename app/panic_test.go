package app

import "testing"

func TestWrapRunes(t *testing.T) {
	got := wrapRunes("abcdef  gh", 4)
	want := []string{"abcd", "ef  ", "gh"}
	if len(got) != len(want) {
		t.Fatalf("wrapRunes = %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("wrapRunes = %q, want %q", got, want)
		}
	}

	if got := wrapRunes("°C°C", 2); len(got) != 2 || got[0] != "°C" {
		t.Fatalf("wrapRunes multibyte = %q", got)
	}
}
