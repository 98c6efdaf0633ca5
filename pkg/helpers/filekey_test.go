package helpers

import (
	"regexp"
	"testing"
)

func TestDeriveFileKey_Pattern(t *testing.T) {
	t.Parallel()

	jpegKey := regexp.MustCompile(`^\d+-[a-z0-9]+\.jpe?g$`)
	for _, name := range []string{"photo.jpg", "photo.jpeg", "PHOTO.JPG", "dir name/some photo.jpeg"} {
		key := DeriveFileKey(name)
		if !jpegKey.MatchString(key) {
			t.Fatalf("key %q for %q does not match jpeg pattern", key, name)
		}
	}
}

func TestDeriveFileKey_NoExtension(t *testing.T) {
	t.Parallel()

	key := DeriveFileKey("README")
	if !regexp.MustCompile(`^\d+-[a-z0-9]+\.bin$`).MatchString(key) {
		t.Fatalf("key %q missing .bin fallback extension", key)
	}
}

func TestDeriveFileKey_Unique(t *testing.T) {
	t.Parallel()

	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		key := DeriveFileKey("song.mp3")
		if seen[key] {
			t.Fatalf("duplicate key after %d draws: %s", i, key)
		}
		seen[key] = true
	}
}
