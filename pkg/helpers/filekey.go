package helpers

import (
	"crypto/rand"
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

const fileKeyAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// DeriveFileKey builds a storage key for an uploaded file:
// {unixMillis}-{randomSuffix}.{originalExtension}. The timestamp prefix keeps
// keys roughly ordered, the random suffix keeps them collision-resistant and
// unguessable.
func DeriveFileKey(originalName string) string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(originalName)), ".")
	if ext == "" {
		ext = "bin"
	}
	return fmt.Sprintf("%d-%s.%s", time.Now().UnixMilli(), randSuffix(7), ext)
}

func randSuffix(n int) string {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand failing means the process is in serious trouble anyway
		panic(err)
	}
	out := make([]byte, n)
	for i, v := range b {
		out[i] = fileKeyAlphabet[int(v)%len(fileKeyAlphabet)]
	}
	return string(out)
}
