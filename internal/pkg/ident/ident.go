// Package ident generates the public report IDs and stored-media file names.
package ident

import (
	"math/rand"
	"strconv"
	"strings"
	"time"
)

const alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

func suffix(n int) string {
	var b strings.Builder
	for i := 0; i < n; i++ {
		b.WriteByte(alphabet[rand.Intn(len(alphabet))])
	}
	return b.String()
}

func base36Now() string {
	return strconv.FormatInt(time.Now().UnixMilli(), 36)
}

// ReportID returns a human-readable unique report ID, e.g. "Rmf3k2a9q-x7c41p".
func ReportID() string {
	return "R" + base36Now() + "-" + suffix(6)
}

// FileName returns a collision-resistant stored file name preserving ext
// (ext includes the leading dot).
func FileName(ext string) string {
	return base36Now() + "-" + suffix(6) + strings.ToLower(ext)
}
