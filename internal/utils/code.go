package utils

import (
	"crypto/rand"
	"strings"
)

// no 0/O or 1/I so codes survive being read aloud
const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

const CandidateCodeLength = 6

// NewCandidateCode returns a random uppercase interview code.
func NewCandidateCode() string {
	b := make([]byte, CandidateCodeLength)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	for i := range b {
		b[i] = codeAlphabet[int(b[i])%len(codeAlphabet)]
	}
	return string(b)
}

// NormalizeCode trims a user-supplied code. Codes are case-sensitive for
// self-chosen practice sessions, so only whitespace is removed.
func NormalizeCode(code string) string {
	return strings.TrimSpace(code)
}
