package tools

import (
	"crypto/sha512"
	"encoding/hex"
)

func EncryptTextSHA512(text string) string {
	sum := sha512.Sum512([]byte(text))
	return hex.EncodeToString(sum[:])
}
