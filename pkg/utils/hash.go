package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"hash"
	"io"

	"github.com/go-git/go-billy/v5"
)

// NewHash returns the hash used to compare file contents
func NewHash() hash.Hash {
	return sha256.New()
}

// HashSum formats the digest of h as lowercase hex
func HashSum(h hash.Hash) string {
	return hex.EncodeToString(h.Sum(nil))
}

// HashFile computes the SHA256 hash of the file at path on fsys
func HashFile(fsys billy.Basic, path string) (string, error) {
	file, err := fsys.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	h := NewHash()
	if _, err := io.Copy(h, file); err != nil {
		return "", err
	}
	return HashSum(h), nil
}
