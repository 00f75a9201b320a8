package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// SourceInfo describes one loaded input file
type SourceInfo struct {
	Path     string `json:"path"`
	Kind     string `json:"kind"`
	Records  int    `json:"records"`
	LoadedAt string `json:"loaded_at"` // RFC3339 format
	Hash     string `json:"hash"`      // SHA256 hex digest of the file contents
}

// NewSourceInfo records a successful load of path
func NewSourceInfo(path, kind string, content []byte, records int) *SourceInfo {
	return &SourceInfo{
		Path:     path,
		Kind:     kind,
		Records:  records,
		LoadedAt: time.Now().UTC().Format(time.RFC3339),
		Hash:     computeHash(content),
	}
}

// computeHash computes SHA256 hash of content and returns hex string
func computeHash(content []byte) string {
	hash := sha256.Sum256(content)
	return hex.EncodeToString(hash[:])
}

// recordID derives a stable identifier for a record from its source and position.
func recordID(source string, row int, parts ...string) string {
	key := fmt.Sprintf("%s|%d", source, row)
	for _, p := range parts {
		key += "|" + p
	}
	return computeHash([]byte(key))[:12]
}
