package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"holoscript/internal/diag"
	"holoscript/internal/source"
	"holoscript/internal/validator"
)

// Bump when the payload format changes; mismatched entries are ignored.
const cacheSchemaVersion uint16 = 1

// Cache stores validation reports on disk, keyed by script content plus
// the lint configuration. Purely an optimization: a hit reproduces the
// exact report the passes would have produced. Thread-safe.
type Cache struct {
	mu  sync.RWMutex
	dir string
}

// cachedDiag is a Diagnostic without the FileID, which is not stable
// across runs; spans are rebound to the current file on load.
type cachedDiag struct {
	Sev   uint8
	Code  uint16
	Msg   string
	Start uint32
	End   uint32
}

type cachePayload struct {
	Schema      uint16
	Valid       bool
	Errors      []cachedDiag
	Warnings    []cachedDiag
	Suggestions []cachedDiag
}

// OpenCache initializes the cache under the standard user cache location.
func OpenCache(app string) (*Cache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app, "reports")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Cache{dir: dir}, nil
}

// OpenCacheAt initializes the cache in an explicit directory (tests).
func OpenCacheAt(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Cache{dir: dir}, nil
}

// cacheKey mixes the content hash with a fingerprint of every lint option
// field, so a config change invalidates every entry.
func cacheKey(file *source.File, lint validator.Options) [32]byte {
	h := sha256.New()
	h.Write(file.Hash[:])
	fmt.Fprintf(h, "|%d|%d|%d|", lint.MaxLoopDepth, lint.LargeAllocation, lint.LargeScriptLines)
	for _, list := range [][]string{
		lint.Keywords, lint.Functions, lint.Types,
		lint.FrameworkCalls, lint.ComputeCalls,
	} {
		h.Write([]byte(strings.Join(list, ",")))
		h.Write([]byte{'|'})
	}
	var key [32]byte
	h.Sum(key[:0])
	return key
}

func (c *Cache) pathFor(key [32]byte) string {
	return filepath.Join(c.dir, hex.EncodeToString(key[:])+".msgpack")
}

// Load returns the cached report for key, rebinding spans to file. Missing,
// corrupt or schema-mismatched entries come back as a miss.
func (c *Cache) Load(key [32]byte, file source.FileID) (*validator.Report, bool) {
	if c == nil {
		return nil, false
	}
	c.mu.RLock()
	raw, err := os.ReadFile(c.pathFor(key))
	c.mu.RUnlock()
	if err != nil {
		return nil, false
	}

	var payload cachePayload
	if err := msgpack.Unmarshal(raw, &payload); err != nil {
		return nil, false
	}
	if payload.Schema != cacheSchemaVersion {
		return nil, false
	}

	return &validator.Report{
		Valid:       payload.Valid,
		Errors:      restoreDiags(payload.Errors, file),
		Warnings:    restoreDiags(payload.Warnings, file),
		Suggestions: restoreDiags(payload.Suggestions, file),
	}, true
}

// Store persists a report; write errors are the caller's to ignore.
func (c *Cache) Store(key [32]byte, rep *validator.Report) error {
	if c == nil || rep == nil {
		return nil
	}
	payload := cachePayload{
		Schema:      cacheSchemaVersion,
		Valid:       rep.Valid,
		Errors:      flattenDiags(rep.Errors),
		Warnings:    flattenDiags(rep.Warnings),
		Suggestions: flattenDiags(rep.Suggestions),
	}
	raw, err := msgpack.Marshal(&payload)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	tmp := c.pathFor(key) + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, c.pathFor(key))
}

func flattenDiags(diags []diag.Diagnostic) []cachedDiag {
	out := make([]cachedDiag, len(diags))
	for i, d := range diags {
		out[i] = cachedDiag{
			Sev:   uint8(d.Severity),
			Code:  uint16(d.Code),
			Msg:   d.Message,
			Start: d.Primary.Start,
			End:   d.Primary.End,
		}
	}
	return out
}

func restoreDiags(cached []cachedDiag, file source.FileID) []diag.Diagnostic {
	if len(cached) == 0 {
		return nil
	}
	out := make([]diag.Diagnostic, len(cached))
	for i, cd := range cached {
		out[i] = diag.Diagnostic{
			Severity: diag.Severity(cd.Sev),
			Code:     diag.Code(cd.Code),
			Message:  cd.Msg,
			Primary:  source.Span{File: file, Start: cd.Start, End: cd.End},
		}
	}
	return out
}
