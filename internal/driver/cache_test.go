package driver

import (
	"os"
	"reflect"
	"testing"

	"holoscript/internal/source"
	"holoscript/internal/validator"
)

func loadScript(t *testing.T, content string) (*source.FileSet, *source.File) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("cache.holo", []byte(content))
	return fs, fs.Get(id)
}

func TestCacheRoundTrip(t *testing.T) {
	cache, err := OpenCacheAt(t.TempDir())
	if err != nil {
		t.Fatalf("OpenCacheAt error: %v", err)
	}

	_, file := loadScript(t, "{ \"open\nfrobnicate(1)\nvar x = 1;\n")
	lint := validator.DefaultOptions()

	rep := validator.New(lint).Validate(file)
	key := cacheKey(file, lint)
	if err := cache.Store(key, rep); err != nil {
		t.Fatalf("Store error: %v", err)
	}

	restored, ok := cache.Load(key, file.ID)
	if !ok {
		t.Fatalf("expected cache hit")
	}
	if !reflect.DeepEqual(rep, restored) {
		t.Fatalf("cached report differs:\nwant %+v\ngot  %+v", rep, restored)
	}
}

func TestCacheMissOnDifferentContent(t *testing.T) {
	cache, err := OpenCacheAt(t.TempDir())
	if err != nil {
		t.Fatalf("OpenCacheAt error: %v", err)
	}

	_, file := loadScript(t, "print(\"a\");\n")
	lint := validator.DefaultOptions()
	if err := cache.Store(cacheKey(file, lint), validator.New(lint).Validate(file)); err != nil {
		t.Fatalf("Store error: %v", err)
	}

	_, other := loadScript(t, "print(\"b\");\n")
	if _, ok := cache.Load(cacheKey(other, lint), other.ID); ok {
		t.Fatalf("different content should miss")
	}
}

func TestCacheMissOnDifferentConfig(t *testing.T) {
	cache, err := OpenCacheAt(t.TempDir())
	if err != nil {
		t.Fatalf("OpenCacheAt error: %v", err)
	}

	_, file := loadScript(t, "print(\"a\");\n")
	lint := validator.DefaultOptions()
	if err := cache.Store(cacheKey(file, lint), validator.New(lint).Validate(file)); err != nil {
		t.Fatalf("Store error: %v", err)
	}

	tuned := validator.DefaultOptions()
	tuned.MaxLoopDepth = 5
	if _, ok := cache.Load(cacheKey(file, tuned), file.ID); ok {
		t.Fatalf("changed config should miss")
	}
}

func TestCacheMissOnDifferentCallLists(t *testing.T) {
	cache, err := OpenCacheAt(t.TempDir())
	if err != nil {
		t.Fatalf("OpenCacheAt error: %v", err)
	}

	// createHologram без конструктора ядра -> предупреждение при дефолтах
	_, file := loadScript(t, "createHologram(\"x\");\n")
	lint := validator.DefaultOptions()

	warmed := validateWithCache(file, lint, cache)
	if len(warmed.Warnings) == 0 {
		t.Fatalf("expected a core warning with default options")
	}

	relaxed := validator.DefaultOptions()
	relaxed.FrameworkCalls = nil
	rep := validateWithCache(file, relaxed, cache)
	if len(rep.Warnings) != 0 {
		t.Fatalf("FrameworkCalls cleared but still got %d warning(s)", len(rep.Warnings))
	}

	tuned := validator.DefaultOptions()
	tuned.ComputeCalls = append(tuned.ComputeCalls, "render")
	if _, ok := cache.Load(cacheKey(file, tuned), file.ID); ok {
		t.Fatalf("changed ComputeCalls should miss")
	}
}

func TestCacheIgnoresCorruptEntries(t *testing.T) {
	dir := t.TempDir()
	cache, err := OpenCacheAt(dir)
	if err != nil {
		t.Fatalf("OpenCacheAt error: %v", err)
	}

	_, file := loadScript(t, "print(\"a\");\n")
	lint := validator.DefaultOptions()
	key := cacheKey(file, lint)
	if err := os.WriteFile(cache.pathFor(key), []byte("garbage"), 0o600); err != nil {
		t.Fatalf("write corrupt entry: %v", err)
	}

	if _, ok := cache.Load(key, file.ID); ok {
		t.Fatalf("corrupt entry should miss")
	}
}

func TestValidateWithCacheMatchesDirect(t *testing.T) {
	cache, err := OpenCacheAt(t.TempDir())
	if err != nil {
		t.Fatalf("OpenCacheAt error: %v", err)
	}

	_, file := loadScript(t, "{ \"open\nloadPlugin(\"x\")\n")
	lint := validator.DefaultOptions()

	direct := validator.New(lint).Validate(file)
	cold := validateWithCache(file, lint, cache)
	warm := validateWithCache(file, lint, cache)

	if !reflect.DeepEqual(direct, cold) || !reflect.DeepEqual(direct, warm) {
		t.Fatalf("cache changed observable report")
	}
}
