package cache

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ppiankov/questionbank/internal/model"
)

func TestMemoryCache(t *testing.T) {
	c := NewMemoryCache()

	if _, found := c.Get("missing"); found {
		t.Fatal("expected miss for unknown key")
	}

	value := []byte("hello")
	if err := c.Set("k", value); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	value[0] = 'j'

	got, found := c.Get("k")
	if !found {
		t.Fatal("expected hit after Set")
	}
	if string(got) != "hello" {
		t.Errorf("expected stored copy %q, got %q", "hello", got)
	}

	if err := c.Set("", value); err != ErrEmptyKey {
		t.Errorf("expected ErrEmptyKey, got %v", err)
	}

	_ = c.Delete("k")
	if _, found := c.Get("k"); found {
		t.Error("expected miss after Delete")
	}
}

func TestDiskCache_SurvivesNewInstance(t *testing.T) {
	dir := t.TempDir()

	first := NewDiskCache(dir)
	if err := first.Set("questions", []byte(`[1,2,3]`)); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	second := NewDiskCache(dir)
	got, found := second.Get("questions")
	if !found {
		t.Fatal("expected a fresh instance to see the persisted entry")
	}
	if string(got) != `[1,2,3]` {
		t.Errorf("unexpected value: %s", got)
	}
}

func TestDiskCache_CorruptEntryIsMiss(t *testing.T) {
	dir := t.TempDir()
	c := NewDiskCache(dir)

	if err := os.WriteFile(filepath.Join(dir, "questions.cache"), []byte("not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, found := c.Get("questions"); found {
		t.Error("expected corrupt entry to be treated as a miss")
	}
}

func TestDiskCache_DeleteMissing(t *testing.T) {
	c := NewDiskCache(t.TempDir())
	if err := c.Delete("nothing"); err != nil {
		t.Errorf("expected no error deleting a missing key, got %v", err)
	}
}

func TestDiskCache_Clear(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cache")
	c := NewDiskCache(dir)
	_ = c.Set("a", []byte("1"))

	if err := c.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Errorf("expected cache dir removed, stat err = %v", err)
	}
}

func TestLayeredCache_PromotesDiskHits(t *testing.T) {
	dir := t.TempDir()
	_ = NewDiskCache(dir).Set("k", []byte("v"))

	c := NewLayeredCache(dir)
	if _, found := c.memory.Get("k"); found {
		t.Fatal("memory layer should start empty")
	}

	got, found := c.Get("k")
	if !found || string(got) != "v" {
		t.Fatalf("expected disk hit, got %q found=%v", got, found)
	}
	if _, found := c.memory.Get("k"); !found {
		t.Error("expected disk hit to be promoted into memory")
	}
}

func TestLayeredCache_DeleteBothLayers(t *testing.T) {
	c := NewLayeredCache(t.TempDir())
	_ = c.Set("k", []byte("v"))

	if err := c.Delete("k"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, found := c.memory.Get("k"); found {
		t.Error("memory layer still holds deleted key")
	}
	if _, found := c.disk.Get("k"); found {
		t.Error("disk layer still holds deleted key")
	}
}

func TestQuestionStore_RoundTrip(t *testing.T) {
	store := NewQuestionStore(NewMemoryCache(), "")
	if store.Key() != model.DefaultCacheKey {
		t.Errorf("expected default key %q, got %q", model.DefaultCacheKey, store.Key())
	}

	if _, found := store.Get(); found {
		t.Fatal("expected empty store to miss")
	}

	in := []model.Question{
		{ID: 1, Question: "What is 2+2?", Subject: "Math"},
		{ID: 7, Question: "Name a noble gas.", Subject: "Chemistry"},
	}
	if err := store.Set(in); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	out, found := store.Get()
	if !found {
		t.Fatal("expected hit after Set")
	}
	if len(out) != len(in) {
		t.Fatalf("expected %d questions, got %d", len(in), len(out))
	}
	for i := range in {
		if out[i] != in[i] {
			t.Errorf("question %d: got %+v, want %+v", i, out[i], in[i])
		}
	}

	if err := store.Delete(); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, found := store.Get(); found {
		t.Error("expected miss after Delete")
	}
}
