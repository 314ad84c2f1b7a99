package llm

import "testing"

func TestResponseCache(t *testing.T) {
	cache := NewResponseCache()

	key := cacheKey("gpt-4o-mini", "system", "prompt")
	if _, ok := cache.Get(key); ok {
		t.Fatal("expected miss on empty cache")
	}

	cache.Set(key, "hello")
	text, ok := cache.Get(key)
	if !ok || text != "hello" {
		t.Fatalf("Get = (%q, %v), want (hello, true)", text, ok)
	}
}

func TestCacheKey_DistinguishesFields(t *testing.T) {
	a := cacheKey("m", "sys", "prompt")
	b := cacheKey("m", "sysprompt", "")
	if a == b {
		t.Error("keys for different (system, prompt) splits must differ")
	}

	if cacheKey("m1", "s", "p") == cacheKey("m2", "s", "p") {
		t.Error("keys for different models must differ")
	}
}
