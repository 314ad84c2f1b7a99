package config

import (
	"os"
	"testing"
)

func validConfig() Config {
	cfg := Config{HTTP: HTTPConfig{Port: 8080}}
	cfg.ApplyDefaults()
	return cfg
}

func TestValidate_InvalidBackend(t *testing.T) {
	cfg := validConfig()
	cfg.Retrieval.Backend = "chroma"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for invalid backend")
	}

	expected := `retrieval.backend must be "lexical", "sqlite" or "redis", got "chroma"`
	if err.Error() != expected {
		t.Errorf("unexpected error message:\ngot:  %q\nwant: %q", err.Error(), expected)
	}
}

func TestValidate_ValidBackends(t *testing.T) {
	for _, backend := range []string{"lexical", "sqlite", "redis"} {
		t.Run("backend="+backend, func(t *testing.T) {
			cfg := validConfig()
			cfg.Retrieval.Backend = backend
			if backend == "redis" {
				cfg.Database.Addrs = []string{"localhost:6379"}
			}

			if err := cfg.Validate(); err != nil {
				t.Fatalf("unexpected error for valid backend %q: %v", backend, err)
			}
		})
	}
}

func TestValidate_RedisBackendRequiresAddrs(t *testing.T) {
	cfg := validConfig()
	cfg.Retrieval.Backend = "redis"
	cfg.Database.Addrs = nil

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for redis backend without addrs")
	}
}

func TestValidate_InvalidPort(t *testing.T) {
	cfg := validConfig()
	cfg.HTTP.Port = 0

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for invalid port")
	}
}

func TestValidate_HashEmbeddingsRequireOptIn(t *testing.T) {
	cfg := validConfig()
	cfg.Embedding.Provider = "hash"

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for hash provider without opt-in")
	}

	cfg.Embedding.AllowHashEmbeddings = true
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error with opt-in: %v", err)
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{HTTP: HTTPConfig{Port: 8080}}
	cfg.ApplyDefaults()

	if cfg.Retrieval.Backend != "lexical" {
		t.Errorf("default backend = %q, want lexical", cfg.Retrieval.Backend)
	}
	if cfg.Retrieval.TopK != 2 {
		t.Errorf("default top_k = %d, want 2", cfg.Retrieval.TopK)
	}
	if cfg.Retrieval.FallbackDistance != 0.8 {
		t.Errorf("default fallback_distance = %g, want 0.8", cfg.Retrieval.FallbackDistance)
	}
	if cfg.Embedding.Dimensions != 1536 {
		t.Errorf("default dimensions = %d, want 1536", cfg.Embedding.Dimensions)
	}
}

func TestExpandEnvVars(t *testing.T) {
	os.Setenv("OUTREACH_TEST_KEY", "sk-secret")
	defer os.Unsetenv("OUTREACH_TEST_KEY")

	in := []byte("api_key: ${OUTREACH_TEST_KEY}\nmodel: ${OUTREACH_TEST_MODEL:-gpt-4o-mini}\n")
	out := string(expandEnvVars(in))

	want := "api_key: sk-secret\nmodel: gpt-4o-mini\n"
	if out != want {
		t.Errorf("expandEnvVars:\ngot:  %q\nwant: %q", out, want)
	}
}
