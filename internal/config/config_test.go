package config

import (
	"errors"
	"strings"
	"testing"
)

// mockBackend is an in-memory ConfigBackend.
type mockBackend struct {
	strings map[string]string
	ints    map[string]int
}

func newMockBackend() *mockBackend {
	return &mockBackend{strings: map[string]string{}, ints: map[string]int{}}
}

func (m *mockBackend) GetString(key string) (string, bool, error) {
	v, ok := m.strings[key]
	return v, ok, nil
}

func (m *mockBackend) GetInt(key string) (int, bool, error) {
	v, ok := m.ints[key]
	return v, ok, nil
}

func (m *mockBackend) SetString(key, val string) error {
	m.strings[key] = val
	return nil
}

func (m *mockBackend) SetInt(key string, val int) error {
	m.ints[key] = val
	return nil
}

func (m *mockBackend) Delete(key string) error {
	delete(m.strings, key)
	delete(m.ints, key)
	return nil
}

// mockKeychain is a test double for the platform secret store.
type mockKeychain struct {
	data map[string]string
	err  error
}

func (m *mockKeychain) Get(service, account string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	v, ok := m.data[service+"/"+account]
	if !ok {
		return "", errors.New("not found")
	}
	return v, nil
}

func (m *mockKeychain) Set(service, account, value string) error {
	if m.err != nil {
		return m.err
	}
	if m.data == nil {
		m.data = map[string]string{}
	}
	m.data[service+"/"+account] = value
	return nil
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, s := range specs {
		if s.env != "" {
			t.Setenv(s.env, "")
		}
	}
}

// TestDefaults verifies all default values when no backend or env values exist.
func TestDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := loadWith(newMockBackend(), &mockKeychain{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != 4200 {
		t.Errorf("Server.Port = %d, want 4200", cfg.Server.Port)
	}
	if cfg.Gemini.Model != "gemini-2.5-flash" {
		t.Errorf("Gemini.Model = %q, want gemini-2.5-flash", cfg.Gemini.Model)
	}
	if cfg.Transcribe.PollInterval != "1s" {
		t.Errorf("Transcribe.PollInterval = %q, want 1s", cfg.Transcribe.PollInterval)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level = %q, want info", cfg.Log.Level)
	}
	if cfg.Storage.DataDir == "" {
		t.Error("Storage.DataDir should have a platform default")
	}
}

// TestMissingAPIKeyIsNotAnError: AI degrades instead of blocking startup.
func TestMissingAPIKeyIsNotAnError(t *testing.T) {
	clearEnv(t)

	cfg, err := loadWith(newMockBackend(), &mockKeychain{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Gemini.APIKey != "" {
		t.Errorf("Gemini.APIKey = %q, want empty", cfg.Gemini.APIKey)
	}
}

func TestBackendValues(t *testing.T) {
	clearEnv(t)

	b := newMockBackend()
	b.ints["server.port"] = 9000
	b.strings["gemini.model"] = "gemini-2.5-pro"

	cfg, err := loadWith(b, &mockKeychain{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != 9000 {
		t.Errorf("Server.Port = %d, want 9000", cfg.Server.Port)
	}
	if cfg.Gemini.Model != "gemini-2.5-pro" {
		t.Errorf("Gemini.Model = %q, want gemini-2.5-pro", cfg.Gemini.Model)
	}
}

// TestEnvOverride verifies environment variables win over backend values.
func TestEnvOverride(t *testing.T) {
	clearEnv(t)

	b := newMockBackend()
	b.ints["server.port"] = 9000
	t.Setenv("MYPLACE_SERVER_PORT", "4300")
	t.Setenv("GEMINI_API_KEY", "env-key")

	cfg, err := loadWith(b, &mockKeychain{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != 4300 {
		t.Errorf("Server.Port = %d, want 4300", cfg.Server.Port)
	}
	if cfg.Gemini.APIKey != "env-key" {
		t.Errorf("Gemini.APIKey = %q, want env-key", cfg.Gemini.APIKey)
	}
}

// TestKeychainFallbackForGeminiKey verifies the secret store is consulted
// when no env var is set.
func TestKeychainFallbackForGeminiKey(t *testing.T) {
	clearEnv(t)

	kc := &mockKeychain{data: map[string]string{
		"myplace/gemini_api_key": "  keychain-key\n",
	}}

	cfg, err := loadWith(newMockBackend(), kc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Gemini.APIKey != "keychain-key" {
		t.Errorf("Gemini.APIKey = %q, want trimmed keychain value", cfg.Gemini.APIKey)
	}
}

func TestShowAllHidesSecrets(t *testing.T) {
	cfg := defaults()
	cfg.Gemini.APIKey = "super-secret"

	for _, k := range ShowAll(cfg) {
		if k.Key == "gemini.api_key" {
			t.Error("ShowAll should not list the secret key")
		}
		if strings.Contains(k.Value, "super-secret") {
			t.Errorf("secret leaked through %s", k.Key)
		}
	}
}

func TestValidKeys(t *testing.T) {
	keys := ValidKeys()
	want := map[string]bool{
		"server.port": true, "storage.data_dir": true, "gemini.model": true,
		"transcribe.poll_interval": true, "log.level": true,
	}
	for _, k := range keys {
		if !want[k] {
			t.Errorf("unexpected key %q", k)
		}
		delete(want, k)
	}
	for k := range want {
		t.Errorf("missing key %q", k)
	}
}

// TestGetAPIToken verifies first use mints and persists a token, and later
// calls return the stored one.
func TestGetAPIToken(t *testing.T) {
	kc := &mockKeychain{}

	token, err := GetAPIToken(kc)
	if err != nil {
		t.Fatalf("GetAPIToken: %v", err)
	}
	if len(token) != 64 {
		t.Errorf("token length = %d, want 64 hex chars", len(token))
	}

	again, err := GetAPIToken(kc)
	if err != nil {
		t.Fatalf("GetAPIToken (second): %v", err)
	}
	if again != token {
		t.Error("expected stored token to be reused")
	}
}

func TestGetAPIToken_KeychainBroken(t *testing.T) {
	kc := &mockKeychain{err: errors.New("no secret store")}

	if _, err := GetAPIToken(kc); err == nil {
		t.Fatal("expected error when the keychain cannot persist")
	}
}
