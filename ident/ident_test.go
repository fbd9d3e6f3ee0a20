package ident

import "testing"

func TestGenerateID(t *testing.T) {
	id, err := GenerateID(16)
	if err != nil {
		t.Fatalf("GenerateID failed: %v", err)
	}

	// 16 bytes = 32 hex chars
	if len(id) != 32 {
		t.Errorf("expected 32 hex chars, got %d", len(id))
	}

	// IDs should be unique
	id2, err := GenerateID(16)
	if err != nil {
		t.Fatalf("GenerateID failed: %v", err)
	}
	if id == id2 {
		t.Error("expected distinct IDs from consecutive calls")
	}
}

func TestGenerateLinkToken(t *testing.T) {
	token := GenerateLinkToken()
	if token == "" {
		t.Fatal("expected non-empty link token")
	}

	if token == GenerateLinkToken() {
		t.Error("expected distinct tokens from consecutive calls")
	}
}
