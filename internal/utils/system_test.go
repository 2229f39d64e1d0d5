package utils

import (
	"strings"
	"testing"
)

func TestGetUsername(t *testing.T) {
	username, err := GetUsername()
	if err != nil {
		t.Fatalf("GetUsername failed: %v", err)
	}
	if username == "" {
		t.Fatal("Expected non-empty username")
	}
	if strings.Contains(username, `\`) {
		t.Fatalf("Expected domain prefix to be stripped, got %q", username)
	}
}
