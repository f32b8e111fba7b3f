package extract

import (
	"testing"

	"studybuddy-service/internal/domain"
)

func TestTextPlainPassesThrough(t *testing.T) {
	doc := domain.DocumentUpload{
		ContentType: "text/plain",
		Data:        []byte("hello notes"),
	}
	text, err := Text(doc)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if text != "hello notes" {
		t.Fatalf("expected passthrough, got %q", text)
	}
}

func TestUnsupportedTypeYieldsEmpty(t *testing.T) {
	doc := domain.DocumentUpload{
		ContentType: "image/png",
		Data:        []byte{0x89, 0x50, 0x4e, 0x47},
	}
	text, err := Text(doc)
	if err != nil {
		t.Fatalf("expected silent empty result, got %v", err)
	}
	if text != "" {
		t.Fatalf("expected empty text, got %q", text)
	}
}

func TestCorruptPDFReturnsError(t *testing.T) {
	doc := domain.DocumentUpload{
		ContentType: "application/pdf",
		Data:        []byte("not a pdf at all"),
	}
	if _, err := Text(doc); err == nil {
		t.Fatalf("expected error for corrupt pdf")
	}
}
