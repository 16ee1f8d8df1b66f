package i18n

import "testing"

func TestResolveHonorsQValues(t *testing.T) {
	b, err := Load("../../locales", "pt", []string{"pt", "en"})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := b.Resolve("pt;q=0.8, en;q=0.9"); got != "en" {
		t.Fatalf("expected en, got %s", got)
	}
	if got := b.Resolve("pt-BR,pt;q=0.9"); got != "pt" {
		t.Fatalf("expected pt for regional variant, got %s", got)
	}
	if got := b.Resolve("ja"); got != "pt" {
		t.Fatalf("expected fallback for unsupported language, got %s", got)
	}
	if got := b.Resolve(""); got != "pt" {
		t.Fatalf("expected fallback for empty header, got %s", got)
	}
}

func TestTranslateFallsBack(t *testing.T) {
	b, err := Load("../../locales", "pt", []string{"pt", "en"})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := b.T("en", "grid.all"); got != "All" {
		t.Fatalf("expected english label, got %q", got)
	}
	if got := b.T("fr", "grid.all"); got != "Todos" {
		t.Fatalf("expected fallback label, got %q", got)
	}
	if got := b.T("en", "missing.key"); got != "missing.key" {
		t.Fatalf("expected key echo, got %q", got)
	}
	if !b.IsSupported("EN") || b.IsSupported("ja") {
		t.Fatalf("unexpected support set %v", b.Supported())
	}
}

func TestLoadRequiresFallback(t *testing.T) {
	if _, err := Load(t.TempDir(), "pt", nil); err == nil {
		t.Fatal("expected error when fallback dictionary is missing")
	}
}
