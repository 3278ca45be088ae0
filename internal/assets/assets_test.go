package assets

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestEmbeddedLoader_Themes(t *testing.T) {
	loader := NewEmbeddedLoader()

	for _, name := range []string{"light", "dark"} {
		css, err := loader.LoadTheme(name)
		if err != nil {
			t.Errorf("LoadTheme(%q) unexpected error: %v", name, err)
			continue
		}
		if !strings.Contains(css, ".message.sent") {
			t.Errorf("theme %q missing sent-bubble styling", name)
		}
	}

	if _, err := loader.LoadTheme("sepia"); !errors.Is(err, ErrThemeNotFound) {
		t.Errorf("LoadTheme(sepia) error = %v, want ErrThemeNotFound", err)
	}
}

func TestEmbeddedLoader_Template(t *testing.T) {
	loader := NewEmbeddedLoader()

	tmpl, err := loader.LoadTemplate(DefaultTemplate)
	if err != nil {
		t.Fatalf("LoadTemplate(%q) unexpected error: %v", DefaultTemplate, err)
	}
	for _, want := range []string{"chat-container", "chat-header", "{{.Width}}", "{{.Theme}}"} {
		if !strings.Contains(tmpl, want) {
			t.Errorf("chat template missing %q", want)
		}
	}

	if _, err := loader.LoadTemplate("nope"); !errors.Is(err, ErrTemplateNotFound) {
		t.Errorf("LoadTemplate(nope) error = %v, want ErrTemplateNotFound", err)
	}
}

func TestValidateAssetName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple name", "light", false},
		{"with dash", "wa-dark", false},
		{"empty", "", true},
		{"path separator", "a/b", true},
		{"backslash", `a\b`, true},
		{"dot traversal", "..", true},
		{"extension sneak", "light.css", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAssetName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateAssetName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidAssetName) {
				t.Errorf("error %v is not ErrInvalidAssetName", err)
			}
		})
	}
}

func TestFilesystemLoader(t *testing.T) {
	base := t.TempDir()
	if err := os.MkdirAll(filepath.Join(base, "styles"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(base, "styles", "custom.css"), []byte("body {}"), 0o644); err != nil {
		t.Fatal(err)
	}

	loader, err := NewFilesystemLoader(base)
	if err != nil {
		t.Fatalf("NewFilesystemLoader() unexpected error: %v", err)
	}

	css, err := loader.LoadTheme("custom")
	if err != nil {
		t.Fatalf("LoadTheme(custom) unexpected error: %v", err)
	}
	if css != "body {}" {
		t.Errorf("LoadTheme(custom) = %q", css)
	}

	if _, err := loader.LoadTheme("absent"); !errors.Is(err, ErrThemeNotFound) {
		t.Errorf("LoadTheme(absent) error = %v, want ErrThemeNotFound", err)
	}
	if _, err := loader.LoadTemplate("absent"); !errors.Is(err, ErrTemplateNotFound) {
		t.Errorf("LoadTemplate(absent) error = %v, want ErrTemplateNotFound", err)
	}
}

func TestNewFilesystemLoader_Invalid(t *testing.T) {
	if _, err := NewFilesystemLoader(""); !errors.Is(err, ErrInvalidBasePath) {
		t.Errorf("empty path error = %v, want ErrInvalidBasePath", err)
	}
	if _, err := NewFilesystemLoader("/does/not/exist"); !errors.Is(err, ErrInvalidBasePath) {
		t.Errorf("missing dir error = %v, want ErrInvalidBasePath", err)
	}

	file := filepath.Join(t.TempDir(), "afile")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewFilesystemLoader(file); !errors.Is(err, ErrInvalidBasePath) {
		t.Errorf("non-dir error = %v, want ErrInvalidBasePath", err)
	}
}

func TestResolver_Fallback(t *testing.T) {
	base := t.TempDir()
	if err := os.MkdirAll(filepath.Join(base, "styles"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(base, "styles", "light.css"), []byte("/* custom */"), 0o644); err != nil {
		t.Fatal(err)
	}

	resolver, err := NewResolver(base)
	if err != nil {
		t.Fatalf("NewResolver() unexpected error: %v", err)
	}
	if !resolver.HasCustomLoader() {
		t.Error("HasCustomLoader() = false, want true")
	}

	// Custom asset wins.
	css, err := resolver.LoadTheme("light")
	if err != nil {
		t.Fatalf("LoadTheme(light) unexpected error: %v", err)
	}
	if css != "/* custom */" {
		t.Errorf("LoadTheme(light) = %q, want custom content", css)
	}

	// Missing custom asset falls back to embedded.
	if _, err := resolver.LoadTheme("dark"); err != nil {
		t.Errorf("fallback LoadTheme(dark) unexpected error: %v", err)
	}
	if _, err := resolver.LoadTemplate(DefaultTemplate); err != nil {
		t.Errorf("fallback LoadTemplate unexpected error: %v", err)
	}

	// Truly absent everywhere stays not-found.
	if _, err := resolver.LoadTheme("sepia"); !errors.Is(err, ErrThemeNotFound) {
		t.Errorf("LoadTheme(sepia) error = %v, want ErrThemeNotFound", err)
	}
}

func TestResolver_EmbeddedOnly(t *testing.T) {
	resolver, err := NewResolver("")
	if err != nil {
		t.Fatalf("NewResolver(\"\") unexpected error: %v", err)
	}
	if resolver.HasCustomLoader() {
		t.Error("HasCustomLoader() = true, want false")
	}
	if _, err := resolver.LoadTheme(DefaultTheme); err != nil {
		t.Errorf("LoadTheme(default) unexpected error: %v", err)
	}
}
