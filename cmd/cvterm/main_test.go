package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/cvterm/internal/resume"
)

func TestLoadResume(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) string {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(body), 0644); err != nil {
			t.Fatal(err)
		}
		return path
	}

	t.Run("missing file fails", func(t *testing.T) {
		path := filepath.Join(dir, "nope.json")
		_, err := loadResume(path)
		if !errors.Is(err, resume.ErrNotFound) {
			t.Fatalf("err = %v, want ErrNotFound", err)
		}
		if !strings.Contains(err.Error(), "cannot find "+path) {
			t.Errorf("message = %q", err)
		}
	})

	t.Run("invalid file falls back", func(t *testing.T) {
		r, err := loadResume(write("bad.json", "{not json"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if r.Contact.Name != "Error" {
			t.Errorf("name = %q, want fallback", r.Contact.Name)
		}
	})

	t.Run("valid file", func(t *testing.T) {
		r, err := loadResume(write("ok.yaml", "contact:\n  name: Ada\n"))
		if err != nil {
			t.Fatal(err)
		}
		if r.Contact.Name != "Ada" {
			t.Errorf("name = %q", r.Contact.Name)
		}
	})
}
