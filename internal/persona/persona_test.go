package persona

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadParsesPersonaFile(t *testing.T) {
	content := "const ASSISTANT_NAME = \"Astrid\";\n" +
		"const SYSTEM_PROMPT = `\nYou are Astrid, a dry-witted home assistant.\nAnswer in Swedish unless asked otherwise.\n`;\n"

	path := filepath.Join(t.TempDir(), "persona.js")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	p := Load(path)

	if p.Name != "Astrid" {
		t.Errorf("name = %q, want Astrid", p.Name)
	}
	want := "You are Astrid, a dry-witted home assistant.\nAnswer in Swedish unless asked otherwise."
	if p.Instructions != want {
		t.Errorf("instructions = %q, want %q", p.Instructions, want)
	}
}

func TestLoadSingleQuotedName(t *testing.T) {
	content := "const ASSISTANT_NAME = 'Nova';\nconst SYSTEM_PROMPT = `Hi.`;\n"

	path := filepath.Join(t.TempDir(), "persona.js")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	p := Load(path)
	if p.Name != "Nova" {
		t.Errorf("name = %q, want Nova", p.Name)
	}
}

func TestLoadIgnoresOtherTemplateLiterals(t *testing.T) {
	content := "const ASSISTANT_NAME = \"Astrid\";\n" +
		"const SYSTEM_PROMPT = `You are Astrid.`;\n" +
		"const GREETING = `Hej! Vad kan jag hjälpa till med?`;\n"

	path := filepath.Join(t.TempDir(), "persona.js")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	p := Load(path)
	if p.Instructions != "You are Astrid." {
		t.Errorf("instructions = %q, capture widened past the prompt literal", p.Instructions)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	p := Load(filepath.Join(t.TempDir(), "does-not-exist.js"))

	if p.Name != defaultName {
		t.Errorf("name = %q, want default %q", p.Name, defaultName)
	}
	if p.Instructions != defaultInstructions {
		t.Errorf("instructions = %q, want default", p.Instructions)
	}
}

func TestLoadFileWithoutMarkersKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "persona.js")
	if err := os.WriteFile(path, []byte("// nothing useful here\n"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	p := Load(path)
	if p.Name != defaultName || p.Instructions != defaultInstructions {
		t.Errorf("expected defaults, got %+v", p)
	}
}
