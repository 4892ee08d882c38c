package persona

import (
	"os"
	"regexp"
	"strings"
)

// Persona is the assistant identity: the display name served to the
// frontend and the system instruction sent with every backend call. The
// instruction text itself is opaque to the server.
type Persona struct {
	Name         string `json:"name"`
	Instructions string `json:"instructions"`
}

// The persona file is a JS module shared with the static frontend: the
// instruction lives in a backtick template literal and the name in a
// `const ASSISTANT_NAME = "...";` declaration. Parsing it here keeps a
// single source of truth for both sides.
var (
	// Anchored on the declaration and non-greedy, so other template
	// literals elsewhere in the file don't widen the capture.
	instructionsRe = regexp.MustCompile("const SYSTEM_PROMPT\\s*=\\s*`([\\s\\S]*?)`")
	nameRe         = regexp.MustCompile(`const ASSISTANT_NAME = ["'](.*?)["'];`)
)

const (
	defaultName         = "Nova AI"
	defaultInstructions = "You are a helpful AI."
)

// Load reads the persona file at path. A missing or unparseable file falls
// back to safe defaults; the server always has a persona.
func Load(path string) *Persona {
	p := &Persona{
		Name:         defaultName,
		Instructions: defaultInstructions,
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return p
	}

	if m := instructionsRe.FindSubmatch(data); m != nil {
		p.Instructions = strings.TrimSpace(string(m[1]))
	}
	if m := nameRe.FindSubmatch(data); m != nil {
		p.Name = string(m[1])
	}

	return p
}
