// Package roles maps a requester's professional role to the analysis
// instructions appended to the research prompt.
package roles

import (
	"strings"

	"github.com/jonathan/client-research/internal/prompts"
)

// Key identifies a supported role.
type Key string

const (
	Strategist           Key = "strategist"
	BusinessDevelopment  Key = "business-development"
	ClientSuccessManager Key = "client-success-manager"

	// Unknown is returned by Parse for anything that is not a supported role.
	Unknown Key = ""
)

// UnknownInstructions is the instruction text for an unsupported role.
const UnknownInstructions = "# Unknown role"

const promptFile = "roles.json"

var displayNames = map[Key]string{
	Strategist:           "Strategist",
	BusinessDevelopment:  "Business Development",
	ClientSuccessManager: "Client Success Manager",
}

// All returns the supported roles in presentation order.
func All() []Key {
	return []Key{Strategist, BusinessDevelopment, ClientSuccessManager}
}

// Parse resolves a display name ("Business Development") or slug
// ("business-development"), ignoring case and surrounding whitespace.
func Parse(s string) Key {
	normalized := strings.ToLower(strings.TrimSpace(s))
	normalized = strings.Join(strings.Fields(normalized), " ")
	slug := strings.ReplaceAll(normalized, " ", "-")
	for _, k := range All() {
		if slug == string(k) {
			return k
		}
	}
	return Unknown
}

// Known reports whether k is a supported role.
func (k Key) Known() bool {
	_, ok := displayNames[k]
	return ok
}

// DisplayName returns the human-facing role name, or "Unknown" for unsupported keys.
func (k Key) DisplayName() string {
	if name, ok := displayNames[k]; ok {
		return name
	}
	return "Unknown"
}

func (k Key) String() string {
	return k.DisplayName()
}

// Instructions returns the focus instructions for k. Unsupported keys get
// UnknownInstructions.
func Instructions(k Key) string {
	if !k.Known() {
		return UnknownInstructions
	}
	text, err := prompts.Get(promptFile, string(k))
	if err != nil {
		return UnknownInstructions
	}
	return text
}
