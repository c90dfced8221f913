package cmd

import "strings"

// Embed is a rich reply block. Transports without rich formatting render it as text.
type Embed struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Color       int    `yaml:"color"`
}

// Payload is what gets sent back to a chat.
type Payload struct {
	Content string
	Embed   *Embed
}

// Text returns a content-only payload.
func Text(s string) Payload {
	return Payload{Content: s}
}

// IsZero reports whether nothing would be sent.
func (p Payload) IsZero() bool {
	return p.Content == "" && p.Embed == nil
}

// String renders the payload as plain text.
func (p Payload) String() string {
	var parts []string
	if p.Content != "" {
		parts = append(parts, p.Content)
	}
	if p.Embed != nil {
		if p.Embed.Title != "" {
			parts = append(parts, p.Embed.Title)
		}
		if p.Embed.Description != "" {
			parts = append(parts, p.Embed.Description)
		}
	}
	return strings.Join(parts, "\n")
}
