package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		prefix string
		cmd    string
		args   []string
		ok     bool
	}{
		{"bare command", "!ping", "!", "ping", []string{}, true},
		{"args keep case", "!Echo Hello World", "!", "echo", []string{"Hello", "World"}, true},
		{"collapses whitespace", "!roll   2 \t 3  ", "!", "roll", []string{"2", "3"}, true},
		{"space after prefix", "! ping", "!", "ping", []string{}, true},
		{"multi-char prefix", "bot.ping", "bot.", "ping", []string{}, true},
		{"prefix ignores case", "BOT.ping x", "bot.", "ping", []string{"x"}, true},
		{"no prefix", "hello there", "!", "", nil, false},
		{"prefix not at start", "say !ping", "!", "", nil, false},
		{"prefix only", "!", "!", "", nil, false},
		{"prefix and blanks", "!   ", "!", "", nil, false},
		{"shorter than prefix", "b", "bot.", "", nil, false},
		{"empty text", "", "!", "", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, args, ok := Parse(tt.text, tt.prefix)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.cmd, name)
			assert.Equal(t, tt.args, args)
		})
	}
}
