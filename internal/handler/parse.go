package handler

import "strings"

// Parse splits text into a command name and its args when it starts with
// prefix. The prefix comparison ignores case; the name is lower-cased and the
// args keep their case. ok is false for text without the prefix or with nothing
// after it.
func Parse(text, prefix string) (name string, args []string, ok bool) {
	if len(text) < len(prefix) || !strings.EqualFold(text[:len(prefix)], prefix) {
		return "", nil, false
	}

	fields := strings.Fields(text[len(prefix):])
	if len(fields) == 0 {
		return "", nil, false
	}
	return strings.ToLower(fields[0]), fields[1:], true
}
