package cmdmsg

import (
	"strings"
)

// TextNormalizer rewrites message content before it is parsed.
type TextNormalizer func(text string) string

// ParsedCommand is the result of ResolveCommandMessage.
type ParsedCommand struct {
	Command    string
	Options    []string
	RawOptions string
}

// ResolveCommandMessage resolves the command and its arguments from message
// content. The first prefixLength runes are dropped, the rest is split on
// whitespace, and the first token becomes the lower-cased command.
// A nil normalizer leaves the content as is.
func ResolveCommandMessage(content string, prefixLength int, normalizer TextNormalizer) ParsedCommand {
	if normalizer != nil {
		content = normalizer(content)
	}
	fields := strings.Fields(stripPrefix(content, prefixLength))

	parsed := ParsedCommand{Options: []string{}}
	if len(fields) == 0 {
		return parsed
	}
	parsed.Command = strings.ToLower(fields[0])
	parsed.Options = append(parsed.Options, fields[1:]...)
	parsed.RawOptions = strings.Join(parsed.Options, " ")
	return parsed
}

func stripPrefix(content string, prefixLength int) string {
	if prefixLength <= 0 {
		return content
	}
	for i := range content {
		if prefixLength == 0 {
			return content[i:]
		}
		prefixLength--
	}
	return ""
}
