package bot

import (
	"strings"
	"unicode"
)

// Command is a parsed "/name@bot arg1 arg2" message.
type Command struct {
	Name string
	Args []string
}

// ArgText joins the arguments with single spaces.
func (c Command) ArgText() string {
	return strings.Join(c.Args, " ")
}

// ParseCommand reads a slash command. The bot mention suffix is dropped and
// the name is lower-cased. Plain text is not a command.
func ParseCommand(text string) (Command, bool) {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "/") {
		return Command{}, false
	}
	fields := strings.FieldsFunc(text[1:], unicode.IsSpace)
	if len(fields) == 0 {
		return Command{}, false
	}

	name := fields[0]
	if at := strings.IndexByte(name, '@'); at >= 0 {
		name = name[:at]
	}
	name = strings.ToLower(name)
	if name == "" {
		return Command{}, false
	}
	return Command{Name: name, Args: fields[1:]}, true
}

// splitTrailing separates the last argument (usually a date) from the rest,
// which form a possibly multi-word name.
func splitTrailing(args []string) (head string, last string) {
	switch len(args) {
	case 0:
		return "", ""
	case 1:
		return "", args[0]
	default:
		return strings.Join(args[:len(args)-1], " "), args[len(args)-1]
	}
}
