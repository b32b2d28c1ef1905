package shell

import (
	"slices"
	"strings"

	"github.com/kballard/go-shellquote"

	"github.com/domino14/anagame/letterdist"
)

// ShellCompleter provides context-aware autocomplete for shell commands
type ShellCompleter struct {
	sc *ShellController
}

func NewShellCompleter(sc *ShellController) *ShellCompleter {
	return &ShellCompleter{sc: sc}
}

// CommandMetadata holds autocomplete information for a command
type CommandMetadata struct {
	Options []string
	Args    []string
}

var commandMetadata = map[string]CommandMetadata{
	"new": {
		Options: []string{"-dist", "-fun", "-hand", "-time"},
	},
	"help": {
		Args: []string{"new", "set", "export", "scoring"},
	},
}

var commandNames = []string{
	"new", "hint", "show", "quit", "stats", "summary", "export", "anagrams",
	"info", "set", "help", "exit",
}

var commandAliases = []string{"n", "s", "h", "q", "a"}

var boolValues = []string{"true", "false"}
var distributionNames = []string{letterdist.Scrabble, letterdist.Uniform}

// Do implements the readline.AutoComplete interface
func (c *ShellCompleter) Do(line []rune, pos int) ([][]rune, int) {
	text := string(line[:pos])

	// A comma means the player is typing a guess.
	if strings.Contains(text, ",") {
		return nil, 0
	}

	fields, err := shellquote.Split(text)
	if err != nil {
		fields = strings.Fields(text)
	}
	endsWithSpace := len(text) > 0 && text[len(text)-1] == ' '

	var prefix string
	var completions []string

	if len(fields) == 0 || (len(fields) == 1 && !endsWithSpace) {
		if len(fields) == 1 {
			prefix = fields[0]
		}
		completions = commandNames
	} else {
		cmdName := fields[0]
		if !endsWithSpace {
			prefix = fields[len(fields)-1]
		}

		var lastCompleteField string
		if endsWithSpace {
			lastCompleteField = fields[len(fields)-1]
		} else if len(fields) > 1 {
			lastCompleteField = fields[len(fields)-2]
		}

		switch {
		case cmdName == "new" && lastCompleteField == "-dist":
			completions = distributionNames
		case cmdName == "set" && lastCompleteField == "set":
			completions = c.configKeys()
		case cmdName == "set" && lastCompleteField == "letter-distribution":
			completions = distributionNames
		case cmdName == "set" && lastCompleteField == "debug":
			completions = boolValues
		case cmdName == "set" && lastCompleteField == "corpus-encoding":
			completions = []string{"utf8", "latin1"}
		}

		if completions == nil {
			if metadata, exists := commandMetadata[cmdName]; exists {
				if strings.HasPrefix(prefix, "-") || len(metadata.Args) == 0 {
					completions = metadata.Options
				} else {
					completions = metadata.Args
				}
			}
		}
	}

	var matches [][]rune
	for _, completion := range completions {
		if strings.HasPrefix(completion, prefix) {
			matches = append(matches, []rune(completion[len(prefix):]))
		}
	}
	return matches, len(prefix)
}

func (c *ShellCompleter) configKeys() []string {
	if c.sc == nil || c.sc.config == nil {
		return nil
	}
	keys := c.sc.config.AllKeys()
	slices.Sort(keys)
	return keys
}
