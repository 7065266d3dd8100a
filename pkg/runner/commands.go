package runner

import (
	"encoding/json"
	"strings"
)

// Command is a parsed input line.
type Command string

const (
	CommandDraw    Command = "draw"
	CommandReset   Command = "reset"
	CommandRestart Command = "restart"
	CommandState   Command = "state"
	CommandHelp    Command = "help"
	CommandQuit    Command = "quit"
)

var aliases = map[string]Command{
	"":        CommandDraw,
	"d":       CommandDraw,
	"draw":    CommandDraw,
	"r":       CommandReset,
	"reset":   CommandReset,
	"restart": CommandRestart,
	"s":       CommandState,
	"state":   CommandState,
	"?":       CommandHelp,
	"h":       CommandHelp,
	"help":    CommandHelp,
	"q":       CommandQuit,
	"quit":    CommandQuit,
	"exit":    CommandQuit,
}

// HelpText lists the commands understood by ParseCommand.
const HelpText = `enter or "draw"  draw a slip
"reset"          put the envelope back at rest
"restart"        put every slip back in the envelope
"state"          show how many slips are left
"quit"           leave`

// ParseCommand maps a line to a command. A JSON string line ("draw") is
// accepted as well, so scripted clients can quote their input.
func ParseCommand(line string) (Command, bool) {
	line = strings.TrimSpace(line)

	var quoted string
	if strings.HasPrefix(line, `"`) && json.Unmarshal([]byte(line), &quoted) == nil {
		line = strings.TrimSpace(quoted)
	}

	cmd, ok := aliases[strings.ToLower(line)]
	return cmd, ok
}
