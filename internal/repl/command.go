package repl

import "strings"

// Command enumerates everything the interactive loop understands. Dispatch
// is an explicit switch rather than a name-to-method table, so the compiler
// sees every branch.
type Command int

const (
	CommandUnknown Command = iota
	CommandHelp
	CommandList
	CommandAdd
	CommandAdvance
	CommandMove
	CommandRemove
	CommandClean
	CommandQuit
)

// menu lists the commands in the order HELP shows them.
var menu = []Command{
	CommandHelp,
	CommandList,
	CommandAdd,
	CommandAdvance,
	CommandMove,
	CommandRemove,
	CommandClean,
	CommandQuit,
}

func (c Command) String() string {
	switch c {
	case CommandHelp:
		return "HELP"
	case CommandList:
		return "LIST"
	case CommandAdd:
		return "ADD"
	case CommandAdvance:
		return "ADVANCE"
	case CommandMove:
		return "MOVE"
	case CommandRemove:
		return "REMOVE"
	case CommandClean:
		return "CLEAN"
	case CommandQuit:
		return "QUIT"
	default:
		return "UNKNOWN"
	}
}

// ParseCommand matches user input against the menu, case-insensitively.
func ParseCommand(s string) (Command, bool) {
	upper := strings.ToUpper(strings.TrimSpace(s))
	for _, c := range menu {
		if upper == c.String() {
			return c, true
		}
	}
	return CommandUnknown, false
}
