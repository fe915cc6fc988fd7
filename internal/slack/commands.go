package slack

import (
	"fmt"
	"strings"
)

type CommandType string

const (
	CmdWho  CommandType = "who"
	CmdLast CommandType = "last"
	CmdHelp CommandType = "help"
)

type Command struct {
	Type CommandType
	Args []string
	Raw  string
}

func ParseCommand(text string) (*Command, error) {
	parts := strings.Fields(strings.TrimSpace(text))
	if len(parts) == 0 {
		return &Command{Type: CmdHelp}, nil
	}

	cmd := &Command{
		Raw: text,
	}
	if len(parts) > 1 {
		cmd.Args = parts[1:]
	}

	switch strings.ToLower(parts[0]) {
	case "who", "now":
		cmd.Type = CmdWho
	case "last", "history":
		cmd.Type = CmdLast
	case "help":
		cmd.Type = CmdHelp
	default:
		return nil, fmt.Errorf("unknown command: %s", parts[0])
	}

	return cmd, nil
}

func GetHelpText() string {
	return `*Available commands:*

• ` + "`/oncall who [time]`" + ` - Who is on-call now, or at the given time (2024-01-03T14:00)
• ` + "`/oncall last [n]`" + ` - The last phone switch runs (default 1)
• ` + "`/oncall help`" + ` - Show this message`
}
