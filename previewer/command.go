package previewer

import (
	"errors"
	"fmt"
	"strings"
)

type Command int

const (
	CmdNone Command = iota
	CmdFaster
	CmdSlower
	CmdZoomIn
	CmdZoomOut
	CmdQuit
)

var ErrUnknownCommand = errors.New("previewer: unknown command")

var commandNames = map[Command]string{
	CmdFaster:  "faster",
	CmdSlower:  "slower",
	CmdZoomIn:  "zoom_in",
	CmdZoomOut: "zoom_out",
	CmdQuit:    "quit",
}

func (c Command) String() string {
	if name, ok := commandNames[c]; ok {
		return name
	}
	return "none"
}

func ParseCommand(name string) (Command, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for c, n := range commandNames {
		if n == name {
			return c, nil
		}
	}
	return CmdNone, fmt.Errorf("%w %q", ErrUnknownCommand, name)
}

// Execute applies cmd and reports whether it asks the program to stop.
func (p *Previewer) Execute(cmd Command) (quit bool) {
	switch cmd {
	case CmdFaster:
		p.Faster()
	case CmdSlower:
		p.Slower()
	case CmdZoomIn:
		p.ZoomIn()
	case CmdZoomOut:
		p.ZoomOut()
	case CmdQuit:
		return true
	}
	return false
}
