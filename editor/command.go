package editor

import (
	"errors"
	"fmt"
	"strings"
)

// Command is a discrete editor action bound to a key.
type Command int

const (
	CmdNone Command = iota
	CmdDuplicate
	CmdBringToFront
	CmdSendToBack
	CmdNextSprite
	CmdPrevSprite
	CmdSave
	CmdZoomIn
	CmdZoomOut
	CmdCreate
	CmdExport
	CmdNudgeLeft
	CmdNudgeRight
	CmdNudgeUp
	CmdNudgeDown
	CmdQuit
)

var ErrUnknownCommand = errors.New("editor: unknown command")

var commandNames = map[Command]string{
	CmdDuplicate:    "duplicate",
	CmdBringToFront: "bring_to_front",
	CmdSendToBack:   "send_to_back",
	CmdNextSprite:   "next_sprite",
	CmdPrevSprite:   "prev_sprite",
	CmdSave:         "save",
	CmdZoomIn:       "zoom_in",
	CmdZoomOut:      "zoom_out",
	CmdCreate:       "create",
	CmdExport:       "export",
	CmdNudgeLeft:    "nudge_left",
	CmdNudgeRight:   "nudge_right",
	CmdNudgeUp:      "nudge_up",
	CmdNudgeDown:    "nudge_down",
	CmdQuit:         "quit",
}

func (c Command) String() string {
	if name, ok := commandNames[c]; ok {
		return name
	}
	return "none"
}

// ParseCommand maps a binding name such as "bring_to_front" to its command.
func ParseCommand(name string) (Command, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for c, n := range commandNames {
		if n == name {
			return c, nil
		}
	}
	return CmdNone, fmt.Errorf("%w %q", ErrUnknownCommand, name)
}
