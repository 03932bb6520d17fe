package shell

import (
	"bufio"
	"errors"
	"io"
)

// Action is a user command decoded from the keyboard.
type Action int

const (
	ActionNone Action = iota
	ActionNext
	ActionPrev
	ActionRegenerate
	ActionExport
	ActionQuit
)

func (a Action) String() string {
	switch a {
	case ActionNext:
		return "next"
	case ActionPrev:
		return "prev"
	case ActionRegenerate:
		return "regenerate"
	case ActionExport:
		return "export"
	case ActionQuit:
		return "quit"
	default:
		return "none"
	}
}

const (
	keyCtrlC = 0x03
	keyCtrlD = 0x04
	keyEsc   = 0x1b
)

// KeyReader decodes actions from raw terminal input.
type KeyReader struct {
	r *bufio.Reader
}

// NewKeyReader wraps r, which should deliver bytes as they are typed.
func NewKeyReader(r io.Reader) *KeyReader {
	return &KeyReader{r: bufio.NewReader(r)}
}

// Next blocks until one key press has been read. End of input reads as ActionQuit.
func (k *KeyReader) Next() (Action, error) {
	b, err := k.r.ReadByte()
	if err != nil {
		return eof(err)
	}

	switch b {
	case keyEsc:
		return k.escape()
	case 'l', 'd':
		return ActionNext, nil
	case 'h', 'a':
		return ActionPrev, nil
	case 'r', 'R':
		return ActionRegenerate, nil
	case 'p', 'P':
		return ActionExport, nil
	case 'q', 'Q', keyCtrlC, keyCtrlD:
		return ActionQuit, nil
	}
	return ActionNone, nil
}

// escape decodes the rest of an arrow key: ESC [ C or ESC O C in application mode.
func (k *KeyReader) escape() (Action, error) {
	intro, err := k.r.ReadByte()
	if err != nil {
		return eof(err)
	}
	if intro != '[' && intro != 'O' {
		// A bare Esc; the byte after it is a key of its own.
		if err := k.r.UnreadByte(); err != nil {
			return ActionNone, err
		}
		return ActionNone, nil
	}
	code, err := k.r.ReadByte()
	if err != nil {
		return eof(err)
	}
	switch code {
	case 'C':
		return ActionNext, nil
	case 'D':
		return ActionPrev, nil
	}
	return ActionNone, nil
}

func eof(err error) (Action, error) {
	if errors.Is(err, io.EOF) {
		return ActionQuit, nil
	}
	return ActionNone, err
}
