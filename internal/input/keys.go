// Package input translates raw platform input into the shell's semantic
// vocabulary: key presses become KeyKind values and pointer activity becomes
// DeviceEvents for the gesture recognizer.
package input

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/atomicstack/inkshell/internal/geom"
)

// Keycode is a raw platform key name. Glyph keys are named by their glyph
// ("A", "7", "/"); every other key has a multi-character name.
type Keycode string

const (
	KeyLeftShift  Keycode = "Left Shift"
	KeyRightShift Keycode = "Right Shift"
	KeyLeftAlt    Keycode = "Left Alt"
	KeyRightAlt   Keycode = "Right Alt"
	KeyReturn     Keycode = "Return"
	KeyLeft       Keycode = "Left"
	KeyRight      Keycode = "Right"
	KeyBackspace  Keycode = "Backspace"
	KeyDelete     Keycode = "Delete"
	KeyEscape     Keycode = "Escape"
)

// KeyType discriminates KeyKind.
type KeyType int

const (
	Shift KeyType = iota
	Combine
	Alternate
	Return
	Move
	Delete
	Output
)

// KeyKind is a semantic key. Dir is set for Move and Delete, Char for Output.
type KeyKind struct {
	Type KeyType
	Dir  geom.LinearDir
	Char rune
}

func MoveKey(dir geom.LinearDir) KeyKind   { return KeyKind{Type: Move, Dir: dir} }
func DeleteKey(dir geom.LinearDir) KeyKind { return KeyKind{Type: Delete, Dir: dir} }
func OutputKey(c rune) KeyKind             { return KeyKind{Type: Output, Char: c} }

func (k KeyKind) String() string {
	switch k.Type {
	case Shift:
		return "shift"
	case Combine:
		return "combine"
	case Alternate:
		return "alternate"
	case Return:
		return "return"
	case Move:
		return fmt.Sprintf("move(%s)", k.Dir)
	case Delete:
		return fmt.Sprintf("delete(%s)", k.Dir)
	case Output:
		return fmt.Sprintf("output(%q)", k.Char)
	default:
		return "unknown"
	}
}

// Outcome reports what the caller should do with a mapped keycode.
type Outcome int

const (
	// Drop means the keycode is outside the mapping table.
	Drop Outcome = iota
	// Emit means the KeyKind should be queued.
	Emit
	// Quit means the loop must terminate immediately, bypassing the queue.
	Quit
)

// MapKey translates a raw keycode. It is a pure function of its argument.
func MapKey(code Keycode) (KeyKind, Outcome) {
	switch code {
	case KeyLeftShift, KeyRightShift:
		return KeyKind{Type: Shift}, Emit
	case KeyLeftAlt:
		return KeyKind{Type: Combine}, Emit
	case KeyRightAlt:
		return KeyKind{Type: Alternate}, Emit
	case KeyReturn:
		return KeyKind{Type: Return}, Emit
	case KeyLeft:
		return MoveKey(geom.Backward), Emit
	case KeyRight:
		return MoveKey(geom.Forward), Emit
	case KeyBackspace:
		return DeleteKey(geom.Backward), Emit
	case KeyDelete:
		return DeleteKey(geom.Forward), Emit
	case KeyEscape:
		return KeyKind{}, Quit
	}
	name := string(code)
	if utf8.RuneCountInString(name) != 1 {
		return KeyKind{}, Drop
	}
	r, _ := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError || !unicode.IsGraphic(r) || unicode.IsSpace(r) {
		return KeyKind{}, Drop
	}
	return OutputKey(unicode.ToLower(r)), Emit
}
