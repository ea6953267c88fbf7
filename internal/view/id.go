package view

import "fmt"

// Kind is the type tag of a view, used to locate overlays by kind.
type Kind int

const (
	KindHome Kind = iota
	KindReader
	KindMainMenu
	KindNotification
	KindFrontlight
)

func (k Kind) String() string {
	switch k {
	case KindHome:
		return "home"
	case KindReader:
		return "reader"
	case KindMainMenu:
		return "main-menu"
	case KindNotification:
		return "notification"
	case KindFrontlight:
		return "frontlight"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ID identifies a view. Singletons use Seq 0; notifications carry a
// sequence number minted by the Context.
type ID struct {
	Kind Kind
	Seq  uint
}

// Singleton returns the ID of the single view of kind k.
func Singleton(k Kind) ID {
	return ID{Kind: k}
}

// IsSingleton reports whether id names the only view of its kind.
func (id ID) IsSingleton() bool {
	return id.Seq == 0
}

func (id ID) String() string {
	if id.IsSingleton() {
		return id.Kind.String()
	}
	return fmt.Sprintf("%s#%d", id.Kind, id.Seq)
}

// EntryID names a menu entry.
type EntryID int

const (
	EntryToggleInverted EntryID = iota
	EntryToggleMonochrome
	EntryTakeScreenshot
	EntryFrontlight
	EntryQuit
)

func (e EntryID) String() string {
	switch e {
	case EntryToggleInverted:
		return "toggle-inverted"
	case EntryToggleMonochrome:
		return "toggle-monochrome"
	case EntryTakeScreenshot:
		return "take-screenshot"
	case EntryFrontlight:
		return "frontlight"
	case EntryQuit:
		return "quit"
	default:
		return fmt.Sprintf("entry(%d)", int(e))
	}
}

// Label is the human readable menu label of e.
func (e EntryID) Label() string {
	switch e {
	case EntryToggleInverted:
		return "Invert Colors"
	case EntryToggleMonochrome:
		return "Monochrome"
	case EntryTakeScreenshot:
		return "Take Screenshot"
	case EntryFrontlight:
		return "Frontlight"
	case EntryQuit:
		return "Quit"
	default:
		return e.String()
	}
}
