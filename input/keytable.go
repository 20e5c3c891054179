package input

import (
	"strconv"

	"github.com/gdamore/tcell/v2"
)

// Intent is what a terminal event means before it reaches the dispatch
type Intent uint8

const (
	IntentNone   Intent = iota // Not translated
	IntentEvent                // Post the translated event
	IntentQuit                 // Leave the program
)

// KeyEntry names a non-rune key in DOM terms
type KeyEntry struct {
	Key  string
	Code string
}

// RuneEntry names a printable rune, Shift marks the shifted variant on a US layout
type RuneEntry struct {
	Code  string
	Shift bool
}

// KeyTable maps terminal keys to DOM names
type KeyTable struct {
	// Special keys (arrows, editing, function keys)
	SpecialKeys map[tcell.Key]KeyEntry

	// Punctuation runes, letters and digits are derived
	PunctRunes map[rune]RuneEntry

	// Keys leaving the program, never dispatched
	SystemKeys map[tcell.Key]Intent
}

// DefaultKeyTable returns the default US layout table
func DefaultKeyTable() *KeyTable {
	t := &KeyTable{
		SpecialKeys: map[tcell.Key]KeyEntry{
			tcell.KeyUp:         {"ArrowUp", "ArrowUp"},
			tcell.KeyDown:       {"ArrowDown", "ArrowDown"},
			tcell.KeyLeft:       {"ArrowLeft", "ArrowLeft"},
			tcell.KeyRight:      {"ArrowRight", "ArrowRight"},
			tcell.KeyEscape:     {"Escape", "Escape"},
			tcell.KeyEnter:      {"Enter", "Enter"},
			tcell.KeyTab:        {"Tab", "Tab"},
			tcell.KeyBacktab:    {"Tab", "Tab"},
			tcell.KeyBackspace:  {"Backspace", "Backspace"},
			tcell.KeyBackspace2: {"Backspace", "Backspace"},
			tcell.KeyDelete:     {"Delete", "Delete"},
			tcell.KeyInsert:     {"Insert", "Insert"},
			tcell.KeyHome:       {"Home", "Home"},
			tcell.KeyEnd:        {"End", "End"},
			tcell.KeyPgUp:       {"PageUp", "PageUp"},
			tcell.KeyPgDn:       {"PageDown", "PageDown"},
		},
		PunctRunes: map[rune]RuneEntry{
			' ': {"Space", false},
			'-': {"Minus", false}, '_': {"Minus", true},
			'=': {"Equal", false}, '+': {"Equal", true},
			'[': {"BracketLeft", false}, '{': {"BracketLeft", true},
			']': {"BracketRight", false}, '}': {"BracketRight", true},
			'\\': {"Backslash", false}, '|': {"Backslash", true},
			';': {"Semicolon", false}, ':': {"Semicolon", true},
			'\'': {"Quote", false}, '"': {"Quote", true},
			',': {"Comma", false}, '<': {"Comma", true},
			'.': {"Period", false}, '>': {"Period", true},
			'/': {"Slash", false}, '?': {"Slash", true},
			'`': {"Backquote", false}, '~': {"Backquote", true},
			'!': {"Digit1", true}, '@': {"Digit2", true}, '#': {"Digit3", true},
			'$': {"Digit4", true}, '%': {"Digit5", true}, '^': {"Digit6", true},
			'&': {"Digit7", true}, '*': {"Digit8", true}, '(': {"Digit9", true},
			')': {"Digit0", true},
		},
		SystemKeys: map[tcell.Key]Intent{
			tcell.KeyCtrlC: IntentQuit,
			tcell.KeyCtrlQ: IntentQuit,
		},
	}
	for i := 0; i < 12; i++ {
		name := "F" + strconv.Itoa(i+1)
		t.SpecialKeys[tcell.KeyF1+tcell.Key(i)] = KeyEntry{name, name}
	}
	return t
}

