package input

import (
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/blockfall/events"
)

const mouseButtons = tcell.ButtonPrimary | tcell.ButtonSecondary | tcell.ButtonMiddle

// Translator turns tcell events into dispatch events
// Owned by the poll goroutine, it remembers the held mouse buttons to report presses only
type Translator struct {
	table   *KeyTable
	buttons tcell.ButtonMask
}

// NewTranslator creates a translator, nil table selects DefaultKeyTable
func NewTranslator(table *KeyTable) *Translator {
	if table == nil {
		table = DefaultKeyTable()
	}
	return &Translator{table: table}
}

// Translate maps ev to an InputEvent; the intent tells the caller what to do with it
func (t *Translator) Translate(ev tcell.Event) (events.InputEvent, Intent) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return t.translateKey(ev)
	case *tcell.EventMouse:
		return t.translateMouse(ev)
	case *tcell.EventResize:
		return events.InputEvent{Kind: events.EventRedraw}, IntentEvent
	}
	return events.InputEvent{}, IntentNone
}

func (t *Translator) translateKey(ev *tcell.EventKey) (events.InputEvent, Intent) {
	if intent, ok := t.table.SystemKeys[ev.Key()]; ok {
		return events.InputEvent{}, intent
	}

	mod := ev.Modifiers()
	ke := events.KeyEvent{
		Alt:   mod&(tcell.ModAlt|tcell.ModMeta) != 0,
		Shift: mod&tcell.ModShift != 0,
		Ctrl:  mod&tcell.ModCtrl != 0,
	}

	k := ev.Key()
	switch {
	case k == tcell.KeyRune:
		r := ev.Rune()
		entry := t.runeEntry(r)
		ke.Key = string(r)
		ke.Code = entry.Code
		ke.Shift = ke.Shift || entry.Shift
	case k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ:
		letter := rune('a' + (k - tcell.KeyCtrlA))
		ke.Key = string(letter)
		ke.Code = "Key" + strings.ToUpper(ke.Key)
		ke.Ctrl = true
	default:
		entry, ok := t.table.SpecialKeys[k]
		if !ok {
			return events.InputEvent{}, IntentNone
		}
		ke.Key = entry.Key
		ke.Code = entry.Code
	}
	return events.InputEvent{Kind: events.EventKey, Key: ke}, IntentEvent
}

// runeEntry derives the physical key of r, unknown runes get an empty code
func (t *Translator) runeEntry(r rune) RuneEntry {
	switch {
	case r >= 'a' && r <= 'z':
		return RuneEntry{Code: "Key" + string(r-'a'+'A')}
	case r >= 'A' && r <= 'Z':
		return RuneEntry{Code: "Key" + string(r), Shift: true}
	case r >= '0' && r <= '9':
		return RuneEntry{Code: "Digit" + string(r)}
	}
	return t.table.PunctRunes[r]
}

func (t *Translator) translateMouse(ev *tcell.EventMouse) (events.InputEvent, Intent) {
	held := ev.Buttons() & mouseButtons
	pressed := held &^ t.buttons
	t.buttons = held

	var button events.MouseButton
	switch {
	case pressed&tcell.ButtonPrimary != 0:
		button = events.MousePrimary
	case pressed&tcell.ButtonSecondary != 0:
		button = events.MouseSecondary
	case pressed&tcell.ButtonMiddle != 0:
		button = events.MouseMiddle
	default:
		return events.InputEvent{}, IntentNone
	}

	x, y := ev.Position()
	return events.InputEvent{
		Kind:  events.EventMouse,
		Mouse: events.MouseEvent{X: x, Y: y, Button: button},
	}, IntentEvent
}
