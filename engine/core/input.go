package core

// Key/mod enums (subset; add as needed).
type Key int

const (
	KeyUnknown Key = iota
	KeyEscape
	KeyA
	KeyC
	KeyP
	KeyV
)

type Mod int

const (
	ModNone  Mod = 0
	ModShift Mod = 1 << 0
	ModCtrl  Mod = 1 << 1
	ModAlt   Mod = 1 << 2
	ModSuper Mod = 1 << 3
)

const (
	CtrlA rune = 0x01
	CtrlC rune = 0x03
	CtrlP rune = 0x10
	CtrlV rune = 0x16
)

var letters = map[Key]rune{KeyA: 'A', KeyC: 'C', KeyP: 'P', KeyV: 'V'}

// ControlCode maps Ctrl+letter to its ASCII control code. Presses with Alt or
// Super held, and non-letter keys, yield false.
func ControlCode(k Key, mods Mod) (rune, bool) {
	if mods&ModCtrl == 0 || mods&(ModAlt|ModSuper) != 0 {
		return 0, false
	}
	l, ok := letters[k]
	if !ok {
		return 0, false
	}
	return l - 'A' + 1, true
}
