package game

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ErrUnknownKey is returned by ParseKey for symbols the keyboard cannot emit.
var ErrUnknownKey = errors.New("unknown key")

// Key symbols used on the on-screen keyboard.
const (
	SymbolEnter  = "ENTER"
	SymbolDelete = "DELETE"
)

// Letter returns a letter keystroke, lowercased.
func Letter(r rune) Key { return Key{Kind: KeyLetter, Letter: unicode.ToLower(r)} }

// Delete returns the delete keystroke.
func Delete() Key { return Key{Kind: KeyDelete} }

// Submit returns the submit keystroke.
func Submit() Key { return Key{Kind: KeySubmit} }

// ParseKey converts a keyboard symbol into a Key.
// Accepts a single letter, ENTER/SUBMIT, or DELETE/CLEAR/BACKSPACE (any case).
func ParseKey(s string) (Key, error) {
	s = strings.TrimSpace(s)
	switch strings.ToUpper(s) {
	case SymbolEnter, "SUBMIT":
		return Submit(), nil
	case SymbolDelete, "CLEAR", "BACKSPACE":
		return Delete(), nil
	}
	if utf8.RuneCountInString(s) == 1 {
		r, _ := utf8.DecodeRuneInString(s)
		if unicode.IsLetter(r) {
			return Letter(r), nil
		}
	}
	return Key{}, fmt.Errorf("%w: %q", ErrUnknownKey, s)
}

// ParseKeys parses every symbol or none.
func ParseKeys(symbols []string) ([]Key, error) {
	keys := make([]Key, 0, len(symbols))
	for _, s := range symbols {
		k, err := ParseKey(s)
		if err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, nil
}

// String returns the keyboard symbol for k.
func (k Key) String() string {
	switch k.Kind {
	case KeySubmit:
		return SymbolEnter
	case KeyDelete:
		return SymbolDelete
	}
	return string(k.Letter)
}

// KeysFor returns the letter keystrokes that type word, followed by a submit.
func KeysFor(word string) []Key {
	keys := make([]Key, 0, utf8.RuneCountInString(word)+1)
	for _, r := range word {
		keys = append(keys, Letter(r))
	}
	return append(keys, Submit())
}
