package hangman

import (
	"fmt"
	"strings"
)

// TextSource supplies the string copied into the scene on Ctrl-A.
type TextSource interface {
	Text() string
}

type TextSourceFunc func() string

func (f TextSourceFunc) Text() string { return f() }

// StaticText always yields the same string.
type StaticText string

func (s StaticText) Text() string { return string(s) }

// WindowText is the part of the window the built-in sources read from.
type WindowText interface {
	Title() string
	Clipboard() string
}

const (
	SourceTitle     = "title"
	SourceClipboard = "clipboard"
	SourceStatic    = "static"
)

// NewTextSource builds a source by name. "" selects the window title.
func NewTextSource(kind string, win WindowText, static string) (TextSource, error) {
	switch strings.ToLower(kind) {
	case "", SourceTitle:
		return TextSourceFunc(win.Title), nil
	case SourceClipboard:
		return TextSourceFunc(win.Clipboard), nil
	case SourceStatic:
		return StaticText(static), nil
	}
	return nil, fmt.Errorf("unknown text source %q", kind)
}
