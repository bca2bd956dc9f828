// Package util provides shared helpers for TUI components.
package util

import (
	"time"

	tea "charm.land/bubbletea/v2"
)

// Model is the interface implemented by pages and components.
type Model interface {
	Init() tea.Cmd
	Update(tea.Msg) (Model, tea.Cmd)
	View() string
}

// CmdHandler returns a command that delivers the given message.
func CmdHandler(msg tea.Msg) tea.Cmd {
	return func() tea.Msg {
		return msg
	}
}

// InfoType categorizes an informational message.
type InfoType int

// Info type constants.
const (
	InfoTypeInfo InfoType = iota
	InfoTypeSuccess
	InfoTypeWarn
	InfoTypeError
)

// InfoMsg carries a user-visible status message.
type InfoMsg struct {
	Type InfoType
	Msg  string
	TTL  time.Duration
}

// ReportInfo returns a command that reports an informational message.
func ReportInfo(msg string) tea.Cmd {
	return CmdHandler(InfoMsg{Type: InfoTypeInfo, Msg: msg})
}

// ReportSuccess returns a command that reports a success message.
func ReportSuccess(msg string) tea.Cmd {
	return CmdHandler(InfoMsg{Type: InfoTypeSuccess, Msg: msg})
}

// ReportWarn returns a command that reports a warning message.
func ReportWarn(msg string) tea.Cmd {
	return CmdHandler(InfoMsg{Type: InfoTypeWarn, Msg: msg})
}

// ReportError returns a command that reports an error message.
func ReportError(err error) tea.Cmd {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	return CmdHandler(InfoMsg{Type: InfoTypeError, Msg: msg})
}
