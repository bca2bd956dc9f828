// Package page defines page identities for TUI navigation.
package page

// ID identifies a page.
type ID string

// Page identifiers.
const (
	Login ID = "login"
	Chat  ID = "chat"
)

// ChangeMsg requests switching to another page.
type ChangeMsg struct {
	Page ID
}
