package entity

// WindowID uniquely identifies a browser window.
type WindowID int

// WindowIDNone is the host sentinel meaning "no window", reported e.g.
// when focus leaves the browser entirely.
const WindowIDNone WindowID = -1

// Valid reports whether the id refers to a real window.
func (id WindowID) Valid() bool {
	return id > 0
}
