package ports

// ConsoleWriter writes a line to the host's console window.
type ConsoleWriter interface {
	// ShowConsoleMsg reports whether the message reached the host.
	ShowConsoleMsg(msg string) bool
}
