package constants

import "time"

// Language selector defaults
const (
	// DefaultLanguageID is the language identifier every provider is registered against
	DefaultLanguageID = "oreore"
	// DocumentScheme is the only URI scheme the providers answer for
	DocumentScheme = "file"
	// TreeViewID names the side-panel tree
	TreeViewID = "oreore"
)

// DefaultFileExtensions maps to DefaultLanguageID when a document is read from disk
var DefaultFileExtensions = []string{".oreore", ".ore"}

// Server identity reported from initialize
const (
	ServerName          = "oreore-lsp"
	DefaultHelloMessage = "Hello, world!"
)

// Timeout constants
const (
	ShutdownTimeout      = 5 * time.Second
	ApplyEditTimeout     = 10 * time.Second
	ConfigReloadDebounce = 300 * time.Millisecond
)
