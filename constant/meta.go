// Package constant defines immutable application-level identifiers and build metadata.
package constant

const (
	// App is the canonical application identifier used for filesystem paths, keyring entries and CLI branding.
	App = "critique"

	// Version is the current application semantic version string.
	Version = "0.3.0"

	// UserAgent is sent with every request to both backends.
	UserAgent = App + "/" + Version
)

// Build metadata, injected with -ldflags "-X github.com/animecritique/critique/constant.<Name>=<value>".
var (
	BuiltAt  = "unknown"
	BuiltBy  = "unknown"
	Revision = "unknown"

	// Verbose is the build-time switch for request/response logging.
	// Any value other than "true" leaves it off; the network.verbose setting can still override it at runtime.
	Verbose = "false"
)
