// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// Primary Backend - the review/user/favorite/watchlist service owned by the application.
const (
	BackendURL     = "backend.url"
	BackendTimeout = "backend.timeout"
)

// Metadata Backend - the public Jikan anime-information service.
const (
	JikanURL       = "jikan.url"
	JikanTimeout   = "jikan.timeout"
	JikanRateLimit = "jikan.rate_limit"
	JikanCache     = "jikan.cache"
)

// Transport Diagnostics - request/response logging shared by both transports.
const (
	NetworkVerbose = "network.verbose"
)

// Listing Defaults - page sizes applied when a command does not set one explicitly.
const (
	ReviewsLimit  = "reviews.limit"
	AnimePageSize = "anime.page_size"
)

// Search Interaction - these keys define the parameters for search discovery.
const (
	SearchShowQuerySuggestions = "search.show_query_suggestions"
)

// Iconography - these keys manage the visual rendering of UI symbols.
const (
	IconsVariant = "icons.variant"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI Execution Environment - these settings govern terminal output.
const (
	CliColored = "cli.colored"
)
