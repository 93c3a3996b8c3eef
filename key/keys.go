// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// Provider selection and upstream catalog paging.
const (
	ProviderDefault     = "provider.default"
	ProviderBaseURL     = "provider.base_url"
	ProviderPageSize    = "provider.page_size"
	ProviderMaxShows    = "provider.max_shows"
	ProviderSeasonChunk = "provider.season_chunk"
)

// Outbound HTTP behaviour shared by every provider request.
const (
	HTTPRetryAttempts  = "http.retry_attempts"
	HTTPRetryDelayMs   = "http.retry_delay_ms"
	HTTPTimeoutSeconds = "http.timeout_seconds"
	HTTPRateLimit      = "http.rate_limit"
	HTTPRateBurst      = "http.rate_burst"
	HTTPImpersonateTLS = "http.impersonate_tls"
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
	LogsWrite     = "logs.write"
	LogsLevel     = "logs.level"
	LogsJson      = "logs.json"
	LogsMaxSizeMB = "logs.max_size_mb"
)

// CLI Execution Environment.
const (
	CliColored = "cli.colored"
)
