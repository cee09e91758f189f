package registry

// Core keys for GlobalRegistry.
const (
	// Extension registries (cmd, cron), stored in GlobalRegistry
	KeyRegistryCmd  = "registry:cmd"
	KeyRegistryCron = "registry:cron"

	// Latest coverage summary produced in this process (set by generate/cron runs)
	KeyLastSummary = "materials:last_summary"
)
