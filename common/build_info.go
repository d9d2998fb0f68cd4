package common

// Build metadata, injected via -ldflags at release time.
var (
	BuildTime     = "unknown"
	Commit        = "unknown"
	CommitMessage = ""
)
