package ports

// Notifier is the fire-and-forget sink for user-facing operation outcomes.
// Stores emit through it as a side effect; implementations must not fail.
type Notifier interface {
	Success(msg string)
	Info(msg string)
	Warn(msg string)
}
