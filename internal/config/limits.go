package config

const (
	// SmallContextWindow is the number of prior turns replayed for an
	// ordinary message.
	SmallContextWindow = 60

	// LargeContextWindow is the number of prior turns replayed when the
	// incoming message matches a recall-intent keyword. Large enough to
	// cover a long session without shipping the whole log on every turn.
	LargeContextWindow = 150

	// MaxChatBodyBytes caps the /chat request body. A base64-encoded
	// high-resolution photo runs to tens of megabytes, so the limit is
	// generous; anything larger is rejected instead of buffered.
	MaxChatBodyBytes = 64 << 20
)
