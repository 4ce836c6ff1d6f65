package redis

const (
	// KeySession holds the persisted session JSON.
	KeySession = "skypost:session"
	// KeyPosted is the set of bookmark URLs already posted by the
	// feed watcher.
	KeyPosted = "skypost:posted"
)

// SessionKey returns the Redis key for the persisted session.
func SessionKey() string {
	return KeySession
}

// PostedKey returns the key for the set of posted bookmark URLs.
func PostedKey() string {
	return KeyPosted
}
