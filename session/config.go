// Package session keeps conversation history between kernel runs. A
// Service addresses sessions by app, user and session id so a later run can
// continue an earlier conversation.
package session

// Config identifies a conversation. An empty SessionID asks New to assign a
// fresh UUIDv7.
type Config struct {
	AppName   string `json:"app_name,omitempty" mapstructure:"app_name"`
	UserID    string `json:"user_id,omitempty" mapstructure:"user_id"`
	SessionID string `json:"session_id,omitempty" mapstructure:"session_id"`
}

// DefaultConfig returns a Config with no fixed identity.
func DefaultConfig() Config {
	return Config{}
}

// Merge applies non-zero values from source into c.
func (c *Config) Merge(source *Config) {
	if source.AppName != "" {
		c.AppName = source.AppName
	}
	if source.UserID != "" {
		c.UserID = source.UserID
	}
	if source.SessionID != "" {
		c.SessionID = source.SessionID
	}
}

// New creates a Session from configuration. Currently returns an in-memory session.
func New(cfg *Config) (Session, error) {
	return NewMemorySession(*cfg), nil
}
