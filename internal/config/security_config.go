package config

import "time"

type SecurityConfig interface {
	GetSessionSecret() string
	GetMaxSessionAge() time.Duration
}

type Security struct{}

var _ SecurityConfig = Security{}

// GetSessionSecret returns the secret the session cookie tokens are
// signed with. The dev default exists so the server can boot locally;
// production deployments must set SESSION_SECRET.
func (Security) GetSessionSecret() string {
	return GetEnv("SESSION_SECRET", "dev-only-insecure-secret")
}

func (Security) GetMaxSessionAge() time.Duration {
	raw := GetEnv("SESSION_MAX_AGE", "")
	if raw != "" {
		if d, err := time.ParseDuration(raw); err == nil {
			return d
		}
	}
	return 12 * time.Hour // a working day, matches the browser-session model
}
