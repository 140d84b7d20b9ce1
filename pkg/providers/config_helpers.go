package providers

import "strings"

// ConfigString returns the trimmed string value for key from provider.Config or a fallback.
func ConfigString(cfg Provider, key, fallback string) string {
	if cfg.Config != nil {
		if raw, ok := cfg.Config[key]; ok {
			if val, ok := raw.(string); ok {
				if trimmed := strings.TrimSpace(val); trimmed != "" {
					return trimmed
				}
			}
		}
	}
	return fallback
}

// ConfigUserAgentKey overrides the default User-Agent sent to a provider.
const ConfigUserAgentKey = "user_agent"

// Headers builds the optional request headers for a provider (skips empty values).
func Headers(cfg Provider) map[string]string {
	headers := make(map[string]string, 1)
	if v := ConfigString(cfg, ConfigUserAgentKey, ""); v != "" {
		headers["User-Agent"] = v
	}
	return headers
}
