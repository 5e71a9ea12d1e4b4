package utils

import "voyago/config"

// IsProduction reports whether the service runs with ENV=production.
func IsProduction() bool {
	return config.IsProduction()
}
