// Package util holds small helpers shared across the service packages.
package util

import (
	"os"
	"strings"
)

// GetEnvironmentVariables snapshots the process environment as a map.
func GetEnvironmentVariables() map[string]string {
	environmentVariables := map[string]string{}

	for _, variable := range os.Environ() {
		name, value, found := strings.Cut(variable, "=")
		if !found {
			continue
		}

		environmentVariables[name] = value
	}

	return environmentVariables
}
