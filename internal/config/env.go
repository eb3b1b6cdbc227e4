package config

import (
	"bytes"
	"os"
	"regexp"
)

// envVarRegex matches ${NAME} and ${NAME:-fallback}.
var envVarRegex = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(?::-([^}]*))?\}`)

// substituteEnvVars expands environment references in raw config bytes.
// Unset variables without a fallback are left untouched so the YAML error
// points at the reference.
func substituteEnvVars(content []byte) []byte {
	return envVarRegex.ReplaceAllFunc(content, func(match []byte) []byte {
		groups := envVarRegex.FindSubmatch(match)
		if value, ok := os.LookupEnv(string(groups[1])); ok {
			return []byte(value)
		}
		if bytes.Contains(match, []byte(":-")) {
			return groups[2]
		}
		return match
	})
}
