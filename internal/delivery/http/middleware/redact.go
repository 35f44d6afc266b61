package middleware

import "strings"

// RedactSecrets replaces the trailing path segment of secret-bearing routes
// so creator and participant keys never end up in logs.
func RedactSecrets(path string) string {
	if !strings.HasPrefix(path, "/reveal/") {
		return path
	}
	i := strings.LastIndex(path, "/")
	if i <= 0 || i == len(path)-1 {
		return path
	}
	return path[:i+1] + "***"
}
