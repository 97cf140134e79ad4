package operation

import (
	"strings"

	"github.com/google/uuid"
)

// NewID generates a correlation ID for a backend operation: 32 lower
// hex characters with the first character forced to 'a'. The leading
// letter keeps the value a legal identifier everywhere the backend
// requires names that do not start with a digit (model names,
// endpoint names, tag values).
func NewID() string {
	hex := strings.ReplaceAll(uuid.New().String(), "-", "")
	return "a" + hex[1:]
}
