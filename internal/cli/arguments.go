package cli

import (
	"strings"

	apperrors "github.com/agbru/domainflow/internal/errors"
)

// Argument is a single key=value pair given on the command line.
type Argument struct {
	Key   string
	Value string
}

// ParseArguments parses "key=value" pairs, keeping their order. The value may
// itself contain '=' and may be empty; the key may not.
// Duplicate keys are left for the orchestrator to reject.
func ParseArguments(args []string) ([]Argument, error) {
	parsed := make([]Argument, 0, len(args))
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, apperrors.NewConfigError("malformed argument %q (expected key=value)", arg)
		}
		parsed = append(parsed, Argument{Key: key, Value: value})
	}
	return parsed, nil
}
