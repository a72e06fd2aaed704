package catalog

import (
	"strconv"
	"strings"

	apperrors "github.com/agbru/domainflow/internal/errors"
	"github.com/agbru/domainflow/internal/orchestration"
)

// maxRepeat bounds EchoRequest.Repeat.
const maxRepeat = 16

// EchoRequest is the normalized input of Echo.
type EchoRequest struct {
	Message string
	Repeat  int
}

// EchoResponse is produced by Echo.
type EchoResponse struct {
	Message string `json:"message" yaml:"message"`
}

// Echo returns the message, repeated when asked to. It is registered as a
// function value and dispatched through its call form.
func Echo(req EchoRequest) EchoResponse {
	n := max(req.Repeat, 1)
	return EchoResponse{Message: strings.TrimSpace(strings.Repeat(req.Message+" ", n))}
}

// NewEchoHandler returns the handler for Echo. "message" is required;
// "repeat" is an optional count between 1 and 16.
func NewEchoHandler() orchestration.HandlerFuncs[EchoRequest] {
	return orchestration.HandlerFuncs[EchoRequest]{
		ValidFunc: func(q orchestration.Query) error {
			if !q.Has("message") {
				return apperrors.NewValidationError("message", "is required")
			}
			if raw, ok := q.String("repeat"); ok {
				n, err := strconv.Atoi(raw)
				if err != nil || n < 1 || n > maxRepeat {
					return apperrors.NewValidationError("repeat", "must be an integer between 1 and %d, got %q", maxRepeat, raw)
				}
			}
			return nil
		},
		NormalizeFunc: func(q orchestration.Query) (EchoRequest, error) {
			msg, _ := q.String("message")
			req := EchoRequest{Message: msg, Repeat: 1}
			if raw, ok := q.String("repeat"); ok {
				n, err := strconv.Atoi(raw)
				if err != nil {
					return EchoRequest{}, err
				}
				req.Repeat = n
			}
			return req, nil
		},
	}
}
