package catalog

import (
	"context"
	"fmt"
	"strings"

	apperrors "github.com/agbru/domainflow/internal/errors"
	"github.com/agbru/domainflow/internal/orchestration"
	"github.com/agbru/domainflow/internal/usecase"
)

// GreetRequest is the normalized input of Greet.
type GreetRequest struct {
	Name     string
	Greeting string
}

// GreetResponse is produced by Greet.
type GreetResponse struct {
	Message string `json:"message" yaml:"message"`
}

// Greet builds a greeting for a name.
type Greet struct {
	// DefaultGreeting is used when the request carries none.
	DefaultGreeting string
}

var _ usecase.Interactor[GreetRequest, GreetResponse] = Greet{}

// Execute implements usecase.Interactor.
func (g Greet) Execute(ctx context.Context, req GreetRequest) (GreetResponse, error) {
	if err := ctx.Err(); err != nil {
		return GreetResponse{}, err
	}
	greeting := req.Greeting
	if greeting == "" {
		greeting = g.DefaultGreeting
	}
	return GreetResponse{Message: fmt.Sprintf("%s, %s!", greeting, req.Name)}, nil
}

// GreetHandler validates and normalizes greet queries. It requires a
// non-empty "name" and accepts an optional "greeting".
type GreetHandler struct{}

var _ orchestration.Handler = GreetHandler{}

// Valid implements orchestration.Handler.
func (GreetHandler) Valid(q orchestration.Query) error {
	name, _ := q.String("name")
	if strings.TrimSpace(name) == "" {
		return apperrors.NewValidationError("name", "must not be empty")
	}
	return nil
}

// Normalize implements orchestration.Handler.
func (GreetHandler) Normalize(q orchestration.Query) (any, error) {
	name, _ := q.String("name")
	greeting, _ := q.String("greeting")
	return GreetRequest{
		Name:     strings.TrimSpace(name),
		Greeting: strings.TrimSpace(greeting),
	}, nil
}
