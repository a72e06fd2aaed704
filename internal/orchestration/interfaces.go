//go:generate mockgen -source=interfaces.go -destination=mocks/mock_interfaces.go -package=mocks

package orchestration

import (
	"time"
)

// Registry resolves component identifiers to instances. Has is always
// queried before Get.
type Registry interface {
	// Has reports whether id is registered.
	Has(id string) bool
	// Get returns the instance registered under id.
	Get(id string) (any, error)
}

// Handler validates raw input and converts it into the request object a use
// case expects.
//
// Valid is called before Normalize. Errors returned by either are propagated
// to the caller unchanged; apperrors.ValidationError is the conventional
// error for rejected input.
type Handler interface {
	Valid(q Query) error
	Normalize(q Query) (any, error)
}

// Presenter consumes the response of a use case.
type Presenter interface {
	// Present receives the response, nil when the use case returns none.
	Present(response any) error
}

// PresenterFunc is a function adapter that implements Presenter.
type PresenterFunc func(response any) error

// Present calls the underlying function.
func (f PresenterFunc) Present(response any) error { return f(response) }

// HandlerFuncs builds a Handler from a validation function and a typed
// normalization function. A nil ValidFunc accepts every query and a nil
// NormalizeFunc yields the zero value of R.
type HandlerFuncs[R any] struct {
	ValidFunc     func(q Query) error
	NormalizeFunc func(q Query) (R, error)
}

// Valid calls ValidFunc.
func (h HandlerFuncs[R]) Valid(q Query) error {
	if h.ValidFunc == nil {
		return nil
	}
	return h.ValidFunc(q)
}

// Normalize calls NormalizeFunc and returns its request as an untyped value.
func (h HandlerFuncs[R]) Normalize(q Query) (any, error) {
	if h.NormalizeFunc == nil {
		var zero R
		return zero, nil
	}
	req, err := h.NormalizeFunc(q)
	if err != nil {
		return nil, err
	}
	return req, nil
}

// Observer is notified once per Dispatch call with its outcome.
type Observer interface {
	ObserveDispatch(useCase string, duration time.Duration, err error)
}
