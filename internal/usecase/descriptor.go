package usecase

import (
	"context"
	"reflect"

	apperrors "github.com/agbru/domainflow/internal/errors"
)

// Entry point forms.
const (
	// EntryExecute is a method named Execute on the use case.
	EntryExecute = "Execute"
	// EntryCall is a use case that is itself a function value.
	EntryCall = "call"
)

var (
	contextType = reflect.TypeFor[context.Context]()
	errorType   = reflect.TypeFor[error]()
)

// Descriptor is the structural shape of a resolved use case.
type Descriptor struct {
	// ID is the registry identifier the use case was resolved from.
	ID string
	// Instance is the resolved use case.
	Instance any
	// EntryPoint is EntryExecute or EntryCall.
	EntryPoint string
	// ParamCount is the number of request parameters, 0 or 1. A leading
	// context.Context parameter is not counted.
	ParamCount int
	// ParamType is the declared request type; nil when ParamCount is 0.
	ParamType reflect.Type

	fn              reflect.Value
	takesContext    bool
	returnsResponse bool
	returnsError    bool
}

// Describe inspects instance and returns its descriptor.
//
// Parameters:
//   - id: The registry identifier, used in error messages.
//   - instance: The resolved use case.
//
// Returns:
//   - *Descriptor: The entry point description.
//   - error: An apperrors.EntryPointError when the shape is invalid.
func Describe(id string, instance any) (*Descriptor, error) {
	v := reflect.ValueOf(instance)
	// A nil pointer has no callable entry point even when its method set
	// includes Execute.
	if !v.IsValid() || (v.Kind() == reflect.Pointer && v.IsNil()) {
		return nil, apperrors.EntryPointError{UseCase: id, Reason: apperrors.EntryPointMissing}
	}

	execute := v.MethodByName(EntryExecute)
	hasExecute := execute.IsValid()
	hasCall := v.Kind() == reflect.Func && !v.IsNil()

	switch {
	case hasExecute && hasCall:
		return nil, apperrors.EntryPointError{UseCase: id, Reason: apperrors.EntryPointAmbiguous}
	case !hasExecute && !hasCall:
		return nil, apperrors.EntryPointError{UseCase: id, Reason: apperrors.EntryPointMissing}
	}

	d := &Descriptor{ID: id, Instance: instance, EntryPoint: EntryCall, fn: v}
	if hasExecute {
		d.EntryPoint = EntryExecute
		d.fn = execute
	}

	if err := d.inspectParams(); err != nil {
		return nil, err
	}
	if err := d.inspectResults(); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *Descriptor) inspectParams() error {
	t := d.fn.Type()
	first := 0
	if t.NumIn() > 0 && t.In(0) == contextType {
		d.takesContext = true
		first = 1
	}
	// Variadic parameters accept any number of arguments and are rejected
	// the same way as multiple parameters.
	d.ParamCount = t.NumIn() - first
	if d.ParamCount > 1 || t.IsVariadic() {
		return apperrors.EntryPointError{UseCase: d.ID, Method: d.EntryPoint, Reason: apperrors.EntryPointTooManyParameters}
	}
	if d.ParamCount == 1 {
		d.ParamType = t.In(first)
	}
	return nil
}

func (d *Descriptor) inspectResults() error {
	t := d.fn.Type()
	bad := apperrors.EntryPointError{UseCase: d.ID, Method: d.EntryPoint, Reason: apperrors.EntryPointBadResults}
	switch t.NumOut() {
	case 0:
	case 1:
		if t.Out(0) == errorType {
			d.returnsError = true
		} else {
			d.returnsResponse = true
		}
	case 2:
		if t.Out(1) != errorType {
			return bad
		}
		d.returnsResponse = true
		d.returnsError = true
	default:
		return bad
	}
	return nil
}

// TakesContext reports whether the entry point receives the dispatch context.
func (d *Descriptor) TakesContext() bool { return d.takesContext }

// Accepts reports whether req satisfies the declared parameter type. A nil
// request is accepted only by nillable parameter types.
func (d *Descriptor) Accepts(req any) bool {
	if d.ParamType == nil {
		return false
	}
	if req == nil {
		return nillable(d.ParamType)
	}
	return reflect.TypeOf(req).AssignableTo(d.ParamType)
}

// ExpectedType returns the declared parameter type name, or "" when the
// entry point takes no request.
func (d *Descriptor) ExpectedType() string {
	if d.ParamType == nil {
		return ""
	}
	return d.ParamType.String()
}

// TypeName returns the dynamic type name of v, "nil" for a nil interface.
func TypeName(v any) string {
	if v == nil {
		return "nil"
	}
	return reflect.TypeOf(v).String()
}

// Invoke calls the entry point. req is ignored when ParamCount is 0 and
// must already have passed Accepts otherwise.
//
// Returns the response (nil for entry points that return none) and the
// error returned by the use case, unchanged.
func (d *Descriptor) Invoke(ctx context.Context, req any) (any, error) {
	args := make([]reflect.Value, 0, 2)
	if d.takesContext {
		if ctx == nil {
			args = append(args, reflect.Zero(contextType))
		} else {
			args = append(args, reflect.ValueOf(ctx))
		}
	}
	if d.ParamCount == 1 {
		if req == nil {
			args = append(args, reflect.Zero(d.ParamType))
		} else {
			args = append(args, reflect.ValueOf(req))
		}
	}

	out := d.fn.Call(args)

	var (
		response any
		err      error
	)
	if d.returnsResponse {
		response = out[0].Interface()
	}
	if d.returnsError {
		if e := out[len(out)-1]; !e.IsNil() {
			err = e.Interface().(error)
		}
	}
	return response, err
}

func nillable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return true
	default:
		return false
	}
}
