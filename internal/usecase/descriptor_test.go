package usecase

import (
	"context"
	"errors"
	"io"
	"reflect"
	"testing"

	apperrors "github.com/agbru/domainflow/internal/errors"
)

type request struct{ Foo string }

type response struct{ Foo string }

type executeUseCase struct{}

func (executeUseCase) Execute(req request) response { return response(req) }

type contextUseCase struct{ seen context.Context }

func (u *contextUseCase) Execute(ctx context.Context, req request) (response, error) {
	u.seen = ctx
	if req.Foo == "" {
		return response{}, errors.New("empty foo")
	}
	return response(req), nil
}

type noRequestUseCase struct{ calls int }

func (u *noRequestUseCase) Execute() error {
	u.calls++
	return nil
}

type noMethodUseCase struct{}

type bothUseCase func(request) response

func (bothUseCase) Execute(request) response { return response{} }

type multiUseCase struct{}

func (multiUseCase) Execute(a, b string) {}

type variadicUseCase struct{}

func (variadicUseCase) Execute(args ...string) {}

type badResultsUseCase struct{}

func (badResultsUseCase) Execute() (string, int) { return "", 0 }

type threeResultsUseCase struct{}

func (threeResultsUseCase) Execute() (string, string, error) { return "", "", nil }

type readerUseCase struct{}

func (readerUseCase) Execute(r io.Reader) string { return "ok" }

// TestDescribe verifies entry point discovery and shape validation.
func TestDescribe(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name       string
		instance   any
		wantEntry  string
		wantParams int
		wantType   reflect.Type
		wantReason apperrors.EntryPointReason
	}{
		{
			name:       "Execute method with request",
			instance:   executeUseCase{},
			wantEntry:  EntryExecute,
			wantParams: 1,
			wantType:   reflect.TypeFor[request](),
		},
		{
			name:       "Context is not counted",
			instance:   &contextUseCase{},
			wantEntry:  EntryExecute,
			wantParams: 1,
			wantType:   reflect.TypeFor[request](),
		},
		{
			name:       "Call form",
			instance:   func(req request) response { return response(req) },
			wantEntry:  EntryCall,
			wantParams: 1,
			wantType:   reflect.TypeFor[request](),
		},
		{
			name:       "No request",
			instance:   &noRequestUseCase{},
			wantEntry:  EntryExecute,
			wantParams: 0,
		},
		{
			name:       "Typed Func",
			instance:   Func[request, response](func(_ context.Context, req request) (response, error) { return response(req), nil }),
			wantEntry:  EntryCall,
			wantParams: 1,
			wantType:   reflect.TypeFor[request](),
		},
		{name: "Nil instance", instance: nil, wantReason: apperrors.EntryPointMissing},
		{name: "Nil func", instance: (func())(nil), wantReason: apperrors.EntryPointMissing},
		{name: "Nil pointer", instance: (*executeUseCase)(nil), wantReason: apperrors.EntryPointMissing},
		{name: "Nil pointer receiver", instance: (*noRequestUseCase)(nil), wantReason: apperrors.EntryPointMissing},
		{name: "No entry point", instance: noMethodUseCase{}, wantReason: apperrors.EntryPointMissing},
		{name: "Both entry points", instance: bothUseCase(func(request) response { return response{} }), wantReason: apperrors.EntryPointAmbiguous},
		{name: "Two parameters", instance: multiUseCase{}, wantReason: apperrors.EntryPointTooManyParameters},
		{name: "Variadic parameter", instance: variadicUseCase{}, wantReason: apperrors.EntryPointTooManyParameters},
		{name: "Second result is not an error", instance: badResultsUseCase{}, wantReason: apperrors.EntryPointBadResults},
		{name: "Three results", instance: threeResultsUseCase{}, wantReason: apperrors.EntryPointBadResults},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			d, err := Describe("uc", tt.instance)
			if tt.wantReason != "" {
				var epErr apperrors.EntryPointError
				if !errors.As(err, &epErr) {
					t.Fatalf("expected EntryPointError, got %v", err)
				}
				if epErr.Reason != tt.wantReason {
					t.Errorf("expected reason %q, got %q", tt.wantReason, epErr.Reason)
				}
				if d != nil {
					t.Error("descriptor should be nil on error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if d.EntryPoint != tt.wantEntry {
				t.Errorf("EntryPoint = %q, want %q", d.EntryPoint, tt.wantEntry)
			}
			if d.ParamCount != tt.wantParams {
				t.Errorf("ParamCount = %d, want %d", d.ParamCount, tt.wantParams)
			}
			if d.ParamType != tt.wantType {
				t.Errorf("ParamType = %v, want %v", d.ParamType, tt.wantType)
			}
		})
	}
}

// TestDescriptor_Accepts verifies the request type compatibility check.
func TestDescriptor_Accepts(t *testing.T) {
	t.Parallel()
	concrete, err := Describe("concrete", executeUseCase{})
	if err != nil {
		t.Fatal(err)
	}
	iface, err := Describe("iface", readerUseCase{})
	if err != nil {
		t.Fatal(err)
	}
	none, err := Describe("none", &noRequestUseCase{})
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		d    *Descriptor
		req  any
		want bool
	}{
		{"same struct", concrete, request{Foo: "bar"}, true},
		{"pointer to struct", concrete, &request{}, false},
		{"other struct", concrete, struct{}{}, false},
		{"nil for struct", concrete, nil, false},
		{"implements interface", iface, io.NopCloser(nil), true},
		{"nil for interface", iface, nil, true},
		{"does not implement interface", iface, 42, false},
		{"no parameter", none, request{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.d.Accepts(tt.req); got != tt.want {
				t.Errorf("Accepts(%s) = %v, want %v", TypeName(tt.req), got, tt.want)
			}
		})
	}

	if concrete.ExpectedType() != "usecase.request" {
		t.Errorf("ExpectedType() = %q", concrete.ExpectedType())
	}
	if none.ExpectedType() != "" {
		t.Errorf("ExpectedType() without parameter = %q", none.ExpectedType())
	}
}

// TestDescriptor_Invoke verifies argument passing and result mapping.
func TestDescriptor_Invoke(t *testing.T) {
	t.Parallel()

	t.Run("Response only", func(t *testing.T) {
		t.Parallel()
		d, _ := Describe("uc", executeUseCase{})
		resp, err := d.Invoke(context.Background(), request{Foo: "bar"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.(response).Foo != "bar" {
			t.Errorf("unexpected response %+v", resp)
		}
	})

	t.Run("Context is forwarded and error returned unchanged", func(t *testing.T) {
		t.Parallel()
		uc := &contextUseCase{}
		d, _ := Describe("uc", uc)
		type key struct{}
		ctx := context.WithValue(context.Background(), key{}, "v")
		if !d.TakesContext() {
			t.Fatal("TakesContext() should be true")
		}
		_, err := d.Invoke(ctx, request{})
		if err == nil || err.Error() != "empty foo" {
			t.Fatalf("expected use case error, got %v", err)
		}
		if uc.seen.Value(key{}) != "v" {
			t.Error("dispatch context was not forwarded")
		}
	})

	t.Run("Nil context becomes a nil interface", func(t *testing.T) {
		t.Parallel()
		uc := &contextUseCase{}
		d, _ := Describe("uc", uc)
		//nolint:staticcheck // nil context is exercised on purpose
		if _, err := d.Invoke(nil, request{Foo: "x"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if uc.seen != nil {
			t.Error("expected nil context")
		}
	})

	t.Run("No request and error result", func(t *testing.T) {
		t.Parallel()
		uc := &noRequestUseCase{}
		d, _ := Describe("uc", uc)
		resp, err := d.Invoke(context.Background(), nil)
		if err != nil || resp != nil {
			t.Fatalf("expected (nil, nil), got (%v, %v)", resp, err)
		}
		if uc.calls != 1 {
			t.Errorf("expected 1 call, got %d", uc.calls)
		}
	})

	t.Run("Nil interface request", func(t *testing.T) {
		t.Parallel()
		d, _ := Describe("uc", readerUseCase{})
		resp, err := d.Invoke(context.Background(), nil)
		if err != nil || resp != "ok" {
			t.Fatalf("expected (ok, nil), got (%v, %v)", resp, err)
		}
	})

	t.Run("Typed interactor through AsFunc", func(t *testing.T) {
		t.Parallel()
		var i Interactor[request, response] = &contextUseCase{}
		d, err := Describe("uc", AsFunc(i))
		if err != nil {
			t.Fatal(err)
		}
		resp, err := d.Invoke(context.Background(), request{Foo: "baz"})
		if err != nil || resp.(response).Foo != "baz" {
			t.Fatalf("unexpected result (%v, %v)", resp, err)
		}
	})
}

func TestTypeName(t *testing.T) {
	t.Parallel()
	if TypeName(nil) != "nil" {
		t.Errorf("TypeName(nil) = %q", TypeName(nil))
	}
	if TypeName(&request{}) != "*usecase.request" {
		t.Errorf("TypeName(&request{}) = %q", TypeName(&request{}))
	}
}
