package orchestration_test

import (
	"errors"

	apperrors "github.com/agbru/domainflow/internal/errors"
	"github.com/agbru/domainflow/internal/orchestration"
)

type dummyRequest struct{ Foo string }

type dummyResponse struct{ Foo string }

type otherRequest struct{}

type dummyUseCase struct{ calls int }

func (u *dummyUseCase) Execute(req dummyRequest) dummyResponse {
	u.calls++
	return dummyResponse{Foo: req.Foo}
}

func dummyUseCaseWithInvoke(req dummyRequest) dummyResponse {
	return dummyResponse{Foo: req.Foo}
}

type useCaseWithoutRequest struct{ calls int }

func (u *useCaseWithoutRequest) Execute() dummyResponse {
	u.calls++
	return dummyResponse{Foo: "no request"}
}

type useCaseWithoutMethod struct{}

type valueReceiverUseCase struct{}

func (valueReceiverUseCase) Execute() dummyResponse { return dummyResponse{} }

type useCaseWithExecuteAndInvokeMethods func(dummyRequest) dummyResponse

func (useCaseWithExecuteAndInvokeMethods) Execute(dummyRequest) dummyResponse {
	return dummyResponse{}
}

type useCaseWithMultipleArguments struct{}

func (useCaseWithMultipleArguments) Execute(a dummyRequest, b dummyRequest) dummyResponse {
	return dummyResponse{}
}

var errUseCaseFailed = errors.New("use case failed")

type failingUseCase struct{}

func (failingUseCase) Execute(dummyRequest) (dummyResponse, error) {
	return dummyResponse{}, errUseCaseFailed
}

type dummyHandler struct{}

func (dummyHandler) Valid(q orchestration.Query) error {
	foo, _ := q.String("foo")
	if foo == "" {
		return apperrors.ValidationError{Field: "foo", Message: "must not be empty"}
	}
	return nil
}

func (dummyHandler) Normalize(q orchestration.Query) (any, error) {
	foo, _ := q.String("foo")
	return dummyRequest{Foo: foo}, nil
}

type handlerThatNormalizeInvalidRequest struct{ dummyHandler }

func (handlerThatNormalizeInvalidRequest) Normalize(orchestration.Query) (any, error) {
	return otherRequest{}, nil
}

type dummyPresenter struct {
	calls int
	foo   string
}

func (p *dummyPresenter) Present(response any) error {
	p.calls++
	if r, ok := response.(dummyResponse); ok {
		p.foo = r.Foo
	}
	return nil
}

var errRegistryBroken = errors.New("registry broken")

// mapRegistry is a Registry backed by a map. Entries holding an error are
// reported as present but fail on Get.
type mapRegistry map[string]any

func (r mapRegistry) Has(id string) bool {
	_, ok := r[id]
	return ok
}

func (r mapRegistry) Get(id string) (any, error) {
	if err, ok := r[id].(error); ok {
		return nil, err
	}
	return r[id], nil
}

func newRegistry() mapRegistry {
	return mapRegistry{
		"dummy":           &dummyUseCase{},
		"dummy.invoke":    dummyUseCaseWithInvoke,
		"no.request":      &useCaseWithoutRequest{},
		"no.method":       useCaseWithoutMethod{},
		"nil.pointer":     (*valueReceiverUseCase)(nil),
		"both.methods":    useCaseWithExecuteAndInvokeMethods(dummyUseCaseWithInvoke),
		"multiple.args":   useCaseWithMultipleArguments{},
		"failing":         failingUseCase{},
		"handler":         dummyHandler{},
		"handler.invalid": handlerThatNormalizeInvalidRequest{},
		"handler.zero":    orchestration.HandlerFuncs[dummyRequest]{},
		"not.a.handler":   struct{}{},
		"broken":          errRegistryBroken,
	}
}
