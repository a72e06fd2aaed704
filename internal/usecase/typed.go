package usecase

import "context"

// Interactor is a use case taking one request and producing a response.
// Implementations are described with EntryExecute and ParamType Req.
type Interactor[Req, Resp any] interface {
	Execute(ctx context.Context, req Req) (Resp, error)
}

// Command is a use case that needs no request.
type Command[Resp any] interface {
	Execute(ctx context.Context) (Resp, error)
}

// Func is the call form of an Interactor: the function value itself is the
// entry point.
type Func[Req, Resp any] func(ctx context.Context, req Req) (Resp, error)

// AsFunc turns an Interactor into its call form.
func AsFunc[Req, Resp any](i Interactor[Req, Resp]) Func[Req, Resp] {
	return i.Execute
}
