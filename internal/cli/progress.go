package cli

import (
	"io"
	"sync"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/domainflow/internal/orchestration"
)

// ProgressRefreshRate is the spinner frame interval.
const ProgressRefreshRate = 100 * time.Millisecond

// Spinner abstracts the terminal spinner so that progress display can be
// tested without a terminal.
type Spinner interface {
	Start()
	Stop()
	UpdateSuffix(suffix string)
}

// realSpinner adapts spinner.Spinner to Spinner.
type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start() { rs.s.Start() }

func (rs *realSpinner) Stop() { rs.s.Stop() }

func (rs *realSpinner) UpdateSuffix(suffix string) { rs.s.Suffix = suffix }

// newSpinner is replaced in tests. The spinner library only animates when
// its writer is a terminal.
var newSpinner = func(options ...spinner.Option) Spinner {
	return &realSpinner{spinner.New(spinner.CharSets[11], ProgressRefreshRate, options...)}
}

// WithProgress shows a spinner labelled with label on w until the response
// reaches p or the returned stop function is called, whichever comes first.
// The spinner is stopped before p writes anything.
func WithProgress(p orchestration.Presenter, w io.Writer, label string) (orchestration.Presenter, func()) {
	s := newSpinner(spinner.WithWriter(w), spinner.WithHiddenCursor(true))
	s.UpdateSuffix(" " + label)
	s.Start()

	var once sync.Once
	stop := func() { once.Do(s.Stop) }
	wrapped := orchestration.PresenterFunc(func(response any) error {
		stop()
		return p.Present(response)
	})
	return wrapped, stop
}
