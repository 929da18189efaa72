// Package swap orchestrates the user-facing swap action: it validates input,
// computes the quoted amount and submits a conversion to the ledger.
package swap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"sync"
	"time"

	"github.com/TheCodister/swapdesk/infra/provider/feed"
	"github.com/TheCodister/swapdesk/pkg/conversion"
	"github.com/TheCodister/swapdesk/pkg/quote"
)

// State is a phase of one swap attempt.
type State string

const (
	StateIdle       State = "idle"
	StateValidating State = "validating"
	StateQuoting    State = "quoting"
	StateSubmitting State = "submitting"
	StateSettled    State = "settled"
)

var (
	// ErrSwapInProgress rejects a swap invocation while a prior attempt is
	// still in Validating, Quoting or Submitting. Prevents duplicate ledger
	// writes for one user action.
	ErrSwapInProgress = errors.New("a swap is already in progress")

	// ErrValidationFailed indicates the swap input failed validation; the
	// ledger is never contacted in that case.
	ErrValidationFailed = errors.New("amount must be greater than 0")
)

// genericFailureMessage is shown when an error carries no recognizable reason.
const genericFailureMessage = "an error occurred during the swap"

// CatalogProvider supplies the current price catalog.
type CatalogProvider interface {
	Catalog(ctx context.Context) (quote.Catalog, error)
}

// Ledger persists conversions.
type Ledger interface {
	Create(ctx context.Context, req conversion.Request) (*conversion.Record, error)
}

// Result is the settlement of one swap attempt.
type Result struct {
	Success bool
	Message string
	Record  *conversion.Record
	Err     error
}

// Workflow runs swap attempts through the
// Idle → Validating → Quoting → Submitting → Settled state machine.
type Workflow struct {
	catalogs CatalogProvider
	ledger   Ledger
	logger   *slog.Logger
	now      func() time.Time

	mu     sync.Mutex
	state  State
	result *Result
}

// New creates an idle swap workflow.
func New(catalogs CatalogProvider, ledger Ledger, logger *slog.Logger) *Workflow {
	if logger == nil {
		logger = slog.Default()
	}
	return &Workflow{
		catalogs: catalogs,
		ledger:   ledger,
		logger:   logger,
		now:      time.Now,
		state:    StateIdle,
	}
}

// State returns the current workflow state.
func (w *Workflow) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Result returns the last settlement, or nil when none has been reached since
// the last Reset.
func (w *Workflow) Result() *Result {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.result
}

// Reset returns a settled workflow to Idle. Settlement is not auto-dismissed;
// this is the user dismissing the result or re-opening the form.
func (w *Workflow) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state == StateSettled {
		w.state = StateIdle
		w.result = nil
	}
}

// Swap runs one attempt end to end and returns its settlement. It fails fast
// with ErrSwapInProgress while a prior attempt is in flight; failures of the
// attempt itself settle as a Result, not an error, so the session stays usable
// and retry is always available.
func (w *Workflow) Swap(ctx context.Context, from, to string, amount float64) (*Result, error) {
	if err := w.begin(); err != nil {
		return nil, err
	}

	// Validating
	if amount <= 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return w.settleFailure(ErrValidationFailed, ErrValidationFailed.Error()), nil
	}

	catalog, err := w.catalogs.Catalog(ctx)
	if err != nil {
		return w.settleFailure(err, messageFor(err)), nil
	}

	fromQuote, ok := catalog.Resolve(from)
	if !ok {
		err = fmt.Errorf("%w for %s", quote.ErrQuoteUnavailable, from)
		return w.settleFailure(err, err.Error()), nil
	}
	toQuote, ok := catalog.Resolve(to)
	if !ok {
		err = fmt.Errorf("%w for %s", quote.ErrQuoteUnavailable, to)
		return w.settleFailure(err, err.Error()), nil
	}

	// Quoting
	w.setState(StateQuoting)
	converted, err := quote.Convert(fromQuote, toQuote, amount)
	if err != nil {
		return w.settleFailure(err, messageFor(err)), nil
	}

	// Submitting
	w.setState(StateSubmitting)
	record, err := w.ledger.Create(ctx, conversion.Request{
		FromCurrency: from,
		ToCurrency:   to,
		FromAmount:   amount,
		ToAmount:     converted,
		CreatedAt:    w.now(),
	})
	if err != nil {
		return w.settleFailure(err, messageFor(err)), nil
	}

	message := fmt.Sprintf("Swapped %s %s → %.6f %s",
		strconv.FormatFloat(amount, 'f', -1, 64), from, converted, to)
	return w.settleSuccess(record, message), nil
}

func (w *Workflow) begin() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	switch w.state {
	case StateValidating, StateQuoting, StateSubmitting:
		return ErrSwapInProgress
	}
	// Starting a new attempt from Settled is itself the user interaction that
	// returns the workflow to Idle.
	w.state = StateValidating
	w.result = nil
	return nil
}

func (w *Workflow) setState(next State) {
	w.mu.Lock()
	w.state = next
	w.mu.Unlock()
}

func (w *Workflow) settleSuccess(record *conversion.Record, message string) *Result {
	result := &Result{Success: true, Message: message, Record: record}
	w.mu.Lock()
	w.state = StateSettled
	w.result = result
	w.mu.Unlock()
	w.logger.Info("swap settled", "success", true, "message", message, "record_id", record.ID)
	return result
}

func (w *Workflow) settleFailure(err error, message string) *Result {
	result := &Result{Success: false, Message: message, Err: err}
	w.mu.Lock()
	w.state = StateSettled
	w.result = result
	w.mu.Unlock()
	w.logger.Warn("swap settled", "success", false, "message", message, "error", err)
	return result
}

// messageFor maps an error kind to its user-visible reason. Unrecognized
// errors fall back to a generic message.
func messageFor(err error) string {
	switch {
	case errors.Is(err, quote.ErrQuoteUnavailable),
		errors.Is(err, quote.ErrInvalidAmount),
		errors.Is(err, quote.ErrInvalidQuote),
		errors.Is(err, feed.ErrFeedUnavailable),
		errors.Is(err, feed.ErrFeedMalformed),
		errors.Is(err, conversion.ErrLedgerWriteFailed),
		errors.Is(err, conversion.ErrLedgerReadFailed),
		errors.Is(err, conversion.ErrLedgerDeleteFailed):
		return err.Error()
	default:
		return genericFailureMessage
	}
}
