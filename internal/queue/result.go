package queue

import (
	"errors"

	"backend-turnero/internal/apperror"
	"backend-turnero/internal/models"
)

// ResultKind - Tag of the outcome of a board operation. Callers switch on it
// instead of probing Err.
type ResultKind string

const (
	Applied     ResultKind = "applied"
	Noop        ResultKind = "noop"
	Rejected    ResultKind = "rejected"
	StoreFailed ResultKind = "store_failed"
)

// Message keys. The presentation layer owns the wording.
const (
	MsgSwapApplied        = "swap_applied"
	MsgSwapBoundary       = "swap_boundary"
	MsgRepositionApplied  = "reposition_applied"
	MsgRepositionSame     = "reposition_same"
	MsgAdvanceApplied     = "advance_applied"
	MsgAdvanceNoCandidate = "advance_no_candidate"
	MsgResetApplied       = "reset_applied"
	MsgResetUnconfirmed   = "reset_unconfirmed"
	MsgStatusApplied      = "status_applied"
	MsgStatusUnchanged    = "status_unchanged"
	MsgReorganized        = "reorganized"
	MsgBoardEmpty         = "board_empty"
	MsgNotFound           = "not_found"
	MsgInvalidInput       = "invalid_input"
	MsgStoreFailed        = "store_failed"
)

type Result struct {
	Kind    ResultKind
	Message string
	Updated int
	Vessel  *models.Vessel
	Err     error
}

func (r Result) OK() bool {
	return r.Kind == Applied || r.Kind == Noop
}

func rejected(err error) Result {
	msg := MsgInvalidInput
	if errors.Is(err, apperror.ErrNotFound) {
		msg = MsgNotFound
	}
	return Result{Kind: Rejected, Message: msg, Err: err}
}

// writeFailed separates "vessel vanished since the snapshot" from a real
// store outage.
func writeFailed(op string, err error) Result {
	if errors.Is(err, apperror.ErrNotFound) {
		return rejected(err)
	}
	return Result{Kind: StoreFailed, Message: MsgStoreFailed, Err: apperror.WriteFailed(op, err)}
}
