package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iliyamo/book-swap-exchange/internal/model"
	"github.com/iliyamo/book-swap-exchange/internal/repository"
)

func pendingSwap() *model.SwapRequest {
	return &model.SwapRequest{
		ID:              1,
		RequestedBookID: 10,
		OfferedBookID:   20,
		RequestedBy:     100,
		Status:          model.StatusPending,
	}
}

func Test_AuthorizeTransition(t *testing.T) {
	const requestedBookOwner = uint64(200)

	tests := []struct {
		name    string
		swap    *model.SwapRequest
		actor   uint64
		target  string
		wantErr error
	}{
		{
			name:   "owner_may_accept",
			swap:   pendingSwap(),
			actor:  requestedBookOwner,
			target: model.StatusAccepted,
		},
		{
			name:   "owner_may_reject",
			swap:   pendingSwap(),
			actor:  requestedBookOwner,
			target: model.StatusRejected,
		},
		{
			name:    "requester_may_not_accept_own_request",
			swap:    pendingSwap(),
			actor:   100,
			target:  model.StatusAccepted,
			wantErr: repository.ErrForbidden,
		},
		{
			name:    "third_party_may_not_reject",
			swap:    pendingSwap(),
			actor:   300,
			target:  model.StatusRejected,
			wantErr: repository.ErrForbidden,
		},
		{
			name:   "requester_may_cancel",
			swap:   pendingSwap(),
			actor:  100,
			target: model.StatusCancelled,
		},
		{
			name:    "owner_may_not_cancel",
			swap:    pendingSwap(),
			actor:   requestedBookOwner,
			target:  model.StatusCancelled,
			wantErr: repository.ErrForbidden,
		},
		{
			name:    "third_party_may_not_cancel",
			swap:    pendingSwap(),
			actor:   300,
			target:  model.StatusCancelled,
			wantErr: repository.ErrForbidden,
		},
		{
			name: "accepted_swap_may_not_move_again",
			swap: &model.SwapRequest{
				ID: 1, RequestedBy: 100, Status: model.StatusAccepted,
			},
			actor:   requestedBookOwner,
			target:  model.StatusRejected,
			wantErr: repository.ErrConflict,
		},
		{
			name: "rejected_swap_may_not_be_cancelled",
			swap: &model.SwapRequest{
				ID: 1, RequestedBy: 100, Status: model.StatusRejected,
			},
			actor:   100,
			target:  model.StatusCancelled,
			wantErr: repository.ErrConflict,
		},
		{
			name:    "unknown_target_is_rejected",
			swap:    pendingSwap(),
			actor:   requestedBookOwner,
			target:  "finished",
			wantErr: repository.ErrConflict,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := authorizeTransition(tc.swap, requestedBookOwner, tc.actor, tc.target)
			if tc.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.wantErr)
			}
		})
	}
}

// The guard must check authorization before the status gate: a
// forbidden actor learns nothing about whether the swap has already
// been decided.
func Test_AuthorizeTransition_ForbiddenBeforeConflict(t *testing.T) {
	swap := &model.SwapRequest{ID: 1, RequestedBy: 100, Status: model.StatusAccepted}
	err := authorizeTransition(swap, 200, 300, model.StatusRejected)
	assert.ErrorIs(t, err, repository.ErrForbidden)
}
