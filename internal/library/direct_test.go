package library

import (
	"context"
	"testing"

	"github.com/cristianoliveira/booknet/internal/alert"
	"github.com/cristianoliveira/booknet/internal/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestActCallsServiceAndShowsViewMessage(t *testing.T) {
	tests := []struct {
		key     string
		method  string
		message string
	}{
		{ActionBorrow, "BorrowBook", "Book successfully added to your list"},
		{ActionReserve, "ReserveBook", "Book reserved successfully"},
		{ActionApprove, "ApproveReturnBorrowedBook", "Book return approved"},
		{ActionArchive, "UpdateArchivedStatus", "Archived status updated"},
		{ActionShare, "UpdateShareableStatus", "Shareable status updated"},
		{ActionReturn, "ReturnBorrowedBook", "Book has been returned and the owner is notified"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			svc := &mockService{}
			svc.On(tt.method, mock.Anything, 5).Return(5, nil).Once()
			alerts := alert.NewLog(0, nil)

			require.NoError(t, Act(context.Background(), svc, alerts, tt.key, 5, nil))

			svc.AssertExpectations(t)
			latest, ok := alerts.Latest()
			require.True(t, ok)
			assert.Equal(t, alert.Success, latest.Tone)
			assert.Equal(t, tt.message, latest.Message)
		})
	}
}

func TestActCancel(t *testing.T) {
	svc := &mockService{}
	svc.On("CancelReservation", mock.Anything, 4).Return(nil).Once()

	require.NoError(t, Act(context.Background(), svc, nil, ActionCancel, 4, nil))
	svc.AssertExpectations(t)
}

func TestActFailureAlertsEveryMessage(t *testing.T) {
	svc := &mockService{}
	svc.On("BorrowBook", mock.Anything, 1).Return(0, &api.Error{
		StatusCode:       400,
		ValidationErrors: []string{"already borrowed", "book archived"},
	})
	alerts := alert.NewLog(0, nil)

	err := Act(context.Background(), svc, alerts, ActionBorrow, 1, nil)
	require.Error(t, err)

	all := alerts.All()
	require.Len(t, all, 2)
	for _, a := range all {
		assert.Equal(t, alert.Error, a.Tone)
		assert.Equal(t, "Borrow", a.Title)
	}
}

func TestActUnknownKey(t *testing.T) {
	err := Act(context.Background(), &mockService{}, nil, "burn", 1, nil)
	assert.ErrorIs(t, err, ErrUnknownAction)
}

func TestActionKeysIncludesReturn(t *testing.T) {
	assert.Equal(t, []string{"approve", "archive", "borrow", "cancel", "reserve", "return", "share"}, ActionKeys())
}
