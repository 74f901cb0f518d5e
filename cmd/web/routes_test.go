package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/AshokJ-Official/yultimate-app-sub000/internal/httputil"
	"github.com/AshokJ-Official/yultimate-app-sub000/internal/league"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteLeagueError(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "not found",
			err:        fmt.Errorf("match x: %w", league.ErrNotFound),
			wantStatus: http.StatusNotFound,
			wantCode:   "NOT_FOUND",
		},
		{
			name:       "invalid schedule input",
			err:        &league.InvalidScheduleInputError{Reason: "need at least 2 teams"},
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   "UNPROCESSABLE",
		},
		{
			name:       "validation",
			err:        &league.ValidationError{Reason: "scores must be non-negative"},
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   "UNPROCESSABLE",
		},
		{
			name: "eligibility blocked",
			err: &league.EligibilityBlockedError{
				TeamPending: map[uuid.UUID][]league.PendingSpiritScore{
					uuid.New(): {{MatchID: uuid.New(), Opponent: "Swill"}},
				},
			},
			wantStatus: http.StatusConflict,
			wantCode:   "ELIGIBILITY_BLOCKED",
		},
		{
			name:       "duplicate submission",
			err:        fmt.Errorf("match x: %w", league.ErrDuplicateSubmission),
			wantStatus: http.StatusConflict,
			wantCode:   "DUPLICATE_SUBMISSION",
		},
		{
			name: "invalid transition",
			err: &league.InvalidTransitionError{
				MatchID: uuid.New(),
				From:    league.MatchScheduled,
				To:      league.MatchCompleted,
			},
			wantStatus: http.StatusConflict,
			wantCode:   "INVALID_TRANSITION",
		},
		{
			name:       "unexpected",
			err:        errors.New("disk on fire"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "INTERNAL",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeLeagueError(rec, tc.err, "request failed")

			assert.Equal(t, tc.wantStatus, rec.Code)

			var resp httputil.ErrorResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
			assert.Equal(t, tc.wantCode, resp.Error.Code)
		})
	}
}
