package moderation

import (
	"testing"

	"souqah-backend/internal/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAdAction(t *testing.T) {
	for _, raw := range []string{"approve", "reject", "toggle_featured", "mark_sold", "delete"} {
		a, err := ParseAdAction(raw)
		require.NoError(t, err)
		assert.Equal(t, AdAction(raw), a)
	}
	_, err := ParseAdAction("promote")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	_, err = ParseAdAction("")
	assert.Error(t, err)
}

func TestParseUserAction(t *testing.T) {
	for _, raw := range []string{"verify", "suspend", "ban", "activate"} {
		_, err := ParseUserAction(raw)
		require.NoError(t, err)
	}
	_, err := ParseUserAction("delete")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestParseReportAction(t *testing.T) {
	for _, raw := range []string{"resolve", "resolve_delete_ad", "resolve_ban_seller", "dismiss"} {
		_, err := ParseReportAction(raw)
		require.NoError(t, err)
	}
	_, err := ParseReportAction("escalate")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}
