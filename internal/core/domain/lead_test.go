package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/velotrack/velotrack_backend/internal/apperrors"
	"github.com/velotrack/velotrack_backend/internal/core/domain"
)

func TestLead_ValidateStatusChange(t *testing.T) {
	tests := []struct {
		name      string
		current   domain.LeadStatus
		newStatus domain.LeadStatus
		reason    string
		wantErr   error
	}{
		{"pending to deal", domain.LeadPending, domain.LeadDeal, "", nil},
		{"pending to cancel with reason", domain.LeadPending, domain.LeadCancel, "budget", nil},
		{"cancel back to pending", domain.LeadCancel, domain.LeadPending, "", nil},
		{"cancel without reason", domain.LeadPending, domain.LeadCancel, "", apperrors.ErrValidation},
		{"cancel with blank reason", domain.LeadPending, domain.LeadCancel, "   \t", apperrors.ErrValidation},
		{"deal is locked", domain.LeadDeal, domain.LeadPending, "", apperrors.ErrInvalidState},
		{"deal cannot cancel", domain.LeadDeal, domain.LeadCancel, "changed mind", apperrors.ErrInvalidState},
		{"unknown status", domain.LeadPending, domain.LeadStatus("WON"), "", apperrors.ErrValidation},
		{"deal is locked for any target", domain.LeadDeal, domain.LeadStatus("WON"), "", apperrors.ErrInvalidState},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lead := domain.Lead{LeadID: "lead-1", Status: tt.current}
			err := lead.ValidateStatusChange(tt.newStatus, tt.reason)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLead_ValidateConvertible(t *testing.T) {
	assert.NoError(t, domain.Lead{Status: domain.LeadPending}.ValidateConvertible(false))
	assert.NoError(t, domain.Lead{Status: domain.LeadDeal}.ValidateConvertible(false))
	assert.ErrorIs(t, domain.Lead{Status: domain.LeadDeal}.ValidateConvertible(true), apperrors.ErrInvalidState)
	assert.ErrorIs(t, domain.Lead{Status: domain.LeadCancel}.ValidateConvertible(false), apperrors.ErrInvalidState)
}

func TestLead_IsOwnedBy(t *testing.T) {
	mitra := "mitra-1"
	assert.True(t, domain.Lead{MitraID: &mitra}.IsOwnedBy("mitra-1"))
	assert.False(t, domain.Lead{MitraID: &mitra}.IsOwnedBy("mitra-2"))
	assert.False(t, domain.Lead{}.IsOwnedBy("mitra-1"))
}

func TestCancelNoteContent(t *testing.T) {
	assert.Equal(t, "[CANCEL] budget too small", domain.CancelNoteContent("  budget too small "))
}
