package mapping

import (
	"github.com/velotrack/velotrack_backend/internal/core/domain"
	"github.com/velotrack/velotrack_backend/internal/models"
)

// ToDomainSettings converts the settings row to domain Settings
func ToDomainSettings(m models.Settings) domain.Settings {
	return domain.Settings{
		CompanyName:       m.CompanyName,
		Address:           m.Address,
		Email:             m.Email,
		Phone:             m.Phone,
		BankName:          m.BankName,
		BankAccountNumber: m.BankAccountNumber,
		BankAccountHolder: m.BankAccountHolder,
		SignerName:        m.SignerName,
		DPPercentage:      m.DPPercentage,
		UpdatedAt:         m.UpdatedAt,
		UpdatedBy:         deref(m.UpdatedBy),
	}
}

// ToModelSettings converts domain Settings to the settings row
func ToModelSettings(d domain.Settings) models.Settings {
	return models.Settings{
		SettingsID:        1,
		CompanyName:       d.CompanyName,
		Address:           d.Address,
		Email:             d.Email,
		Phone:             d.Phone,
		BankName:          d.BankName,
		BankAccountNumber: d.BankAccountNumber,
		BankAccountHolder: d.BankAccountHolder,
		SignerName:        d.SignerName,
		DPPercentage:      d.DPPercentage,
		UpdatedAt:         d.UpdatedAt,
		UpdatedBy:         nullable(d.UpdatedBy),
	}
}
