package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/velotrack/velotrack_backend/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) *portsrepo.RepositoryProvider {
	return &portsrepo.RepositoryProvider{
		TxManager:    newPgxTxManager(dbPool),
		UserRepo:     newPgxUserRepository(dbPool),
		LeadRepo:     newPgxLeadRepository(dbPool),
		ProjectRepo:  newPgxProjectRepository(dbPool),
		FinanceRepo:  newPgxFinanceRepository(dbPool),
		ReportRepo:   newReportingRepository(dbPool),
		DocumentRepo: newPgxDocumentRepository(dbPool),
		AuditRepo:    newPgxAuditRepository(dbPool),
		SettingsRepo: newPgxSettingsRepository(dbPool),
	}
}
