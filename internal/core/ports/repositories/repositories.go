package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	TxManager    TransactionManager
	UserRepo     UserRepositoryFacade
	LeadRepo     LeadRepositoryFacade
	ProjectRepo  ProjectRepositoryFacade
	FinanceRepo  FinanceRepositoryFacade
	ReportRepo   ReportingRepository
	DocumentRepo DocumentRepositoryFacade
	AuditRepo    AuditRepositoryFacade
	SettingsRepo SettingsRepository
}
