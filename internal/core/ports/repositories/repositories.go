package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	TenantRepo   TenantRepositoryFacade
	UserRepo     UserRepositoryFacade
	ProjectRepo  ProjectRepositoryFacade
	CustomerRepo CustomerRepositoryFacade
	SaleRepo     SaleRepositoryFacade
	ExpenseRepo  ExpenseRepositoryFacade
	LedgerRepo   LedgerRepositoryFacade
}
