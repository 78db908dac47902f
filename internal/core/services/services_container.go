package services

import (
	portsrepo "github.com/estatedesk/backoffice/internal/core/ports/repositories"
	portssvc "github.com/estatedesk/backoffice/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly
// initialized dependencies.
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Tenant service first since every other service authorizes through it.
	container.Tenant = NewTenantService(repos.TenantRepo)

	container.User = NewUserService(repos.UserRepo)
	container.Project = NewProjectService(repos.ProjectRepo, container.Tenant)
	container.Customer = NewCustomerService(repos.CustomerRepo, container.Tenant)
	container.Sale = NewSaleService(repos.SaleRepo, repos.ProjectRepo, repos.CustomerRepo, container.Tenant)
	container.Expense = NewExpenseService(repos.ExpenseRepo, repos.ProjectRepo, container.Tenant)
	container.Payment = NewPaymentService(repos.LedgerRepo, container.Tenant)
	container.Report = NewReportService(repos, container.Tenant)

	return container
}
