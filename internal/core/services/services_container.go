package services

import (
	portsrepo "github.com/ledgerline/ledgerline_backend/internal/core/ports/repositories"
	portssvc "github.com/ledgerline/ledgerline_backend/internal/core/ports/services"
	"github.com/ledgerline/ledgerline_backend/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Account = NewAccountService(repos.AccountRepo)
	container.Journal = NewJournalService(repos.JournalRepo, repos.AccountRepo)
	container.Inventory = NewInventoryService(repos.InventoryRepo, repos.AccountRepo)
	container.Reporting = NewReportingService(repos.ReportingRepo, repos.AccountRepo, repos.JournalRepo)
	container.Closing = NewClosingService(repos.JournalRepo, repos.AccountRepo)
	container.Auth = NewAuthService(cfg)

	return container
}
