package app

import (
	"fmt"

	adminHTTP "github.com/guardianchain/capsule-api/internal/admin/http"
	adminRepository "github.com/guardianchain/capsule-api/internal/admin/repository"
	adminUseCase "github.com/guardianchain/capsule-api/internal/admin/usecase"
)

// StatsRepository returns the platform statistics repository.
func (c *Container) StatsRepository() (adminUseCase.StatsRepository, error) {
	var err error
	c.statsRepoInit.Do(func() {
		c.statsRepo, err = c.initStatsRepository()
		if err != nil {
			c.initErrors["statsRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["statsRepo"]; exists {
		return nil, storedErr
	}
	return c.statsRepo, nil
}

// AdminUseCase returns the admin use case.
func (c *Container) AdminUseCase() (adminUseCase.AdminUseCase, error) {
	var err error
	c.adminUseCaseInit.Do(func() {
		c.adminUseCase, err = c.initAdminUseCase()
		if err != nil {
			c.initErrors["adminUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["adminUseCase"]; exists {
		return nil, storedErr
	}
	return c.adminUseCase, nil
}

// AdminHandler returns the HTTP handler for admin operations.
func (c *Container) AdminHandler() (*adminHTTP.AdminHandler, error) {
	var err error
	c.adminHandlerInit.Do(func() {
		c.adminHandler, err = c.initAdminHandler()
		if err != nil {
			c.initErrors["adminHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["adminHandler"]; exists {
		return nil, storedErr
	}
	return c.adminHandler, nil
}

// initStatsRepository creates the statistics repository. The stats queries use
// no driver-specific syntax, so one implementation serves both drivers.
func (c *Container) initStatsRepository() (adminUseCase.StatsRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for stats repository: %w", err)
	}

	return adminRepository.NewSQLStatsRepository(db), nil
}

// initAdminUseCase creates the admin use case with all its dependencies.
func (c *Container) initAdminUseCase() (adminUseCase.AdminUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for admin use case: %w", err)
	}

	userRepo, err := c.UserRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get user repository for admin use case: %w", err)
	}

	statsRepo, err := c.StatsRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get stats repository for admin use case: %w", err)
	}

	auditRepo, err := c.AuditRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get audit repository for admin use case: %w", err)
	}

	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for admin use case: %w", err)
	}

	baseUseCase := adminUseCase.NewAdminUseCase(
		txManager,
		userRepo,
		statsRepo,
		auditRepo,
		db,
		c.config.RateLimitStore,
		c.Logger(),
	)

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for admin use case: %w", err)
		}
		return adminUseCase.NewAdminUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

// initAdminHandler creates the admin HTTP handler with all its dependencies.
func (c *Container) initAdminHandler() (*adminHTTP.AdminHandler, error) {
	useCase, err := c.AdminUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get admin use case for admin handler: %w", err)
	}

	return adminHTTP.NewAdminHandler(useCase, c.Logger()), nil
}
