package app

import (
	"fmt"

	capsuleHTTP "github.com/guardianchain/capsule-api/internal/capsule/http"
	capsuleRepository "github.com/guardianchain/capsule-api/internal/capsule/repository"
	capsuleService "github.com/guardianchain/capsule-api/internal/capsule/service"
	capsuleUseCase "github.com/guardianchain/capsule-api/internal/capsule/usecase"
)

// Minter returns the NFT minter service.
func (c *Container) Minter() capsuleService.Minter {
	c.minterInit.Do(func() {
		c.minter = capsuleService.NewLocalMinter()
	})
	return c.minter
}

// CapsuleRepository returns the capsule repository based on database driver.
func (c *Container) CapsuleRepository() (capsuleUseCase.CapsuleRepository, error) {
	var err error
	c.capsuleRepoInit.Do(func() {
		c.capsuleRepo, err = c.initCapsuleRepository()
		if err != nil {
			c.initErrors["capsuleRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["capsuleRepo"]; exists {
		return nil, storedErr
	}
	return c.capsuleRepo, nil
}

// CertificationRepository returns the certification repository based on database driver.
func (c *Container) CertificationRepository() (capsuleUseCase.CertificationRepository, error) {
	var err error
	c.certificationRepoInit.Do(func() {
		c.certificationRepo, err = c.initCertificationRepository()
		if err != nil {
			c.initErrors["certificationRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["certificationRepo"]; exists {
		return nil, storedErr
	}
	return c.certificationRepo, nil
}

// MintLogRepository returns the mint log repository based on database driver.
func (c *Container) MintLogRepository() (capsuleUseCase.MintLogRepository, error) {
	var err error
	c.mintLogRepoInit.Do(func() {
		c.mintLogRepo, err = c.initMintLogRepository()
		if err != nil {
			c.initErrors["mintLogRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["mintLogRepo"]; exists {
		return nil, storedErr
	}
	return c.mintLogRepo, nil
}

// CapsuleUseCase returns the capsule use case.
func (c *Container) CapsuleUseCase() (capsuleUseCase.CapsuleUseCase, error) {
	var err error
	c.capsuleUseCaseInit.Do(func() {
		c.capsuleUseCase, err = c.initCapsuleUseCase()
		if err != nil {
			c.initErrors["capsuleUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["capsuleUseCase"]; exists {
		return nil, storedErr
	}
	return c.capsuleUseCase, nil
}

// CertificationUseCase returns the certification use case.
func (c *Container) CertificationUseCase() (capsuleUseCase.CertificationUseCase, error) {
	var err error
	c.certificationUseCaseInit.Do(func() {
		c.certificationUseCase, err = c.initCertificationUseCase()
		if err != nil {
			c.initErrors["certificationUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["certificationUseCase"]; exists {
		return nil, storedErr
	}
	return c.certificationUseCase, nil
}

// CapsuleHandler returns the HTTP handler for capsule operations.
func (c *Container) CapsuleHandler() (*capsuleHTTP.CapsuleHandler, error) {
	var err error
	c.capsuleHandlerInit.Do(func() {
		c.capsuleHandler, err = c.initCapsuleHandler()
		if err != nil {
			c.initErrors["capsuleHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["capsuleHandler"]; exists {
		return nil, storedErr
	}
	return c.capsuleHandler, nil
}

// CertificationHandler returns the HTTP handler for certification operations.
func (c *Container) CertificationHandler() (*capsuleHTTP.CertificationHandler, error) {
	var err error
	c.certificationHandlerInit.Do(func() {
		c.certificationHandler, err = c.initCertificationHandler()
		if err != nil {
			c.initErrors["certificationHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["certificationHandler"]; exists {
		return nil, storedErr
	}
	return c.certificationHandler, nil
}

// initCapsuleRepository creates the capsule repository based on the database driver.
func (c *Container) initCapsuleRepository() (capsuleUseCase.CapsuleRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for capsule repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return capsuleRepository.NewPostgreSQLCapsuleRepository(db), nil
	case "mysql":
		return capsuleRepository.NewMySQLCapsuleRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initCertificationRepository creates the certification repository based on the database driver.
func (c *Container) initCertificationRepository() (capsuleUseCase.CertificationRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for certification repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return capsuleRepository.NewPostgreSQLCertificationRepository(db), nil
	case "mysql":
		return capsuleRepository.NewMySQLCertificationRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initMintLogRepository creates the mint log repository based on the database driver.
func (c *Container) initMintLogRepository() (capsuleUseCase.MintLogRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for mint log repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return capsuleRepository.NewPostgreSQLMintLogRepository(db), nil
	case "mysql":
		return capsuleRepository.NewMySQLMintLogRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initCapsuleUseCase creates the capsule use case with all its dependencies.
func (c *Container) initCapsuleUseCase() (capsuleUseCase.CapsuleUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for capsule use case: %w", err)
	}

	capsuleRepo, err := c.CapsuleRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get capsule repository for capsule use case: %w", err)
	}

	certificationRepo, err := c.CertificationRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get certification repository for capsule use case: %w", err)
	}

	mintLogRepo, err := c.MintLogRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get mint log repository for capsule use case: %w", err)
	}

	baseUseCase := capsuleUseCase.NewCapsuleUseCase(
		txManager,
		capsuleRepo,
		certificationRepo,
		mintLogRepo,
		c.Minter(),
		c.Logger(),
	)

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for capsule use case: %w", err)
		}
		return capsuleUseCase.NewCapsuleUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

// initCertificationUseCase creates the certification use case with all its dependencies.
func (c *Container) initCertificationUseCase() (capsuleUseCase.CertificationUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for certification use case: %w", err)
	}

	capsuleRepo, err := c.CapsuleRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get capsule repository for certification use case: %w", err)
	}

	certificationRepo, err := c.CertificationRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get certification repository for certification use case: %w", err)
	}

	auditRepo, err := c.AuditRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get audit repository for certification use case: %w", err)
	}

	baseUseCase := capsuleUseCase.NewCertificationUseCase(
		txManager,
		capsuleRepo,
		certificationRepo,
		auditRepo,
		c.config.CertificationValidity,
		c.Logger(),
	)

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for certification use case: %w", err)
		}
		return capsuleUseCase.NewCertificationUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

// initCapsuleHandler creates the capsule HTTP handler with all its dependencies.
func (c *Container) initCapsuleHandler() (*capsuleHTTP.CapsuleHandler, error) {
	useCase, err := c.CapsuleUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get capsule use case for capsule handler: %w", err)
	}

	return capsuleHTTP.NewCapsuleHandler(useCase, c.Logger()), nil
}

// initCertificationHandler creates the certification HTTP handler with all its dependencies.
func (c *Container) initCertificationHandler() (*capsuleHTTP.CertificationHandler, error) {
	useCase, err := c.CertificationUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get certification use case for certification handler: %w", err)
	}

	return capsuleHTTP.NewCertificationHandler(useCase, c.Logger()), nil
}
