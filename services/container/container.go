package container

import (
	"sync"

	"gorm.io/gorm"

	"github.com/lyng148/thien-nguyet-dong-phu/config"
	"github.com/lyng148/thien-nguyet-dong-phu/services"
)

// ServiceContainer wires every service to the shared database handle
// and configuration.
type ServiceContainer struct {
	db     *gorm.DB
	config *config.Config

	jwtService services.InterfaceJWTService

	householdService          services.InterfaceHouseholdService
	residentService           services.InterfaceResidentService
	feeService                services.InterfaceFeeService
	paymentService            services.InterfacePaymentService
	householdHistoryService   services.InterfaceHouseholdHistoryService
	temporaryResidenceService services.InterfaceTemporaryResidenceService
	utilityService            services.InterfaceUtilityService
	utilityPaymentService     services.InterfaceUtilityPaymentService
	vehicleService            services.InterfaceVehicleService

	mu sync.RWMutex
}

// NewServiceContainer builds the container and all services.
func NewServiceContainer(db *gorm.DB, cfg *config.Config) *ServiceContainer {
	if db == nil {
		panic("nil database handle")
	}
	if cfg == nil {
		panic("nil config")
	}

	container := &ServiceContainer{db: db, config: cfg}
	container.initializeServices()
	return container
}

func (c *ServiceContainer) initializeServices() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.jwtService = services.NewJWTService(c.config, c.db)

	c.householdService = services.NewHouseholdService(c.db, c.config)
	c.residentService = services.NewResidentService(c.db, c.config)
	c.feeService = services.NewFeeService(c.db, c.config)
	c.paymentService = services.NewPaymentService(c.db, c.config)
	c.householdHistoryService = services.NewHouseholdHistoryService(c.db, c.config)
	c.temporaryResidenceService = services.NewTemporaryResidenceService(c.db, c.config)
	c.utilityService = services.NewUtilityService(c.db, c.config)
	c.utilityPaymentService = services.NewUtilityPaymentService(c.db, c.config)
	c.vehicleService = services.NewVehicleService(c.db, c.config)
}

// GetService returns the named service, nil for unknown names.
func (c *ServiceContainer) GetService(name string) interface{} {
	c.mu.RLock()
	defer c.mu.RUnlock()

	switch name {
	case "config":
		return c.config
	case "db":
		return c.db
	case "jwt":
		return c.jwtService
	case "household":
		return c.householdService
	case "resident":
		return c.residentService
	case "fee":
		return c.feeService
	case "payment":
		return c.paymentService
	case "household_history":
		return c.householdHistoryService
	case "temporary_residence":
		return c.temporaryResidenceService
	case "utility":
		return c.utilityService
	case "utility_payment":
		return c.utilityPaymentService
	case "vehicle":
		return c.vehicleService
	default:
		return nil
	}
}

// GetDB exposes the shared database handle.
func (c *ServiceContainer) GetDB() *gorm.DB {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.db
}
