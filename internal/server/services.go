// Package server wires services, handlers and routes into the HTTP API.
package server

import (
	"gorm.io/gorm"

	"profitflow/internal/config"
	"profitflow/internal/realtime"
	"profitflow/internal/roi"
	"profitflow/internal/services"
)

// Services groups every service the API exposes.
type Services struct {
	Users         services.UserServicer
	Plans         services.PlanServicer
	Investments   services.InvestmentServicer
	Wallets       services.WalletServicer
	Deposits      services.DepositServicer
	Performance   services.PerformanceServicer
	Distribution  services.DistributionServicer
	Notifications services.NotificationServicer
	Audit         services.AuditServicer
}

// NewServices builds the service graph over one database handle.
func NewServices(db *gorm.DB, cfg *config.Config, calc *roi.Calculator, broker realtime.Broker) *Services {
	audit := services.NewAuditService(db)
	notifications := services.NewNotificationService(db, broker)
	wallets := services.NewWalletService(db, audit)
	performance := services.NewPerformanceService(db, calc)

	return &Services{
		Users:         services.NewUserService(db, cfg.DefaultCurrency),
		Plans:         services.NewPlanService(db),
		Investments:   services.NewInvestmentService(db, wallets, notifications, audit),
		Wallets:       wallets,
		Deposits:      services.NewDepositService(db, wallets, notifications, audit),
		Performance:   performance,
		Distribution:  services.NewDistributionService(db, cfg, calc, wallets, performance, notifications, audit),
		Notifications: notifications,
		Audit:         audit,
	}
}
