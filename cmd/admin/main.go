// Command admin grants or revokes the admin role of a registered user.
//
//	admin promote ops@example.com
//	admin demote ops@example.com
package main

import (
	"errors"
	"fmt"
	"os"

	"profitflow/internal/database"
	"profitflow/internal/logger"
	"profitflow/internal/models"
	"profitflow/internal/services"
)

const usage = "usage: admin <promote|demote> <email>"

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(os.Args[1:]); err != nil {
		logger.Get().Fatalf("admin: %v", err)
	}
}

func run(args []string) error {
	if len(args) != 2 {
		return errors.New(usage)
	}
	role, err := roleFor(args[0])
	if err != nil {
		return err
	}

	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}
	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer dbManager.Close()

	user, err := services.NewUserService(dbManager.DB(), "").SetRole(args[1], role)
	if err != nil {
		return err
	}
	logger.Get().Infow("role updated", "user_id", user.ID, "email", user.Email, "role", user.Role)
	return nil
}

func roleFor(command string) (models.Role, error) {
	switch command {
	case "promote":
		return models.RoleAdmin, nil
	case "demote":
		return models.RoleUser, nil
	}
	return "", fmt.Errorf("unknown command %q (%s)", command, usage)
}
