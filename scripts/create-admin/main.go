package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/mo-amir99/langswap-server-go/internal/features/user"
	"github.com/mo-amir99/langswap-server-go/pkg/config"
	"github.com/mo-amir99/langswap-server-go/pkg/database"
	"github.com/mo-amir99/langswap-server-go/pkg/logger"
	"github.com/mo-amir99/langswap-server-go/pkg/types"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	appLogger, err := logger.New(cfg.LogLevel, cfg.LogDir)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}

	db, err := database.Connect(context.Background(), cfg.Database, appLogger)
	if err != nil {
		appLogger.Error("Failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.Close(db, appLogger)

	reader := bufio.NewReader(os.Stdin)

	fmt.Print("Username: ")
	username, _ := reader.ReadString('\n')

	fmt.Print("Email: ")
	email, _ := reader.ReadString('\n')

	fmt.Print("Password (min 8 chars): ")
	password, _ := reader.ReadString('\n')

	admin, err := user.Create(db, user.CreateInput{
		Email:    strings.TrimSpace(email),
		Username: strings.TrimSpace(username),
		Password: strings.TrimSpace(password),
		Role:     types.RoleAdmin,
	})
	switch {
	case errors.Is(err, user.ErrEmailTaken):
		fmt.Println("❌ Error: A user with this email already exists")
		os.Exit(1)
	case err != nil:
		fmt.Printf("❌ Error: %v\n", err)
		os.Exit(1)
	}

	appLogger.Info("admin created", slog.String("email", admin.Email))
	fmt.Println("\n✅ Admin created successfully!")
	fmt.Printf("   ID: %s\n", admin.ID)
	fmt.Printf("   Email: %s\n", admin.Email)
	fmt.Printf("   Role: %s\n", admin.Role)
}
