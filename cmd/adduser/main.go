// cmd/adduser/main.go
// Signs up a user from the command line through the same path as the API.
//
// Usage:
//
//	go run ./cmd/adduser -username alice -password secret123
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/padraicbc/signupapp/config"
	"github.com/padraicbc/signupapp/db"
	applog "github.com/padraicbc/signupapp/logger"
	"github.com/padraicbc/signupapp/users"
)

func main() {
	username := flag.String("username", "", "username (required)")
	password := flag.String("password", "", "plain-text password (required)")
	flag.Parse()

	if err := run(context.Background(), *username, *password); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, username, password string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger, err := applog.New(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	handle := db.NewHandle(cfg, db.WithLogger(logger))
	defer handle.Close()

	svc := users.NewService(users.NewStore(handle), logger)
	user, err := svc.Signup(ctx, username, password)
	if err != nil {
		logger.Error("adduser failed", zap.Stringer("kind", users.KindOf(err)), zap.Error(err))
		return err
	}

	fmt.Printf("user %q saved with id %d\n", user.Username, user.ID)
	return nil
}
