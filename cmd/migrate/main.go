// cmd/migrate/main.go
// Applies the schema migrations and, when MYSQL_DSN is set, copies users from
// a legacy MySQL users table into PostgreSQL.
//
// Usage:
//
//	DATABASE_URL="postgres://..." go run ./cmd/migrate
//
//	MYSQL_DSN="user:pass@tcp(host:3306)/app?parseTime=true" \
//	DATABASE_URL="postgres://..." \
//	go run ./cmd/migrate
package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	_ "github.com/go-sql-driver/mysql"
	"github.com/uptrace/bun"

	"github.com/padraicbc/signupapp/config"
	"github.com/padraicbc/signupapp/db"
	applog "github.com/padraicbc/signupapp/logger"
	"github.com/padraicbc/signupapp/models"
)

const batchSize = 500

func main() {
	if err := run(context.Background()); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger, err := applog.New(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	// --- PostgreSQL ---
	handle := db.NewHandle(cfg, db.WithLogger(logger))
	defer handle.Close()
	pgDB, err := handle.DB(ctx)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	if err := db.Migrate(ctx, pgDB.DB, logger); err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}
	log.Println("schema up to date")

	if cfg.MySQLDSN == "" {
		return nil
	}

	// --- MySQL ---
	myDB, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		return fmt.Errorf("open mysql: %w", err)
	}
	defer myDB.Close()
	myDB.SetMaxOpenConns(4)
	if err := myDB.PingContext(ctx); err != nil {
		return fmt.Errorf("ping mysql: %w", err)
	}
	log.Println("connected to MySQL")

	n, err := importUsers(ctx, myDB, pgDB)
	if err != nil {
		return fmt.Errorf("import users: %w", err)
	}
	log.Printf("users  %d rows imported", n)

	if err := resetUserSequence(ctx, pgDB); err != nil {
		log.Printf("reset users_id_seq: %v", err)
	}
	log.Println("import complete")
	return nil
}

// insertBatch skips rows that already exist so re-runs are safe. It returns
// the number of rows PostgreSQL actually inserted.
func insertBatch(ctx context.Context, pgDB bun.IDB, rows []models.User) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	res, err := pgDB.NewInsert().Model(&rows).On("CONFLICT DO NOTHING").Returning("").Exec(ctx)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func importUsers(ctx context.Context, myDB *sql.DB, pgDB bun.IDB) (int64, error) {
	rows, err := myDB.QueryContext(ctx, "SELECT id, username, password FROM users ORDER BY id")
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	var (
		batch []models.User
		total int64
	)
	flush := func() error {
		n, err := insertBatch(ctx, pgDB, batch)
		total += n
		batch = batch[:0]
		return err
	}
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Username, &u.Password); err != nil {
			return total, err
		}
		batch = append(batch, u)
		if len(batch) >= batchSize {
			if err := flush(); err != nil {
				return total, err
			}
		}
	}
	if err := rows.Err(); err != nil {
		return total, err
	}
	return total, flush()
}

// resetUserSequence moves users_id_seq past the imported ids.
func resetUserSequence(ctx context.Context, pgDB bun.IDB) error {
	_, err := pgDB.ExecContext(ctx,
		"SELECT setval('users_id_seq', COALESCE((SELECT MAX(id) FROM users), 1))")
	return err
}
