package main

import (
	"database/sql"
	"flag"
	"fmt"
	"os"

	"github.com/crestline-remodeling/proposal-api/internal/config"
	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
)

const usage = `migrate manages the Postgres schema with goose.

Usage:
  migrate [-dir <path>] <command> [args]

Commands:
  up         apply all pending migrations
  down       roll back the most recent migration
  status     print migration status
  version    print the current schema version
  create NAME  scaffold a new SQL migration
`

func main() {
	dir := flag.String("dir", "./migrations", "directory holding migration files")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(*dir, flag.Arg(0), flag.Args()[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "migrate: %v\n", err)
		os.Exit(1)
	}
}

func run(dir, command string, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := sql.Open("postgres", cfg.Database.ConnectionString())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}

	switch command {
	case "up":
		if err := goose.Up(db, dir); err != nil {
			return err
		}
		fmt.Println("migrations applied")
	case "down":
		if err := goose.Down(db, dir); err != nil {
			return err
		}
		fmt.Println("rolled back one migration")
	case "status":
		return goose.Status(db, dir)
	case "version":
		return goose.Version(db, dir)
	case "create":
		if len(args) == 0 {
			return fmt.Errorf("create requires a migration name")
		}
		if err := goose.Create(db, dir, args[0], "sql"); err != nil {
			return err
		}
		fmt.Printf("created migration %s\n", args[0])
	default:
		return fmt.Errorf("unknown command %q", command)
	}
	return nil
}
