package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/svaldez/catalog-admin/internal/config"
	"github.com/svaldez/catalog-admin/internal/database"
	"github.com/svaldez/catalog-admin/internal/database/brands"
	"github.com/svaldez/catalog-admin/internal/database/products"
	"github.com/svaldez/catalog-admin/internal/database/syncruns"
	"github.com/svaldez/catalog-admin/internal/entrypoint"
)

// SyncCommand runs one catalog sync pass from the command line, without the
// HTTP server. Useful for cron-driven deployments and for verifying vendor
// credentials.
type SyncCommand struct {
	Kind    string
	Timeout time.Duration
}

func NewSyncCommand() *SyncCommand {
	return &SyncCommand{}
}

func (cmd *SyncCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("sync", flag.ExitOnError)

	fs.StringVar(&cmd.Kind, "kind", "all", "What to sync: brands, products or all")
	fs.DurationVar(&cmd.Timeout, "timeout", 10*time.Minute, "Overall timeout for the pass")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s sync [-kind brands|products|all]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Fetch the vendor catalog and merge it into the local store.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	switch cmd.Kind {
	case "brands", "products", "all":
		return nil
	default:
		return fmt.Errorf("unknown kind %q: expected brands, products or all", cmd.Kind)
	}
}

func (cmd *SyncCommand) Run() error {
	cfg := config.NewConfig()

	db, err := database.NewDatabase(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	brandRepo := brands.NewRepository(db.DB)
	productRepo := products.NewRepository(db.DB)
	runRepo := syncruns.NewRepository(db.DB)
	engines := entrypoint.BuildSyncEngines(cfg.Vendor, brandRepo, productRepo)

	ctx, cancel := context.WithTimeout(context.Background(), cmd.Timeout)
	defer cancel()

	kinds := []string{"brands", "products"}
	if cmd.Kind != "all" {
		kinds = []string{cmd.Kind}
	}

	for _, kind := range kinds {
		engine := engines[kind]

		run, err := runRepo.Start(kind)
		if err != nil {
			return fmt.Errorf("record %s run: %w", kind, err)
		}

		report, err := engine.Sync(ctx)
		if err != nil {
			_ = runRepo.Fail(run, err)
			return fmt.Errorf("sync %s: %w", kind, err)
		}
		if err := runRepo.Complete(run, report); err != nil {
			return fmt.Errorf("record %s run: %w", kind, err)
		}

		fmt.Printf("%s: %d created, %d updated, %d skipped, %d failed\n",
			kind, report.Created, report.Updated, report.Skipped, report.Failed)
		for _, recErr := range report.Errors {
			fmt.Printf("  record %d: %s\n", recErr.ExternalID, recErr.Reason)
		}
	}

	return nil
}
