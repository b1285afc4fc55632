package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/fr0stylo/proxitrace/internal/adapters/sqlite"
	"github.com/fr0stylo/proxitrace/internal/app/domain"
	"github.com/fr0stylo/proxitrace/internal/app/ports"
	"github.com/fr0stylo/proxitrace/internal/app/services"
	"github.com/fr0stylo/proxitrace/internal/config"
	"github.com/fr0stylo/proxitrace/internal/observability"
	"github.com/fr0stylo/proxitrace/internal/wire"
)

const ingestParallelism = 4

type app struct {
	store    *sqlite.ContactStore
	contacts *services.ContactService
	ingester *services.HandshakeIngestService
}

func newRootCmd() *cobra.Command {
	var dbPath string

	root := &cobra.Command{
		Use:           "contactctl",
		Short:         "contactctl - inspect and maintain the contact store",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&dbPath, "db", "", "database path (overrides PROXITRACE_DB_PATH)")

	withApp := func(run func(cmd *cobra.Command, args []string, a *app) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			a, closeFn, err := openApp(dbPath, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer closeFn()
			return run(cmd, args, a)
		}
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "count",
			Short: "Print the number of stored contacts",
			Args:  cobra.NoArgs,
			RunE: withApp(func(cmd *cobra.Command, _ []string, a *app) error {
				count, err := a.contacts.Count(cmd.Context())
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), count)
				return err
			}),
		},
		newContactsCmd(withApp),
		&cobra.Command{
			Use:   "matched",
			Short: "List contacts linked to a known case",
			Args:  cobra.NoArgs,
			RunE: withApp(func(cmd *cobra.Command, _ []string, a *app) error {
				contacts, err := a.contacts.MatchedContacts(cmd.Context())
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), contacts)
			}),
		},
		&cobra.Command{
			Use:   "link <contact-id> <known-case-id>",
			Short: "Link a contact to a known case",
			Args:  cobra.ExactArgs(2),
			RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
				contactID, err := strconv.ParseInt(args[0], 10, 64)
				if err != nil {
					return fmt.Errorf("contact id: %w", err)
				}
				knownCaseID, err := strconv.ParseInt(args[1], 10, 64)
				if err != nil {
					return fmt.Errorf("known case id: %w", err)
				}
				return a.contacts.LinkKnownCase(cmd.Context(), contactID, knownCaseID)
			}),
		},
		&cobra.Command{
			Use:   "sweep",
			Short: "Delete contacts older than the retention period",
			Args:  cobra.NoArgs,
			RunE: withApp(func(cmd *cobra.Command, _ []string, a *app) error {
				deleted, err := a.contacts.SweepExpired(cmd.Context())
				if err != nil {
					return err
				}
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "deleted %d contacts\n", deleted)
				return err
			}),
		},
		newResetCmd(withApp),
		newIngestCmd(withApp),
	)
	return root
}

type appRunner func(run func(cmd *cobra.Command, args []string, a *app) error) func(*cobra.Command, []string) error

func newContactsCmd(withApp appRunner) *cobra.Command {
	var (
		day       string
		overlap   time.Duration
		threshold int
	)
	cmd := &cobra.Command{
		Use:   "contacts",
		Short: "List unmatched contacts for a day",
		Args:  cobra.NoArgs,
		RunE: withApp(func(cmd *cobra.Command, _ []string, a *app) error {
			parsed, err := domain.ParseDay(day)
			if err != nil {
				return fmt.Errorf("--day: %w", err)
			}
			contacts, err := a.contacts.Contacts(cmd.Context(), ports.ContactQuery{
				Day:              parsed,
				Overlap:          overlap,
				ContactThreshold: threshold,
			})
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), contacts)
		}),
	}
	cmd.Flags().StringVar(&day, "day", time.Now().UTC().Format("2006-01-02"), "UTC day (YYYY-MM-DD)")
	cmd.Flags().DurationVar(&overlap, "overlap", 0, "widen the day on both sides")
	cmd.Flags().IntVar(&threshold, "threshold", 1, "minimum window count")
	return cmd
}

func newResetCmd(withApp appRunner) *cobra.Command {
	var confirm bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete every stored contact",
		Args:  cobra.NoArgs,
		RunE: withApp(func(cmd *cobra.Command, _ []string, a *app) error {
			if !confirm {
				return fmt.Errorf("refusing to reset without --yes")
			}
			return a.contacts.Reset(cmd.Context())
		}),
	}
	cmd.Flags().BoolVar(&confirm, "yes", false, "confirm deletion")
	return cmd
}

func newIngestCmd(withApp appRunner) *cobra.Command {
	return &cobra.Command{
		Use:   "ingest <batch.json>...",
		Short: "Aggregate and store handshake batch files",
		Args:  cobra.MinimumNArgs(1),
		RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
			total, err := ingestFiles(cmd.Context(), a.ingester, args)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), total)
		}),
	}
}

// ingestFiles processes files concurrently. The first failure cancels the rest.
func ingestFiles(ctx context.Context, ingester *services.HandshakeIngestService, paths []string) (services.IngestResult, error) {
	var (
		mu    sync.Mutex
		total services.IngestResult
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(ingestParallelism)
	for _, path := range paths {
		g.Go(func() error {
			handshakes, err := readBatchFile(path)
			if err != nil {
				return err
			}
			result, err := ingester.Ingest(gctx, "file:"+path, handshakes)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}

			mu.Lock()
			total.Handshakes += result.Handshakes
			total.Contacts += result.Contacts
			total.Inserted += result.Inserted
			total.Duplicates += result.Duplicates
			total.Expired += result.Expired
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return services.IngestResult{}, err
	}
	return total, nil
}

func readBatchFile(path string) ([]domain.Handshake, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	handshakes, err := wire.DecodeBatch(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return handshakes, nil
}

func openApp(dbPath string, logOutput io.Writer) (*app, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	if dbPath != "" {
		cfg.Database.Path = dbPath
	}

	log := observability.NewLogger(logOutput, cfg.LogLevel, false)
	store, err := sqlite.OpenContactStore(cfg.Database.Path, cfg.RetentionPeriod(),
		sqlite.WithCalibration(cfg.Matching.Calibration),
		sqlite.WithLogger(log),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("open contact store: %w", err)
	}

	a := &app{
		store:    store,
		contacts: services.NewContactService(store, store, log),
		ingester: services.NewHandshakeIngestService(services.NewContactAggregator(cfg.ContactMatching(), nil), store, log),
	}
	closeFn := func() {
		if err := store.Close(); err != nil {
			slog.Error("Failed to close contact store", "error", err)
		}
	}
	return a, closeFn, nil
}

func writeJSON(w io.Writer, value any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(value)
}
