package main

import (
	"fmt"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"judicial_capture/internal/config"
	"judicial_capture/internal/domain"
	"judicial_capture/internal/reconcile"
	"judicial_capture/internal/scheduler"
	"judicial_capture/internal/service"
	"judicial_capture/internal/storage/postgres"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run every configured capture on the sync interval",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			jobs := scheduledJobs(a.cfg.Credentials)
			if len(jobs) == 0 {
				return fmt.Errorf("no captures configured")
			}

			sched := scheduler.NewScheduler(a.dispatcher, jobs, scheduler.Config{
				Interval:      a.cfg.Sync.Interval,
				RunTimeout:    a.cfg.Sync.RunTimeout,
				MaxConcurrent: a.cfg.Sync.MaxConcurrentRuns,
			}, a.logger)

			a.logger.Info("starting capturer",
				"credentials", len(a.cfg.Credentials),
				"jobs", len(jobs),
				"interval", a.cfg.Sync.Interval,
			)

			return sched.Start(ctx)
		},
	}
}

func scheduledJobs(creds []config.CredentialConfig) []scheduler.Job {
	var jobs []scheduler.Job
	for _, c := range creds {
		cred := c.Credential()
		for _, t := range c.Captures {
			jobs = append(jobs, scheduler.Job{Type: t, Credential: cred})
		}
	}
	return jobs
}

func runCmd() *cobra.Command {
	var (
		credentialID string
		captureType  string
		from, to     string
	)
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a single capture for one credential",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			t, err := domain.ParseCaptureType(captureType)
			if err != nil {
				return err
			}

			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			cred, err := a.credential(credentialID)
			if err != nil {
				return err
			}

			var run *domain.CaptureRun
			if t == domain.CaptureHearings {
				req := service.CaptureRequest{Type: t, Credential: cred}
				if req.HearingsFrom, err = parseDay(from); err != nil {
					return err
				}
				if req.HearingsTo, err = parseDay(to); err != nil {
					return err
				}
				run, err = a.captures.RunCapture(ctx, req)
			} else {
				run, err = a.dispatcher.Run(ctx, t, cred)
			}
			if run != nil {
				printRuns([]domain.CaptureRun{*run})
			}
			return err
		},
	}
	cmd.Flags().StringVar(&credentialID, "credential", "", "credential id")
	cmd.Flags().StringVar(&captureType, "type", "", "capture type (acervo_geral, arquivados, audiencias, expedientes, comunicacoes)")
	cmd.Flags().StringVar(&from, "from", "", "hearings window start (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "hearings window end (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("credential")
	_ = cmd.MarkFlagRequired("type")
	return cmd
}

func reconcileCmd() *cobra.Command {
	var (
		credentialID string
		since        string
		linkOnly     bool
	)
	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Sync national communications and link them to pending items",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			from, err := parseDay(since)
			if err != nil {
				return err
			}

			if linkOnly {
				if from.IsZero() {
					from = time.Now().AddDate(0, 0, -a.cfg.Sync.MaxHistoricalDays)
				}
				summary, err := a.comms.ReconcileUnlinked(ctx, from)
				if err != nil {
					return err
				}
				printLinks(summary)
				return nil
			}

			cred, err := a.credential(credentialID)
			if err != nil {
				return err
			}

			res, err := a.comms.Sync(ctx, service.CommunicationRequest{Credential: cred, From: from})
			if res != nil && res.Run != nil {
				printRuns([]domain.CaptureRun{*res.Run})
				printLinks(res.Links)
			}
			return err
		},
	}
	cmd.Flags().StringVar(&credentialID, "credential", "", "credential id")
	cmd.Flags().StringVar(&since, "since", "", "window start (YYYY-MM-DD), capped by max_historical_days")
	cmd.Flags().BoolVar(&linkOnly, "link-only", false, "only link already stored communications")
	return cmd
}

func runsCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List recent capture runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, logger, err := loadConfig()
			if err != nil {
				return err
			}
			db, err := openDB(ctx, cfg.Database, logger)
			if err != nil {
				return err
			}
			defer db.Close()

			runs, err := postgres.NewCaptureRunStore(db).ListRecent(ctx, limit)
			if err != nil {
				return err
			}
			printRuns(runs)
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "number of runs")
	return cmd
}

func tribunalsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tribunals",
		Short: "List the tribunals known to the communications API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			tribunals, err := a.comunica.ListTribunals(ctx)
			if err != nil {
				return err
			}

			tw := table.NewWriter()
			tw.SetOutputMirror(os.Stdout)
			tw.AppendHeader(table.Row{"Sigla", "Nome", "UF"})
			for _, t := range tribunals {
				tw.AppendRow(table.Row{t.Acronym, t.Name, t.UF})
			}
			tw.Render()
			return nil
		},
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, logger, err := loadConfig()
			if err != nil {
				return err
			}
			db, err := openDB(ctx, cfg.Database, logger)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := postgres.Migrate(ctx, db); err != nil {
				return err
			}
			logger.Info("migrations applied")
			return nil
		},
	}
}

func (a *app) credential(id string) (domain.Credential, error) {
	if id == "" {
		return domain.Credential{}, fmt.Errorf("--credential is required")
	}
	c, ok := a.cfg.FindCredential(id)
	if !ok {
		return domain.Credential{}, fmt.Errorf("credential %q not found in config", id)
	}
	return c.Credential(), nil
}

// parseDay reads a YYYY-MM-DD flag as the start of that court day.
func parseDay(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.ParseInLocation(time.DateOnly, s, domain.CourtLocation)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

func printRuns(runs []domain.CaptureRun) {
	tw := table.NewWriter()
	tw.SetOutputMirror(os.Stdout)
	tw.AppendHeader(table.Row{"ID", "Type", "Status", "Tribunal", "Inserted", "Discarded", "Errored", "Total", "Error"})
	for _, r := range runs {
		var s domain.RunSummary
		if r.Summary != nil {
			s = *r.Summary
		}
		errMsg := ""
		if r.Error != nil {
			errMsg = *r.Error
		}
		tw.AppendRow(table.Row{r.ID, r.Type, r.Status, r.Tribunal, s.Inserted, s.Discarded, s.Errored, s.TotalProcessed, errMsg})
	}
	tw.Render()
}

func printLinks(s reconcile.LinkSummary) {
	tw := table.NewWriter()
	tw.SetOutputMirror(os.Stdout)
	tw.AppendHeader(table.Row{"Linked", "Unmatched", "Ambiguous", "Errored"})
	tw.AppendRow(table.Row{s.Linked, s.Unmatched, s.Ambiguous, s.Errored})
	tw.Render()
}
