package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/examprep/internal/database"
	"github.com/example/examprep/internal/scheduler"
)

var (
	serveOnce  bool
	remindUser string
)

// newReminders wires the scheduler to the database and to the broker when one is configured
func newReminders() (*scheduler.Scheduler, func(), error) {
	db, err := openDB()
	if err != nil {
		return nil, nil, err
	}

	var notifier scheduler.Notifier = scheduler.LogNotifier{Logger: logger}
	closeAll := func() { db.Close() }

	pub, err := openPublisher()
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	if pub != nil {
		notifier = pub
		closeAll = func() {
			pub.Close()
			db.Close()
		}
	}

	s, err := scheduler.New(database.NewReviewItemRepository(db), notifier, cfg.Reminders(), logger)
	if err != nil {
		closeAll()
		return nil, nil, err
	}
	return s, closeAll, nil
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Send due-review reminders until interrupted",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, closeAll, err := newReminders()
		if err != nil {
			return err
		}
		defer closeAll()

		if serveOnce {
			sent, err := s.RunOnce(cmd.Context(), time.Now().UTC())
			fmt.Fprintf(cmd.OutOrStdout(), "Notified %d users\n", sent)
			return err
		}

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(sigChan)

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		if err := s.Start(ctx); err != nil {
			return err
		}

		sig := <-sigChan
		logger.Info("received signal, shutting down", "signal", sig.String())
		cancel()
		s.Stop()
		logger.Info("reminder scheduler stopped")
		return nil
	},
}

var remindCmd = &cobra.Command{
	Use:   "remind",
	Short: "Send a reminder to one user now, ignoring notification hours",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, closeAll, err := newReminders()
		if err != nil {
			return err
		}
		defer closeAll()

		due, err := s.RunManualCheck(cmd.Context(), remindUser)
		if err != nil {
			return err
		}
		if due == 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "No reviews due for %s\n", remindUser)
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Reminded %s of %d due reviews\n", remindUser, due)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(remindCmd)

	serveCmd.Flags().BoolVar(&serveOnce, "once", false, "Run a single reminder sweep and exit")
	remindCmd.Flags().StringVarP(&remindUser, "user", "u", "", "User to remind")
	remindCmd.MarkFlagRequired("user")
}
