package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"

	"coilgen.GO/config"
	"coilgen.GO/cron"
)

var jobName string

var cronStartCmd = &cobra.Command{
	Use:   "cron:start",
	Short: "Start the cron scheduler or run a single job by name",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if jobName != "" {
			j, ok, err := cron.Lookup(jobName)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("unknown job: %s", jobName)
			}
			fmt.Fprintf(out, "Running cron job: %s\n", jobName)
			j.Run(args...)
			return nil
		}

		log := config.NewLogger()
		defer log.Sync()

		figure.NewFigure("coilgen cron", "small", true).Print()
		c, err := cron.StartCron(log)
		if err != nil {
			return err
		}
		defer c.Stop()
		fmt.Fprintln(out, "Cron scheduler started. Press Ctrl+C to exit.")
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		<-ctx.Done()
		return nil
	},
}

func init() {
	cronStartCmd.Flags().StringVarP(&jobName, "job", "j", "", "Run a single cron job by name and exit")
	rootCmd.AddCommand(cronStartCmd)
}
