package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"inventory.GO/config"
	"inventory.GO/cron"
)

var jobName string

var cronStartCmd = &cobra.Command{
	Use:   "cron:start",
	Short: "Start the cron scheduler or run a single job by name",
	RunE: func(cmd *cobra.Command, args []string) error {
		cron.RegisterDefaultJobs(appConfig)
		out := cmd.OutOrStdout()
		if jobName != "" {
			name := strings.ToLower(jobName)
			j, ok := cron.Jobs()[name]
			if !ok {
				return fmt.Errorf("unknown job: %s", jobName)
			}
			fmt.Fprintf(out, "Running cron job: %s\n", jobName)
			return j.Run(args...)
		}
		fmt.Fprintln(out, "Starting cron scheduler...")
		c, err := cron.StartCron(config.GetLogger())
		if err != nil {
			return err
		}
		defer c.Stop()
		fmt.Fprintln(out, "Cron scheduler started. Press Ctrl+C to exit.")
		<-cmd.Context().Done()
		return nil
	},
}

func init() {
	cronStartCmd.Flags().StringVarP(&jobName, "job", "j", "", "Run a single cron job by name and exit")
	rootCmd.AddCommand(cronStartCmd)
}
