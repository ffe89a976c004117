package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check that the service is reachable",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		resp, err := newClient(cfg).Health(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %s\n", cfg.GetBaseURL(), reason(err))
			os.Exit(1)
		}
		fmt.Printf("%s: %s\n", cfg.GetBaseURL(), resp.Status)
	},
}

func init() {
	rootCmd.AddCommand(healthCmd)
}
