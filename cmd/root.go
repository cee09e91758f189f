package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"coilgen.GO/config"
)

var rootCmd = &cobra.Command{
	Use:           "coilgen",
	Short:         "Synthetic steel-coil material data for scheduler testing",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.LoadAppConfig()
		return err
	},
}

// Execute adds registered commands to the root command and runs it.
func Execute() {
	Apply()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s failed: %v\n", commandName(), err)
		os.Exit(1)
	}
}

func commandName() string {
	if c, _, err := rootCmd.Find(os.Args[1:]); err == nil && c != nil {
		return c.Name()
	}
	return rootCmd.Name()
}
