package main

import (
	"fmt"
	"os"

	"github.com/Govind-619/SlotPay/config"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var Version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "slotctl",
		Short:         "Operator tools for SlotPay payments",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(signCmd())
	rootCmd.AddCommand(pendingCmd())
	rootCmd.AddCommand(exportCmd())
	rootCmd.AddCommand(logsCmd())

	return rootCmd
}

// openDatabase connects with the service configuration. It never migrates.
func openDatabase() (*config.Config, *gorm.DB, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, err
	}
	db, err := config.Connect(cfg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, db, nil
}
