package cmd

import (
	"context"
	"fmt"
	"os"

	internalApp "github.com/haierkeys/voice-note-service/internal/app"
	"github.com/haierkeys/voice-note-service/internal/dao"
	"github.com/haierkeys/voice-note-service/internal/upgrade"
	"github.com/haierkeys/voice-note-service/pkg/logger"

	"github.com/spf13/cobra"
)

var upgradeCmd = &cobra.Command{
	Use:   "upgrade",
	Short: "Apply pending data migrations to the database",
	Long: `Apply pending data migrations to the database.

Already applied versions are recorded in the schema_version table and skipped,
so it is safe to run this command multiple times.`,
	Run: func(cmd *cobra.Command, args []string) {
		configPath, _ := cmd.Flags().GetString("config")
		if len(configPath) <= 0 {
			configPath = "config/config.yaml"
		}

		appConfig, configRealpath, err := internalApp.LoadConfig(configPath)
		if err != nil {
			fmt.Printf("Failed to load config: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Loading config from: %s\n", configRealpath)

		lg, err := logger.NewLogger(logger.Config{
			Level:      appConfig.Log.Level,
			File:       appConfig.Log.File,
			Production: appConfig.Log.Production,
		})
		if err != nil {
			fmt.Printf("Failed to init logger: %v\n", err)
			os.Exit(1)
		}

		dbConfig := appConfig.Database
		dbConfig.RunMode = appConfig.Server.RunMode

		db, err := dao.NewDBEngine(dbConfig)
		if err != nil {
			fmt.Printf("Failed to init database: %v\n", err)
			os.Exit(1)
		}

		fmt.Println("Starting database upgrade...")

		d := dao.New(db, context.Background(), dao.WithConfig(&dbConfig), dao.WithLogger(lg))
		if err := upgrade.Execute(context.Background(), d, lg, internalApp.Version); err != nil {
			fmt.Printf("Upgrade failed: %v\n", err)
			os.Exit(1)
		}

		fmt.Println("Database upgrade completed successfully!")
	},
}

func init() {
	rootCmd.AddCommand(upgradeCmd)
	upgradeCmd.Flags().StringP("config", "c", "", "config file path")
}
