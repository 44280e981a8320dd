package main

import (
	"fmt"
	"os"

	"formhub.link/configs"
	"formhub.link/configs/configsdatabase"
	"formhub.link/configs/configslog"
	"formhub.link/database"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "formhub-db",
		Short: "formhub veritabanı araçları",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			configslog.InitLogger()
			configs.Load()
		},
	}

	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(seedCmd())
	rootCmd.AddCommand(initCmd())

	err := rootCmd.Execute()
	err = multierr.Append(err, configslog.SyncLogger())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(migrate, seed bool) (err error) {
	cfg := configs.GetConfig()
	configsdatabase.InitDB(cfg.Database)
	defer func() {
		err = multierr.Append(err, configsdatabase.CloseDB())
	}()

	return database.Initialize(configsdatabase.GetDB(), migrate, seed, database.SeedOptions{
		AdminEmail:    cfg.AdminEmail,
		AdminPassword: cfg.AdminPassword,
	})
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Tabloları oluşturur/günceller",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(true, false)
		},
	}
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Sistem kullanıcısını ve kategori önerilerini ekler",
		Long: `Seed işlemi:
  - ADMIN_EMAIL / ADMIN_PASSWORD ile admin kullanıcıyı oluşturur veya admin yapar
  - Varsayılan kategori önerilerini (Logística, Comercial, Financeiro, RH, Operações) ekler`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(false, true)
		},
	}
}

func initCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "migrate ve seed işlemlerini tek transaction'da çalıştırır",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(true, true)
		},
	}
}
