package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/zvd-group/kompas-manager/internal/template"
	"github.com/zvd-group/kompas-manager/pkg/constants"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Применить миграции базы шаблонов",
	RunE:  runMigrate,
}

func runMigrate(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer logger.Sync()

	cfg := loadConfig(logger)
	dbPath := filepath.Join(cfg.Paths.TemplatesDir, constants.PathTemplateDB)

	db, err := template.Open(dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := template.MigrateUp(db); err != nil {
		return err
	}
	fmt.Printf("Миграции применены: %s\n", dbPath)
	return nil
}
