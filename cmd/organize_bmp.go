package cmd

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/zvd-group/kompas-manager/internal/project"
)

var organizeBmpCmd = &cobra.Command{
	Use:   "organize-bmp <папка-проекта>",
	Short: "Перенести BMP-превью деталей в подпапку BMP",
	Args:  cobra.ExactArgs(1),
	RunE:  runOrganizeBmp,
}

func runOrganizeBmp(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer logger.Sync()

	result, err := project.NewBmpOrganizer(logger).Organize(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("Перенесено BMP: %d из %d (в %s)\n", result.MovedCount, result.TotalCount, result.BmpFolder)
	for _, e := range result.Errors {
		fmt.Printf("Ошибка: %v\n", e)
	}
	return nil
}
