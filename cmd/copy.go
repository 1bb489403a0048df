package cmd

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/zvd-group/kompas-manager/internal/project"
)

var copyCmd = &cobra.Command{
	Use:   "copy <исходный-проект> <целевая-папка> <новое-имя>",
	Short: "Скопировать проект под новым именем (служебные файлы отфильтровываются)",
	Args:  cobra.ExactArgs(3),
	RunE:  runCopy,
}

func runCopy(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer logger.Sync()

	copier := project.NewCopier(logger)
	result, err := copier.CopyProject(args[0], args[1], args[2])
	if err != nil {
		return err
	}

	if _, err := copier.RenameMainAssembly(result.CopiedPath, args[2]); err != nil {
		logger.Warn("Главная сборка не переименована", zap.Error(err))
	}

	fmt.Printf("Проект скопирован: %s\n", result.CopiedPath)
	fmt.Printf("Файлов скопировано: %d, пропущено служебных: %d\n", result.CopiedFiles, result.SkippedFiles)
	return nil
}
