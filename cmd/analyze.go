package cmd

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/zvd-group/kompas-manager/internal/analyzer"
)

var analyzeOutput string

var analyzeCmd = &cobra.Command{
	Use:   "analyze [папка-с-проектами]",
	Short: "Проанализировать архив проектов и сохранить отчет (Markdown + JSON)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeOutput, "output", "АНАЛИЗ_ПРОЕКТОВ.md", "Путь к отчету Markdown (JSON кладется рядом)")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer logger.Sync()

	cfg := loadConfig(logger)
	root := cfg.Paths.ProjectsDir
	if len(args) > 0 {
		root = args[0]
	}

	a := analyzer.New(root, logger)
	if err := a.Analyze(); err != nil {
		return fmt.Errorf("анализ %s: %w", root, err)
	}

	if err := a.SaveReports(analyzeOutput, time.Now()); err != nil {
		return fmt.Errorf("сохранение отчета: %w", err)
	}

	fmt.Printf("Проанализировано папок: %d\n", a.Stats.TotalFolders)
	fmt.Printf("Файлов: %d\n", a.Stats.TotalFiles)
	fmt.Printf("Проектов с параметрами: %d\n", a.Stats.ProjectsWithParams)
	fmt.Printf("Отчет: %s\n", analyzeOutput)
	return nil
}
