package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/zvd-group/kompas-manager/internal/config"
	"github.com/zvd-group/kompas-manager/pkg/constants"
)

var (
	rootDebug  bool
	rootConfig string
)

var rootCmd = &cobra.Command{
	Use:   "kompas-manager",
	Short: "КОМПАС-3D Project Manager: запуск GUI, обозначения, шаблоны, анализ проектов",
	RunE:  runLaunch, // по умолчанию — запуск приложения
	// Коды выхода лаунчера обрабатываются в main
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute запускает корневую команду (Cobra CLI)
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&rootDebug, "debug", false, "Debug logging")
	rootCmd.PersistentFlags().StringVar(&rootConfig, "config", constants.PathConfig, "Путь к config.yaml")
	rootCmd.Flags().BoolVar(&launchNoPause, "no-pause", false, "Не ждать Enter при ошибках (для скриптов)")

	rootCmd.AddCommand(launchCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(designationCmd)
	rootCmd.AddCommand(copyCmd)
	rootCmd.AddCommand(organizeBmpCmd)
	rootCmd.AddCommand(renameDxfCmd)
	rootCmd.AddCommand(templateCmd)
	rootCmd.AddCommand(checkPdfCmd)
	rootCmd.AddCommand(clearCacheCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(versionCmd)
}

func newLogger() (*zap.Logger, error) {
	var logger *zap.Logger
	var err error
	if rootDebug {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return logger, nil
}

func loadConfig(logger *zap.Logger) *config.Config {
	cfg, err := config.LoadConfig(rootConfig)
	if err != nil {
		logger.Warn("Конфиг не загружен, используются значения по умолчанию", zap.Error(err))
		return config.GetDefaultConfig()
	}
	return cfg
}
