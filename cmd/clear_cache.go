package cmd

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/zvd-group/kompas-manager/internal/comcache"
)

var clearCacheAll bool

var clearCacheCmd = &cobra.Command{
	Use:   "clear-cache [папка-кэша]",
	Short: "Очистить кэш COM-оберток КОМПАС (gen_py)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runClearCache,
}

func init() {
	clearCacheCmd.Flags().BoolVar(&clearCacheAll, "all", false, "Удалить весь кэш, а не только записи КОМПАС")
}

func runClearCache(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer logger.Sync()

	cfg := loadConfig(logger)
	cacheDir := cfg.Paths.ComCacheDir
	if len(args) > 0 {
		cacheDir = args[0]
	}
	if cacheDir == "" {
		cacheDir = comcache.DefaultCacheDir()
	}

	cleaner := comcache.NewCleaner(logger)
	var result *comcache.Result
	if clearCacheAll {
		result, err = cleaner.ClearAll(cacheDir)
	} else {
		result, err = cleaner.ClearSelective(cacheDir)
	}
	if err != nil {
		return err
	}

	fmt.Printf("Удалено записей кэша: %d (%s)\n", len(result.Removed), result.CacheDir)
	for _, e := range result.Errors {
		fmt.Printf("Ошибка: %v\n", e)
	}
	return nil
}
