package cmd

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/zvd-group/kompas-manager/internal/template"
	"github.com/zvd-group/kompas-manager/pkg/constants"
)

var (
	templateName   string
	templateDesc   string
	templateTags   []string
	templateParams []string
)

var templateCmd = &cobra.Command{
	Use:   "template",
	Short: "Библиотека шаблонов проектов",
}

var templateListCmd = &cobra.Command{
	Use:   "list",
	Short: "Показать все шаблоны",
	RunE:  runTemplateList,
}

var templateAddCmd = &cobra.Command{
	Use:   "add <папка-проекта>",
	Short: "Создать шаблон из существующего проекта",
	Args:  cobra.ExactArgs(1),
	RunE:  runTemplateAdd,
}

var templateSearchCmd = &cobra.Command{
	Use:   "search <запрос>",
	Short: "Найти шаблоны по названию, описанию или тегам",
	Args:  cobra.ExactArgs(1),
	RunE:  runTemplateSearch,
}

var templateDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Удалить шаблон из библиотеки (вместе с файлами)",
	Args:  cobra.ExactArgs(1),
	RunE:  runTemplateDelete,
}

var templateUseCmd = &cobra.Command{
	Use:   "use <id>",
	Short: "Отметить использование шаблона (счетчик и дата)",
	Args:  cobra.ExactArgs(1),
	RunE:  runTemplateUse,
}

var templateStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Статистика библиотеки шаблонов",
	RunE:  runTemplateStats,
}

func init() {
	templateAddCmd.Flags().StringVar(&templateName, "name", "", "Название шаблона (по умолчанию — имя папки)")
	templateAddCmd.Flags().StringVar(&templateDesc, "description", "", "Описание шаблона")
	templateAddCmd.Flags().StringSliceVar(&templateTags, "tag", nil, "Теги (можно несколько раз)")
	templateAddCmd.Flags().StringSliceVar(&templateParams, "param", nil, "Параметры вида H=90 (можно несколько раз)")

	templateCmd.AddCommand(templateListCmd)
	templateCmd.AddCommand(templateAddCmd)
	templateCmd.AddCommand(templateSearchCmd)
	templateCmd.AddCommand(templateDeleteCmd)
	templateCmd.AddCommand(templateUseCmd)
	templateCmd.AddCommand(templateStatsCmd)
}

// openTemplateLibrary открывает базу шаблонов и применяет миграции
func openTemplateLibrary(logger *zap.Logger) (*sql.DB, *template.Store, string, error) {
	cfg := loadConfig(logger)
	templatesDir := cfg.Paths.TemplatesDir
	dbPath := filepath.Join(templatesDir, constants.PathTemplateDB)

	db, err := template.Open(dbPath)
	if err != nil {
		return nil, nil, "", err
	}
	if err := template.MigrateUp(db); err != nil {
		db.Close()
		return nil, nil, "", err
	}
	return db, template.NewStore(db, logger), templatesDir, nil
}

func runTemplateList(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer logger.Sync()

	db, store, _, err := openTemplateLibrary(logger)
	if err != nil {
		return err
	}
	defer db.Close()

	templates, err := store.List()
	if err != nil {
		return err
	}
	printTemplates(templates)
	return nil
}

func runTemplateAdd(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer logger.Sync()

	db, store, templatesDir, err := openTemplateLibrary(logger)
	if err != nil {
		return err
	}
	defer db.Close()

	params, err := parseParams(templateParams)
	if err != nil {
		return err
	}

	creator := template.NewCreator(store, templatesDir, logger, nil)
	tpl, err := creator.CreateFromProject(args[0], template.CreateOptions{
		Name:        templateName,
		Description: templateDesc,
		Parameters:  params,
		Tags:        templateTags,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Шаблон создан: %s (%s)\n", tpl.ID, tpl.Name)
	fmt.Printf("Файлов: %d, папка: %s\n", tpl.FileCount, tpl.Path)
	return nil
}

func runTemplateSearch(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer logger.Sync()

	db, store, _, err := openTemplateLibrary(logger)
	if err != nil {
		return err
	}
	defer db.Close()

	templates, err := store.Search(args[0])
	if err != nil {
		return err
	}
	printTemplates(templates)
	return nil
}

func runTemplateDelete(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer logger.Sync()

	db, store, _, err := openTemplateLibrary(logger)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := store.Delete(args[0]); err != nil {
		return err
	}
	fmt.Printf("Шаблон удален: %s\n", args[0])
	return nil
}

func runTemplateUse(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer logger.Sync()

	db, store, _, err := openTemplateLibrary(logger)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := store.RecordUsage(args[0], time.Now()); err != nil {
		return err
	}

	tpl, err := store.Get(args[0])
	if err != nil {
		return err
	}
	fmt.Printf("Шаблон: %s (использований: %d)\n", tpl.Name, tpl.UsageCount)
	fmt.Printf("Папка: %s\n", tpl.Path)
	return nil
}

func runTemplateStats(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer logger.Sync()

	db, store, _, err := openTemplateLibrary(logger)
	if err != nil {
		return err
	}
	defer db.Close()

	stats, err := store.GetStatistics()
	if err != nil {
		return err
	}

	fmt.Printf("Всего шаблонов: %d\n", stats.Total)
	if stats.MostUsed != nil {
		fmt.Printf("Самый используемый: %s (%d раз)\n", stats.MostUsed.Name, stats.MostUsed.UsageCount)
	}
	if stats.Newest != nil {
		fmt.Printf("Новейший: %s (%s)\n", stats.Newest.Name, stats.Newest.CreatedAt.Format("02.01.2006"))
	}
	return nil
}

func printTemplates(templates []template.Template) {
	if len(templates) == 0 {
		fmt.Println("Шаблонов нет")
		return
	}
	for _, t := range templates {
		fmt.Printf("%s  %s\n", t.ID, t.Name)
		if t.Description != "" {
			fmt.Printf("    %s\n", t.Description)
		}
		fmt.Printf("    файлов: %d, использований: %d, создан: %s\n",
			t.FileCount, t.UsageCount, t.CreatedAt.Format("02.01.2006"))
		if len(t.Tags) > 0 {
			fmt.Printf("    теги: %s\n", strings.Join(t.Tags, ", "))
		}
	}
}

// parseParams разбирает флаги вида H=90 в карту параметров
func parseParams(pairs []string) (map[string]int, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	params := make(map[string]int, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("неверный параметр %q (ожидается ИМЯ=ЧИСЛО)", pair)
		}
		n, err := strconv.Atoi(value)
		if err != nil {
			return nil, fmt.Errorf("неверный параметр %q: %w", pair, err)
		}
		params[strings.TrimSpace(key)] = n
	}
	return params, nil
}
