package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/zvd-group/kompas-manager/internal/pdfinspect"
)

var checkPdfCmd = &cobra.Command{
	Use:   "check-pdf <файл-или-папка>",
	Short: "Проверить, векторные ли PDF-чертежи (пригодность для лазерной резки)",
	Args:  cobra.ExactArgs(1),
	RunE:  runCheckPdf,
}

func runCheckPdf(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer logger.Sync()

	inspector := pdfinspect.NewInspector(logger)

	info, err := os.Stat(args[0])
	if err != nil {
		return err
	}

	var reports []pdfinspect.Report
	if info.IsDir() {
		reports, err = inspector.InspectDir(args[0])
		if err != nil {
			return err
		}
	} else {
		rep, err := inspector.InspectFile(args[0])
		if err != nil {
			return err
		}
		reports = append(reports, *rep)
	}

	if len(reports) == 0 {
		fmt.Println("PDF-файлов не найдено")
		return nil
	}

	for _, r := range reports {
		var verdict string
		switch {
		case r.IsVector():
			verdict = "ВЕКТОР (пригоден для резки)"
		case r.Kind == pdfinspect.KindRaster:
			verdict = "РАСТР (скан, для резки не годится)"
		default:
			verdict = "НЕОПРЕДЕЛЕННО (геометрии почти нет)"
		}
		fmt.Printf("%-40s %s\n", filepath.Base(r.Path), verdict)
		fmt.Printf("%-40s страниц: %d, операторов: %d, картинок: %d\n",
			"", r.Pages, r.VectorOps, r.Images)
	}
	return nil
}
