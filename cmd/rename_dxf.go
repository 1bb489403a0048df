package cmd

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/zvd-group/kompas-manager/internal/project"
)

var renameDxfOrder string

var renameDxfCmd = &cobra.Command{
	Use:   "rename-dxf <папка-проекта>",
	Short: "Переименовать DXF-развертки по данным деталей проекта",
	Args:  cobra.ExactArgs(1),
	RunE:  runRenameDxf,
}

func init() {
	renameDxfCmd.Flags().StringVar(&renameDxfOrder, "order", "", "Номер заказа (добавляется в скобках)")
}

func runRenameDxf(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer logger.Sync()

	result, err := project.NewDxfRenamer(logger, nil).Rename(args[0], renameDxfOrder)
	if err != nil {
		return err
	}

	fmt.Printf("Переименовано DXF: %d\n", result.RenamedCount)
	for _, name := range result.Skipped {
		fmt.Printf("Пропущен: %s\n", name)
	}
	return nil
}
