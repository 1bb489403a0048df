package cmd

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/zvd-group/kompas-manager/internal/designation"
)

var (
	designationH     int
	designationB1    int
	designationL1    int
	designationOrder string
	designationApply bool
)

var designationCmd = &cobra.Command{
	Use:   "designation <папка-проекта>",
	Short: "Присвоить файлам проекта обозначения ЗВД (план, с флагом --apply — переименование)",
	Args:  cobra.ExactArgs(1),
	RunE:  runDesignation,
}

func init() {
	designationCmd.Flags().IntVar(&designationH, "h", 0, "Высота H, мм")
	designationCmd.Flags().IntVar(&designationB1, "b1", 0, "Ширина B1, мм")
	designationCmd.Flags().IntVar(&designationL1, "l1", 0, "Длина L1, мм")
	designationCmd.Flags().StringVar(&designationOrder, "order", "", "Номер заказа (добавляется в скобках)")
	designationCmd.Flags().BoolVar(&designationApply, "apply", false, "Выполнить переименование (без флага — только план)")
	designationCmd.MarkFlagRequired("h")
	designationCmd.MarkFlagRequired("b1")
	designationCmd.MarkFlagRequired("l1")
}

func runDesignation(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer logger.Sync()

	cfg := loadConfig(logger)
	scheme := designation.Scheme{
		Prefix:  cfg.Designation.Prefix,
		Product: cfg.Designation.Product,
	}
	params := designation.Params{H: designationH, B1: designationB1, L1: designationL1}

	plan, err := designation.PlanProject(args[0], scheme, params, designationOrder)
	if err != nil {
		return err
	}

	fmt.Printf("Обозначение: %s\n\n", scheme.Full(params))
	if plan.Assembly != nil {
		fmt.Printf("Сборка:   %s -> %s\n", plan.Assembly.From, plan.Assembly.To)
	}
	for _, m := range plan.Parts {
		fmt.Printf("Деталь:   %s -> %s\n", m.From, m.To)
	}
	for _, m := range plan.Drawings {
		fmt.Printf("Чертеж:   %s -> %s\n", m.From, m.To)
	}
	if len(plan.Markings) > 0 {
		fmt.Println("\nМаркировки деталей:")
		for file, marking := range plan.Markings {
			fmt.Printf("  %s: %s\n", file, marking)
		}
	}

	if !designationApply {
		fmt.Println("\nПлан не применен (запустите с --apply)")
		return nil
	}

	renamed, errs := plan.Apply()
	fmt.Printf("\nПереименовано файлов: %d\n", renamed)
	for _, e := range errs {
		fmt.Printf("Ошибка: %v\n", e)
	}
	if len(errs) > 0 {
		return fmt.Errorf("переименование завершено с ошибками: %d", len(errs))
	}
	return nil
}
