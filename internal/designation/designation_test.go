package designation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScheme_FullAndShort(t *testing.T) {
	t.Parallel()

	s := DefaultScheme()
	p := Params{H: 126, B1: 160, L1: 1400}

	require.Equal(t, "ZVD.LITE.126.160.1400", s.Full(p))
	require.Equal(t, "ZVD.LITE.126.160", s.Short(p))
}

func TestScheme_PartMarking(t *testing.T) {
	t.Parallel()

	s := DefaultScheme()
	p := Params{H: 90, B1: 260, L1: 1000}

	// Корпус короба сохраняет L1, обычная деталь — нет
	require.Equal(t, "ZVD.LITE.90.260.1000.004", s.PartMarking("Корпус короба", 4, p))
	require.Equal(t, "ZVD.LITE.90.260.006", s.PartMarking("Стенка торцевая", 6, p))
}

func TestScheme_HeatExchangerMarking(t *testing.T) {
	t.Parallel()

	s := DefaultScheme()
	p := Params{H: 80, B1: 230, L1: 2000}

	// Третий размерный сегмент становится L1-300
	got := s.HeatExchangerMarking("75.230.1700 Теплообменник медно-алюминиевый", p)
	require.Equal(t, "75.230.1700 Теплообменник медно-алюминиевый", got,
		"L1=2000 дает ту же длину 1700 — обозначение не меняется")

	p.L1 = 1400
	got = s.HeatExchangerMarking("75.230.1700 Теплообменник медно-алюминиевый", p)
	require.Equal(t, "75.230.1100 Теплообменник медно-алюминиевый", got)

	// Нестандартные обозначения не трогаем
	require.Equal(t, "Теплообменник", s.HeatExchangerMarking("Теплообменник", p))
	require.Equal(t, "75.230 ТО", s.HeatExchangerMarking("75.230 ТО", p))
}

func TestOrderSuffix(t *testing.T) {
	t.Parallel()

	require.Equal(t, "Корпус короба", StripOrderSuffix("Корпус короба (А-180925-1801)"))
	require.Equal(t, "Корпус короба", StripOrderSuffix("Корпус короба"))
	require.Equal(t, "Корпус короба (А-191125-2)", WithOrder("Корпус короба (А-180925-1801)", "А-191125-2"))
	require.Equal(t, "Корпус короба", WithOrder("Корпус короба (А-180925-1801)", ""))
}

func TestStemHelpers(t *testing.T) {
	t.Parallel()

	require.Equal(t, "Корпус короба", DescriptionFromStem("0010 - Корпус короба"))
	require.Equal(t, "Корпус короба", DescriptionFromStem("Корпус короба"))
	require.Equal(t, 10, NumberFromStem("0010 - Корпус короба"))
	require.Equal(t, 0, NumberFromStem("Корпус короба"))
}

func TestAssignNumbers(t *testing.T) {
	t.Parallel()

	parts := []Part{
		{Name: "Корпус короба", Marking: "ZVD.LITE.90.260.1000.001"},
		{Name: "Стенка", Marking: "ZVD.LITE.90.260.002"},
		{Name: "Корпус короба", Marking: "ZVD.LITE.90.260.1000.001"}, // второй экземпляр
		{Name: "Служебная", Marking: "-"},                            // пропускается
		{Name: "Распорка", Marking: "ZVD.LITE.90.260.003"},
	}

	numbers := AssignNumbers(parts)

	require.Equal(t, map[string]int{
		"Корпус короба": 1,
		"Стенка":        2,
		"Распорка":      3,
	}, numbers)
}

func TestPlanProject(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	files := []string{
		"ZVD.LITE.90.260.1000.a3d",
		"001 - Корпус короба.m3d",
		"002 - Стенка торцевая (А-180925-1801).m3d",
		"Распорка.m3d",
		"75.230.700 - Теплообменник медно-алюминиевый.m3d",
		"ZVD.LITE.90.260.1000 - Конвектор с естественной конвекцией.cdw",
		"Деталировка.cdw",
	}
	for _, f := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, f), []byte("x"), 0o644))
	}

	s := DefaultScheme()
	p := Params{H: 126, B1: 160, L1: 1400}

	plan, err := PlanProject(dir, s, p, "А-191125-2")
	require.NoError(t, err)

	require.NotNil(t, plan.Assembly)
	require.Equal(t, "ZVD.LITE.126.160.1400.a3d", filepath.Base(plan.Assembly.To))

	targets := make(map[string]string) // базовое имя From → To
	for _, m := range plan.Parts {
		targets[filepath.Base(m.From)] = filepath.Base(m.To)
	}
	require.Equal(t, "001 - Корпус короба.m3d", targets["001 - Корпус короба.m3d"])
	require.Equal(t, "002 - Стенка торцевая.m3d", targets["002 - Стенка торцевая (А-180925-1801).m3d"],
		"старый номер заказа убирается из имени файла")
	require.Equal(t, "003 - Распорка.m3d", targets["Распорка.m3d"],
		"деталь без номера получает следующий свободный")
	require.NotContains(t, targets, "75.230.700 - Теплообменник медно-алюминиевый.m3d",
		"теплообменник не перенумеровывается")

	// Обозначения
	require.Equal(t, "ZVD.LITE.126.160.1400.001", plan.Markings["001 - Корпус короба.m3d"])
	require.Equal(t, "ZVD.LITE.126.160.002", plan.Markings["002 - Стенка торцевая.m3d"])
	require.Equal(t, "75.230.1100 - Теплообменник медно-алюминиевый",
		plan.Markings["75.230.700 - Теплообменник медно-алюминиевый.m3d"])

	// Сборочный чертеж переименовывается, деталировка — нет
	require.Len(t, plan.Drawings, 1)
	require.Equal(t, "ZVD.LITE.126.160.1400 - Конвектор с естественной конвекцией.cdw",
		filepath.Base(plan.Drawings[0].To))
}

func TestPlanProject_NoAssembly(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	_, err := PlanProject(dir, DefaultScheme(), Params{H: 1, B1: 2, L1: 3}, "")
	require.Error(t, err)
}

func TestPlan_Apply(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	for _, f := range []string{"old.a3d", "Стенка.m3d"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, f), []byte("x"), 0o644))
	}

	plan, err := PlanProject(dir, DefaultScheme(), Params{H: 90, B1: 260, L1: 1000}, "")
	require.NoError(t, err)

	renamed, errs := plan.Apply()
	require.Empty(t, errs)
	require.Equal(t, 2, renamed)

	require.FileExists(t, filepath.Join(dir, "ZVD.LITE.90.260.1000.a3d"))
	require.FileExists(t, filepath.Join(dir, "001 - Стенка.m3d"))
}
