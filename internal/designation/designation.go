// Package designation реализует правила обозначений проектной схемы именования.
//
// Логика обозначений:
//   - сборка: ZVD.LITE.H.B1.L1 (полное)
//   - корпус короба: ZVD.LITE.H.B1.L1.NNN (с L1)
//   - остальные детали: ZVD.LITE.H.B1.NNN (без L1)
//   - теплообменник: базовое обозначение сохраняется, третий размерный
//     сегмент заменяется на L1-300
package designation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/zvd-group/kompas-manager/pkg/constants"
)

// Params — габаритные параметры изделия (мм)
type Params struct {
	H  int
	B1 int
	L1 int
}

// Scheme — схема именования (префикс + линейка изделия)
type Scheme struct {
	Prefix  string
	Product string
}

// DefaultScheme — схема ZVD.LITE
func DefaultScheme() Scheme {
	return Scheme{Prefix: constants.DesignationPrefix, Product: constants.ProductLite}
}

// Full возвращает полное обозначение сборки: ZVD.LITE.H.B1.L1
func (s Scheme) Full(p Params) string {
	return fmt.Sprintf("%s.%s.%d.%d.%d", s.Prefix, s.Product, p.H, p.B1, p.L1)
}

// Short возвращает базу обозначения детали: ZVD.LITE.H.B1
func (s Scheme) Short(p Params) string {
	return fmt.Sprintf("%s.%s.%d.%d", s.Prefix, s.Product, p.H, p.B1)
}

// PartMarking возвращает обозначение детали с номером.
// Детали корпуса короба сохраняют L1, остальные — нет.
func (s Scheme) PartMarking(partName string, number int, p Params) string {
	id := fmt.Sprintf("%03d", number)
	if IsBoxBody(partName) {
		return s.Full(p) + "." + id
	}
	return s.Short(p) + "." + id
}

// HeatExchangerMarking обновляет обозначение теплообменника: третий
// размерный сегмент первого токена заменяется на L1-300. Обозначения,
// не подходящие под формат, возвращаются без изменений.
func (s Scheme) HeatExchangerMarking(old string, p Params) string {
	tokens := strings.Fields(old)
	if len(tokens) < 2 || !strings.Contains(tokens[0], ".") {
		return old
	}
	sizes := strings.Split(tokens[0], ".")
	if len(sizes) != 3 {
		return old
	}
	sizes[2] = fmt.Sprintf("%d", p.L1-constants.HeatExchangerLengthOffset)
	return strings.Join(sizes, ".") + " " + strings.Join(tokens[1:], " ")
}

// IsBoxBody определяет деталь корпуса короба по наименованию
func IsBoxBody(partName string) bool {
	return strings.Contains(strings.ToLower(partName), "короба")
}

// IsHeatExchanger определяет теплообменник по наименованию
func IsHeatExchanger(partName string) bool {
	return strings.Contains(strings.ToLower(partName), "теплообменник")
}

var orderSuffixRe = regexp.MustCompile(`\s*\([^)]*\)\s*$`)

// StripOrderSuffix убирает хвостовой номер заказа в скобках
func StripOrderSuffix(name string) string {
	return strings.TrimSpace(orderSuffixRe.ReplaceAllString(name, ""))
}

// WithOrder добавляет номер заказа, заменяя прежний суффикс
func WithOrder(name, order string) string {
	clean := StripOrderSuffix(name)
	if order == "" {
		return clean
	}
	return fmt.Sprintf("%s (%s)", clean, order)
}

// DescriptionFromStem извлекает описание из имени файла вида "NNN - Описание"
func DescriptionFromStem(stem string) string {
	if i := strings.Index(stem, " - "); i >= 0 {
		return stem[i+len(" - "):]
	}
	return stem
}

// NumberFromStem извлекает номер из имени файла вида "NNN - Описание".
// Возвращает 0, если номера нет.
func NumberFromStem(stem string) int {
	i := strings.Index(stem, " - ")
	if i < 0 {
		return 0
	}
	var n int
	if _, err := fmt.Sscanf(strings.TrimSpace(stem[:i]), "%d", &n); err != nil {
		return 0
	}
	return n
}
