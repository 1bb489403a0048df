// Package launcher реализует цепочку подготовки окружения и запуска
// главного приложения: проверка рантайма → проверка зависимости →
// установка по манифесту (при необходимости) → запуск точки входа.
//
// Цепочка строго последовательная, без повторов и таймаутов; первая
// ошибка завершает запуск. Сообщения — интерактивные, в консоль, с
// паузой, чтобы пользователь двойного клика успел их прочитать.
package launcher

import (
	"fmt"
	"io"

	"go.uber.org/zap"
)

// Коды выхода процесса лаунчера. Код упавшего приложения
// пробрасывается как есть.
const (
	ExitOK         = 0
	ExitEnvFailure = 1 // рантайм не найден ИЛИ установка зависимостей не удалась
)

// RuntimeProber проверяет наличие рантайма (сама строка версии не используется)
type RuntimeProber interface {
	ProbeVersion() error
}

// PackageManager проверяет и устанавливает пакеты
type PackageManager interface {
	// Show возвращает nil, если пакет установлен
	Show(pkg string) error
	// InstallManifest устанавливает все пакеты из файла-манифеста
	InstallManifest(path string) error
}

// AppRunner запускает точку входа приложения и возвращает её код выхода.
// Ошибка означает, что процесс не удалось запустить вообще.
type AppRunner interface {
	Run(entryPoint string) (int, error)
}

// Prompter блокирует выполнение до подтверждения пользователя
type Prompter interface {
	Pause()
}

// ExitError переносит код выхода из цепочки запуска в main
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string { return e.Message }

// Options — фиксированные входы цепочки запуска
type Options struct {
	ProbePackage string // пакет-маркер установленности зависимостей
	Manifest     string // путь к манифесту зависимостей
	EntryPoint   string // точка входа главного приложения
}

// Deps — зависимости лаунчера (по образцу Deps-инъекции сервисов)
type Deps struct {
	Runtime  RuntimeProber
	Packages PackageManager
	App      AppRunner
	Prompter Prompter
	Out      io.Writer
	Logger   *zap.Logger
}

// Launcher выполняет цепочку подготовки и запуска
type Launcher struct {
	opts Options
	deps Deps
}

// New создает лаунчер
func New(opts Options, deps Deps) *Launcher {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Out == nil {
		deps.Out = io.Discard
	}
	if deps.Prompter == nil {
		deps.Prompter = NopPrompter{}
	}
	return &Launcher{opts: opts, deps: deps}
}

// Run выполняет цепочку. Возвращает nil при чистом завершении приложения,
// иначе *ExitError с кодом для процесса лаунчера.
func (l *Launcher) Run() error {
	out := l.deps.Out

	fmt.Fprintln(out, "========================================")
	fmt.Fprintln(out, " КОМПАС-3D Project Manager — запуск")
	fmt.Fprintln(out, "========================================")

	// Этап 1: проверка рантайма. При провале — никаких последующих этапов.
	if err := l.deps.Runtime.ProbeVersion(); err != nil {
		l.deps.Logger.Error("Проверка рантайма не прошла", zap.Error(err))
		fmt.Fprintln(out, "✗ Python не найден!")
		fmt.Fprintln(out, "  Установите Python 3.x и добавьте его в PATH:")
		fmt.Fprintln(out, "  https://www.python.org/downloads/")
		l.deps.Prompter.Pause()
		return &ExitError{Code: ExitEnvFailure, Message: "runtime probe failed"}
	}
	fmt.Fprintln(out, "✓ Python найден")

	// Этап 2: проверка пакета-маркера. Только сигнал установлен/не установлен.
	if err := l.deps.Packages.Show(l.opts.ProbePackage); err != nil {
		l.deps.Logger.Info("Пакет не найден, установка зависимостей",
			zap.String("package", l.opts.ProbePackage),
			zap.String("manifest", l.opts.Manifest))
		fmt.Fprintf(out, "• Установка зависимостей из %s...\n", l.opts.Manifest)

		// Этап 3: ровно одна попытка установки, без повторов
		if err := l.deps.Packages.InstallManifest(l.opts.Manifest); err != nil {
			l.deps.Logger.Error("Установка зависимостей не удалась", zap.Error(err))
			fmt.Fprintln(out, "✗ Ошибка установки зависимостей!")
			fmt.Fprintf(out, "  Проверьте файл %s и подключение к интернету.\n", l.opts.Manifest)
			l.deps.Prompter.Pause()
			return &ExitError{Code: ExitEnvFailure, Message: "dependency install failed"}
		}
		fmt.Fprintln(out, "✓ Зависимости установлены")
	} else {
		fmt.Fprintln(out, "✓ Зависимости уже установлены")
	}

	// Этап 4: запуск приложения, код выхода наследуется
	fmt.Fprintln(out, "• Запуск приложения...")
	code, err := l.deps.App.Run(l.opts.EntryPoint)
	if err != nil {
		l.deps.Logger.Error("Не удалось запустить приложение", zap.Error(err))
		fmt.Fprintf(out, "✗ Не удалось запустить %s: %v\n", l.opts.EntryPoint, err)
		l.deps.Prompter.Pause()
		return &ExitError{Code: ExitEnvFailure, Message: "application start failed"}
	}
	if code != 0 {
		l.deps.Logger.Error("Приложение завершилось с ошибкой", zap.Int("code", code))
		fmt.Fprintf(out, "✗ Программа завершилась с ошибкой (код %d)\n", code)
		l.deps.Prompter.Pause()
		return &ExitError{Code: code, Message: fmt.Sprintf("application exited with code %d", code)}
	}

	return nil
}
