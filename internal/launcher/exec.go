package launcher

import (
	"errors"
	"fmt"
	"io"
	"os/exec"
)

// ExecRuntimeProber проверяет рантайм запуском `<exe> --version`
type ExecRuntimeProber struct {
	Exe string
}

func (p *ExecRuntimeProber) ProbeVersion() error {
	// Строка версии не нужна — важен только успех запуска
	if err := exec.Command(p.Exe, "--version").Run(); err != nil {
		return fmt.Errorf("probe %s --version: %w", p.Exe, err)
	}
	return nil
}

// PipPackageManager проверяет и устанавливает пакеты через pip
type PipPackageManager struct {
	Exe string
	Out io.Writer // вывод pip install виден пользователю
	Err io.Writer
}

func (m *PipPackageManager) Show(pkg string) error {
	if err := exec.Command(m.Exe, "show", pkg).Run(); err != nil {
		return fmt.Errorf("pip show %s: %w", pkg, err)
	}
	return nil
}

func (m *PipPackageManager) InstallManifest(path string) error {
	cmd := exec.Command(m.Exe, "install", "-r", path)
	cmd.Stdout = m.Out
	cmd.Stderr = m.Err
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("pip install -r %s: %w", path, err)
	}
	return nil
}

// ExecAppRunner запускает точку входа через рантайм с наследованием консоли
type ExecAppRunner struct {
	Runtime string
	Stdin   io.Reader
	Stdout  io.Writer
	Stderr  io.Writer
}

// Run возвращает код выхода дочернего процесса. Ошибка означает,
// что процесс не стартовал (код выхода в этом случае не определен).
func (r *ExecAppRunner) Run(entryPoint string) (int, error) {
	cmd := exec.Command(r.Runtime, entryPoint)
	cmd.Stdin = r.Stdin
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr

	err := cmd.Run()
	if err == nil {
		return 0, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	return 0, fmt.Errorf("start %s %s: %w", r.Runtime, entryPoint, err)
}
