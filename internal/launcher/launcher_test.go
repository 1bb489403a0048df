package launcher

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeEnv записывает порядок вызовов всех этапов цепочки
type fakeEnv struct {
	calls []string

	probeErr   error
	showErr    error
	installErr error
	appCode    int
	appErr     error
}

func (f *fakeEnv) ProbeVersion() error {
	f.calls = append(f.calls, "probe")
	return f.probeErr
}

func (f *fakeEnv) Show(pkg string) error {
	f.calls = append(f.calls, "show:"+pkg)
	return f.showErr
}

func (f *fakeEnv) InstallManifest(path string) error {
	f.calls = append(f.calls, "install:"+path)
	return f.installErr
}

func (f *fakeEnv) Run(entry string) (int, error) {
	f.calls = append(f.calls, "run:"+entry)
	return f.appCode, f.appErr
}

type countingPrompter struct{ pauses int }

func (p *countingPrompter) Pause() { p.pauses++ }

func newTestLauncher(env *fakeEnv, out *bytes.Buffer, prompter Prompter) *Launcher {
	return New(
		Options{ProbePackage: "customtkinter", Manifest: "requirements.txt", EntryPoint: "gui_kompas_manager.py"},
		Deps{Runtime: env, Packages: env, App: env, Prompter: prompter, Out: out},
	)
}

func TestRun_RuntimeAbsent(t *testing.T) {
	t.Parallel()

	// Сценарий A: рантайм отсутствует — выход 1, установка и запуск не выполняются
	env := &fakeEnv{probeErr: errors.New("exec: not found")}
	out := &bytes.Buffer{}
	prompter := &countingPrompter{}

	err := newTestLauncher(env, out, prompter).Run()

	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	require.Equal(t, ExitEnvFailure, exitErr.Code)
	require.Equal(t, []string{"probe"}, env.calls, "после провала проверки рантайма не должно быть побочных эффектов")
	require.Equal(t, 1, prompter.pauses, "сообщение должно сопровождаться паузой")
	require.Contains(t, out.String(), "Python не найден")
}

func TestRun_DependencyAbsent_InstallSucceeds(t *testing.T) {
	t.Parallel()

	// Сценарий B: зависимость отсутствует, установка успешна — приложение стартует один раз
	env := &fakeEnv{showErr: errors.New("not installed")}
	out := &bytes.Buffer{}

	err := newTestLauncher(env, out, NopPrompter{}).Run()

	require.NoError(t, err)
	require.Equal(t, []string{
		"probe",
		"show:customtkinter",
		"install:requirements.txt",
		"run:gui_kompas_manager.py",
	}, env.calls)
}

func TestRun_DependencyPresent_InstallSkipped(t *testing.T) {
	t.Parallel()

	// Сценарий C: зависимость на месте — установка пропускается
	env := &fakeEnv{}
	out := &bytes.Buffer{}

	err := newTestLauncher(env, out, NopPrompter{}).Run()

	require.NoError(t, err)
	require.Equal(t, []string{
		"probe",
		"show:customtkinter",
		"run:gui_kompas_manager.py",
	}, env.calls)
	require.Contains(t, out.String(), "уже установлены")
}

func TestRun_InstallFails(t *testing.T) {
	t.Parallel()

	env := &fakeEnv{showErr: errors.New("not installed"), installErr: errors.New("network down")}
	out := &bytes.Buffer{}
	prompter := &countingPrompter{}

	err := newTestLauncher(env, out, prompter).Run()

	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	require.Equal(t, ExitEnvFailure, exitErr.Code)
	// Ровно одна попытка установки, без повторов; приложение не стартовало
	require.Equal(t, []string{"probe", "show:customtkinter", "install:requirements.txt"}, env.calls)
	require.Equal(t, 1, prompter.pauses)
}

func TestRun_ApplicationFails_CodePropagated(t *testing.T) {
	t.Parallel()

	// Сценарий D: приложение завершилось с ненулевым кодом — код проброшен, без повтора
	env := &fakeEnv{appCode: 3}
	out := &bytes.Buffer{}
	prompter := &countingPrompter{}

	err := newTestLauncher(env, out, prompter).Run()

	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	require.Equal(t, 3, exitErr.Code)
	require.Equal(t, []string{"probe", "show:customtkinter", "run:gui_kompas_manager.py"}, env.calls)
	require.Equal(t, 1, prompter.pauses)
	require.Contains(t, out.String(), "код 3")
}

func TestRun_ApplicationStartFailure(t *testing.T) {
	t.Parallel()

	env := &fakeEnv{appErr: errors.New("exec format error")}
	out := &bytes.Buffer{}

	err := newTestLauncher(env, out, NopPrompter{}).Run()

	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	require.Equal(t, ExitEnvFailure, exitErr.Code)
}

func TestRun_Idempotent(t *testing.T) {
	t.Parallel()

	// Два подряд запуска при готовом окружении ведут себя одинаково:
	// установка пропущена в обоих, последовательность этапов идентична
	var sequences [][]string
	for i := 0; i < 2; i++ {
		env := &fakeEnv{}
		out := &bytes.Buffer{}
		require.NoError(t, newTestLauncher(env, out, NopPrompter{}).Run())
		sequences = append(sequences, env.calls)
	}
	require.Equal(t, sequences[0], sequences[1])
	require.NotContains(t, sequences[0], "install:requirements.txt")
}
