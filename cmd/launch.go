package cmd

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/zvd-group/kompas-manager/internal/launcher"
)

var launchNoPause bool

var launchCmd = &cobra.Command{
	Use:   "launch",
	Short: "Проверить окружение и запустить GUI-приложение",
	RunE:  runLaunch,
}

func init() {
	launchCmd.Flags().BoolVar(&launchNoPause, "no-pause", false, "Не ждать Enter при ошибках (для скриптов)")
}

func runLaunch(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer logger.Sync()

	cfg := loadConfig(logger)

	var prompter launcher.Prompter = launcher.ConsolePrompter{In: os.Stdin, Out: os.Stdout}
	if launchNoPause {
		prompter = launcher.NopPrompter{}
	}

	l := launcher.New(
		launcher.Options{
			ProbePackage: cfg.Runtime.ProbePackage,
			Manifest:     cfg.Runtime.Manifest,
			EntryPoint:   cfg.Runtime.EntryPoint,
		},
		launcher.Deps{
			Runtime:  &launcher.ExecRuntimeProber{Exe: cfg.Runtime.Exe},
			Packages: &launcher.PipPackageManager{Exe: cfg.Runtime.Pip, Out: os.Stdout, Err: os.Stderr},
			App: &launcher.ExecAppRunner{
				Runtime: cfg.Runtime.Exe,
				Stdin:   os.Stdin,
				Stdout:  os.Stdout,
				Stderr:  os.Stderr,
			},
			Prompter: prompter,
			Out:      os.Stdout,
			Logger:   logger,
		},
	)

	// *launcher.ExitError доходит до main и превращается в код процесса
	return l.Run()
}
