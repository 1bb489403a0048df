package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/zvd-group/kompas-manager/cmd"
	"github.com/zvd-group/kompas-manager/internal/launcher"
)

func main() {
	err := cmd.Execute()
	if err == nil {
		return
	}

	// Цепочка запуска сообщает код выхода через ExitError;
	// само сообщение уже напечатано лаунчером
	var exitErr *launcher.ExitError
	if errors.As(err, &exitErr) {
		os.Exit(exitErr.Code)
	}

	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
