package launcher

import (
	"bufio"
	"fmt"
	"io"
)

// ConsolePrompter блокирует до нажатия Enter — чтобы окно двойного клика
// не закрылось раньше, чем пользователь прочитает сообщение
type ConsolePrompter struct {
	In  io.Reader
	Out io.Writer
}

func (p ConsolePrompter) Pause() {
	fmt.Fprint(p.Out, "\nНажмите Enter для выхода...")
	_, _ = bufio.NewReader(p.In).ReadString('\n')
}

// NopPrompter — для скриптовых запусков (--no-pause) и тестов
type NopPrompter struct{}

func (NopPrompter) Pause() {}
