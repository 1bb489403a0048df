package errors

import "errors"

// Доменные ошибки. Слой команд (cmd) маппит их в сообщения пользователю и коды выхода.
var (
	ErrRuntimeNotFound   = errors.New("runtime not found")
	ErrDependencyMissing = errors.New("dependency package not installed")
	ErrInstallFailed     = errors.New("dependency install failed")
	ErrProjectNotFound   = errors.New("project folder not found")
	ErrAssemblyNotFound  = errors.New("assembly file not found")
	ErrTemplateNotFound  = errors.New("template not found")
)
