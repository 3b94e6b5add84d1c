// Package interp - ошибки времени выполнения.
package interp

import (
	"fmt"

	"github.com/semetekare/minilang/internal/token"
)

// RuntimeError представляет фатальную ошибку времени выполнения.
// Сообщение содержит вовлечённые имена и типы, позиция указывает
// на узел AST, при исполнении которого ошибка возникла.
type RuntimeError struct {
	Msg string         // Описание ошибки
	Pos token.Position // Позиция в исходном коде
}

// Error реализует интерфейс error.
func (e *RuntimeError) Error() string {
	return fmt.Sprintf("%s. At line %d, column %d", e.Msg, e.Pos.Line, e.Pos.Col)
}

// newError создаёт RuntimeError с форматированным сообщением.
func newError(pos token.Position, format string, args ...any) *RuntimeError {
	return &RuntimeError{Msg: fmt.Sprintf(format, args...), Pos: pos}
}
