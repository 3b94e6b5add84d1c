// Package interp - области видимости и стек вызовов.
package interp

// Scope — отображение имени переменной в её значение в пределах
// одного лексического блока. Имена внутри одного Scope уникальны.
type Scope struct {
	vars map[string]Value
}

// NewScope создаёт пустую область видимости.
func NewScope() *Scope {
	return &Scope{vars: make(map[string]Value)}
}

// Declare связывает имя со значением. Возвращает false, если имя
// уже объявлено в этой области.
func (s *Scope) Declare(name string, v Value) bool {
	if _, exists := s.vars[name]; exists {
		return false
	}
	s.vars[name] = v
	return true
}

// Get возвращает значение по имени.
func (s *Scope) Get(name string) (Value, bool) {
	v, ok := s.vars[name]
	return v, ok
}

// Set перезаписывает существующее имя. Возвращает false, если имени нет.
func (s *Scope) Set(name string, v Value) bool {
	if _, exists := s.vars[name]; !exists {
		return false
	}
	s.vars[name] = v
	return true
}

// ScopeManager — упорядоченный стек областей видимости в пределах
// одного вызова функции. Поиск имени идёт от внутренней области
// к внешней; затенение между вложенными областями разрешено.
type ScopeManager struct {
	scopes []*Scope
}

// NewScopeManager создаёт менеджер с одной базовой областью.
func NewScopeManager() *ScopeManager {
	return &ScopeManager{scopes: []*Scope{NewScope()}}
}

// Push открывает новую вложенную область.
func (m *ScopeManager) Push() {
	m.scopes = append(m.scopes, NewScope())
}

// Pop закрывает внутреннюю область вместе со всеми её значениями.
func (m *ScopeManager) Pop() {
	if len(m.scopes) > 1 {
		m.scopes = m.scopes[:len(m.scopes)-1]
	}
}

// Current возвращает внутреннюю (текущую) область.
func (m *ScopeManager) Current() *Scope {
	return m.scopes[len(m.scopes)-1]
}

// Declare объявляет имя в текущей области. Возвращает false
// при повторном объявлении в той же области.
func (m *ScopeManager) Declare(name string, v Value) bool {
	return m.Current().Declare(name, v)
}

// Lookup ищет имя от внутренней области к внешней.
func (m *ScopeManager) Lookup(name string) (Value, bool) {
	for i := len(m.scopes) - 1; i >= 0; i-- {
		if v, ok := m.scopes[i].Get(name); ok {
			return v, true
		}
	}
	return Value{}, false
}

// Assign перезаписывает ближайшее живое связывание имени.
// Возвращает false, если имя не найдено ни в одной области.
func (m *ScopeManager) Assign(name string, v Value) bool {
	for i := len(m.scopes) - 1; i >= 0; i-- {
		if m.scopes[i].Set(name, v) {
			return true
		}
	}
	return false
}

// StackFrame — состояние одного вызова функции: собственный стек
// областей видимости и имя функции для диагностики.
type StackFrame struct {
	Scopes   *ScopeManager
	Function string
}

// NewStackFrame создаёт кадр с чистым менеджером областей.
func NewStackFrame(function string) *StackFrame {
	return &StackFrame{Scopes: NewScopeManager(), Function: function}
}

// DefaultMaxDepth — предел глубины стека вызовов по умолчанию.
const DefaultMaxDepth = 200

// CallStack — стек кадров вызовов. Нижний кадр — глобальный,
// создаётся при старте программы и хранит глобальные объявления.
type CallStack struct {
	frames   []*StackFrame
	maxDepth int
}

// NewCallStack создаёт пустой стек с заданным пределом глубины.
// Неположительный предел заменяется значением по умолчанию.
func NewCallStack(maxDepth int) *CallStack {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return &CallStack{maxDepth: maxDepth}
}

// Push добавляет кадр. Возвращает false при переполнении стека.
func (cs *CallStack) Push(f *StackFrame) bool {
	if len(cs.frames) >= cs.maxDepth {
		return false
	}
	cs.frames = append(cs.frames, f)
	return true
}

// Pop снимает верхний кадр вместе со всеми его областями.
func (cs *CallStack) Pop() {
	if len(cs.frames) > 0 {
		cs.frames = cs.frames[:len(cs.frames)-1]
	}
}

// Top возвращает верхний кадр (текущий вызов).
func (cs *CallStack) Top() *StackFrame {
	if len(cs.frames) == 0 {
		return nil
	}
	return cs.frames[len(cs.frames)-1]
}

// Depth возвращает текущую глубину стека.
func (cs *CallStack) Depth() int {
	return len(cs.frames)
}
