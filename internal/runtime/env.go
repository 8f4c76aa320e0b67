package runtime

// Environment represents a variable scope with a chain of enclosing
// scopes. Environments are shared by pointer: every closure that
// captured a scope sees later mutations of its bindings.
type Environment struct {
	store map[string]Value
	outer *Environment
}

// NewEnvironment creates a fresh top-level environment.
func NewEnvironment() *Environment {
	return &Environment{store: make(map[string]Value)}
}

// NewEnclosed creates a child scope, used for function-call frames.
func NewEnclosed(outer *Environment) *Environment {
	return &Environment{store: make(map[string]Value), outer: outer}
}

// Get looks up a variable by walking the scope chain outward.
func (e *Environment) Get(name string) (Value, bool) {
	for env := e; env != nil; env = env.outer {
		if val, exists := env.store[name]; exists {
			return val, true
		}
	}
	return nil, false
}

// Set binds a name in the current scope only. Rebinding a name that
// exists in an outer scope shadows it rather than mutating it.
func (e *Environment) Set(name string, value Value) {
	e.store[name] = value
}
