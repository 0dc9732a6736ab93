package ast

// Variable is a named settable cell (spec §3 "Variable"). It holds one
// Value and one Analyze record side by side, exactly as spec.md
// describes — not because evaluator and analyzer share one Variable
// instance (they don't: each pass builds its own Scope chain, so they
// never touch the same Variable), but because it is the one honest way
// to translate the original's dual e_value_/a_value_ fields.
type Variable struct {
	Name  string
	Val   Value
	Info  Analyze
	IsSet bool
}

// Array holds an array's evaluated cell storage (spec §3 "Array",
// §4.3). Because each pass (evaluator, analyzer) builds its own Array
// instance over the shared ArrayLiteral/RepeatExpr syntax rather than
// sharing one C++-style struct with parallel e_/a_ fields, a single
// Cells slice suffices for both passes; Constexpr is only populated (and
// only consulted) by the analyzer.
type Array struct {
	Cells         []Value
	Constexpr     []bool // parallel to Cells; analyzer-only
	IsInitialized bool
	IsInHeap      bool
	IsFreed       bool
}

// Function is a first-class function value (spec §3 "Function", §4.7).
type Function struct {
	Name    string
	Params  []string
	Body    *Block
	Closure *Scope // global_scope only (function.hpp: get_function() resolves
	// purely through params.copy_params.global_scope, never the lexical
	// definition-site scope)
	CachedAnalyze *Analyze // first analysis's body result; reused afterward
	// with IsConstexpr forced false (spec §4.7).
}

// Scope is the runtime name/memory table spec §3 describes, built fresh
// by the evaluator or analyzer over the shared syntax Block — see
// ast.go's package doc and DESIGN.md.
type Scope struct {
	Parent *Scope
	Block  *Block
	Vars   map[string]*Variable
	Arrays []*Array // memory table: arrays constructed directly in this scope
	Global *Scope   // root of the chain (created with a nil parent; its Global is itself)
}

// NewScope creates a Scope for block, chained under parent. A nil parent
// marks this as the global (root) scope.
func NewScope(parent *Scope, block *Block) *Scope {
	s := &Scope{Parent: parent, Block: block, Vars: map[string]*Variable{}}
	if parent == nil {
		s.Global = s
	} else {
		s.Global = parent.Global
	}
	return s
}

// Lookup finds name in s or an ancestor, without creating it (spec §3
// "a variable name resolves at any program point to the nearest
// enclosing scope that binds it").
func (s *Scope) Lookup(name string) (*Variable, bool) {
	for sc := s; sc != nil; sc = sc.Parent {
		if v, ok := sc.Vars[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// Resolve finds name in s or an ancestor, creating a fresh Variable bound
// to s itself if none exists yet (spec §3 "Variables are created when a
// scope first assigns to them").
func (s *Scope) Resolve(name string) *Variable {
	if v, ok := s.Lookup(name); ok {
		return v
	}
	v := &Variable{Name: name}
	s.Vars[name] = v
	return v
}

// AddArray registers arr in this scope's memory table (spec §3 "Arrays
// are added to the enclosing scope's memory table at the moment of
// their construction node's copy").
func (s *Scope) AddArray(arr *Array) {
	s.Arrays = append(s.Arrays, arr)
}

// ExitCleanup runs spec §3's scope-exit policy over every array in this
// scope's memory table: heap arrays are freed for good, stack arrays are
// merely reset so loop bodies can reinitialize them.
func (s *Scope) ExitCleanup() {
	for _, arr := range s.Arrays {
		arr.IsInitialized = false
		if arr.IsInHeap {
			arr.IsFreed = true
			arr.Cells = nil
			arr.Constexpr = nil
		}
	}
}
