// Package engine implements the Engine Facade (§4.5): the single entry
// point that declares variables, accumulates rules and evidence, drives
// the Compilation Scheduler, and answers inference queries.
package engine

import (
	"errors"
	"fmt"
	"iter"

	"github.com/google/uuid"

	"github.com/mrhapile/stateforge/internal/ruleparser"
	"github.com/mrhapile/stateforge/pkg/convert"
	"github.com/mrhapile/stateforge/pkg/scheduler"
	"github.com/mrhapile/stateforge/pkg/statevector"
	"github.com/mrhapile/stateforge/pkg/ternary"
)

// Engine accumulates rules and evidence over a fixed, ordered set of
// declared variables and compiles them into a consolidated valid set.
// Not safe for concurrent mutation.
type Engine struct {
	Name      string
	Verbose   bool
	variables []string
	index     map[string]int

	rules    []Rule
	evidence []Evidence

	compiled bool
	validSet *statevector.StateVector

	log []string

	schedulerCfg scheduler.Config
}

// NewEngine declares the engine's variable order. name is optional
// (pass "" to omit it). Fails with ErrDuplicateVariable if variables
// contains a repeated name.
func NewEngine(variables []string, name string, verbose bool) (*Engine, error) {
	index := make(map[string]int, len(variables))
	for i, v := range variables {
		if _, ok := index[v]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateVariable, v)
		}
		index[v] = i
	}
	ordered := make([]string, len(variables))
	copy(ordered, variables)
	return &Engine{
		Name:         name,
		Verbose:      verbose,
		variables:    ordered,
		index:        index,
		schedulerCfg: scheduler.DefaultConfig(),
	}, nil
}

// SetSchedulerConfig overrides the scheduler's predator-prey and
// Jaccard-clustering thresholds for subsequent Compile/Predict calls.
func (e *Engine) SetSchedulerConfig(cfg scheduler.Config) {
	e.schedulerCfg = cfg
}

// Variables returns the declared variable order.
func (e *Engine) Variables() []string {
	out := make([]string, len(e.variables))
	copy(out, e.variables)
	return out
}

// Log returns the verbose diagnostic records accumulated so far. Empty
// unless Verbose is set. The CLI layer is responsible for forwarding
// these to a real logger; the engine core never logs on its own.
func (e *Engine) Log() []string {
	return e.log
}

// AddRule parses rule, converts it to a StateVector, and stores it in
// insertion order. Invalidates any prior Compile, per §5's rule that
// adding a rule after compilation invalidates it; the engine must be
// recompiled before the next query. Fails with a *ParseError or
// ErrUnknownVariable and leaves the engine unmodified.
func (e *Engine) AddRule(rule string) (string, error) {
	ast, err := ruleparser.Parse(rule)
	if err != nil {
		return "", &ParseError{Rule: rule, Err: err}
	}
	vec, err := convert.Convert(ast, e.index)
	if err != nil {
		if errors.Is(err, convert.ErrUnknownVariable) {
			return "", fmt.Errorf("%w: %v", ErrUnknownVariable, err)
		}
		return "", err
	}
	id := newID()
	e.rules = append(e.rules, Rule{ID: id, Source: rule, AST: ast, Vector: vec})
	e.compiled = false
	e.note("add_rule %s -> %s", id, rule)
	return id, nil
}

// AddEvidence validates names against the declared variables and builds
// a single-TObject StateVector pinning every given position, leaving the
// rest don't-care. Invalidates any prior Compile, the same as AddRule.
// Fails with ErrUnknownVariable, or ErrConflictingEvidence if an earlier
// AddEvidence call already pinned one of these names to a different
// value.
func (e *Engine) AddEvidence(values map[string]bool) (string, error) {
	for name := range values {
		if _, ok := e.index[name]; !ok {
			return "", fmt.Errorf("%w: %s", ErrUnknownVariable, name)
		}
	}
	for name, v := range values {
		for _, ev := range e.evidence {
			if existing, ok := ev.Values[name]; ok && existing != v {
				return "", fmt.Errorf("%w: %s", ErrConflictingEvidence, name)
			}
		}
	}

	vec := statevector.New(len(e.variables))
	t := newPinnedTObject(len(e.variables), e.index, values)
	vec.Push(t)

	id := newID()
	e.evidence = append(e.evidence, Evidence{ID: id, Values: values, Vector: vec})
	e.compiled = false
	e.note("add_evidence %s -> %v", id, values)
	return id, nil
}

// Compile runs the scheduler over every declared rule and evidence
// StateVector and stores the consolidated result in the valid set.
// Idempotent: calling it again recomputes from scratch. A contradiction
// latches the valid set to empty.
func (e *Engine) Compile() {
	vectors := e.allVectors()
	e.validSet = scheduler.Compile(vectors, e.schedulerCfg, e.progressHook())
	e.compiled = true
	e.note("compile -> %d member(s), contradiction=%v", e.validSet.Len(), e.validSet.IsEmpty())
}

// Predict multiplies the compiled valid set by callEvidence if the
// engine has been compiled; otherwise it runs the scheduler over rules,
// stored evidence, and callEvidence without persisting anything.
// callEvidence's names must already be declared (ErrUnknownVariable).
// callEvidence is not checked against stored evidence; a conflicting
// value yields a contradiction result rather than an error.
func (e *Engine) Predict(callEvidence map[string]bool) (InferenceResult, error) {
	for name := range callEvidence {
		if _, ok := e.index[name]; !ok {
			return InferenceResult{}, fmt.Errorf("%w: %s", ErrUnknownVariable, name)
		}
	}

	callVec := statevector.New(len(e.variables))
	callVec.Push(newPinnedTObject(len(e.variables), e.index, callEvidence))

	var result *statevector.StateVector
	if e.compiled {
		result = e.validSet.Multiply(callVec)
	} else {
		vectors := append(e.allVectors(), callVec)
		result = scheduler.Compile(vectors, e.schedulerCfg, e.progressHook())
	}
	e.note("predict %v -> %d member(s)", callEvidence, result.Len())
	return newResult(result, e.variables, e.index), nil
}

// GetVariableValue returns the compiled valid set's consolidated value
// for name. Fails with ErrNotCompiled if Compile has not run, or
// ErrUnknownVariable if name was never declared.
func (e *Engine) GetVariableValue(name string) (ternary.Value, error) {
	pos, ok := e.index[name]
	if !ok {
		return ternary.X, fmt.Errorf("%w: %s", ErrUnknownVariable, name)
	}
	if !e.compiled {
		return ternary.X, ErrNotCompiled
	}
	return e.validSet.GetValue(pos), nil
}

// IsContradiction reports whether the compiled valid set is empty. Fails
// with ErrNotCompiled if Compile has not run.
func (e *Engine) IsContradiction() (bool, error) {
	if !e.compiled {
		return false, ErrNotCompiled
	}
	return e.validSet.IsEmpty(), nil
}

// ValidSetIterDicts returns a lazy, finite, restartable sequence over the
// compiled valid set's expansions, resolving positions against the
// engine's variable order (itself the cached position -> name reverse
// index; it never changes after construction). Fails with
// ErrNotCompiled if Compile has not run.
func (e *Engine) ValidSetIterDicts() (iter.Seq[map[string]bool], error) {
	if !e.compiled {
		return nil, ErrNotCompiled
	}
	return e.validSet.IterDicts(e.nameOf), nil
}

func (e *Engine) allVectors() []*statevector.StateVector {
	vectors := make([]*statevector.StateVector, 0, len(e.rules)+len(e.evidence))
	for _, r := range e.rules {
		vectors = append(vectors, r.Vector)
	}
	for _, ev := range e.evidence {
		vectors = append(vectors, ev.Vector)
	}
	return vectors
}

func (e *Engine) nameOf(i int) string {
	return e.variables[i]
}

func (e *Engine) progressHook() func(scheduler.Progress) {
	if !e.Verbose {
		return nil
	}
	return func(p scheduler.Progress) {
		e.note("scheduler step: %d vector(s) remaining, largest size %d", p.RemainingCount, p.MaxVectorSize)
	}
}

func (e *Engine) note(format string, args ...interface{}) {
	if !e.Verbose {
		return
	}
	e.log = append(e.log, fmt.Sprintf(format, args...))
}

// newID mints a short opaque diagnostic ID: 48 bits of entropy from a
// truncated UUID, following the sessionID convention used elsewhere in
// the pack for IDs that never leave the process.
func newID() string {
	return uuid.NewString()[:12]
}

// newPinnedTObject builds the single TObject that pins exactly the
// positions named in values, leaving every other position don't-care.
func newPinnedTObject(numVars int, index map[string]int, values map[string]bool) *ternary.TObject {
	t := ternary.New(numVars)
	for name, v := range values {
		pos := index[name]
		if v {
			t.Set(pos, ternary.T)
		} else {
			t.Set(pos, ternary.F)
		}
	}
	return t
}
