// Package engine provides the Lisp evaluation engine for arcade.
// It wraps zygomys in a sandboxed environment and produces a topology arena
// from user source code.
package engine

import (
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/chazu/arcade/pkg/config"
	"github.com/chazu/arcade/pkg/topo"
)

// EvalError represents a non-fatal error encountered during evaluation,
// such as a parse error or a runtime error in user code.
type EvalError struct {
	Line    int
	Col     int
	Message string
}

func (e EvalError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

// EvalWarning represents a non-fatal warning produced during evaluation.
// Code is the validation code when the warning comes from Topo.Validate.
type EvalWarning struct {
	Line    int
	Col     int
	Message string
	Code    string
}

// EvalResult bundles the full output of an evaluation.
type EvalResult struct {
	Topo     *topo.Topo
	Errors   []EvalError
	Warnings []EvalWarning
}

// Engine wraps the zygomys interpreter for arcade evaluation.
// It is safe for concurrent use; each call to Evaluate creates a fresh
// sandboxed environment for determinism.
type Engine struct {
	mu         sync.Mutex
	generation uint64

	logger  *log.Logger
	tol     config.Tolerances
	timeout time.Duration
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger evaluation events are reported to.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithTolerances sets the tolerances scripts build geometry under.
func WithTolerances(tol config.Tolerances) Option {
	return func(e *Engine) { e.tol = tol }
}

// WithTimeout overrides EvalTimeout.
func WithTimeout(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.timeout = d
		}
	}
}

// NewEngine creates a new Engine instance. Without WithLogger the engine is
// silent.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		logger:  log.New(io.Discard),
		tol:     config.Default(),
		timeout: EvalTimeout,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Evaluate takes Lisp source code and produces a new arena.
//
// Return semantics:
//   - On success: returns arena + nil errors + nil error
//   - On parse/eval failure: returns nil arena + eval errors + nil error
//   - On fatal failure (timeout, panic): returns nil + nil + error
func (e *Engine) Evaluate(source string) (*topo.Topo, []EvalError, error) {
	res, err := e.Eval(source)
	if err != nil {
		return nil, nil, err
	}
	return res.Topo, res.Errors, nil
}

// Eval is Evaluate with warnings. Warnings are raised when the final value
// is not an arena and for every problem Topo.Validate reports.
func (e *Engine) Eval(source string) (EvalResult, error) {
	e.mu.Lock()
	e.generation++
	gen := e.generation
	e.mu.Unlock()

	e.logger.Debug("evaluation started", "generation", gen, "bytes", len(source))
	start := time.Now()

	ch := make(chan evalResult, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- evalResult{err: fmt.Errorf("panic during evaluation: %v", r)}
			}
		}()

		res, err := e.evaluate(source)
		ch <- evalResult{result: res, err: err}
	}()

	res, err := waitWithTimeout(ch, gen, &e.mu, &e.generation, e.timeout)
	switch {
	case errors.Is(err, ErrTimeout):
		e.logger.Error("evaluation timed out", "generation", gen, "timeout", e.timeout)
		return EvalResult{}, err
	case err != nil:
		e.logger.Debug("evaluation failed", "generation", gen, "err", err)
		return EvalResult{}, err
	}

	for _, w := range res.Warnings {
		e.logger.Warn(w.Message, "code", w.Code)
	}
	fields := []any{"generation", gen, "elapsed", time.Since(start), "errors", len(res.Errors)}
	if res.Topo != nil {
		fields = append(fields,
			"vertices", res.Topo.NumVertices(),
			"edges", res.Topo.NumEdges(),
			"faces", res.Topo.NumFaces())
	}
	e.logger.Debug("evaluation finished", fields...)
	return res, nil
}

// evaluate performs the actual zygomys evaluation in a fresh sandbox.
func (e *Engine) evaluate(source string) (EvalResult, error) {
	// Empty source is a valid program that produces an empty arena.
	if strings.TrimSpace(source) == "" {
		return EvalResult{Topo: topo.EmptyWith(e.tol)}, nil
	}

	// Sandbox mode prevents user code from accessing the filesystem or syscalls.
	env := zygo.NewZlispSandbox()
	defer env.Stop()
	registerBuiltins(env, e.tol)

	if err := env.LoadString(preprocessSource(source)); err != nil {
		return EvalResult{Errors: parseZygomysError(err)}, nil
	}

	v, err := env.Run()
	if err != nil {
		return EvalResult{Errors: parseZygomysError(err)}, nil
	}

	var res EvalResult
	if st, ok := v.(*sexpTopo); ok {
		res.Topo = st.t
	} else {
		res.Topo = topo.EmptyWith(e.tol)
		res.Warnings = append(res.Warnings, EvalWarning{
			Message: fmt.Sprintf("final value %s is not a topology, result is empty", v.SexpString(nil)),
		})
	}
	for _, ve := range res.Topo.Validate() {
		res.Warnings = append(res.Warnings, EvalWarning{Message: ve.Error(), Code: ve.Code})
	}
	return res, nil
}

// linePattern matches zygomys error messages that include "Error on line N: ..."
var linePattern = regexp.MustCompile(`(?i)(?:error )?on line (\d+):\s*(.*)`)

// linePatternShort matches simpler "line N: ..." patterns.
var linePatternShort = regexp.MustCompile(`(?i)^line (\d+):\s*(.*)`)

// parseZygomysError converts a zygomys error into one or more EvalError values.
// It attempts to extract line number information from the error message.
func parseZygomysError(err error) []EvalError {
	msg := err.Error()

	// zygomys formats parse errors as "Error on line N: <details>\n"
	if m := linePattern.FindStringSubmatch(msg); m != nil {
		line, _ := strconv.Atoi(m[1])
		return []EvalError{{Line: line, Message: strings.TrimSpace(m[2])}}
	}

	if m := linePatternShort.FindStringSubmatch(msg); m != nil {
		line, _ := strconv.Atoi(m[1])
		return []EvalError{{Line: line, Message: strings.TrimSpace(m[2])}}
	}

	// Fallback: no line info available.
	return []EvalError{{Message: strings.TrimSpace(msg)}}
}
