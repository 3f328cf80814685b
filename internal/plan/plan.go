// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package plan loads YAML descriptions of nested traced scopes and turns
// them into usable compositions.
package plan

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"code.hybscloud.com/usable"
	"code.hybscloud.com/usable/trace"
)

// Kind selects the constructor used for a step.
type Kind string

const (
	// KindUsing enters the operation through trace.Source on every run.
	KindUsing Kind = "using"
	// KindCreate enters through an explicit setup/cleanup pair.
	KindCreate Kind = "create"
	// KindOnce enters eagerly inside the selector and wraps the scope with usable.Once.
	KindOnce Kind = "once"
	// KindDirect enters through a direct call whose closer the chain owns.
	KindDirect Kind = "direct"
	// KindValue contributes its operation name without tracing or releasing anything.
	KindValue Kind = "value"
)

var (
	// ErrInvalidPlan wraps every validation failure.
	ErrInvalidPlan = errors.New("plan: invalid plan")
	// ErrStepFailed is the acquisition error of a step marked fail.
	ErrStepFailed = errors.New("plan: step failed")
	// ErrBodyFailed is wrapped by the continuation error of a plan with fail set.
	ErrBodyFailed = errors.New("plan: body failed")
)

// Step is one nested scope.
type Step struct {
	Operation string `yaml:"operation"`
	Kind      Kind   `yaml:"kind"`
	Fail      bool   `yaml:"fail,omitempty"`
}

// Plan describes a chain of nested scopes, outermost first.
type Plan struct {
	Name   string `yaml:"name"`
	Result string `yaml:"result,omitempty"`
	Fail   string `yaml:"fail,omitempty"`
	Steps  []Step `yaml:"steps"`
}

// Report is the outcome of one run.
type Report struct {
	Value   string
	Elapsed time.Duration
}

// Parse decodes and validates a YAML plan.
func Parse(data []byte) (*Plan, error) {
	var p Plan
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPlan, err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Load reads and parses the plan at path.
func Load(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Validate checks that every step has an operation and a known kind.
// An empty kind defaults to KindUsing.
func (p *Plan) Validate() error {
	if len(p.Steps) == 0 {
		return fmt.Errorf("%w: no steps", ErrInvalidPlan)
	}
	for i := range p.Steps {
		s := &p.Steps[i]
		if strings.TrimSpace(s.Operation) == "" {
			return fmt.Errorf("%w: step %d has no operation", ErrInvalidPlan, i)
		}
		if s.Kind == "" {
			s.Kind = KindUsing
		}
		switch s.Kind {
		case KindUsing, KindCreate, KindOnce, KindDirect, KindValue:
		default:
			return fmt.Errorf("%w: step %d has unknown kind %q", ErrInvalidPlan, i, s.Kind)
		}
	}
	return nil
}

// Build composes the steps into a single lazy scope producing the
// "/"-joined operation path. Nothing is traced until the scope is used.
func (p *Plan) Build(t *trace.Tracer) usable.Usable[string] {
	chain := usable.Return("")
	for _, s := range p.Steps {
		chain = buildStep(chain, t, s)
	}
	return chain
}

func join(path, operation string) string {
	if operation == "" {
		return path
	}
	if path == "" {
		return operation
	}
	return path + "/" + operation
}

func joinScope(path string, s *trace.Scope) string {
	return join(path, s.Operation())
}

func buildStep(chain usable.Usable[string], t *trace.Tracer, s Step) usable.Usable[string] {
	stepErr := func() error {
		return fmt.Errorf("%w: %s", ErrStepFailed, s.Operation)
	}
	switch s.Kind {
	case KindCreate:
		return usable.FlatMap(chain, func(string) usable.Usable[*trace.Scope] {
			return usable.Create(func() (*trace.Scope, error) {
				if s.Fail {
					return nil, stepErr()
				}
				return t.Enter(s.Operation), nil
			}, (*trace.Scope).Close)
		}, joinScope)
	case KindOnce:
		return usable.FlatMap(chain, func(string) usable.Usable[*trace.Scope] {
			if s.Fail {
				return usable.Fail[*trace.Scope](stepErr())
			}
			return usable.Once(t.Enter(s.Operation))
		}, joinScope)
	case KindDirect:
		return usable.FlatMapCloser(chain, func(string) (*trace.Scope, error) {
			if s.Fail {
				return nil, stepErr()
			}
			return t.Enter(s.Operation), nil
		}, joinScope, true)
	case KindValue:
		return usable.FlatMap(chain, func(string) usable.Usable[string] {
			if s.Fail {
				return usable.Fail[string](stepErr())
			}
			return usable.Return(s.Operation)
		}, join)
	default:
		return usable.FlatMap(chain, func(string) usable.Usable[*trace.Scope] {
			if s.Fail {
				return usable.Fail[*trace.Scope](stepErr())
			}
			return trace.Source(t, s.Operation)
		}, joinScope)
	}
}

// Run builds the plan and forces it once under a stopwatch. The body
// traces the final value, or fails with ErrBodyFailed when Fail is set.
func (p *Plan) Run(t *trace.Tracer) (Report, error) {
	return Execute(p, p.Build(t), t)
}

// Execute forces an already built composition of p. Calling it repeatedly
// with the same composition runs independent acquire/release cycles.
func Execute(p *Plan, composed usable.Usable[string], t *trace.Tracer) (Report, error) {
	return usable.Drive(usable.Stopwatch(), func(sw *usable.Timer) (Report, error) {
		value, err := usable.Drive(composed, func(path string) (string, error) {
			if p.Fail != "" {
				return "", fmt.Errorf("%w: %s", ErrBodyFailed, p.Fail)
			}
			return trace.Value(t, join(path, p.Result)), nil
		})
		return Report{Value: value, Elapsed: sw.Elapsed()}, err
	})
}
