package tools

import (
	"time"

	smoltools "github.com/rizome-dev/smolagentsgo/tools"
)

// Hooks receives tool lifecycle notifications from instrumented tools.
type Hooks struct {
	// OnStart fires before the wrapped tool runs.
	OnStart func(name string, args map[string]interface{})
	// OnEnd fires after the wrapped tool returns, with its duration and
	// outcome.
	OnEnd func(name string, args map[string]interface{}, output interface{}, duration time.Duration, err error)
}

// Instrumented wraps a tool and reports start and end of every call.
type Instrumented struct {
	inner smoltools.Tool
	hooks Hooks
	clock func() time.Time
}

// Instrument wraps tool so each invocation fires hooks.
func Instrument(tool smoltools.Tool, hooks Hooks) *Instrumented {
	return &Instrumented{inner: tool, hooks: hooks, clock: time.Now}
}

func (t *Instrumented) Name() string {
	return t.inner.Name()
}

func (t *Instrumented) Description() string {
	return t.inner.Description()
}

func (t *Instrumented) Inputs() map[string]smoltools.InputProperty {
	return t.inner.Inputs()
}

func (t *Instrumented) OutputType() string {
	return t.inner.OutputType()
}

func (t *Instrumented) Setup() error {
	return t.inner.Setup()
}

func (t *Instrumented) Forward(args map[string]interface{}) (interface{}, error) {
	if t.hooks.OnStart != nil {
		t.hooks.OnStart(t.inner.Name(), args)
	}
	start := t.clock()
	output, err := t.inner.Forward(args)
	if t.hooks.OnEnd != nil {
		t.hooks.OnEnd(t.inner.Name(), args, output, t.clock().Sub(start), err)
	}
	return output, err
}

func (t *Instrumented) Call(args map[string]interface{}, sanitize bool) (interface{}, error) {
	if err := t.Setup(); err != nil {
		return nil, err
	}
	return t.Forward(args)
}
