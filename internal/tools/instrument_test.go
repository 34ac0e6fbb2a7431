package tools

import (
	"errors"
	"testing"
	"time"

	smoltools "github.com/rizome-dev/smolagentsgo/tools"
)

func newEchoTool(t *testing.T, fail error) smoltools.Tool {
	t.Helper()
	tool, err := smoltools.NewBaseTool(
		"echo",
		"Echo the input back.",
		map[string]smoltools.InputProperty{
			"text": {Type: "string", Description: "Text to echo."},
		},
		"string",
		func(args map[string]interface{}) (interface{}, error) {
			if fail != nil {
				return nil, fail
			}
			return args["text"], nil
		},
	)
	if err != nil {
		t.Fatalf("new echo tool: %v", err)
	}
	return tool
}

func TestInstrumentFiresHooksAroundForward(t *testing.T) {
	var order []string
	wrapped := Instrument(newEchoTool(t, nil), Hooks{
		OnStart: func(name string, args map[string]interface{}) {
			order = append(order, "start:"+name)
		},
		OnEnd: func(name string, args map[string]interface{}, output interface{}, duration time.Duration, err error) {
			order = append(order, "end:"+name)
			if output != "hello" {
				t.Errorf("output = %v", output)
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if duration < 0 {
				t.Errorf("negative duration")
			}
		},
	})

	out, err := wrapped.Forward(map[string]interface{}{"text": "hello"})
	if err != nil {
		t.Fatalf("forward: %v", err)
	}
	if out != "hello" {
		t.Fatalf("output = %v", out)
	}
	if len(order) != 2 || order[0] != "start:echo" || order[1] != "end:echo" {
		t.Fatalf("hook order = %v", order)
	}
}

func TestInstrumentReportsErrors(t *testing.T) {
	boom := errors.New("boom")
	var gotErr error
	wrapped := Instrument(newEchoTool(t, boom), Hooks{
		OnEnd: func(name string, args map[string]interface{}, output interface{}, duration time.Duration, err error) {
			gotErr = err
		},
	})
	if _, err := wrapped.Forward(map[string]interface{}{"text": "x"}); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if !errors.Is(gotErr, boom) {
		t.Fatalf("hook did not see the error: %v", gotErr)
	}
}

func TestInstrumentPreservesMetadata(t *testing.T) {
	inner := newEchoTool(t, nil)
	wrapped := Instrument(inner, Hooks{})
	if wrapped.Name() != inner.Name() {
		t.Fatalf("name mismatch")
	}
	if wrapped.Description() != inner.Description() {
		t.Fatalf("description mismatch")
	}
	if len(wrapped.Inputs()) != len(inner.Inputs()) {
		t.Fatalf("inputs mismatch")
	}
	if wrapped.OutputType() != inner.OutputType() {
		t.Fatalf("output type mismatch")
	}
}
