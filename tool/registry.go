package tool

import (
	"context"
	"fmt"
	"time"

	"github.com/tunecrew/tunecrew/logging"
	"github.com/tunecrew/tunecrew/model"
)

// Registry holds an agent's tools. Lookup is by unique name; schema
// presentation order follows registration order, which matters to models
// that weight earlier tool definitions more heavily.
//
// Dispatch is the single boundary where tool failures become strings: a tool
// never aborts the owning agent's loop. Execution errors, validation errors,
// unknown names and panics are all converted to descriptive prose and fed
// back into the conversation as a tool result.
type Registry struct {
	names  []string
	tools  map[string]Tool
	logger logging.Logger
}

// NewRegistry creates an empty registry.
func NewRegistry(logger logging.Logger) *Registry {
	return &Registry{
		tools:  map[string]Tool{},
		logger: logging.OrNoOp(logger),
	}
}

// Register adds a tool. Duplicate names are rejected.
func (r *Registry) Register(t Tool) error {
	if _, exists := r.tools[t.Name()]; exists {
		return fmt.Errorf("tool %q already registered", t.Name())
	}
	r.names = append(r.names, t.Name())
	r.tools[t.Name()] = t
	r.logger.Debug("tool.registered", "tool", t.Name())
	return nil
}

// MustRegister adds tools, panicking on duplicates. Intended for static
// setup code where a duplicate is a programming error.
func (r *Registry) MustRegister(tools ...Tool) {
	for _, t := range tools {
		if err := r.Register(t); err != nil {
			panic(err)
		}
	}
}

// Len returns the number of registered tools.
func (r *Registry) Len() int { return len(r.names) }

// Names returns tool names in registration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Definitions projects the registry into the calling-schema list sent to the
// model, in registration order. Pure, no side effects.
func (r *Registry) Definitions() []model.ToolDefinition {
	if len(r.names) == 0 {
		return nil
	}
	defs := make([]model.ToolDefinition, 0, len(r.names))
	for _, name := range r.names {
		t := r.tools[name]
		defs = append(defs, model.ToolDefinition{
			Type: "function",
			Function: model.FunctionDefinition{
				Name:        t.Name(),
				Description: t.Description(),
				Parameters:  t.Parameters(),
			},
		})
	}
	return defs
}

// Dispatch invokes the named tool and returns its string result. Failures of
// every kind are normalized:
//
//	unknown name -> "Error: Tool <name> not found"
//	error/panic  -> "Error executing <name>: <cause>"
func (r *Registry) Dispatch(ctx context.Context, name string, args map[string]any) (result string) {
	t, ok := r.tools[name]
	if !ok {
		r.logger.Warn("tool.dispatch.not_found", "tool", name)
		return fmt.Sprintf("Error: Tool %s not found", name)
	}

	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("tool.dispatch.panic", "tool", name, "panic", rec)
			result = fmt.Sprintf("Error executing %s: panic: %v", name, rec)
		}
	}()

	start := time.Now()
	r.logger.Debug("tool.call.start", "tool", name)

	out, err := t.Call(ctx, args)
	if err != nil {
		r.logger.Error("tool.call.error", "tool", name, "error", err.Error())
		return fmt.Sprintf("Error executing %s: %v", name, err)
	}

	r.logger.Info("tool.call.success", "tool", name, "duration_ms", time.Since(start).Milliseconds())
	return out
}
