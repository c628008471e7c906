package agent

import (
	"context"
	"fmt"

	"github.com/tunecrew/tunecrew/core"
	"github.com/tunecrew/tunecrew/logging"
	"github.com/tunecrew/tunecrew/memory"
	"github.com/tunecrew/tunecrew/model"
	"github.com/tunecrew/tunecrew/tool"
)

const (
	// DefaultMaxIterations bounds the outer reasoning loop.
	DefaultMaxIterations = 10
	// DefaultRetryAttempts bounds transport/hallucination retries within a
	// single loop iteration.
	DefaultRetryAttempts = 2

	// MaxIterationsMessage is the terminal outcome when the outer bound is
	// reached without a final answer. Not an error.
	MaxIterationsMessage = "Max iterations reached without final answer."

	// ApologyMessage is the terminal outcome when every retry of a turn
	// still produced hallucinated tool-call syntax.
	ApologyMessage = "I'm sorry, I could not produce a clear answer to that. Could you rephrase your request?"

	// correctiveInstruction is appended as a system entry after a
	// hallucinated reply so the model retries in natural language.
	correctiveInstruction = "Your previous reply looked like raw tool-call syntax. " +
		"Do not write tool calls as text. Either make a real tool call, or answer the user in plain natural language."
)

// Options configure an Agent. Use the functional options with New.
type Options struct {
	MaxIterations int
	RetryAttempts int
	Detector      Detector
	Logger        logging.Logger
	Tools         []tool.Tool
}

// Option mutates Options during construction.
type Option func(*Options)

// WithMaxIterations overrides the outer loop bound.
func WithMaxIterations(n int) Option {
	return func(o *Options) { o.MaxIterations = n }
}

// WithRetryAttempts overrides the per-iteration retry budget.
func WithRetryAttempts(n int) Option {
	return func(o *Options) { o.RetryAttempts = n }
}

// WithDetector replaces the hallucination detection policy. Pass nil to
// disable detection entirely.
func WithDetector(d Detector) Option {
	return func(o *Options) { o.Detector = d }
}

// WithLogger sets the structured logger.
func WithLogger(l logging.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

// WithTools registers tools at construction time.
func WithTools(tools ...tool.Tool) Option {
	return func(o *Options) { o.Tools = append(o.Tools, tools...) }
}

// Agent is a conversational unit with memory, tools and a bounded execution
// loop against a model transport. It implements core.Agent so it can itself
// be wrapped as a delegation tool of another agent.
type Agent struct {
	name        string
	instruction string
	llm         model.Model
	tools       *tool.Registry
	memory      *memory.Conversation
	maxIter     int
	retries     int
	detector    Detector
	logger      logging.Logger
}

// New creates an agent with its fixed system instruction and model. Defaults:
// 10 outer iterations, 2 retry attempts per iteration, the default
// hallucination detector and a no-op logger.
func New(name, instruction string, llm model.Model, optFns ...Option) *Agent {
	opts := Options{
		MaxIterations: DefaultMaxIterations,
		RetryAttempts: DefaultRetryAttempts,
		Detector:      DefaultDetector,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.MaxIterations < 1 {
		opts.MaxIterations = 1
	}
	if opts.RetryAttempts < 1 {
		opts.RetryAttempts = 1
	}

	logger := logging.OrNoOp(opts.Logger)
	a := &Agent{
		name:        name,
		instruction: instruction,
		llm:         llm,
		tools:       tool.NewRegistry(logger),
		memory:      memory.NewConversation(),
		maxIter:     opts.MaxIterations,
		retries:     opts.RetryAttempts,
		detector:    opts.Detector,
		logger:      logger,
	}
	a.tools.MustRegister(opts.Tools...)
	return a
}

// Name implements core.Agent.
func (a *Agent) Name() string { return a.name }

// Instruction implements core.Agent.
func (a *Agent) Instruction() string { return a.instruction }

// RegisterTool adds a tool to the agent's registry.
func (a *Agent) RegisterTool(t tool.Tool) error {
	return a.tools.Register(t)
}

// RegisterTools adds multiple tools, stopping at the first failure.
func (a *Agent) RegisterTools(tools ...tool.Tool) error {
	for _, t := range tools {
		if err := a.tools.Register(t); err != nil {
			return err
		}
	}
	return nil
}

// History returns a read-only snapshot of the agent's conversation memory.
func (a *Agent) History() []core.Message {
	return a.memory.Snapshot()
}

// Execute implements core.Agent: it appends the user input to memory and
// runs the bounded reasoning loop until a terminal string outcome.
//
// The only ways Execute ends are a final answer, the apology message, the
// iteration-bound message or a transport-failure message. All are ordinary
// strings; a delegating caller treats each as a tool result.
//
// Execute is deliberately not guarded by a mutex: a delegation cycle
// (A calls B, B calls A) re-enters Execute on the same goroutine, and a
// non-reentrant lock would deadlock there. Individual memory appends are
// atomic; hosts issuing concurrent top-level calls on one instance must
// serialize them to keep transcript ordering meaningful.
func (a *Agent) Execute(ctx context.Context, input string) string {
	a.logger.Info("agent.execute.start", "agent", a.name, "model", a.llm.Info().Name)
	a.memory.Append(core.NewUserMessage(input))

	for iter := 1; iter <= a.maxIter; iter++ {
		answer, done := a.step(ctx, iter)
		if done {
			a.logger.Info("agent.execute.done", "agent", a.name, "iterations", iter)
			return answer
		}
	}

	a.logger.Warn("agent.execute.max_iterations", "agent", a.name, "max", a.maxIter)
	return MaxIterationsMessage
}

// step performs one outer loop iteration: a model call with bounded retries,
// followed by either tool dispatch (done=false, loop continues) or a
// terminal outcome (done=true).
func (a *Agent) step(ctx context.Context, iter int) (string, bool) {
	for attempt := 1; attempt <= a.retries; attempt++ {
		req := model.Request{
			Instruction: a.instruction,
			Messages:    a.memory.Snapshot(),
			Tools:       a.tools.Definitions(),
		}

		resp, err := a.llm.Generate(ctx, req)
		if err != nil {
			a.logger.Warn("agent.model.error",
				"agent", a.name, "iteration", iter, "attempt", attempt, "error", err.Error())
			if attempt < a.retries {
				continue
			}
			return fmt.Sprintf("Error calling LLM: %v", err), true
		}

		msg := resp.Message
		if len(msg.ToolCalls) > 0 {
			a.dispatchToolCalls(ctx, msg)
			return "", false
		}

		if a.detector != nil && a.detector(msg.Content, a.tools.Names()) {
			a.logger.Warn("agent.response.hallucinated",
				"agent", a.name, "iteration", iter, "attempt", attempt)
			if attempt < a.retries {
				a.memory.Append(core.NewSystemMessage(correctiveInstruction))
				continue
			}
			return ApologyMessage, true
		}

		a.memory.Append(core.NewAssistantMessage(msg.Content))
		return msg.Content, true
	}
	return ApologyMessage, true
}

// dispatchToolCalls records the tool-call-bearing assistant turn, then
// invokes each requested call sequentially in request order, appending one
// tool-role entry per call. A nested delegate loop blocks until its result
// is available before the next call in the batch runs.
func (a *Agent) dispatchToolCalls(ctx context.Context, msg core.Message) {
	a.memory.Append(msg)
	for _, call := range msg.ToolCalls {
		a.logger.Info("agent.tool.dispatch", "agent", a.name, "tool", call.Name)
		result := a.tools.Dispatch(ctx, call.Name, call.Arguments)
		a.memory.Append(core.NewToolMessage(call.ID, result))
	}
}
