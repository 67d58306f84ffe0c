// Package monitor wraps arbitrary callables with execution monitoring:
// timing, memory/CPU sampling, input/output shape validation, structured
// result logging, and a normalized success/error envelope.
//
// The wrapper is synchronous and holds no cross-call mutable state; a
// Wrapped may be invoked concurrently as long as its collaborators are
// safe for concurrent use.
package monitor

import (
	"fmt"
	"runtime/debug"
	"strings"
	"time"

	"github.com/psantana5/fnmon/pkg/logging"
	"github.com/psantana5/fnmon/pkg/sampler"
	"github.com/psantana5/fnmon/pkg/schema"
)

// Logger is the structured logging collaborator. It must emit one
// self-contained record per call and never fail toward the caller.
type Logger interface {
	Log(level logging.Level, message string, fields map[string]interface{})
}

// Clock supplies wall-clock time. time.Time carries a monotonic reading,
// so elapsed durations derived from it are immune to clock steps.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// MetricsRecorder observes finished envelopes, e.g. for Prometheus export
type MetricsRecorder interface {
	Observe(*Result)
}

// Options configures one wrapped function
type Options struct {
	// ValidateInput enables pre-call argument validation
	ValidateInput bool
	// ValidateOutput enables post-call return-value validation
	ValidateOutput bool
	// LogExecution enables emission of one structured record per call
	LogExecution bool
	// LogLevel is the severity of the success-path record (DEBUG or INFO).
	// Failures always log at ERROR.
	LogLevel logging.Level
	// ReturnRawResult makes Call return the underlying value on success
	// instead of the envelope. Failures always return the envelope.
	ReturnRawResult bool
}

// DefaultOptions returns the documented defaults
func DefaultOptions() Options {
	return Options{
		ValidateInput:  true,
		ValidateOutput: true,
		LogExecution:   true,
		LogLevel:       logging.INFO,
	}
}

func (o Options) validate() error {
	if o.LogLevel != logging.DEBUG && o.LogLevel != logging.INFO {
		return fmt.Errorf("unsupported log level %s: success records log at DEBUG or INFO", o.LogLevel)
	}
	return nil
}

// Collaborators are the external services the wrapper composes. Every
// field is optional; nil fields get the package defaults.
type Collaborators struct {
	Sampler   sampler.Sampler
	Logger    Logger
	Clock     Clock
	Validator schema.Validator
	Metrics   MetricsRecorder
}

// Wrapped is a monitored callable. It is immutable after Wrap.
type Wrapped struct {
	target    Target
	opts      Options
	sampler   sampler.Sampler
	logger    Logger
	clock     Clock
	validator schema.Validator
	metrics   MetricsRecorder
}

// Wrap attaches monitoring to a target. It fails only on malformed
// configuration; runtime failures of the wrapped function never surface
// as errors from the wrapper.
func Wrap(target Target, opts Options, collab Collaborators) (*Wrapped, error) {
	if err := target.validate(); err != nil {
		return nil, err
	}
	if err := opts.validate(); err != nil {
		return nil, err
	}

	w := &Wrapped{
		target:    target,
		opts:      opts,
		sampler:   collab.Sampler,
		logger:    collab.Logger,
		clock:     collab.Clock,
		validator: collab.Validator,
		metrics:   collab.Metrics,
	}
	if w.sampler == nil {
		w.sampler = sampler.Current()
	}
	if w.logger == nil {
		w.logger = logging.Default()
	}
	if w.clock == nil {
		w.clock = systemClock{}
	}
	if w.validator == nil {
		w.validator = schema.New()
	}
	return w, nil
}

// MustWrap is Wrap for package-level wrapped declarations; it panics on
// malformed configuration.
func MustWrap(target Target, opts Options, collab Collaborators) *Wrapped {
	w, err := Wrap(target, opts, collab)
	if err != nil {
		panic(err)
	}
	return w
}

// Name returns the wrapped function's declared name
func (w *Wrapped) Name() string {
	return w.target.Name
}

// Call invokes the wrapped function with positional arguments. On success
// it returns either the raw underlying value (ReturnRawResult) or the
// *Result envelope; on any failure it always returns the envelope.
func (w *Wrapped) Call(args ...interface{}) interface{} {
	return w.call(args, nil)
}

// CallNamed invokes the wrapped function with keyword arguments
func (w *Wrapped) CallNamed(kwargs map[string]interface{}) interface{} {
	return w.call(nil, kwargs)
}

func (w *Wrapped) call(args []interface{}, kwargs map[string]interface{}) interface{} {
	start := w.clock.Now()
	before := w.sampleQuiet()

	var (
		errs   []string
		result interface{}
	)

	bound, bindErr := w.target.bind(args, kwargs)
	if bindErr != nil {
		// The function cannot be invoked without a successful binding,
		// so binding failures abort execution even when shape
		// validation is disabled.
		errs = append(errs, "Input validation error: "+bindErr.Error())
	}

	if bindErr == nil && w.opts.ValidateInput {
		for _, b := range bound {
			if b.param.Shape == nil {
				continue
			}
			if vs := w.validator.Validate(b.value, b.param.Shape); len(vs) > 0 {
				errs = append(errs, fmt.Sprintf("Input validation failed for %s: %s",
					b.param.Name, strings.Join(vs, "; ")))
			}
		}
	}

	if len(errs) == 0 {
		result, errs = w.execute(bound, errs)
	}

	after := w.sampleQuiet()
	elapsed := w.clock.Now().Sub(start)

	status := StatusSuccess
	if len(errs) > 0 {
		status = StatusError
	}

	res := &Result{
		Result:        result,
		Status:        status,
		Errors:        errs,
		ExecutionTime: elapsed.Seconds(),
		MemoryUsage: MemoryUsage{
			Before: before.MemoryResidentBytes,
			After:  after.MemoryResidentBytes,
			Peak:   after.MemoryResidentBytes,
			Delta:  int64(after.MemoryResidentBytes) - int64(before.MemoryResidentBytes),
		},
		CPUUsage:     maxFloat(before.CPUPercent, after.CPUPercent),
		Timestamp:    w.clock.Now().Format(time.RFC3339Nano),
		FunctionName: w.target.Name,
	}

	if w.opts.LogExecution {
		if res.Failed() {
			w.logger.Log(logging.ERROR, "function execution failed", res.Fields())
		} else {
			w.logger.Log(w.opts.LogLevel, "function executed successfully", res.Fields())
		}
	}

	if w.metrics != nil {
		w.metrics.Observe(res)
	}

	if w.opts.ReturnRawResult && !res.Failed() {
		return result
	}
	return res
}

// execute runs the underlying function, recovering panics and capturing
// returned errors, then validates the return value if configured.
func (w *Wrapped) execute(bound []boundArg, errs []string) (result interface{}, out []string) {
	out = errs

	defer func() {
		if r := recover(); r != nil {
			out = append(out,
				fmt.Sprintf("Execution error: %v", r),
				"Traceback: "+string(debug.Stack()))
			result = nil
		}
	}()

	args := make([]interface{}, len(bound))
	for i, b := range bound {
		args[i] = b.value
	}

	res, err := w.target.Invoke(args)
	if err != nil {
		out = append(out,
			"Execution error: "+err.Error(),
			"Traceback: "+string(debug.Stack()))
		return nil, out
	}
	result = res

	if w.opts.ValidateOutput && w.target.Return != nil {
		if vs := w.validator.Validate(res, w.target.Return); len(vs) > 0 {
			// The computed result stays in the envelope; only the
			// status flips to error.
			out = append(out, "Output validation failed: "+strings.Join(vs, "; "))
		}
	}
	return result, out
}

// sampleQuiet degrades sampler failures to a zero reading; sampling must
// never fail an invocation.
func (w *Wrapped) sampleQuiet() sampler.Sample {
	s, err := w.sampler.Sample()
	if err != nil {
		return sampler.Sample{}
	}
	return s
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
