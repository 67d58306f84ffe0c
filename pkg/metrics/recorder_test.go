package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/psantana5/fnmon/pkg/monitor"
)

func TestObserveCountsByStatus(t *testing.T) {
	r := NewRecorder(prometheus.NewRegistry())

	r.Observe(&monitor.Result{
		FunctionName:  "create_user",
		Status:        monitor.StatusSuccess,
		ExecutionTime: 0.1,
	})
	r.Observe(&monitor.Result{
		FunctionName:  "create_user",
		Status:        monitor.StatusError,
		ExecutionTime: 0.2,
		Errors:        []string{"Input validation failed for user_data: bad"},
	})

	success := testutil.ToFloat64(r.invocations.WithLabelValues("create_user", "success"))
	if success != 1 {
		t.Errorf("Expected 1 success invocation, got %f", success)
	}
	failed := testutil.ToFloat64(r.invocations.WithLabelValues("create_user", "error"))
	if failed != 1 {
		t.Errorf("Expected 1 error invocation, got %f", failed)
	}
}

func TestObserveClassifiesFailures(t *testing.T) {
	r := NewRecorder(prometheus.NewRegistry())

	r.Observe(&monitor.Result{
		FunctionName: "divide_numbers",
		Status:       monitor.StatusError,
		Errors: []string{
			"Execution error: division by zero is not allowed",
			"Traceback: goroutine 1 [running]",
			"Output validation failed: bad shape",
		},
	})

	execution := testutil.ToFloat64(r.validationFailures.WithLabelValues("divide_numbers", "execution"))
	if execution != 1 {
		t.Errorf("Expected 1 execution failure, got %f", execution)
	}
	output := testutil.ToFloat64(r.validationFailures.WithLabelValues("divide_numbers", "output"))
	if output != 1 {
		t.Errorf("Expected 1 output failure, got %f", output)
	}
	// Traceback entries are not failures of their own.
	input := testutil.ToFloat64(r.validationFailures.WithLabelValues("divide_numbers", "input"))
	if input != 0 {
		t.Errorf("Expected no input failures, got %f", input)
	}
}

func TestObserveRecordsMemoryDelta(t *testing.T) {
	r := NewRecorder(prometheus.NewRegistry())

	r.Observe(&monitor.Result{
		FunctionName: "create_user",
		Status:       monitor.StatusSuccess,
		MemoryUsage:  monitor.MemoryUsage{Before: 100, After: 160, Peak: 160, Delta: 60},
	})

	delta := testutil.ToFloat64(r.memoryDelta.WithLabelValues("create_user"))
	if delta != 60 {
		t.Errorf("Expected memory delta gauge 60, got %f", delta)
	}
}
