package monitor

// Status is the outcome of one monitored invocation
type Status string

const (
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// MemoryUsage holds the resident-memory readings around one invocation,
// in bytes. Peak is simplified to equal After. Delta may be negative.
type MemoryUsage struct {
	Before uint64 `json:"before"`
	After  uint64 `json:"after"`
	Peak   uint64 `json:"peak"`
	Delta  int64  `json:"delta"`
}

// Result is the envelope built once per invocation. Set once, never change.
type Result struct {
	Result        interface{} `json:"result"`
	Status        Status      `json:"status"`
	Errors        []string    `json:"errors,omitempty"`
	ExecutionTime float64     `json:"execution_time"`
	MemoryUsage   MemoryUsage `json:"memory_usage"`
	CPUUsage      float64     `json:"cpu_usage"`
	Timestamp     string      `json:"timestamp"`
	FunctionName  string      `json:"function_name"`
}

// Failed reports whether the invocation ended in error
func (r *Result) Failed() bool {
	return r.Status == StatusError
}

// Fields flattens the envelope into a flat mapping for structured logging
func (r *Result) Fields() map[string]interface{} {
	fields := map[string]interface{}{
		"function_name":  r.FunctionName,
		"status":         string(r.Status),
		"execution_time": r.ExecutionTime,
		"memory_before":  r.MemoryUsage.Before,
		"memory_after":   r.MemoryUsage.After,
		"memory_peak":    r.MemoryUsage.Peak,
		"memory_delta":   r.MemoryUsage.Delta,
		"cpu_usage":      r.CPUUsage,
		"timestamp":      r.Timestamp,
	}
	if r.Result != nil {
		fields["result"] = r.Result
	}
	if len(r.Errors) > 0 {
		fields["errors"] = r.Errors
	}
	return fields
}
