// Package sampler reports current process resource figures on demand.
package sampler

import (
	"fmt"
	"os"
	"sync"

	"github.com/shirou/gopsutil/v3/process"
)

// Sample holds one point-in-time resource reading
type Sample struct {
	MemoryResidentBytes uint64
	CPUPercent          float64
}

// Sampler returns current process memory and CPU figures on demand.
// Implementations must be safe for concurrent use.
type Sampler interface {
	Sample() (Sample, error)
}

// ProcessSampler samples the current process via gopsutil
type ProcessSampler struct {
	once sync.Once
	proc *process.Process
	err  error
}

// Current returns a sampler for the calling process. The process handle is
// created lazily on first use.
func Current() *ProcessSampler {
	return &ProcessSampler{}
}

// Sample reads resident memory and CPU utilization of the process
func (s *ProcessSampler) Sample() (Sample, error) {
	s.once.Do(func() {
		s.proc, s.err = process.NewProcess(int32(os.Getpid()))
	})
	if s.err != nil {
		return Sample{}, fmt.Errorf("failed to open process handle: %w", s.err)
	}

	mem, err := s.proc.MemoryInfo()
	if err != nil {
		return Sample{}, fmt.Errorf("failed to read memory info: %w", err)
	}

	cpu, err := s.proc.CPUPercent()
	if err != nil {
		return Sample{}, fmt.Errorf("failed to read cpu percent: %w", err)
	}

	return Sample{
		MemoryResidentBytes: mem.RSS,
		CPUPercent:          cpu,
	}, nil
}
