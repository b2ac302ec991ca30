// Package domain provides definitions for the jobs offered to the simulator
package domain

import (
	"fmt"
	"math"
)

// Job is one batch job descriptor. Jobs are values and are never modified
// after construction.
type Job struct {
	ID             int
	ArrivalTime    int // hours
	CoresRequired  int
	MemoryRequired int // GB
	ExecutionTime  int // hours
}

// NewJob validates the descriptor fields and returns the Job, or an
// *InvalidJobError naming the first offending field.
func NewJob(id, arrivalTime, cores, memory, executionTime int) (Job, error) {
	j := Job{
		ID:             id,
		ArrivalTime:    arrivalTime,
		CoresRequired:  cores,
		MemoryRequired: memory,
		ExecutionTime:  executionTime,
	}
	if err := j.Validate(); err != nil {
		return Job{}, err
	}
	return j, nil
}

// Validate applies the NewJob rules to a Job built as a struct literal.
func (j Job) Validate() error {
	switch {
	case j.ID <= 0:
		return &InvalidJobError{JobID: j.ID, Field: "id", Value: j.ID}
	case j.ArrivalTime < 0:
		return &InvalidJobError{JobID: j.ID, Field: "arrival_time", Value: j.ArrivalTime}
	case j.CoresRequired <= 0:
		return &InvalidJobError{JobID: j.ID, Field: "cores", Value: j.CoresRequired}
	case j.MemoryRequired <= 0:
		return &InvalidJobError{JobID: j.ID, Field: "memory", Value: j.MemoryRequired}
	case j.ExecutionTime <= 0:
		return &InvalidJobError{JobID: j.ID, Field: "execution_time", Value: j.ExecutionTime}
	}
	return nil
}

// Value is the job's resource-hour footprint: execution time * cores * memory,
// saturating at math.MaxInt64. It is only used to order jobs.
func (j Job) Value() int64 {
	v := int64(j.ExecutionTime)
	for _, f := range []int64{int64(j.CoresRequired), int64(j.MemoryRequired)} {
		if v != 0 && f > math.MaxInt64/v {
			return math.MaxInt64
		}
		v *= f
	}
	return v
}

func (j Job) String() string {
	return fmt.Sprintf("job%d(arrival:%d, cores:%d, mem:%d, exec:%d)",
		j.ID, j.ArrivalTime, j.CoresRequired, j.MemoryRequired, j.ExecutionTime)
}

// InvalidJobError reports a job descriptor with an out of range field, or a
// job id used twice in one job list.
type InvalidJobError struct {
	JobID  int
	Field  string
	Value  int
	Reason string // empty means "out of range"
}

func (e *InvalidJobError) Error() string {
	reason := e.Reason
	if reason == "" {
		reason = "out of range"
	}
	return fmt.Sprintf("invalid job %d: %s %s: %d", e.JobID, e.Field, reason, e.Value)
}
