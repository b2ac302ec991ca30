package domain

import (
	"math/rand"

	"github.com/leanovate/gopter"
)

// JobLimits bounds the randomly generated job fields (inclusive).
type JobLimits struct {
	MaxArrival   int
	MaxCores     int
	MaxMemory    int
	MaxExecution int
}

// DefaultJobLimits produce jobs that mostly fit on a default 24 core / 64GB node,
// with a few that fit nowhere.
var DefaultJobLimits = JobLimits{MaxArrival: 48, MaxCores: 30, MaxMemory: 80, MaxExecution: 12}

// Generates a random valid Job with the specified id, using the supplied Rand
func GenRandomJob(id int, limits JobLimits, rng *rand.Rand) Job {
	return Job{
		ID:             id,
		ArrivalTime:    rng.Intn(limits.MaxArrival + 1),
		CoresRequired:  1 + rng.Intn(limits.MaxCores),
		MemoryRequired: 1 + rng.Intn(limits.MaxMemory),
		ExecutionTime:  1 + rng.Intn(limits.MaxExecution),
	}
}

// Generates numJobs random jobs numbered 1..numJobs, using the supplied Rand
func GenRandomJobs(numJobs int, limits JobLimits, rng *rand.Rand) []Job {
	jobs := make([]Job, 0, numJobs)
	for i := 1; i <= numJobs; i++ {
		jobs = append(jobs, GenRandomJob(i, limits, rng))
	}
	return jobs
}

// Wrapper function that Generates a job list for Property Based Tests
func GopterGenJobs(maxJobs int, limits JobLimits) gopter.Gen {
	return func(genParams *gopter.GenParameters) *gopter.GenResult {
		numJobs := genParams.Rng.Intn(maxJobs + 1)
		jobs := GenRandomJobs(numJobs, limits, genParams.Rng)
		return gopter.NewGenResult(jobs, gopter.NoShrinker)
	}
}
