// Package ordering decides the sequence in which jobs are offered to placement.
package ordering

import (
	"sort"

	"github.com/pkg/errors"

	"github.com/teslacoile/IIT-G2046-T1-job-scheduler/simulator/domain"
)

// ErrUnknownPolicy is returned by Lookup for names that are not registered.
var ErrUnknownPolicy = errors.New("unknown queue policy")

const (
	FCFS               = "fcfs"
	SmallestJobFirst   = "smallest_job_first"
	ShortDurationFirst = "short_duration_first"
)

// Policy imposes a total order on a set of jobs.
type Policy interface {
	Name() string

	// Order returns the jobs in the order they should be offered to placement.
	// The input slice is not modified.
	Order(jobs []domain.Job) []domain.Job
}

// keyedPolicy orders jobs by ascending key, keeping input order among equal keys.
type keyedPolicy struct {
	name string
	key  func(domain.Job) int64
}

func (p keyedPolicy) Name() string {
	return p.name
}

func (p keyedPolicy) Order(jobs []domain.Job) []domain.Job {
	ordered := make([]domain.Job, len(jobs))
	copy(ordered, jobs)
	sort.SliceStable(ordered, func(i, j int) bool {
		return p.key(ordered[i]) < p.key(ordered[j])
	})
	return ordered
}

var canonicalNames = []string{FCFS, SmallestJobFirst, ShortDurationFirst}

var policies = map[string]Policy{
	FCFS: keyedPolicy{FCFS, func(j domain.Job) int64 {
		return int64(j.ArrivalTime)
	}},
	SmallestJobFirst: keyedPolicy{SmallestJobFirst, func(j domain.Job) int64 {
		return j.Value()
	}},
	ShortDurationFirst: keyedPolicy{ShortDurationFirst, func(j domain.Job) int64 {
		return int64(j.ExecutionTime)
	}},
}

// Lookup returns the policy registered under name.
func Lookup(name string) (Policy, error) {
	p, ok := policies[name]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownPolicy, "%q, supported values are %v", name, Names())
	}
	return p, nil
}

// Names lists the registered policy names in canonical order.
func Names() []string {
	names := make([]string, len(canonicalNames))
	copy(names, canonicalNames)
	return names
}
