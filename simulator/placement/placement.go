// Package placement selects the worker node that hosts a job.
package placement

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/teslacoile/IIT-G2046-T1-job-scheduler/simulator/cluster"
	"github.com/teslacoile/IIT-G2046-T1-job-scheduler/simulator/domain"
)

// ErrUnknownPolicy is returned by Parse for names outside the closed set of policies.
var ErrUnknownPolicy = errors.New("unknown allocation policy")

// Policy is a bin-packing strategy. The set of policies is closed.
type Policy int

const (
	// Take the first node, in id order, that can host the job
	FirstFit Policy = iota

	// Take the node with the least residual capacity
	BestFit

	// Take the node with the most residual capacity
	WorstFit
)

var policyNames = [...]string{"first_fit", "best_fit", "worst_fit"}

// Policies lists every placement policy in canonical order.
func Policies() []Policy {
	return []Policy{FirstFit, BestFit, WorstFit}
}

// Names lists every placement policy name in canonical order.
func Names() []string {
	names := make([]string, len(policyNames))
	copy(names, policyNames[:])
	return names
}

func (p Policy) String() string {
	if p < FirstFit || p > WorstFit {
		return fmt.Sprintf("Policy(%d)", int(p))
	}
	return policyNames[p]
}

// Parse maps a policy name to its Policy.
func Parse(name string) (Policy, error) {
	for i, n := range policyNames {
		if n == name {
			return Policy(i), nil
		}
	}
	return 0, errors.Wrapf(ErrUnknownPolicy, "%q, supported values are %v", name, Names())
}

// Select returns the id of the node chosen to host job, or false when no node
// in the pool can host it. Nodes are scanned in ascending id order. The pool
// is not modified.
//
// BestFit and WorstFit only replace the current choice with a node that is
// strictly better on both cores and memory, so among nodes that trade one
// dimension against the other the earliest eligible node wins.
func (p Policy) Select(pool *cluster.ResourcePool, job domain.Job) (int, bool) {
	switch p {
	case FirstFit:
		return firstFit(pool, job)
	case BestFit:
		return dominantFit(pool, job, fewerOnBoth)
	case WorstFit:
		return dominantFit(pool, job, moreOnBoth)
	}
	panic(fmt.Sprintf("unhandled placement policy %d", int(p)))
}

func firstFit(pool *cluster.ResourcePool, job domain.Job) (int, bool) {
	for id := 0; id < pool.Len(); id++ {
		if pool.NodeAt(id).Fits(job) {
			return id, true
		}
	}
	return -1, false
}

// dominantFit keeps the first eligible node and replaces it only when
// replaces(candidate, incumbent) holds.
func dominantFit(pool *cluster.ResourcePool, job domain.Job, replaces func(c, i cluster.WorkerNode) bool) (int, bool) {
	selected := -1
	var incumbent cluster.WorkerNode
	for id := 0; id < pool.Len(); id++ {
		n := pool.NodeAt(id)
		if !n.Fits(job) {
			continue
		}
		if selected < 0 || replaces(n, incumbent) {
			selected = id
			incumbent = n
		}
	}
	return selected, selected >= 0
}

func fewerOnBoth(c, i cluster.WorkerNode) bool {
	return c.AvailableCores < i.AvailableCores && c.AvailableMemory < i.AvailableMemory
}

func moreOnBoth(c, i cluster.WorkerNode) bool {
	return c.AvailableCores > i.AvailableCores && c.AvailableMemory > i.AvailableMemory
}
