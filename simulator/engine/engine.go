// Package engine runs a scheduling simulation: it orders the jobs with a queue
// policy, places each one with an allocation policy and accumulates the
// resources consumed by the jobs that were placed.
package engine

import (
	"fmt"
	"time"

	"github.com/golang-collections/collections/set"
	log "github.com/sirupsen/logrus"

	"github.com/teslacoile/IIT-G2046-T1-job-scheduler/common"
	"github.com/teslacoile/IIT-G2046-T1-job-scheduler/common/stats"
	"github.com/teslacoile/IIT-G2046-T1-job-scheduler/simulator/cluster"
	"github.com/teslacoile/IIT-G2046-T1-job-scheduler/simulator/domain"
	"github.com/teslacoile/IIT-G2046-T1-job-scheduler/simulator/ordering"
	"github.com/teslacoile/IIT-G2046-T1-job-scheduler/simulator/placement"
)

// Placement records the node a job was placed on.
type Placement struct {
	JobID  int `json:"JobId"`
	NodeID int `json:"NodeId"`
}

// SimulationResult is the outcome of one run. It is not modified after Run returns.
type SimulationResult struct {
	RunID            string
	QueuePolicy      string
	AllocationPolicy string
	Cluster          cluster.Config

	JobsSubmitted    int
	JobsPlaced       int
	TotalCPUUsage    int64 // cores held by placed jobs
	TotalMemoryUsage int64 // GB held by placed jobs

	AvgCPUUsagePct    float64
	AvgMemoryUsagePct float64

	// residual capacity of every node at the end of the run, in id order
	Nodes []cluster.WorkerNode
	// in decision order
	Placements []Placement
}

// JobsDropped is the number of jobs for which no node was eligible.
func (r *SimulationResult) JobsDropped() int {
	return r.JobsSubmitted - r.JobsPlaced
}

func (r *SimulationResult) String() string {
	return fmt.Sprintf("%s/%s: placed:%d, dropped:%d, cpu:%.2f%%, mem:%.2f%%",
		r.QueuePolicy, r.AllocationPolicy, r.JobsPlaced, r.JobsDropped(), r.AvgCPUUsagePct, r.AvgMemoryUsagePct)
}

// AllQueuePolicies lists every queue policy name accepted by Run.
func AllQueuePolicies() []string {
	return ordering.Names()
}

// AllAllocationPolicies lists every allocation policy name accepted by Run.
func AllAllocationPolicies() []string {
	return placement.Names()
}

// Engine runs simulations against pools built from a fixed cluster config.
// Every run gets its own pool, an Engine holds no state between runs.
type Engine struct {
	config cluster.Config
	stat   stats.StatsReceiver
}

func NewEngine(config cluster.Config, stat stats.StatsReceiver) (*Engine, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if stat == nil {
		stat = stats.NilStatsReceiver()
	}
	return &Engine{config: config, stat: stat}, nil
}

func (e *Engine) Config() cluster.Config {
	return e.config
}

// Run offers every job, in queuePolicy order, to the allocationPolicy. Jobs
// with no eligible node are skipped and never reconsidered. An unknown policy
// name fails the run with a *ConfigurationError, a job breaking the NewJob
// rules or reusing an id fails it with a *domain.InvalidJobError.
func (e *Engine) Run(jobs []domain.Job, queuePolicy, allocationPolicy string) (*SimulationResult, error) {
	qp, err := ordering.Lookup(queuePolicy)
	if err != nil {
		e.stat.Counter(stats.SimConfigErrorCounter).Inc(1)
		return nil, newConfigurationError("queue policy", queuePolicy, err)
	}
	ap, err := placement.Parse(allocationPolicy)
	if err != nil {
		e.stat.Counter(stats.SimConfigErrorCounter).Inc(1)
		return nil, newConfigurationError("allocation policy", allocationPolicy, err)
	}
	if err := e.validateJobs(jobs); err != nil {
		return nil, err
	}

	pool, err := cluster.NewResourcePool(e.config)
	if err != nil {
		return nil, err
	}

	e.stat.Counter(stats.SimRunCounter).Inc(1)
	defer e.stat.Precision(time.Millisecond).Latency(stats.SimRunLatency_ms).Time().Stop()

	result := &SimulationResult{
		RunID:            common.GenUUID(),
		QueuePolicy:      qp.Name(),
		AllocationPolicy: ap.String(),
		Cluster:          e.config,
		JobsSubmitted:    len(jobs),
		Placements:       make([]Placement, 0, len(jobs)),
	}

	for _, job := range qp.Order(jobs) {
		nodeID, ok := ap.Select(pool, job)
		if !ok {
			log.WithFields(
				log.Fields{
					"runID":  result.RunID,
					"jobID":  job.ID,
					"cores":  job.CoresRequired,
					"memory": job.MemoryRequired,
				}).Debug("No eligible node, dropping job")
			continue
		}
		if err := pool.Allocate(nodeID, job); err != nil {
			// Select only returns nodes that fit the job
			panic(fmt.Sprintf("%s selected node %d that cannot host %s: %v", ap, nodeID, job, err))
		}
		result.JobsPlaced++
		result.TotalCPUUsage += int64(job.CoresRequired)
		result.TotalMemoryUsage += int64(job.MemoryRequired)
		result.Placements = append(result.Placements, Placement{JobID: job.ID, NodeID: nodeID})
	}

	result.AvgCPUUsagePct = float64(result.TotalCPUUsage) / float64(e.config.TotalCores()) * 100
	result.AvgMemoryUsagePct = float64(result.TotalMemoryUsage) / float64(e.config.TotalMemory()) * 100
	result.Nodes = pool.Snapshot()

	e.recordStats(result, pool.NumFull())
	log.WithFields(
		log.Fields{
			"runID":            result.RunID,
			"queuePolicy":      result.QueuePolicy,
			"allocationPolicy": result.AllocationPolicy,
			"jobsSubmitted":    result.JobsSubmitted,
			"jobsPlaced":       result.JobsPlaced,
			"jobsDropped":      result.JobsDropped(),
			"cpuPct":           fmt.Sprintf("%.2f", result.AvgCPUUsagePct),
			"memPct":           fmt.Sprintf("%.2f", result.AvgMemoryUsagePct),
		}).Info("Simulation complete")
	if log.GetLevel() >= log.DebugLevel {
		log.Debugf("Final pool for run %s:\n%s", result.RunID, pool.Dump())
	}
	return result, nil
}

// validateJobs checks every job before any is placed, so a run never sees a
// requirement that would give capacity back to a node.
func (e *Engine) validateJobs(jobs []domain.Job) error {
	seen := set.New()
	for _, j := range jobs {
		err := j.Validate()
		if err == nil && seen.Has(j.ID) {
			err = &domain.InvalidJobError{JobID: j.ID, Field: "id", Value: j.ID, Reason: "used twice"}
		}
		if err != nil {
			e.stat.Counter(stats.SimInvalidJobCounter).Inc(1)
			return err
		}
		seen.Insert(j.ID)
	}
	return nil
}

func (e *Engine) recordStats(r *SimulationResult, numFull int) {
	e.stat.Counter(stats.SimJobsSubmittedCounter).Inc(int64(r.JobsSubmitted))
	e.stat.Counter(stats.SimJobsPlacedCounter).Inc(int64(r.JobsPlaced))
	e.stat.Counter(stats.SimJobsDroppedCounter).Inc(int64(r.JobsDropped()))

	pairStat := e.stat.Scope(r.QueuePolicy, r.AllocationPolicy)
	pairStat.GaugeFloat(stats.SimCpuUsagePctGauge).Update(r.AvgCPUUsagePct)
	pairStat.GaugeFloat(stats.SimMemoryUsagePctGauge).Update(r.AvgMemoryUsagePct)
	pairStat.Gauge(stats.SimNodesFullGauge).Update(int64(numFull))
	for _, n := range r.Nodes {
		pairStat.Histogram(stats.SimNodeUsedCoresHistogram).Update(int64(r.Cluster.CoresPerNode - n.AvailableCores))
		pairStat.Histogram(stats.SimNodeUsedMemoryHistogram).Update(int64(r.Cluster.MemoryPerNode - n.AvailableMemory))
	}
}

// Sweep runs every (queue policy, allocation policy) pair, queue policy major,
// each against a fresh pool. All names are validated before any run starts.
func (e *Engine) Sweep(jobs []domain.Job, queuePolicies, allocationPolicies []string) ([]*SimulationResult, error) {
	for _, qp := range queuePolicies {
		if _, err := ordering.Lookup(qp); err != nil {
			e.stat.Counter(stats.SimConfigErrorCounter).Inc(1)
			return nil, newConfigurationError("queue policy", qp, err)
		}
	}
	for _, ap := range allocationPolicies {
		if _, err := placement.Parse(ap); err != nil {
			e.stat.Counter(stats.SimConfigErrorCounter).Inc(1)
			return nil, newConfigurationError("allocation policy", ap, err)
		}
	}
	if err := e.validateJobs(jobs); err != nil {
		return nil, err
	}

	results := make([]*SimulationResult, 0, len(queuePolicies)*len(allocationPolicies))
	for _, qp := range queuePolicies {
		for _, ap := range allocationPolicies {
			r, err := e.Run(jobs, qp, ap)
			if err != nil {
				return nil, err
			}
			results = append(results, r)
		}
	}
	return results, nil
}
