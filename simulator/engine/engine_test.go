package engine

import (
	"fmt"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teslacoile/IIT-G2046-T1-job-scheduler/common/stats"
	"github.com/teslacoile/IIT-G2046-T1-job-scheduler/simulator/cluster"
	"github.com/teslacoile/IIT-G2046-T1-job-scheduler/simulator/domain"
	"github.com/teslacoile/IIT-G2046-T1-job-scheduler/simulator/ordering"
	"github.com/teslacoile/IIT-G2046-T1-job-scheduler/simulator/placement"
)

func newTestEngine(t *testing.T, config cluster.Config) (*Engine, stats.StatsRegistry) {
	statsRegistry := stats.NewFinagleStatsRegistry()
	statsReceiver := stats.NewCustomStatsReceiver(func() stats.StatsRegistry { return statsRegistry })
	e, err := NewEngine(config, statsReceiver)
	require.NoError(t, err)
	return e, statsRegistry
}

// pct repeats the engine's float operations so gauges can be compared exactly
func pct(used, total int64) float64 {
	return float64(used) / float64(total) * 100
}

func mustJob(t *testing.T, id, arrival, cores, mem, exec int) domain.Job {
	j, err := domain.NewJob(id, arrival, cores, mem, exec)
	require.NoError(t, err)
	return j
}

func TestSingleJobOnDefaultPool(t *testing.T) {
	e, _ := newTestEngine(t, cluster.DefaultConfig())
	jobs := []domain.Job{mustJob(t, 1, 0, 4, 4, 2)}

	for _, qp := range AllQueuePolicies() {
		for _, ap := range AllAllocationPolicies() {
			r, err := e.Run(jobs, qp, ap)
			require.NoError(t, err)
			pair := fmt.Sprintf("%s/%s", qp, ap)

			assert.Equal(t, 1, r.JobsPlaced, pair)
			assert.Equal(t, 0, r.JobsDropped(), pair)
			assert.Equal(t, cluster.WorkerNode{ID: 0, AvailableCores: 20, AvailableMemory: 60}, r.Nodes[0], pair)
			assert.Equal(t, cluster.WorkerNode{ID: 1, AvailableCores: 24, AvailableMemory: 64}, r.Nodes[1], pair)
			assert.InDelta(t, 0.13, r.AvgCPUUsagePct, 0.005, pair)
			assert.InDelta(t, 4.0/(128*64)*100, r.AvgMemoryUsagePct, 1e-9, pair)
			assert.Equal(t, []Placement{{JobID: 1, NodeID: 0}}, r.Placements, pair)
			assert.Equal(t, qp, r.QueuePolicy)
			assert.Equal(t, ap, r.AllocationPolicy)
			assert.NotEmpty(t, r.RunID)
		}
	}
}

func TestOversizedJobIsDropped(t *testing.T) {
	e, statsRegistry := newTestEngine(t, cluster.DefaultConfig())
	jobs := []domain.Job{mustJob(t, 1, 0, 100, 4, 2)}

	for _, ap := range AllAllocationPolicies() {
		r, err := e.Run(jobs, ordering.FCFS, ap)
		require.NoError(t, err)
		assert.Equal(t, 0, r.JobsPlaced, ap)
		assert.Equal(t, 1, r.JobsDropped(), ap)
		assert.Equal(t, int64(0), r.TotalCPUUsage, ap)
		assert.Equal(t, int64(0), r.TotalMemoryUsage, ap)
		assert.Equal(t, 0.0, r.AvgCPUUsagePct, ap)
		assert.Empty(t, r.Placements, ap)
		for _, n := range r.Nodes {
			assert.Equal(t, 24, n.AvailableCores)
			assert.Equal(t, 64, n.AvailableMemory)
		}
	}

	stats.StatsOk("", statsRegistry, t,
		map[string]stats.Rule{
			stats.SimRunCounter:         {Checker: stats.Int64EqTest, Value: 3},
			stats.SimJobsDroppedCounter: {Checker: stats.Int64EqTest, Value: 3},
			stats.SimJobsPlacedCounter:  {Checker: stats.Int64EqTest, Value: 0},
		})
}

func TestUnknownPoliciesFailTheRun(t *testing.T) {
	e, statsRegistry := newTestEngine(t, cluster.DefaultConfig())
	jobs := []domain.Job{mustJob(t, 1, 0, 4, 4, 2)}

	r, err := e.Run(jobs, "lifo", placement.FirstFit.String())
	assert.Nil(t, r)
	require.Error(t, err)
	assert.True(t, IsConfigurationError(err))
	assert.Equal(t, ordering.ErrUnknownPolicy, errors.Cause(err))
	assert.Equal(t, "lifo", err.(*ConfigurationError).Name)

	r, err = e.Run(jobs, ordering.FCFS, "next_fit")
	assert.Nil(t, r)
	require.Error(t, err)
	assert.True(t, IsConfigurationError(errors.Wrap(err, "running simulation")))
	assert.Equal(t, placement.ErrUnknownPolicy, errors.Cause(err))

	stats.StatsOk("", statsRegistry, t,
		map[string]stats.Rule{
			stats.SimConfigErrorCounter: {Checker: stats.Int64EqTest, Value: 2},
			stats.SimRunCounter:         {Checker: stats.DoesNotExistTest, Value: nil},
		})
}

func TestIsConfigurationError(t *testing.T) {
	assert.False(t, IsConfigurationError(nil))
	assert.False(t, IsConfigurationError(errors.New("boom")))
	assert.False(t, IsConfigurationError(errors.Wrap(errors.New("boom"), "wrapped")))
}

func TestInvalidClusterConfig(t *testing.T) {
	_, err := NewEngine(cluster.Config{NodeCount: 0, CoresPerNode: 24, MemoryPerNode: 64}, nil)
	assert.Equal(t, cluster.ErrInvalidClusterConfig, errors.Cause(err))
}

func TestFCFSOfferOrder(t *testing.T) {
	// one node that only fits one job: the first job offered wins it
	e, _ := newTestEngine(t, cluster.Config{NodeCount: 1, CoresPerNode: 4, MemoryPerNode: 4})
	jobs := []domain.Job{
		mustJob(t, 1, 5, 2, 2, 1),
		mustJob(t, 2, 1, 2, 2, 1),
		mustJob(t, 3, 3, 2, 2, 1),
	}
	r, err := e.Run(jobs, ordering.FCFS, placement.FirstFit.String())
	require.NoError(t, err)
	assert.Equal(t, []Placement{{JobID: 2, NodeID: 0}, {JobID: 3, NodeID: 0}}, r.Placements)
	assert.Equal(t, 1, r.JobsDropped())
}

func TestBestFitDominanceTieBreak(t *testing.T) {
	// Jobs 1 and 2 leave node 0 at (10 cores, 5 mem) and node 1 at (8 cores, 8 mem).
	// Neither dominates the other on both dimensions so job 3 stays on node 0.
	e, _ := newTestEngine(t, cluster.Config{NodeCount: 2, CoresPerNode: 24, MemoryPerNode: 64})
	jobs := []domain.Job{
		mustJob(t, 1, 0, 14, 59, 1),
		mustJob(t, 2, 1, 16, 56, 1),
		mustJob(t, 3, 2, 5, 5, 1),
	}
	r, err := e.Run(jobs, ordering.FCFS, placement.BestFit.String())
	require.NoError(t, err)
	assert.Equal(t, []Placement{{JobID: 1, NodeID: 0}, {JobID: 2, NodeID: 1}, {JobID: 3, NodeID: 0}}, r.Placements)
	assert.Equal(t, cluster.WorkerNode{ID: 0, AvailableCores: 5, AvailableMemory: 0}, r.Nodes[0])
	assert.Equal(t, cluster.WorkerNode{ID: 1, AvailableCores: 8, AvailableMemory: 8}, r.Nodes[1])
}

func TestWorstFitSpreadsJobs(t *testing.T) {
	e, _ := newTestEngine(t, cluster.Config{NodeCount: 3, CoresPerNode: 8, MemoryPerNode: 8})
	jobs := []domain.Job{
		mustJob(t, 1, 0, 2, 2, 1),
		mustJob(t, 2, 0, 2, 2, 1),
		mustJob(t, 3, 0, 2, 2, 1),
	}
	r, err := e.Run(jobs, ordering.FCFS, placement.WorstFit.String())
	require.NoError(t, err)
	assert.Equal(t, []Placement{{JobID: 1, NodeID: 0}, {JobID: 2, NodeID: 1}, {JobID: 3, NodeID: 2}}, r.Placements)

	r, err = e.Run(jobs, ordering.FCFS, placement.FirstFit.String())
	require.NoError(t, err)
	assert.Equal(t, []Placement{{JobID: 1, NodeID: 0}, {JobID: 2, NodeID: 0}, {JobID: 3, NodeID: 0}}, r.Placements)
}

func TestSkippedJobDoesNotBlockLaterJobs(t *testing.T) {
	e, _ := newTestEngine(t, cluster.Config{NodeCount: 1, CoresPerNode: 8, MemoryPerNode: 8})
	jobs := []domain.Job{
		mustJob(t, 1, 0, 6, 6, 1),
		mustJob(t, 2, 1, 4, 1, 1),
		mustJob(t, 3, 2, 2, 2, 1),
	}
	r, err := e.Run(jobs, ordering.FCFS, placement.FirstFit.String())
	require.NoError(t, err)
	assert.Equal(t, []Placement{{JobID: 1, NodeID: 0}, {JobID: 3, NodeID: 0}}, r.Placements)
	assert.Equal(t, int64(8), r.TotalCPUUsage)
	assert.Equal(t, int64(8), r.TotalMemoryUsage)
	assert.Equal(t, 100.0, r.AvgCPUUsagePct)
}

func TestSmallestJobFirstPacksMoreJobs(t *testing.T) {
	e, _ := newTestEngine(t, cluster.Config{NodeCount: 1, CoresPerNode: 8, MemoryPerNode: 8})
	jobs := []domain.Job{
		mustJob(t, 1, 0, 8, 8, 4),
		mustJob(t, 2, 1, 2, 2, 1),
		mustJob(t, 3, 2, 2, 2, 1),
	}
	fcfs, err := e.Run(jobs, ordering.FCFS, placement.FirstFit.String())
	require.NoError(t, err)
	sjf, err := e.Run(jobs, ordering.SmallestJobFirst, placement.FirstFit.String())
	require.NoError(t, err)
	assert.Equal(t, 1, fcfs.JobsPlaced)
	assert.Equal(t, 2, sjf.JobsPlaced)
}

func TestEmptyJobList(t *testing.T) {
	e, _ := newTestEngine(t, cluster.DefaultConfig())
	r, err := e.Run(nil, ordering.ShortDurationFirst, placement.WorstFit.String())
	require.NoError(t, err)
	assert.Equal(t, 0, r.JobsSubmitted)
	assert.Equal(t, 0, r.JobsDropped())
	assert.Len(t, r.Nodes, 128)
}

func TestRunsDoNotShareAPool(t *testing.T) {
	e, _ := newTestEngine(t, cluster.Config{NodeCount: 1, CoresPerNode: 4, MemoryPerNode: 4})
	jobs := []domain.Job{mustJob(t, 1, 0, 4, 4, 1)}
	for i := 0; i < 3; i++ {
		r, err := e.Run(jobs, ordering.FCFS, placement.FirstFit.String())
		require.NoError(t, err)
		assert.Equal(t, 1, r.JobsPlaced)
	}
}

func TestSweep(t *testing.T) {
	e, statsRegistry := newTestEngine(t, cluster.DefaultConfig())
	jobs := []domain.Job{
		mustJob(t, 1, 0, 4, 4, 2),
		mustJob(t, 2, 1, 24, 64, 2),
		mustJob(t, 3, 2, 100, 1, 2),
	}
	results, err := e.Sweep(jobs, AllQueuePolicies(), AllAllocationPolicies())
	require.NoError(t, err)
	require.Len(t, results, 9)

	i := 0
	for _, qp := range AllQueuePolicies() {
		for _, ap := range AllAllocationPolicies() {
			assert.Equal(t, qp, results[i].QueuePolicy)
			assert.Equal(t, ap, results[i].AllocationPolicy)
			assert.Equal(t, 2, results[i].JobsPlaced)
			assert.Equal(t, int64(28), results[i].TotalCPUUsage)
			i++
		}
	}

	stats.StatsOk("", statsRegistry, t,
		map[string]stats.Rule{
			stats.SimRunCounter:                                           {Checker: stats.Int64EqTest, Value: 9},
			stats.SimJobsSubmittedCounter:                                 {Checker: stats.Int64EqTest, Value: 27},
			stats.SimJobsDroppedCounter:                                   {Checker: stats.Int64EqTest, Value: 9},
			"fcfs/best_fit/" + stats.SimCpuUsagePctGauge:                  {Checker: stats.FloatEqTest, Value: pct(28, 128*24)},
			"fcfs/best_fit/" + stats.SimNodesFullGauge:                    {Checker: stats.Int64EqTest, Value: 1},
			"fcfs/worst_fit/" + stats.SimMemoryUsagePctGauge:              {Checker: stats.FloatEqTest, Value: pct(68, 128*64)},
			"fcfs/best_fit/" + stats.SimNodeUsedCoresHistogram + ".count": {Checker: stats.Int64EqTest, Value: 128},
			"fcfs/best_fit/" + stats.SimNodeUsedCoresHistogram + ".max":   {Checker: stats.Int64EqTest, Value: 24},
			"fcfs/best_fit/" + stats.SimNodeUsedMemoryHistogram + ".sum":  {Checker: stats.Int64EqTest, Value: 68},
		})
}

func TestJobsThatBypassNewJobAreRejected(t *testing.T) {
	e, statsRegistry := newTestEngine(t, cluster.Config{NodeCount: 1, CoresPerNode: 4, MemoryPerNode: 4})
	for _, jobs := range [][]domain.Job{
		{{ID: 1, CoresRequired: -10, MemoryRequired: -10, ExecutionTime: 1}, mustJob(t, 2, 0, 4, 4, 1)},
		{{ID: 1, CoresRequired: 0, MemoryRequired: 0, ExecutionTime: 1}},
		{mustJob(t, 1, 0, 1, 1, 1), {ID: 2, ArrivalTime: -1, CoresRequired: 1, MemoryRequired: 1, ExecutionTime: 1}},
	} {
		for _, ap := range AllAllocationPolicies() {
			r, err := e.Run(jobs, ordering.FCFS, ap)
			assert.Nil(t, r)
			_, ok := err.(*domain.InvalidJobError)
			assert.True(t, ok, "expected *domain.InvalidJobError, got %T", err)
		}
		_, err := e.Sweep(jobs, AllQueuePolicies(), AllAllocationPolicies())
		_, ok := err.(*domain.InvalidJobError)
		assert.True(t, ok, "expected *domain.InvalidJobError, got %T", err)
	}

	stats.StatsOk("", statsRegistry, t,
		map[string]stats.Rule{
			stats.SimInvalidJobCounter: {Checker: stats.Int64EqTest, Value: 12},
			stats.SimRunCounter:        {Checker: stats.DoesNotExistTest, Value: nil},
		})
}

func TestPolicyNameListsAreCopies(t *testing.T) {
	e, _ := newTestEngine(t, cluster.DefaultConfig())
	AllAllocationPolicies()[0] = "mutated"
	AllQueuePolicies()[0] = "mutated"

	_, err := e.Run(nil, ordering.FCFS, "first_fit")
	assert.NoError(t, err)
}

func TestDuplicateJobIDsAreRejected(t *testing.T) {
	e, _ := newTestEngine(t, cluster.DefaultConfig())
	jobs := []domain.Job{mustJob(t, 1, 0, 1, 1, 1), mustJob(t, 2, 0, 1, 1, 1), mustJob(t, 1, 3, 2, 2, 2)}

	_, err := e.Run(jobs, ordering.FCFS, "first_fit")
	ije, ok := err.(*domain.InvalidJobError)
	require.True(t, ok, "expected *domain.InvalidJobError, got %T", err)
	assert.Equal(t, "id", ije.Field)
	assert.Equal(t, 1, ije.JobID)
	assert.Contains(t, err.Error(), "used twice")
}

func TestSweepValidatesAllNamesFirst(t *testing.T) {
	e, statsRegistry := newTestEngine(t, cluster.DefaultConfig())
	_, err := e.Sweep(nil, []string{ordering.FCFS}, []string{"first_fit", "bogus"})
	assert.True(t, IsConfigurationError(err))

	stats.StatsOk("", statsRegistry, t,
		map[string]stats.Rule{
			stats.SimRunCounter: {Checker: stats.DoesNotExistTest, Value: nil},
		})
}
