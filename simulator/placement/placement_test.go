package placement

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teslacoile/IIT-G2046-T1-job-scheduler/simulator/cluster"
	"github.com/teslacoile/IIT-G2046-T1-job-scheduler/simulator/domain"
)

func makePool(t *testing.T, nodes ...cluster.WorkerNode) *cluster.ResourcePool {
	pool, err := cluster.NewResourcePoolFromNodes(cluster.DefaultConfig(), nodes)
	require.NoError(t, err)
	return pool
}

func node(cores, mem int) cluster.WorkerNode {
	return cluster.WorkerNode{AvailableCores: cores, AvailableMemory: mem}
}

func job(cores, mem int) domain.Job {
	return domain.Job{ID: 1, CoresRequired: cores, MemoryRequired: mem, ExecutionTime: 1}
}

func TestParse(t *testing.T) {
	for _, p := range Policies() {
		parsed, err := Parse(p.String())
		require.NoError(t, err)
		assert.Equal(t, p, parsed)
	}
	assert.Equal(t, []string{"first_fit", "best_fit", "worst_fit"}, Names())

	_, err := Parse("next_fit")
	assert.Equal(t, ErrUnknownPolicy, errors.Cause(err))
	_, err = Parse("")
	assert.Equal(t, ErrUnknownPolicy, errors.Cause(err))
	assert.Equal(t, "Policy(7)", Policy(7).String())
}

func TestNamesIsACopy(t *testing.T) {
	names := Names()
	names[0] = "mutated"
	assert.Equal(t, "first_fit", Names()[0])

	p, err := Parse("first_fit")
	assert.NoError(t, err)
	assert.Equal(t, FirstFit, p)
}

func TestFirstFit(t *testing.T) {
	pool := makePool(t, node(2, 64), node(24, 4), node(6, 6), node(24, 64))
	id, ok := FirstFit.Select(pool, job(5, 5))
	assert.True(t, ok)
	assert.Equal(t, 2, id)
}

func TestBestFitKeepsIncumbentWithoutDominance(t *testing.T) {
	// A(10,5) and B(8,8): B has fewer cores but more memory, A stays selected
	pool := makePool(t, node(10, 5), node(8, 8))
	id, ok := BestFit.Select(pool, job(5, 5))
	assert.True(t, ok)
	assert.Equal(t, 0, id)
}

func TestBestFitTakesDominatingNode(t *testing.T) {
	pool := makePool(t, node(24, 64), node(4, 3), node(12, 12), node(6, 4), node(5, 4))
	id, ok := BestFit.Select(pool, job(5, 3))
	assert.True(t, ok)
	// node 2 (12,12) < node 0 (24,64); node 3 (6,4) < node 2; node 4 (5,4) ties on memory
	assert.Equal(t, 3, id)
}

func TestWorstFit(t *testing.T) {
	pool := makePool(t, node(6, 6), node(20, 5), node(10, 30), node(10, 40), node(24, 64))
	id, ok := WorstFit.Select(pool, job(5, 5))
	assert.True(t, ok)
	// node 1 has more cores but less memory than node 0, node 2 dominates node 0,
	// node 3 ties node 2 on cores, node 4 dominates node 2
	assert.Equal(t, 4, id)
}

func TestWorstFitKeepsIncumbentWithoutDominance(t *testing.T) {
	pool := makePool(t, node(8, 8), node(10, 5))
	id, ok := WorstFit.Select(pool, job(5, 5))
	assert.True(t, ok)
	assert.Equal(t, 0, id)
}

func TestNoEligibleNode(t *testing.T) {
	pool := makePool(t, node(24, 64), node(24, 64))
	for _, p := range Policies() {
		id, ok := p.Select(pool, job(100, 1))
		assert.False(t, ok, p.String())
		assert.Equal(t, -1, id, p.String())
	}
}

func TestSelectDoesNotMutatePool(t *testing.T) {
	pool := makePool(t, node(10, 5), node(8, 8))
	before := pool.Snapshot()
	for _, p := range Policies() {
		p.Select(pool, job(5, 5))
	}
	assert.Equal(t, before, pool.Snapshot())
}

func TestExactFitIsEligible(t *testing.T) {
	pool := makePool(t, node(5, 5))
	for _, p := range Policies() {
		id, ok := p.Select(pool, job(5, 5))
		assert.True(t, ok, p.String())
		assert.Equal(t, 0, id, p.String())
	}
}
