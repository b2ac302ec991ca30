// Package cluster models the fixed pool of simulated worker nodes and their
// residual capacity.
package cluster

import (
	"fmt"

	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"

	"github.com/teslacoile/IIT-G2046-T1-job-scheduler/simulator/domain"
)

const (
	DefaultNodeCount     = 128
	DefaultCoresPerNode  = 24
	DefaultMemoryPerNode = 64 // GB
)

var (
	ErrNoSuchNode           = errors.New("no such node")
	ErrInsufficientCapacity = errors.New("insufficient capacity on node")
	ErrInvalidJob           = errors.New("job requirements must be positive")
	ErrInvalidClusterConfig = errors.New("invalid cluster config")
)

// Config holds the pool dimensions. All nodes are identical.
type Config struct {
	NodeCount     int `json:"NodeCount" yaml:"NodeCount"`
	CoresPerNode  int `json:"CoresPerNode" yaml:"CoresPerNode"`
	MemoryPerNode int `json:"MemoryPerNode" yaml:"MemoryPerNode"`
}

func DefaultConfig() Config {
	return Config{
		NodeCount:     DefaultNodeCount,
		CoresPerNode:  DefaultCoresPerNode,
		MemoryPerNode: DefaultMemoryPerNode,
	}
}

func (c Config) String() string {
	return fmt.Sprintf("ClusterConfig: NodeCount: %d, CoresPerNode: %d, MemoryPerNode: %d",
		c.NodeCount, c.CoresPerNode, c.MemoryPerNode)
}

func (c Config) Validate() error {
	if c.NodeCount <= 0 || c.CoresPerNode <= 0 || c.MemoryPerNode <= 0 {
		return errors.Wrapf(ErrInvalidClusterConfig, "%s: all values must be positive", c)
	}
	return nil
}

// TotalCores is the core capacity of the whole pool.
func (c Config) TotalCores() int64 {
	return int64(c.NodeCount) * int64(c.CoresPerNode)
}

// TotalMemory is the memory capacity of the whole pool.
func (c Config) TotalMemory() int64 {
	return int64(c.NodeCount) * int64(c.MemoryPerNode)
}

// WorkerNode is the residual capacity of one node.
type WorkerNode struct {
	ID              int `json:"NodeId"`
	AvailableCores  int `json:"AvailableCores"`
	AvailableMemory int `json:"AvailableMemory"`
}

// Fits reports whether the node can host the job in both dimensions.
func (n WorkerNode) Fits(job domain.Job) bool {
	return n.AvailableCores >= job.CoresRequired && n.AvailableMemory >= job.MemoryRequired
}

func (n WorkerNode) String() string {
	return fmt.Sprintf("node%d(cores:%d, mem:%d)", n.ID, n.AvailableCores, n.AvailableMemory)
}

// ResourcePool is the ordered set of nodes for one simulation run. It is not
// safe for concurrent use and must not be shared between runs.
type ResourcePool struct {
	config Config
	nodes  []WorkerNode
}

// NewResourcePool creates config.NodeCount nodes with ids 0..NodeCount-1, all at full capacity.
func NewResourcePool(config Config) (*ResourcePool, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	p := &ResourcePool{config: config, nodes: make([]WorkerNode, config.NodeCount)}
	p.Reset()
	return p, nil
}

// NewResourcePoolFromNodes builds a pool with explicit residual capacities, nodes are
// renumbered in slice order. Capacities must lie within the config's per-node limits.
func NewResourcePoolFromNodes(config Config, nodes []WorkerNode) (*ResourcePool, error) {
	config.NodeCount = len(nodes)
	if err := config.Validate(); err != nil {
		return nil, err
	}
	p := &ResourcePool{config: config, nodes: make([]WorkerNode, len(nodes))}
	for i, n := range nodes {
		if n.AvailableCores < 0 || n.AvailableCores > config.CoresPerNode ||
			n.AvailableMemory < 0 || n.AvailableMemory > config.MemoryPerNode {
			return nil, errors.Wrapf(ErrInvalidClusterConfig, "node %d capacity %v outside %s", i, n, config)
		}
		n.ID = i
		p.nodes[i] = n
	}
	return p, nil
}

// Reset restores every node to full capacity.
func (p *ResourcePool) Reset() {
	for i := range p.nodes {
		p.nodes[i] = WorkerNode{
			ID:              i,
			AvailableCores:  p.config.CoresPerNode,
			AvailableMemory: p.config.MemoryPerNode,
		}
	}
}

func (p *ResourcePool) Config() Config {
	return p.config
}

func (p *ResourcePool) Len() int {
	return len(p.nodes)
}

// NodeAt returns a copy of the node with the given id. The caller must keep id in [0, Len()).
func (p *ResourcePool) NodeAt(id int) WorkerNode {
	return p.nodes[id]
}

// Allocate takes the job's cores and memory from the node. The pool is left
// unchanged when the job has a non-positive requirement, or when the node does
// not exist or cannot host the job.
func (p *ResourcePool) Allocate(id int, job domain.Job) error {
	if job.CoresRequired <= 0 || job.MemoryRequired <= 0 {
		return errors.Wrapf(ErrInvalidJob, "%s", job)
	}
	if id < 0 || id >= len(p.nodes) {
		return errors.Wrapf(ErrNoSuchNode, "node %d", id)
	}
	n := &p.nodes[id]
	if !n.Fits(job) {
		return errors.Wrapf(ErrInsufficientCapacity, "%s cannot host %s", n, job)
	}
	n.AvailableCores -= job.CoresRequired
	n.AvailableMemory -= job.MemoryRequired
	return nil
}

// Snapshot returns a copy of every node's residual capacity in id order.
func (p *ResourcePool) Snapshot() []WorkerNode {
	nodes := make([]WorkerNode, len(p.nodes))
	copy(nodes, p.nodes)
	return nodes
}

// NumFull counts the nodes that have no cores or no memory left.
func (p *ResourcePool) NumFull() int {
	full := 0
	for _, n := range p.nodes {
		if n.AvailableCores == 0 || n.AvailableMemory == 0 {
			full++
		}
	}
	return full
}

// Dump renders the pool for debug logging.
func (p *ResourcePool) Dump() string {
	return spew.Sdump(p.nodes)
}
