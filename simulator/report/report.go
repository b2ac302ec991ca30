// Package report writes simulation results as the utilization CSV, a detailed
// JSON document, or a per-node residual capacity table.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/pkg/errors"

	"github.com/teslacoile/IIT-G2046-T1-job-scheduler/simulator/engine"
)

const CSVHeader = "QueuePolicy,AllocationPolicy,CPUUsage(%),MemoryUsage(%)"

// CSVWriter writes one line per result, preceded by CSVHeader on first use.
type CSVWriter struct {
	w           io.Writer
	wroteHeader bool
}

func NewCSVWriter(w io.Writer) *CSVWriter {
	return &CSVWriter{w: w}
}

// Write appends the results' rows, writing the header first if this is the
// writer's first call.
func (c *CSVWriter) Write(results ...*engine.SimulationResult) error {
	if !c.wroteHeader {
		if _, err := fmt.Fprintln(c.w, CSVHeader); err != nil {
			return errors.Wrap(err, "couldn't write csv header")
		}
		c.wroteHeader = true
	}
	for _, r := range results {
		if _, err := fmt.Fprintf(c.w, "%s,%s,%.2f,%.2f\n",
			r.QueuePolicy, r.AllocationPolicy, r.AvgCPUUsagePct, r.AvgMemoryUsagePct); err != nil {
			return errors.Wrapf(err, "couldn't write csv row for %s/%s", r.QueuePolicy, r.AllocationPolicy)
		}
	}
	return nil
}

type jsonNode struct {
	ID              int `json:"id"`
	AvailableCores  int `json:"available_cores"`
	AvailableMemory int `json:"available_memory"`
}

type jsonResult struct {
	RunID            string             `json:"run_id"`
	QueuePolicy      string             `json:"queue_policy"`
	AllocationPolicy string             `json:"allocation_policy"`
	NodeCount        int                `json:"node_count"`
	CoresPerNode     int                `json:"cores_per_node"`
	MemoryPerNode    int                `json:"memory_per_node"`
	JobsSubmitted    int                `json:"jobs_submitted"`
	JobsPlaced       int                `json:"jobs_placed"`
	JobsDropped      int                `json:"jobs_dropped"`
	TotalCPUUsage    int64              `json:"total_cpu_usage"`
	TotalMemoryUsage int64              `json:"total_memory_usage"`
	CPUUsagePct      float64            `json:"cpu_usage_pct"`
	MemoryUsagePct   float64            `json:"memory_usage_pct"`
	Placements       []engine.Placement `json:"placements"`
	Nodes            []jsonNode         `json:"nodes"`
}

// WriteJSON writes results as an indented JSON list with placements and the
// residual capacity of every node.
func WriteJSON(w io.Writer, results []*engine.SimulationResult) error {
	out := make([]jsonResult, 0, len(results))
	for _, r := range results {
		nodes := make([]jsonNode, 0, len(r.Nodes))
		for _, n := range r.Nodes {
			nodes = append(nodes, jsonNode{ID: n.ID, AvailableCores: n.AvailableCores, AvailableMemory: n.AvailableMemory})
		}
		placements := r.Placements
		if placements == nil {
			placements = []engine.Placement{}
		}
		out = append(out, jsonResult{
			RunID:            r.RunID,
			QueuePolicy:      r.QueuePolicy,
			AllocationPolicy: r.AllocationPolicy,
			NodeCount:        r.Cluster.NodeCount,
			CoresPerNode:     r.Cluster.CoresPerNode,
			MemoryPerNode:    r.Cluster.MemoryPerNode,
			JobsSubmitted:    r.JobsSubmitted,
			JobsPlaced:       r.JobsPlaced,
			JobsDropped:      r.JobsDropped(),
			TotalCPUUsage:    r.TotalCPUUsage,
			TotalMemoryUsage: r.TotalMemoryUsage,
			CPUUsagePct:      r.AvgCPUUsagePct,
			MemoryUsagePct:   r.AvgMemoryUsagePct,
			Placements:       placements,
			Nodes:            nodes,
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return errors.Wrap(enc.Encode(out), "couldn't write json report")
}

// WriteNodeTable writes the residual capacity of the result's nodes, one per line.
func WriteNodeTable(w io.Writer, r *engine.SimulationResult) error {
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "Node\tAvailableCores\tAvailableMemory(GB)\tUsedCores\tUsedMemory(GB)\t\n")
	for _, n := range r.Nodes {
		fmt.Fprintf(tw, "%d\t%d\t%d\t%d\t%d\t\n", n.ID, n.AvailableCores, n.AvailableMemory,
			r.Cluster.CoresPerNode-n.AvailableCores, r.Cluster.MemoryPerNode-n.AvailableMemory)
	}
	return errors.Wrap(tw.Flush(), "couldn't write node table")
}
