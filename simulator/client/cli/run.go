package cli

/**
implements the command line entry for simulating one queue and allocation policy pair
*/

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/teslacoile/IIT-G2046-T1-job-scheduler/common/client"
	"github.com/teslacoile/IIT-G2046-T1-job-scheduler/simulator/config"
	"github.com/teslacoile/IIT-G2046-T1-job-scheduler/simulator/engine"
	"github.com/teslacoile/IIT-G2046-T1-job-scheduler/simulator/jobsource"
	"github.com/teslacoile/IIT-G2046-T1-job-scheduler/simulator/report"
)

type runCmd struct {
	jobs             string
	queuePolicy      string
	allocationPolicy string
	output           string
	asJSON           bool
	nodesTable       bool
}

func (c *runCmd) RegisterFlags() *cobra.Command {
	r := &cobra.Command{
		Use:   "run",
		Short: "Simulate a job list under one queue and allocation policy",
	}
	r.Flags().StringVar(&c.jobs, "jobs", jobsource.StdinLocation, "Job list: a .csv, .json, .yaml file, an http(s) URL, or - to enter jobs interactively")
	r.Flags().StringVar(&c.queuePolicy, "queue_policy", "", fmt.Sprintf("Queue policy %v, defaults to the configuration's", engine.AllQueuePolicies()))
	r.Flags().StringVar(&c.allocationPolicy, "allocation_policy", "", fmt.Sprintf("Allocation policy %v, defaults to the configuration's", engine.AllAllocationPolicies()))
	r.Flags().StringVar(&c.output, "output", "", "Where to write the result, - for stdout. Defaults to the configuration's output path")
	r.Flags().BoolVar(&c.asJSON, "json", false, "Write a detailed JSON report instead of CSV")
	r.Flags().BoolVar(&c.nodesTable, "nodes_table", false, "Also print the residual capacity of every node")
	return r
}

func (c *runCmd) Run(cl *client.SimpleClient, cmd *cobra.Command, args []string) error {
	queuePolicy, allocationPolicy := c.queuePolicy, c.allocationPolicy
	if queuePolicy == "" {
		queuePolicy = cl.Config.Policy.QueuePolicy
	}
	if allocationPolicy == "" {
		allocationPolicy = cl.Config.Policy.AllocationPolicy
	}
	output := c.output
	if output == "" {
		output = cl.Config.Output.Path
	}
	asJSON := c.asJSON || (!cmd.Flags().Changed("json") && cl.Config.Output.Format == config.JSONFormat)

	e, err := newEngine(cl)
	if err != nil {
		return err
	}
	jobs, err := readJobs(cl, c.jobs)
	if err != nil {
		return err
	}
	result, err := e.Run(jobs, queuePolicy, allocationPolicy)
	if err != nil {
		return simulationError(err)
	}

	err = writeOutput(cl, output, func(w io.Writer) error {
		if asJSON {
			return report.WriteJSON(w, []*engine.SimulationResult{result})
		}
		return report.NewCSVWriter(w).Write(result)
	})
	if err != nil {
		return err
	}
	if c.nodesTable {
		return writeOutput(cl, "-", func(w io.Writer) error {
			return report.WriteNodeTable(w, result)
		})
	}
	return nil
}
