package cli

/**
implements the command line entry for simulating every queue and allocation policy pair
*/

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/teslacoile/IIT-G2046-T1-job-scheduler/common/client"
	"github.com/teslacoile/IIT-G2046-T1-job-scheduler/simulator/config"
	"github.com/teslacoile/IIT-G2046-T1-job-scheduler/simulator/engine"
	"github.com/teslacoile/IIT-G2046-T1-job-scheduler/simulator/jobsource"
	"github.com/teslacoile/IIT-G2046-T1-job-scheduler/simulator/report"
)

type sweepCmd struct {
	jobs   string
	output string
	asJSON bool
}

func (c *sweepCmd) RegisterFlags() *cobra.Command {
	r := &cobra.Command{
		Use:   "sweep",
		Short: "Simulate a job list under every queue and allocation policy pair",
	}
	r.Flags().StringVar(&c.jobs, "jobs", jobsource.StdinLocation, "Job list: a .csv, .json, .yaml file, an http(s) URL, or - to enter jobs interactively")
	r.Flags().StringVar(&c.output, "output", "", "Where to write the results, - for stdout. Defaults to the configuration's output path")
	r.Flags().BoolVar(&c.asJSON, "json", false, "Write a detailed JSON report instead of CSV")
	return r
}

func (c *sweepCmd) Run(cl *client.SimpleClient, cmd *cobra.Command, args []string) error {
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
	results, err := e.Sweep(jobs, engine.AllQueuePolicies(), engine.AllAllocationPolicies())
	if err != nil {
		return simulationError(err)
	}

	return writeOutput(cl, output, func(w io.Writer) error {
		if asJSON {
			return report.WriteJSON(w, results)
		}
		return report.NewCSVWriter(w).Write(results...)
	})
}
