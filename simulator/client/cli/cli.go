package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	commoncli "github.com/teslacoile/IIT-G2046-T1-job-scheduler/common/client"
	scooterrors "github.com/teslacoile/IIT-G2046-T1-job-scheduler/common/errors"
	"github.com/teslacoile/IIT-G2046-T1-job-scheduler/common/stats"
	"github.com/teslacoile/IIT-G2046-T1-job-scheduler/simulator/config"
	"github.com/teslacoile/IIT-G2046-T1-job-scheduler/simulator/domain"
	"github.com/teslacoile/IIT-G2046-T1-job-scheduler/simulator/engine"
	"github.com/teslacoile/IIT-G2046-T1-job-scheduler/simulator/jobsource"
)

// SimCLIClient includes fields required for CLI client handling
type SimCLIClient struct {
	commoncli.SimpleClient

	nodes         int
	coresPerNode  int
	memoryPerNode int
}

func (c *SimCLIClient) Exec() error {
	return c.RootCmd.Execute()
}

// NewSimCLIClient makes the jobsim client. Reports for the output path "-"
// and stats are written to out.
func NewSimCLIClient(out io.Writer) commoncli.CLIClient {
	c := &SimCLIClient{}
	c.Out = out
	c.OpenJobs = jobsource.FromLocation
	c.OpenWrite = func(path string) (io.WriteCloser, error) {
		if path == "-" {
			return nopWriteCloser{out}, nil
		}
		return os.Create(path)
	}

	c.RootCmd = &cobra.Command{
		Use:                "jobsim",
		Short:              "jobsim simulates placing batch jobs on a pool of worker nodes",
		PersistentPreRunE:  c.Init,
		PersistentPostRunE: c.Close,
		SilenceUsage:       true,
		SilenceErrors:      true,
	}
	flags := c.RootCmd.PersistentFlags()
	flags.StringVar(&c.LogLevel, "log_level", "info", "Log everything at this level and above (error|info|debug)")
	flags.StringVar(&c.ConfigName, "config", "default", fmt.Sprintf("Simulator configuration to start from, one of %v", config.Names()))
	flags.StringVar(&c.ConfigFile, "config_file", "", "JSON or YAML file overriding values of the selected configuration")
	flags.BoolVar(&c.PrintStats, "stats", false, "Print the collected stats as JSON when done")
	flags.IntVar(&c.nodes, "nodes", 0, "Number of worker nodes, overrides the configuration")
	flags.IntVar(&c.coresPerNode, "cores_per_node", 0, "Cores of every worker node, overrides the configuration")
	flags.IntVar(&c.memoryPerNode, "memory_per_node", 0, "Memory (GB) of every worker node, overrides the configuration")

	c.addCmd(&runCmd{})
	c.addCmd(&sweepCmd{})
	c.addCmd(&policiesCmd{})

	return c
}

// Can only be called from cobra command run or hook
func (c *SimCLIClient) Init(cmd *cobra.Command, args []string) error {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		log.Error(err)
		return scooterrors.NewError(err, scooterrors.ConfigurationErrorExitCode)
	}
	log.SetLevel(level)

	c.StatsRegistry = stats.NewFinagleStatsRegistry()
	c.Stats = stats.NewCustomStatsReceiver(func() stats.StatsRegistry { return c.StatsRegistry })

	cfg, err := config.GetConfig(c.ConfigName)
	if err != nil {
		return scooterrors.NewError(err, scooterrors.ConfigurationErrorExitCode)
	}
	if c.ConfigFile != "" {
		if cfg, err = config.LoadConfigFile(c.ConfigFile, cfg); err != nil {
			return scooterrors.NewError(err, scooterrors.ConfigurationErrorExitCode)
		}
	}
	flags := cmd.Flags()
	if flags.Changed("nodes") {
		cfg.Cluster.NodeCount = c.nodes
	}
	if flags.Changed("cores_per_node") {
		cfg.Cluster.CoresPerNode = c.coresPerNode
	}
	if flags.Changed("memory_per_node") {
		cfg.Cluster.MemoryPerNode = c.memoryPerNode
	}
	if err := cfg.Validate(); err != nil {
		return scooterrors.NewError(err, scooterrors.ConfigurationErrorExitCode)
	}
	log.Debugf("Simulator config:%s", cfg)
	c.Config = cfg
	return nil
}

// Needs cobra parameters for use from rootCmd
func (c *SimCLIClient) Close(cmd *cobra.Command, args []string) error {
	if c.PrintStats && c.Stats != nil {
		if _, err := fmt.Fprintf(c.Out, "%s\n", c.Stats.Render(true)); err != nil {
			return scooterrors.NewError(err, scooterrors.OutputErrorExitCode)
		}
	}
	return nil
}

func (c *SimCLIClient) addCmd(cmd commoncli.Cmd) {
	cobraCmd := cmd.RegisterFlags()
	cobraCmd.RunE = func(innerCmd *cobra.Command, args []string) error {
		return cmd.Run(&c.SimpleClient, innerCmd, args)
	}
	c.RootCmd.AddCommand(cobraCmd)
}

// readJobs loads the job list at loc, counting what was read or rejected.
func readJobs(cl *commoncli.SimpleClient, loc string) ([]domain.Job, error) {
	src, err := cl.OpenJobs(loc)
	if err != nil {
		return nil, scooterrors.NewError(err, scooterrors.InputErrorExitCode)
	}
	jobs, err := src.Jobs()
	if err != nil {
		if _, ok := errors.Cause(err).(*domain.InvalidJobError); ok {
			cl.Stats.Counter(stats.JobSourceInvalidJobCounter).Inc(1)
		}
		return nil, scooterrors.NewError(errors.Wrapf(err, "couldn't read jobs from %s", loc), scooterrors.InputErrorExitCode)
	}
	cl.Stats.Counter(stats.JobSourceJobsReadCounter).Inc(int64(len(jobs)))
	log.Infof("Read %d jobs from %s", len(jobs), loc)
	return jobs, nil
}

func newEngine(cl *commoncli.SimpleClient) (*engine.Engine, error) {
	e, err := engine.NewEngine(cl.Config.Cluster, cl.Stats)
	if err != nil {
		return nil, scooterrors.NewError(err, scooterrors.ConfigurationErrorExitCode)
	}
	return e, nil
}

// simulationError assigns an exit code to an error returned by the engine.
func simulationError(err error) error {
	if engine.IsConfigurationError(err) {
		return scooterrors.NewError(err, scooterrors.ConfigurationErrorExitCode)
	}
	if _, ok := errors.Cause(err).(*domain.InvalidJobError); ok {
		return scooterrors.NewError(err, scooterrors.InputErrorExitCode)
	}
	return scooterrors.NewError(err, scooterrors.GenericErrorExitCode)
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

// writeOutput hands a writer for path to write and closes it afterwards.
func writeOutput(cl *commoncli.SimpleClient, path string, write func(io.Writer) error) error {
	w, err := cl.OpenWrite(path)
	if err != nil {
		return scooterrors.NewError(errors.Wrapf(err, "couldn't open output %s", path), scooterrors.OutputErrorExitCode)
	}
	err = write(w)
	if closeErr := w.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return scooterrors.NewError(errors.Wrapf(err, "couldn't write output %s", path), scooterrors.OutputErrorExitCode)
	}
	if path != "-" {
		log.Infof("Wrote results to %s", path)
	}
	return nil
}
