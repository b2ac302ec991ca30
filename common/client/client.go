package client

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/teslacoile/IIT-G2046-T1-job-scheduler/common/stats"
	"github.com/teslacoile/IIT-G2046-T1-job-scheduler/simulator/config"
	"github.com/teslacoile/IIT-G2046-T1-job-scheduler/simulator/jobsource"
)

// Client interface that includes CLI handling
type CLIClient interface {
	Exec() error
}

// SimpleClient includes base fields required for implementing client
type SimpleClient struct {
	RootCmd    *cobra.Command
	LogLevel   string
	ConfigName string
	ConfigFile string
	PrintStats bool

	// set by the root command before any subcommand runs
	Config        *config.SimulatorConfig
	StatsRegistry stats.StatsRegistry
	Stats         stats.StatsReceiver

	Out       io.Writer
	OpenJobs  func(loc string) (jobsource.JobSource, error)
	OpenWrite func(path string) (io.WriteCloser, error)
}

// Command interface used to run client commands
type Cmd interface {
	RegisterFlags() *cobra.Command
	Run(cl *SimpleClient, cmd *cobra.Command, args []string) error
}
