package main

import (
	"os"

	log "github.com/sirupsen/logrus"

	scooterrors "github.com/teslacoile/IIT-G2046-T1-job-scheduler/common/errors"
	"github.com/teslacoile/IIT-G2046-T1-job-scheduler/common/log/hooks"
	"github.com/teslacoile/IIT-G2046-T1-job-scheduler/simulator/client/cli"
)

// CLI binary to simulate job placement
//	Supported commands: (see "-h" for all options)
//		run --jobs [file|url|-] --queue_policy [name] --allocation_policy [name]
//		sweep --jobs [file|url|-] --output [output.csv]
//		policies
//	Global flags:
//		--config [named simulator configuration]
//		--config_file [json or yaml overrides]
//		--nodes, --cores_per_node, --memory_per_node [pool dimensions]
//		--log_level [<error|info|debug> level and above should be logged]
//		--stats [print collected stats]

func main() {
	log.AddHook(hooks.NewContextHook())

	cl := cli.NewSimCLIClient(os.Stdout)
	if err := cl.Exec(); err != nil {
		log.Error("Error running jobsim: ", err)
		os.Exit(int(scooterrors.ExitCodeOf(err)))
	}
}
