package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/teslacoile/IIT-G2046-T1-job-scheduler/common/client"
	scooterrors "github.com/teslacoile/IIT-G2046-T1-job-scheduler/common/errors"
	"github.com/teslacoile/IIT-G2046-T1-job-scheduler/simulator/engine"
)

type policiesCmd struct{}

func (c *policiesCmd) RegisterFlags() *cobra.Command {
	return &cobra.Command{
		Use:   "policies",
		Short: "List the queue and allocation policy names",
	}
}

func (c *policiesCmd) Run(cl *client.SimpleClient, cmd *cobra.Command, args []string) error {
	_, err := fmt.Fprintf(cl.Out, "queue policies: %s\nallocation policies: %s\n",
		strings.Join(engine.AllQueuePolicies(), ", "), strings.Join(engine.AllAllocationPolicies(), ", "))
	if err != nil {
		return scooterrors.NewError(err, scooterrors.OutputErrorExitCode)
	}
	return nil
}
