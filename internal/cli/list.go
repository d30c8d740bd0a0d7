package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/hiot/internal/workload"
)

// WorkloadInfo describes one registered workload.
type WorkloadInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Params      any    `json:"params"`
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List workloads and their default parameters",
		Long: `List every workload in run order with its description and default
parameters.

Example:
  hiot list
  hiot list --format json`,
		Args: exitArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(rootOpts, cmd)
		},
	}
}

func listWorkloads() ([]WorkloadInfo, error) {
	cfg := workload.DefaultConfig()
	infos := make([]WorkloadInfo, 0, len(workload.Names()))
	for _, name := range workload.Names() {
		desc, err := workload.Describe(name)
		if err != nil {
			return nil, err
		}
		params, err := workload.Params(name, cfg)
		if err != nil {
			return nil, err
		}
		infos = append(infos, WorkloadInfo{Name: name, Description: desc, Params: params})
	}
	return infos, nil
}

func runList(opts *RootOptions, cmd *cobra.Command) error {
	infos, err := listWorkloads()
	if err != nil {
		return WrapExitError(ExitFailure, "list workloads", err)
	}

	if opts.Format == "json" {
		return formatter(opts, cmd).Success(infos)
	}

	w := cmd.OutOrStdout()
	for _, info := range infos {
		fmt.Fprintf(w, "%-8s %s\n", info.Name, info.Description)
		fmt.Fprintf(w, "         %+v\n", info.Params)
	}
	return nil
}
