package commands

import (
	"github.com/spf13/cobra"

	"github.com/dnfbridge/dnfbridge/pkg/module"
)

func newListCommand() *cobra.Command {
	var (
		enable   string
		disable  string
		confFile string
	)

	cmd := &cobra.Command{
		Use:   "list <installed|available|updates|repos>",
		Short: "Informational package and repository queries",
		Long: `Enumerate package records or repository identifiers without changing
system state. Package records are sorted by their composite identity.`,
		Example: `  # packages currently installed
  dnfbridge list installed

  # pending upgrades from an extra repo
  dnfbridge list updates --enablerepo testing

  # visible repository ids
  dnfbridge list repos`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			mod := module.New(dnfOpener(logger), logger)
			resp := mod.Run(cmd.Context(), &module.Params{
				List:        args[0],
				EnableRepo:  enable,
				DisableRepo: disable,
				ConfFile:    confFile,
			})
			return emit(resp)
		},
	}

	cmd.Flags().StringVar(&enable, "enablerepo", "", "comma-separated repository ids to enable for this invocation")
	cmd.Flags().StringVar(&disable, "disablerepo", "", "comma-separated repository ids to disable for this invocation")
	cmd.Flags().StringVar(&confFile, "conf-file", "", "path to the engine configuration file")

	return cmd
}
