package commands

import (
	"github.com/spf13/cobra"

	"github.com/dnfbridge/dnfbridge/pkg/module"
)

func newConvergeCommand() *cobra.Command {
	var (
		name       string
		state      string
		enable     string
		disable    string
		confFile   string
		disableGPG bool
	)

	cmd := &cobra.Command{
		Use:   "converge",
		Short: "Converge packages or groups to a desired state",
		Long: `Drive the host's package state toward a target.

Specifiers accept a package name (optionally version qualified), a URL
or local path to an rpm, a group written as @Name, or the wildcard *
(state latest only). Multiple specifiers are comma separated.`,
		Example: `  # install the latest version of Apache
  dnfbridge converge --name httpd --state latest

  # remove the Apache package
  dnfbridge converge --name httpd --state absent

  # install from the testing repo only
  dnfbridge converge --name httpd --enablerepo testing --state present

  # upgrade all packages
  dnfbridge converge --name '*' --state latest

  # install the 'Development tools' group
  dnfbridge converge --name '@Development tools' --state present`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			mod := module.New(dnfOpener(logger), logger)
			resp := mod.Run(cmd.Context(), &module.Params{
				Name:            name,
				State:           state,
				EnableRepo:      enable,
				DisableRepo:     disable,
				ConfFile:        confFile,
				DisableGPGCheck: disableGPG,
			})
			return emit(resp)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "package, group, or wildcard specifier (comma-separated for multiple)")
	cmd.Flags().StringVar(&state, "state", "installed", "target state: present, installed, absent, removed, latest")
	cmd.Flags().StringVar(&enable, "enablerepo", "", "comma-separated repository ids to enable for this invocation")
	cmd.Flags().StringVar(&disable, "disablerepo", "", "comma-separated repository ids to disable for this invocation")
	cmd.Flags().StringVar(&confFile, "conf-file", "", "path to the engine configuration file")
	cmd.Flags().BoolVar(&disableGPG, "disable-gpg-check", false, "skip GPG signature checking of packages")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}
