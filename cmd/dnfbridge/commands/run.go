package commands

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/dnfbridge/dnfbridge/pkg/module"
)

func newRunCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [params-file]",
		Short: "Run one invocation from JSON parameters",
		Long: `Execute a single invocation the way an automation controller drives it:
read a JSON parameter document from the given file (or stdin when no
file is given), perform the convergence or list query, and write the
JSON response to stdout. The process exits non-zero on failure.`,
		Example: `  # parameters from a controller-written args file
  dnfbridge run /tmp/args.json

  # parameters on stdin
  echo '{"name": "httpd", "state": "latest"}' | dnfbridge run`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var in io.Reader = os.Stdin
			if len(args) == 1 {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}

			logger := newLogger()
			mod := module.New(dnfOpener(logger), logger)

			params, err := module.NewDecoder(in).Decode()
			if err != nil {
				return emit(module.Failure(err))
			}
			return emit(mod.Run(cmd.Context(), params))
		},
	}

	return cmd
}
