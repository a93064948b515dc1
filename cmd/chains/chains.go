package chains

import (
	"github.com/spf13/cobra"
	"github/chapool/go-bitski/internal/util/command"
)

func New() *cobra.Command {
	return command.NewSubcommandGroup("chains",
		newList(),
		newResolve(),
		newVerify(),
	)
}
