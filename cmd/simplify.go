package cmd

import (
	"fmt"
	"log/slog"

	"github.com/cottand/genrew/internal/log"
	"github.com/cottand/genrew/signature"
	"github.com/spf13/cobra"
)

var SimplifyCmd = &cobra.Command{
	Use:          "simplify -f signature.yaml T.Member ...",
	Short:        "Canonicalize type paths under a signature's completed rewrite system",
	RunE:         runSimplify,
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
}

var (
	simplifyFile          *string
	simplifyMaxIterations *int
	simplifyMaxDepth      *int
)

func init() {
	simplifyFile = SimplifyCmd.Flags().StringP("file", "f", "", "signature file")
	simplifyMaxIterations = SimplifyCmd.Flags().Int("max-iterations", 1000, "completion iteration budget")
	simplifyMaxDepth = SimplifyCmd.Flags().Int("max-depth", 10, "completion rule depth cap")
	_ = SimplifyCmd.MarkFlagRequired("file")
}

func runSimplify(cmd *cobra.Command, args []string) error {
	log.SetLevel(slog.LevelError)

	system, sig, err := completedSystem(*simplifyFile, *simplifyMaxIterations, *simplifyMaxDepth, false)
	if err != nil {
		return err
	}
	for _, arg := range args {
		path, err := signature.ParseTypePath(arg)
		if err != nil {
			return err
		}
		term, err := sig.Term(path)
		if err != nil {
			return err
		}
		system.Simplify(&term)
		fmt.Printf("%s => %s\n", arg, term)
	}
	return nil
}
