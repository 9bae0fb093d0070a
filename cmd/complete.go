package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/cottand/genrew/internal/log"
	"github.com/cottand/genrew/rewriting"
	"github.com/cottand/genrew/signature"
	"github.com/spf13/cobra"
)

var CompleteCmd = &cobra.Command{
	Use:          "complete -f signature.yaml",
	Short:        "Complete a signature's rewrite rules into a confluent system",
	RunE:         runComplete,
	SilenceUsage: true,
}

var (
	completeFile  *string
	maxIterations *int
	maxDepth      *int
	logLevel      *int
	debugTrace    *bool
)

func init() {
	completeFile = CompleteCmd.Flags().StringP("file", "f", "", "signature file")
	maxIterations = CompleteCmd.Flags().Int("max-iterations", 1000, "completion iteration budget")
	maxDepth = CompleteCmd.Flags().Int("max-depth", 10, "completion rule depth cap")
	logLevel = CompleteCmd.Flags().IntP("log-level", "l", int(slog.LevelError), "log level")
	debugTrace = CompleteCmd.Flags().Bool("trace", false, "trace rule addition and simplification")
	_ = CompleteCmd.MarkFlagRequired("file")
}

func completedSystem(file string, maxIterations, maxDepth int, trace bool) (*rewriting.System, *signature.Signature, error) {
	sig, err := loadSignature(file)
	if err != nil {
		return nil, nil, err
	}
	rules, err := sig.Lower()
	if err != nil {
		return nil, nil, err
	}
	system := rewriting.NewSystem()
	system.DebugAdd = trace
	system.DebugSimplify = trace
	system.Initialize(rules, sig.Graph)

	result := system.ComputeConfluentCompletion(maxIterations, maxDepth)
	if result != rewriting.CompletionSuccess {
		return nil, nil, fmt.Errorf("completion failed: %s", result)
	}
	return system, sig, nil
}

func runComplete(cmd *cobra.Command, args []string) error {
	log.SetLevel(slog.Level(*logLevel))

	system, _, err := completedSystem(*completeFile, *maxIterations, *maxDepth, *debugTrace)
	if err != nil {
		return err
	}
	system.Dump(os.Stdout)
	return nil
}
