// Command slidegen explains a question as an illustrated robot story, one
// slide per sentence.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "slidegen [question]",
	Short: "Explain a question as an illustrated slide story",
	Long: `slidegen sends a question to an image-capable Gemini model and shows the
answer as a sequence of slides, each pairing a short caption with an
illustration.

With --interactive, questions are read line by line. Lines starting with a
colon are commands: :next, :prev, :first, :last, :clear, :save and :quit.

GEMINI_API_KEY must be set.`,
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	flags := rootCmd.Flags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "path to a YAML config file")
	flags.BoolVarP(&opts.interactive, "interactive", "i", false, "read questions from stdin")
	flags.StringVarP(&opts.model, "model", "m", "", "model name (overrides config)")
	flags.StringVarP(&opts.outputDir, "output", "o", "", "directory to save slide illustrations to")
	flags.StringVar(&opts.htmlPath, "html", "", "write the slides to an HTML deck at this path")
	flags.StringVar(&opts.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	flags.BoolVar(&opts.noStream, "no-stream", false, "request complete responses instead of streaming")
}

// shownError marks an error the presenter has already shown to the user.
type shownError struct {
	error
}

func (e shownError) Unwrap() error {
	return e.error
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		var shown shownError
		if !errors.As(err, &shown) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}
