package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/cwerner/webtok/internal/app"

	"github.com/spf13/cobra"
)

// defaultEOSTags are XML elements that never occur in the middle of a
// sentence and therefore constitute sentence breaks.
var defaultEOSTags = []string{"title", "h1", "h2", "h3", "h4", "h5", "h6", "p", "br", "hr", "div", "ol", "ul", "dl", "table"}

// buildConfig constructs an app.Config from command flags and arguments.
// An optional YAML profile is applied first; explicitly set flags override it.
func buildConfig(cmd *cobra.Command, args []string) (app.Config, error) {
	cfg := app.Config{
		Language:           "de",
		SplitSentences:     true,
		ParagraphSeparator: "empty_lines",
		EOSTags:            defaultEOSTags,
		Parallel:           1,
	}

	if profilePath, _ := cmd.Flags().GetString("config"); profilePath != "" {
		profile, err := app.LoadProfile(profilePath)
		if err != nil {
			return app.Config{}, err
		}
		profile.Apply(&cfg)
	}

	flags := cmd.Flags()
	if flags.Changed("language") {
		cfg.Language, _ = flags.GetString("language")
	}
	if flags.Changed("split-camel-case") {
		cfg.SplitCamelCase, _ = flags.GetBool("split-camel-case")
	}
	if flags.Changed("no-sentences") {
		noSentences, _ := flags.GetBool("no-sentences")
		cfg.SplitSentences = !noSentences
	}
	if flags.Changed("paragraph-separator") {
		cfg.ParagraphSeparator, _ = flags.GetString("paragraph-separator")
	}
	if flags.Changed("xml") {
		cfg.XML, _ = flags.GetBool("xml")
	}
	if flags.Changed("tag") {
		cfg.EOSTags, _ = flags.GetStringSlice("tag")
		cfg.XML = true
	}
	if flags.Changed("strip-tags") {
		cfg.StripTags, _ = flags.GetBool("strip-tags")
	}
	if flags.Changed("parallel") {
		cfg.Parallel, _ = flags.GetInt("parallel")
	}

	cfg.TokenClasses, _ = flags.GetBool("token-classes")
	cfg.ExtraInfo, _ = flags.GetBool("extra-info")
	cfg.Summary, _ = flags.GetBool("summary")
	cfg.Quiet, _ = flags.GetBool("quiet")
	cfg.Debug, _ = flags.GetBool("debug")

	// use positional arguments as sources, falling back to stdin
	if len(args) == 0 {
		cfg.Sources = []string{"-"}
	} else {
		cfg.Sources = args
	}

	return cfg, nil
}

// setupLogger configures the default slog logger based on debug mode
func setupLogger(debug bool) {
	var level slog.Level
	if debug {
		level = slog.LevelDebug
	} else {
		level = slog.LevelError
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
}

var rootCmd = &cobra.Command{
	Use:   "webtok [sources...]",
	Short: "A tokenizer and sentence splitter for German and English web text",
	Long: `Webtok splits German and English web and social media text into tokens
and sentences, following the EmpiriST 2015 tokenization guidelines. Sources
may include local files or standard input; XML input is supported.

Examples:
  webtok file.txt
  webtok --language en_PTB file.txt
  webtok --xml --tag p --strip-tags page.xml
  cat content.txt | webtok -t -e`,
	RunE: func(cmd *cobra.Command, args []string) error {
		config, err := buildConfig(cmd, args)
		if err != nil {
			return fmt.Errorf("configuration error: %w", err)
		}

		setupLogger(config.Debug)

		// create context with signal handling for graceful shutdown
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		if err := app.Run(ctx, config, os.Stdout); err != nil {
			return fmt.Errorf("webtok failed: %w", err)
		}

		return nil
	},
}

func init() {
	rootCmd.Flags().StringP("language", "l", "de", "Input language (de, de_CMC, en, en_PTB)")
	rootCmd.Flags().Bool("split-camel-case", false, "Split tokens written in camelCase")
	rootCmd.Flags().Bool("no-sentences", false, "Do not split the output into sentences")

	// plain text input
	rootCmd.Flags().StringP("paragraph-separator", "s", "empty_lines", "Paragraph boundary in text input (empty_lines or single_newlines)")

	// XML input
	rootCmd.Flags().BoolP("xml", "x", false, "Treat input as XML")
	rootCmd.Flags().StringSlice("tag", defaultEOSTags, "XML tags that constitute sentence breaks; implies --xml")
	rootCmd.Flags().Bool("strip-tags", false, "Remove XML tags from the output")

	// paragraph separators have no meaning in XML mode
	rootCmd.MarkFlagsMutuallyExclusive("paragraph-separator", "xml")

	// output annotations
	rootCmd.Flags().BoolP("token-classes", "t", false, "Print the class of each token after the token itself")
	rootCmd.Flags().BoolP("extra-info", "e", false, "Print SpaceAfter and OriginalSpelling information for each token")
	rootCmd.Flags().Bool("summary", false, "Print token, word and sentence counts to stderr")

	rootCmd.Flags().Int("parallel", 1, "Number of paragraphs tokenized concurrently")
	rootCmd.Flags().String("config", "", "Path to a YAML profile with preset options")

	rootCmd.Flags().BoolP("quiet", "q", false, "Suppress the progress spinner")
	rootCmd.Flags().BoolP("debug", "D", false, "Enable debug logging")
	_ = rootCmd.Flags().MarkHidden("debug")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
