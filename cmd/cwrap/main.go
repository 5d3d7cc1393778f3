package main

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"claude-wrapped/internal/app"
	"claude-wrapped/internal/render"
	"claude-wrapped/internal/session"
	"claude-wrapped/internal/tui"
	"claude-wrapped/internal/wrapped"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

const (
	version = "1.0.0"
	repoURL = "https://github.com/jaivial/claude-wrapped"
)

func generateCompletion(shell string) error {
	switch shell {
	case "bash":
		fmt.Println("# bash completion for cwrap")
		fmt.Println("_cwrap_completions() {")
		fmt.Println("    local cur prev opts")
		fmt.Println("    COMPREPLY=()")
		fmt.Println("    cur=\"${COMP_WORDS[COMP_CWORD]}\"")
		fmt.Println("    prev=\"${COMP_WORDS[COMP_CWORD-1]}\"")
		fmt.Println("    opts=\"generate decode stats completion help --year --name --claude-dir --no-cache --no-tui --help\"")
		fmt.Println("    if [[ $COMP_CWORD -eq 1 ]]; then")
		fmt.Println("        COMPREPLY=( $(compgen -W \"${opts}\" -- \"${cur}\" )")
		fmt.Println("    fi")
		fmt.Println("    return 0")
		fmt.Println("}")
		fmt.Println("complete -F _cwrap_completions cwrap")
	case "zsh":
		fmt.Println("# zsh completion for cwrap")
		fmt.Println("compdef _cwrap cwrap")
		fmt.Println("_cwrap() {")
		fmt.Println("    _arguments -C \\")
		fmt.Println("        '(-h --help)'{-h,--help}'[show help]' \\")
		fmt.Println("        '(-v --version)'{-v,--version}'[print version]' \\")
		fmt.Println("        '(-y --year)'{-y,--year}'[target year]' \\")
		fmt.Println("        '*::command:->command'")
		fmt.Println("    case $state in")
		fmt.Println("        command)")
		fmt.Println("            if (( CURRENT == 1 )); then")
		fmt.Println("                _describe -t commands 'cwrap commands' commands")
		fmt.Println("            fi")
		fmt.Println("            ;;")
		fmt.Println("    esac")
		fmt.Println("}")
	case "fish":
		fmt.Println("# fish completion for cwrap")
		fmt.Println("complete -c cwrap -f -a '(generate decode stats completion help)'")
		fmt.Println("complete -c cwrap -s h -l help -d 'Show help'")
		fmt.Println("complete -c cwrap -s v -l version -d 'Print version'")
		fmt.Println("complete -c cwrap -s y -l year -d 'Target year'")
	default:
		return fmt.Errorf("unsupported shell: %s", shell)
	}
	return nil
}

// loadConfig applies command-line overrides on top of the config file.
func loadConfig() (app.Config, error) {
	cfg, err := app.LoadConfig(app.DefaultConfigPath())
	if err != nil {
		return cfg, err
	}
	if flagYear != 0 {
		cfg.Year = flagYear
	}
	if flagName != "" {
		cfg.DisplayName = flagName
	}
	if flagClaudeDir != "" {
		cfg.ClaudeDir = flagClaudeDir
	}
	if flagNoCache {
		cfg.NoCache = true
	}
	if cfg.ClaudeDir == "" {
		cfg.ClaudeDir = session.DefaultClaudeDir()
	}
	return cfg, nil
}

// buildStory runs the full pipeline: scan, aggregate, build.
func buildStory(cfg app.Config, logger *app.Logger) (*wrapped.Story, error) {
	runID := uuid.NewString()
	year := cfg.TargetYear()
	start := time.Now()

	var cache *session.ScanCache
	cachePath := filepath.Join(cfg.CacheDir, "scan-cache.json")
	if !cfg.NoCache {
		cache = session.LoadScanCache(cachePath)
	}

	scanner := session.NewScanner(cfg.ClaudeDir)
	records, err := scanner.Scan(cache)
	if err != nil {
		logger.Error("scan failed", map[string]interface{}{"run": runID, "error": err.Error()})
		return nil, fmt.Errorf("scanning %s: %w", cfg.ClaudeDir, err)
	}
	if cache != nil {
		if err := cache.Save(); err != nil {
			logger.Warn("cache save failed", map[string]interface{}{"run": runID, "error": err.Error()})
		}
	}

	data := session.Aggregate(records, year)
	story := wrapped.Build(data.BuildInput(year, cfg.DisplayName))

	logger.Info("story built", map[string]interface{}{
		"run":      runID,
		"year":     year,
		"sessions": story.SessionCount,
		"messages": story.MessageCount,
		"elapsed":  time.Since(start).Milliseconds(),
	})
	return story, nil
}

// extractPayload accepts either a bare encoded string or a full share URL
// carrying it as the d query parameter.
func extractPayload(arg string) string {
	if u, err := url.Parse(arg); err == nil && u.Scheme != "" {
		if d := u.Query().Get("d"); d != "" {
			return d
		}
	}
	return arg
}

func main() {
	root := &cobra.Command{
		Use:     "cwrap",
		Short:   "Claude Wrapped - yearly Claude Code analytics",
		Long:    "cwrap scans your local Claude Code session logs, builds a yearly analytics story, and shows it as a shareable wrapped.\n\nUse without arguments for the interactive viewer, or 'generate' to print a share link.\n\nFor more information, visit: " + repoURL,
		Version: version,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			logger := app.NewFileLogger(cfg.CacheDir)

			story, err := buildStory(cfg, logger)
			if err != nil {
				return err
			}
			if flagNoTUI {
				fmt.Println(render.Story(story))
				return nil
			}
			return tui.Run(story)
		},
	}

	root.PersistentFlags().IntVarP(&flagYear, "year", "y", 0, "Target year (default: current year)")
	root.PersistentFlags().StringVar(&flagName, "name", "", "Display name on the story")
	root.PersistentFlags().StringVar(&flagClaudeDir, "claude-dir", "", "Claude home directory (default: ~/.claude)")
	root.PersistentFlags().BoolVar(&flagNoCache, "no-cache", false, "Re-parse every session file")
	root.Flags().BoolVarP(&flagNoTUI, "no-tui", "n", false, "Print the story instead of opening the viewer")

	generateCmd := &cobra.Command{
		Use:   "generate",
		Short: "Build the story and print its share link",
		Long:  "Scan sessions, build the yearly story, encode it, and print the share URL.\n\nExamples:\n  - cwrap generate\n  - cwrap generate --year 2024\n  - cwrap generate --name Jai --no-cache",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			logger := app.NewFileLogger(cfg.CacheDir)

			story, err := buildStory(cfg, logger)
			if err != nil {
				return err
			}
			encoded, err := wrapped.Encode(story)
			if err != nil {
				return err
			}

			fmt.Printf("Claude Wrapped %d\n\n", story.Year)
			fmt.Printf("Sessions: %d  Messages: %d  Hours: %d  Days: %d\n\n",
				story.SessionCount, story.MessageCount, story.TotalHours, story.ActiveDays)
			fmt.Printf("Share link (%d chars):\n%s\n", len(encoded), render.ShareURL(cfg.ShareBaseURL, encoded))
			return nil
		},
	}
	root.AddCommand(generateCmd)

	decodeCmd := &cobra.Command{
		Use:   "decode [payload]",
		Short: "Decode a share payload and print the story",
		Long:  "Decode an encoded story back into a readable summary. Accepts the bare payload or a full share URL.\n\nExamples:\n  - cwrap decode 'AxkH...'\n  - cwrap decode 'https://claude-wrapped.dev/wrapped?d=AxkH...'",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			story, err := wrapped.Decode(extractPayload(args[0]))
			if err != nil {
				switch {
				case errors.Is(err, wrapped.ErrVersion):
					return fmt.Errorf("this payload was made by a different version of cwrap: %w", err)
				case errors.Is(err, wrapped.ErrTransport):
					return fmt.Errorf("that does not look like a share payload: %w", err)
				default:
					return err
				}
			}
			if flagDecodeTUI {
				return tui.Run(story)
			}
			fmt.Println(render.Story(story))
			return nil
		},
	}
	decodeCmd.Flags().BoolVar(&flagDecodeTUI, "tui", false, "Open the decoded story in the viewer")
	root.AddCommand(decodeCmd)

	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Print the yearly summary without encoding",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			logger := app.NewFileLogger(cfg.CacheDir)

			story, err := buildStory(cfg, logger)
			if err != nil {
				return err
			}
			fmt.Println(render.Story(story))
			return nil
		},
	}
	root.AddCommand(statsCmd)

	completionCmd := &cobra.Command{
		Use:   "completion [shell]",
		Short: "Generate shell completion",
		Long:  "Generate shell completion script for cwrap.\n\nExamples:\n  - cwrap completion bash >> ~/.bashrc\n  - cwrap completion zsh > ~/.zsh/completion/_cwrap\n  - cwrap completion fish > ~/.config/fish/completions/cwrap.fish",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return generateCompletion(args[0])
		},
	}
	root.AddCommand(completionCmd)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var (
	flagYear      int
	flagName      string
	flagClaudeDir string
	flagNoCache   bool
	flagNoTUI     bool
	flagDecodeTUI bool
)
