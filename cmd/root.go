package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/sieve/internal/app"
	"github.com/zjrosen/sieve/internal/config"
	"github.com/zjrosen/sieve/internal/ui/filterinput"
)

func init() {
	// Force lipgloss/termenv to query terminal background color BEFORE
	// any Bubble Tea program starts. This prevents the terminal's OSC 11
	// response from racing with Bubble Tea's input loop and appearing as
	// garbage text in input fields.
	//
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

const debugLogFile = "debug.log"

var (
	version = "dev"
	cfgFile string
	debug   bool
	cfg     config.Config
	cfgErr  error
)

var rootCmd = &cobra.Command{
	Use:   "sieve",
	Short: "A live-highlighted filter editor",
	Long: `sieve is a terminal editor for filter expressions. The filter is
highlighted as you type, diagnostics appear below it, and Enter submits it.
The submitted filter is printed in canonical form on exit.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runEditor,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/sieve/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false,
		"write debug logs to "+debugLogFile)

	rootCmd.Flags().String("value", "", "initial filter text")
	rootCmd.Flags().Bool("async", true, "highlight off the update loop")
	rootCmd.Flags().Int("width", 0, "editor width (0 follows the terminal)")

	_ = viper.BindPFlag("editor.async", rootCmd.Flags().Lookup("async"))
	_ = viper.BindPFlag("editor.width", rootCmd.Flags().Lookup("width"))
}

func initConfig() {
	config.RegisterDefaults(viper.GetViper())
	cfgErr = nil

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .sieve/config.yaml (current directory)
		// 2. ~/.config/sieve/config.yaml (user config)
		if _, err := os.Stat(".sieve/config.yaml"); err == nil {
			viper.SetConfigFile(".sieve/config.yaml")
		} else {
			viper.AddConfigPath(userConfigDir())
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound):
			// First run: write the default template to the user config.
			defaultPath := filepath.Join(userConfigDir(), "config.yaml")
			if writeErr := config.WriteDefaultConfig(defaultPath); writeErr == nil {
				viper.SetConfigFile(defaultPath)
				_ = viper.ReadInConfig()
			}
		default:
			cfgErr = fmt.Errorf("reading config: %w", err)
			return
		}
	}

	cfg, cfgErr = config.Load(viper.GetViper())
}

func userConfigDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "sieve")
}

// configPath returns the config file in use, or the default location when
// none was loaded.
func configPath() string {
	if used := viper.ConfigFileUsed(); used != "" {
		return used
	}
	return filepath.Join(userConfigDir(), "config.yaml")
}

func runEditor(cmd *cobra.Command, _ []string) error {
	rt, err := startRuntime()
	if err != nil {
		return err
	}
	defer rt.Close()

	value, _ := cmd.Flags().GetString("value")
	opts := rt.surfaceOptions()
	opts.Text = value

	zone.NewGlobal()
	model := app.New(context.Background(), app.Options{
		Input: filterinput.Options{
			Surface:     opts,
			Width:       cfg.Editor.Width,
			Placeholder: cfg.Editor.Placeholder,
			Async:       cfg.Editor.Async,
		},
		MaxWidth:   cfg.Editor.Width,
		ConfigPath: viper.ConfigFileUsed(),
	})
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	final, err := p.Run()

	if closeErr := model.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("running program: %w", err)
	}

	if m, ok := final.(app.Model); ok {
		if result, ok := m.Result(); ok {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), result.Search.String())
		}
	}
	return nil
}

// Execute runs the root command
func Execute() error {
	err := rootCmd.Execute()
	if err != nil && !errors.Is(err, errCheckFailed) {
		_, _ = fmt.Fprintln(rootCmd.ErrOrStderr(), "Error:", err)
	}
	return err
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
