package cmd

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Rorical/RoriPDF/internal/api"
	"github.com/Rorical/RoriPDF/internal/app"
	"github.com/Rorical/RoriPDF/internal/config"
)

var preselectFile string

var rootCmd = &cobra.Command{
	Use:   "roripdf",
	Short: "Chat with your PDF documents from the terminal",
	Long: `RoriPDF uploads a PDF to a document question-answering service and lets
you chat with it. Drop a file onto the terminal, paste its path, or pick it
with ctrl+o, then ask away.`,
	Run: func(cmd *cobra.Command, args []string) {
		// Default behavior: run the chat application
		runChat(loadConfig())
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Printf("Command execution error: %v", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initViper)

	rootCmd.PersistentFlags().String("base-url", "", "Service base URL (overrides the active profile)")
	rootCmd.PersistentFlags().String("drop-dir", "", "Folder to watch for dropped PDFs")
	rootCmd.PersistentFlags().Int("timeout", 0, "Request timeout in seconds, 0 for none")
	rootCmd.PersistentFlags().String("log-file", "", "Diagnostic log file for the chat UI")
	rootCmd.Flags().StringVarP(&preselectFile, "file", "f", "", "PDF to select on startup")

	viper.BindPFlag("base_url", rootCmd.PersistentFlags().Lookup("base-url"))
	viper.BindPFlag("drop_dir", rootCmd.PersistentFlags().Lookup("drop-dir"))
	viper.BindPFlag("timeout_seconds", rootCmd.PersistentFlags().Lookup("timeout"))
	viper.BindPFlag("log_file", rootCmd.PersistentFlags().Lookup("log-file"))

	// Add subcommands
	rootCmd.AddCommand(profileCmd)
}

func initViper() {
	viper.SetEnvPrefix("RORIPDF") // Set prefix for environment variables
	viper.AutomaticEnv()          // read in environment variables that match

	viper.BindEnv("base_url", "RORIPDF_BASE_URL")
	viper.BindEnv("drop_dir", "RORIPDF_DROP_DIR")
	viper.BindEnv("markdown", "RORIPDF_MARKDOWN")
	viper.BindEnv("timeout_seconds", "RORIPDF_TIMEOUT_SECONDS")
	viper.BindEnv("log_file", "RORIPDF_LOG_FILE")
}

// loadConfig loads the active profile with env and flag overrides applied.
func loadConfig() *config.Config {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	cfg.ApplyOverrides(viper.GetViper())

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	return cfg
}

func newClient(cfg *config.Config) *api.Client {
	return api.NewClient(cfg.GetBaseURL(), cfg.GetTimeout())
}

func runChat(cfg *config.Config) {
	// The UI owns the terminal, so diagnostics go to a file.
	logPath := viper.GetString("log_file")
	if logPath == "" {
		dir, err := config.HomeDir()
		if err != nil {
			log.Fatalf("Failed to resolve log directory: %v", err)
		}
		logPath = filepath.Join(dir, "roripdf.log")
	}
	f, err := tea.LogToFile(logPath, "roripdf")
	if err != nil {
		log.Fatalf("Failed to open log file: %v", err)
	}
	defer f.Close()

	application, err := app.NewApplication(cfg, app.Options{File: preselectFile})
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}

	if err := runUntilDone(application); err != nil {
		log.Printf("Application error: %v", err)
		fmt.Fprintf(os.Stderr, "Application error: %v\n", err)
		f.Close()
		os.Exit(1)
	}
}

type lifecycle interface {
	Start() error
	Stop()
}

// runUntilDone runs the application and always stops it, so the watcher and
// service goroutines are released before any exit.
func runUntilDone(l lifecycle) error {
	defer l.Stop()
	return l.Start()
}
