package cmd

import (
	"log"
	"time"

	"github.com/ezgiver/JobFinder/internal/scraper"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app = "jobfinder"
)

type Config struct {
	Search  *scraper.SearchParams `mapstructure:"search"`
	Scraper *ScraperConfig        `mapstructure:"scraper"`
	CV      *CVConfig             `mapstructure:"cv"`
	Output  *OutputConfig         `mapstructure:"output"`
	AI      *AIConfig             `mapstructure:"ai"`
}

type ScraperConfig struct {
	URL     string        `mapstructure:"url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type CVConfig struct {
	// File is a plain-text export of the candidate's CV. Extraction from
	// PDF/DOCX happens outside this tool.
	File           string `mapstructure:"file"`
	ProfileEnabled bool   `mapstructure:"profile-enabled"`
}

type OutputConfig struct {
	CSVFile string `mapstructure:"csv-file"`
}

type AIConfig struct {
	Provider          string        `mapstructure:"provider"`
	MinimumMatchScore int           `mapstructure:"minimum-match-score"`
	Gemini            *GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKeyFile     string        `mapstructure:"api-key-file"`
	Model          string        `mapstructure:"model"`
	PacingInterval time.Duration `mapstructure:"pacing-interval"`
	MaxLogLength   int           `mapstructure:"max-log-length"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "jobfinder scrapes job listings, keeps visa sponsors and ranks them against your CV with AI",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("ai.gemini.api-key-file", "GEMINI_API_KEY_FILE"); err != nil {
		log.Fatalf("binding GEMINI_API_KEY_FILE environment variable: %v", err)
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is jobfinder.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	// Config needed only for run command now. If there is no config, we can skip initialization
	if runCmd.CalledAs() == "" {
		return
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app + ".yaml")
	}

	// We can't proceed if the config file parsed with error.
	if err := viper.ReadInConfig(); err != nil {
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	return config, nil
}
