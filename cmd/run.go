package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/ezgiver/JobFinder/internal/ai"
	"github.com/ezgiver/JobFinder/internal/ai/gemini"
	"github.com/ezgiver/JobFinder/internal/jobs"
	"github.com/ezgiver/JobFinder/internal/logger"
	"github.com/ezgiver/JobFinder/internal/matching"
	"github.com/ezgiver/JobFinder/internal/pipeline"
	"github.com/ezgiver/JobFinder/internal/scoring"
	"github.com/ezgiver/JobFinder/internal/scraper"
	"github.com/ezgiver/JobFinder/internal/secrets"
	"github.com/ezgiver/JobFinder/internal/sponsors"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	PromptYes        = "Yes"
	PromptNo         = "No"
	PromptJobsToFile = "Dump jobs to file"

	defaultCSVFile = "matched_jobs.csv"
)

var scorePrompt = promptui.Select{
	Label: "Proceed with AI scoring?",
	Items: []string{PromptYes, PromptNo, PromptJobsToFile},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the jobfinder main command",
	Run: func(cmd *cobra.Command, _ []string) {
		run(cmd)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().BoolP("auto-approve", "y", false, "do not ask for confirmation before AI scoring")
}

// run is the main command for the cli.
func run(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the jobfinder", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	if config == nil {
		logger.Fatal("config is required")
	}

	if config.Search == nil || config.Search.Term == "" {
		logger.Fatal("a search term is required under search.term")
	}

	if config.Scraper == nil || config.Scraper.URL == "" {
		logger.Fatal("the scraper service url is required under scraper.url")
	}

	if config.CV == nil || config.CV.File == "" {
		logger.Fatal("a plain-text cv file is required under cv.file")
	}

	cvText, err := os.ReadFile(config.CV.File)
	if err != nil {
		logger.Fatal("reading the cv file", zap.Error(err), zap.String("file", config.CV.File))
	}

	if strings.TrimSpace(string(cvText)) == "" {
		logger.Warn("the cv file is empty; scoring will proceed but expect low scores",
			zap.String("file", config.CV.File),
		)
	}

	logger.Info("loading the sponsor register")

	register, err := sponsors.NewFetcher(logger).Fetch(ctx)
	if err != nil {
		logger.Fatal("loading the sponsor register", zap.Error(err))
	}

	logger.Info("loaded the sponsor register", zap.Int("organisations", register.Len()))

	logger.Info("starting the search", zap.String("term", config.Search.Term))

	scraped, err := scraper.New(config.Scraper.URL, config.Scraper.Timeout, logger).Search(ctx, config.Search)
	if err != nil {
		logger.Fatal("scraping jobs", zap.Error(err))
	}

	logger.Info("scraped jobs", zap.Int("count", scraped.Len()))

	if scraped.Len() == 0 {
		logger.Info("exiting", zap.String("reason", "no jobs found"))
		return
	}

	verifier := matching.NewVerifier(matching.New(), register, logger)
	stages := []pipeline.Stage{
		pipeline.NewDedup(),
		pipeline.NewSponsorFilter(verifier, logger),
	}

	verified, err := pipeline.New(stages, logger).Run(ctx, scraped)
	if err != nil {
		logger.Fatal("filtering failed", zap.Error(err))
	}

	if verified.Len() == 0 {
		logger.Info("exiting", zap.String("reason", "no jobs left from verified sponsors"))
		return
	}

	scorer, profiler, err := newAIComponents(ctx, config.AI, logger)
	if err != nil {
		logger.Fatal("building the ai scorer", zap.Error(err))
	}

	if config.CV.ProfileEnabled && profiler != nil {
		logProfile(ctx, profiler, string(cvText), logger)
	}

	if cmd.Flag("auto-approve").Value.String() == "false" {
		if err := confirmScoring(verified, logger); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}
	}

	logger.Info("scoring jobs against the cv", zap.Int("count", verified.Len()))

	pacer := scoring.NewPacer(config.AI.geminiOrDefault().PacingInterval)
	results, err := scoring.NewEngine(scorer, pacer, logger).ScoreAll(ctx, verified, string(cvText))
	if err != nil {
		logger.Fatal("scoring aborted", zap.Error(err))
	}

	report := scoring.Summarize(results)
	logger.Info("scoring finished",
		zap.Int("total", report.Total),
		zap.Int("scored", report.Scored),
		zap.Int("failed", report.Failed),
		zap.Int("skipped", report.Skipped),
	)

	minScore := config.AI.minimumMatchScore()
	ranked := scoring.Rank(verified, results, minScore)

	if len(ranked) == 0 {
		logger.Warn("no jobs scored at or above the cutoff", zap.Int("cutoff", minScore))
		return
	}

	csvFile := defaultCSVFile
	if config.Output != nil && config.Output.CSVFile != "" {
		csvFile = config.Output.CSVFile
	}

	if err := exportCSV(csvFile, ranked); err != nil {
		logger.Fatal("writing the csv export", zap.Error(err))
	}

	logger.Info("wrote ranked jobs",
		zap.Int("count", len(ranked)),
		zap.Int("top_score", ranked[0].Result.Score),
		zap.String("filename", csvFile),
	)
}

var errExit = errors.New("exit requested")

func confirmScoring(verified *jobs.Jobs, logger *zap.Logger) error {
	for {
		logger.Info("jobs from verified sponsors ready for scoring", zap.Int("count", verified.Len()))

		_, action, err := scorePrompt.Run()
		if err != nil {
			return err
		}

		switch action {
		case PromptYes:
			return nil
		case PromptNo:
			logger.Info("exiting", zap.String("reason", "got no from prompt"))
			return errExit
		case PromptJobsToFile:
			filename, err := verified.DumpToTmpFile()
			if err != nil {
				return fmt.Errorf("dump jobs to file: %w", err)
			}
			logger.Info("dumped jobs to file", zap.String("filename", filename))
		default:
			return fmt.Errorf("invalid action: %s", action)
		}
	}
}

func newAIComponents(ctx context.Context, cfg *AIConfig, logger *zap.Logger) (ai.Scorer, ai.Profiler, error) {
	if cfg == nil {
		return nil, nil, fmt.Errorf("ai configuration is required")
	}

	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	if provider != "" && provider != gemini.Provider {
		return nil, nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}

	gcfg := cfg.geminiOrDefault()

	apiKey, err := secrets.Load(secrets.Source{
		Name: "gemini api key",
		File: gcfg.APIKeyFile,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("%w (set ai.gemini.api-key-file or GEMINI_API_KEY_FILE)", err)
	}

	generator, err := gemini.NewGenerator(ctx, apiKey, gcfg.Model)
	if err != nil {
		return nil, nil, err
	}

	return gemini.NewScorer(generator, gcfg.MaxLogLength, logger), gemini.NewProfiler(generator, logger), nil
}

func logProfile(ctx context.Context, profiler ai.Profiler, cvText string, logger *zap.Logger) {
	profile, err := profiler.Extract(ctx, cvText)
	if err != nil {
		logger.Warn("cv profile extraction failed; continuing without it", zap.Error(err))
		return
	}

	titles := profile.JobTitles
	recent := ""
	if len(titles) > 0 {
		recent = titles[0]
	}

	logger.Info("extracted cv profile",
		zap.String("seniority", profile.SeniorityLevel),
		zap.Int("years_experience", profile.TotalYearsExperience),
		zap.Int("skills", len(profile.Skills)),
		zap.Strings("industries", profile.Industries),
		zap.String("most_recent_title", recent),
	)
}

func exportCSV(filename string, ranked []scoring.RankedJob) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	return scoring.WriteCSV(file, ranked)
}

func (c *AIConfig) geminiOrDefault() *GeminiConfig {
	if c == nil || c.Gemini == nil {
		return &GeminiConfig{}
	}
	return c.Gemini
}

func (c *AIConfig) minimumMatchScore() int {
	if c == nil || c.MinimumMatchScore <= 0 {
		return scoring.MinMatchScore
	}
	return c.MinimumMatchScore
}
