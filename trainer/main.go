// Command trainer fits the TF-IDF vectorizer and logistic regression model on
// the labeled news corpus and writes the artifact pair the server loads.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"fakenews-detector/config"
	"fakenews-detector/corpus"
	"fakenews-detector/database"
	"fakenews-detector/logger"
	"fakenews-detector/services"
)

type trainFlags struct {
	configPath     string
	fakePath       string
	truePath       string
	modelPath      string
	vectorizerPath string
	testSize       float64
	seed           uint64
	useDB          bool
}

func main() {
	godotenv.Load()
	logger.Setup()

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	flags := &trainFlags{}

	cmd := &cobra.Command{
		Use:   "trainer",
		Short: "Train the fake news classifier",
		Long: `Reads the FAKE and REAL CSV corpora (title and text columns), shuffles
them, holds out a test split, fits TF-IDF + logistic regression on the rest
and saves the model and vectorizer next to each other.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrain(cmd, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.configPath, "config", "c", os.Getenv("TRAIN_CONFIG"), "YAML training config")
	cmd.Flags().StringVar(&flags.fakePath, "fake", "", "CSV of FAKE articles")
	cmd.Flags().StringVar(&flags.truePath, "true", "", "CSV of REAL articles")
	cmd.Flags().StringVar(&flags.modelPath, "model", "", "output path of the model artifact")
	cmd.Flags().StringVar(&flags.vectorizerPath, "vectorizer", "", "output path of the vectorizer artifact")
	cmd.Flags().Float64Var(&flags.testSize, "test-size", 0, "held-out fraction")
	cmd.Flags().Uint64Var(&flags.seed, "seed", 0, "shuffle and split seed")
	cmd.Flags().BoolVar(&flags.useDB, "db", true, "also train on labeled rows from DB_URL when set")

	return cmd
}

// resolveConfig layers explicitly set flags over the YAML file over defaults.
func resolveConfig(cmd *cobra.Command, flags *trainFlags) (config.TrainConfig, error) {
	cfg, err := config.LoadTrainConfig(flags.configPath)
	if err != nil {
		return cfg, err
	}

	set := cmd.Flags().Changed
	if set("fake") {
		cfg.FakePath = flags.fakePath
	}
	if set("true") {
		cfg.TruePath = flags.truePath
	}
	if set("model") {
		cfg.ModelPath = flags.modelPath
	}
	if set("vectorizer") {
		cfg.VectorizerPath = flags.vectorizerPath
	}
	if set("test-size") {
		cfg.TestSize = flags.testSize
	}
	if set("seed") {
		cfg.SplitSeed = flags.seed
		cfg.ShuffleSeed = flags.seed
	}
	return cfg, cfg.Validate()
}

func runTrain(cmd *cobra.Command, flags *trainFlags) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := resolveConfig(cmd, flags)
	if err != nil {
		return err
	}
	log.Printf("[TRAIN] 📚 fake=%s true=%s test_size=%.2f seed=%d", cfg.FakePath, cfg.TruePath, cfg.TestSize, cfg.SplitSeed)

	var extra []corpus.Source
	if flags.useDB {
		appCfg, err := config.Load()
		if err != nil {
			return err
		}
		if err := database.InitDB(ctx, appCfg.DbUrl); err != nil {
			return err
		}
		defer database.Close()
		if database.DB != nil {
			extra = append(extra, corpus.NewPostgresSource(database.DB, cfg.CorpusTable))
		}
	}

	report, err := services.NewTrainerService(cfg, extra...).Run(ctx)
	if err != nil {
		log.Printf("[TRAIN] ❌ %v", err)
		return err
	}
	if !report.Converged {
		log.Printf("[TRAIN] ⚠ optimizer stopped after %d iterations without converging", report.Iterations)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Model trained with accuracy: %.2f\n", report.Accuracy)
	fmt.Fprintln(out, "model and vectorizer saved")
	return nil
}
