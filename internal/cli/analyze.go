package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Jay5Bhatt/space-knowledge-engine/internal/analyze"
	"github.com/Jay5Bhatt/space-knowledge-engine/internal/evaluate"
	"github.com/Jay5Bhatt/space-knowledge-engine/internal/model"
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze [file]",
	Short: "Analyze and score a single text, printing the result as JSON",
	Long: `Analyze runs the core transform on one text without touching the
memory store: extraction (counts, numbers, measurements, keywords,
claims, snippet) followed by scoring, printed as JSON on stdout.

Reads the named file, or stdin when no file is given.

Example:
  ske analyze data/samples/k2_18b.txt
  cat abstract.txt | ske analyze`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	var raw []byte
	id := "stdin"
	if len(args) == 1 {
		raw, err = os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}
		id = filepath.Base(args[0])
	} else {
		raw, err = io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
	}

	analyzer := analyze.New(analyze.Config{
		Keywords:        cfg.Analyze.Keywords,
		MinClaimLength:  cfg.Analyze.MinClaimLength,
		MaxSnippetChars: cfg.Analyze.MaxSnippetChars,
	})
	evaluator := evaluate.New(cfg.Evaluate.Threshold, cfg.Evaluate.Weights)

	analyzed := analyzer.AnalyzeItem(model.Item{
		ID:     id,
		Title:  strings.TrimSuffix(id, filepath.Ext(id)),
		Source: "cli",
		Raw:    string(raw),
	})
	evaluation := evaluator.Score(analyzed)

	out, err := json.MarshalIndent(evaluation, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	fmt.Println(string(out))
	return nil
}
