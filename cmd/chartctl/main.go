// Package main provides chartctl, a small CLI for running the chart
// generation pipeline against a local CSV or XLSX file without the API
// server.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"chartsmith/internal/chart"
	"chartsmith/internal/dataset"
	"chartsmith/internal/llm"
	"chartsmith/internal/pipeline"
	"chartsmith/internal/query"
	"chartsmith/internal/styling"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "chartctl",
		Short:         "Generate charts from tabular files with natural language",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(schemaCmd(), generateCmd())
	return cmd
}

func schemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema <file>",
		Short: "Print the extracted schema of a CSV or XLSX file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := loadFile(args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd, dataset.Extract(d))
		},
	}
}

func generateCmd() *cobra.Command {
	var (
		prompt   string
		provider string
		model    string
		palette  string
		offline  bool
		retries  int
		timeout  time.Duration
	)

	cmd := &cobra.Command{
		Use:   "generate <file>",
		Short: "Generate a chart config and its data from a file and a prompt",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(prompt) == "" {
				return fmt.Errorf("--prompt is required")
			}
			d, err := loadFile(args[0])
			if err != nil {
				return err
			}

			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()
			ctx, cancelTimeout := context.WithTimeout(ctx, timeout)
			defer cancelTimeout()

			if offline {
				provider = "fake"
			}
			client, err := newClient(ctx, provider, model)
			if err != nil {
				return err
			}
			defer client.Close()
			if retries > 1 {
				client = llm.Wrap(client, llm.Retry(retries, time.Second))
			}

			gen := &pipeline.Generator{LLM: client}
			resp := gen.Run(ctx, pipeline.GenerateRequest{
				UserPrompt: prompt,
				Schema:     dataset.Extract(d),
			})
			if !resp.Success {
				return fmt.Errorf("%s", resp.Error)
			}

			out := generateOutput{Config: resp.Config, Usage: resp.Usage}
			if resp.Config.ChartType == chart.TypeTable {
				t := query.ExecuteTable(d, *resp.Config)
				out.Table = &t
			} else {
				out.Data = query.Execute(d, *resp.Config)
				s := styling.Default(styling.Palette(palette), len(out.Data))
				out.Styling = &s
			}
			return printJSON(cmd, out)
		},
	}

	cmd.Flags().StringVarP(&prompt, "prompt", "p", "", "natural language description of the chart")
	cmd.Flags().StringVar(&provider, "provider", "fake", "LLM provider: gemini, groq, or fake (offline)")
	cmd.Flags().StringVar(&model, "model", "", "model name (provider default when empty)")
	cmd.Flags().StringVar(&palette, "palette", "", "color palette for the generated styling")
	cmd.Flags().BoolVar(&offline, "offline", false, "use the deterministic offline client regardless of provider")
	cmd.Flags().IntVar(&retries, "retries", 1, "LLM call attempts before giving up")
	cmd.Flags().DurationVar(&timeout, "timeout", 60*time.Second, "overall deadline for the run")
	return cmd
}

type generateOutput struct {
	Config  *chart.Config         `json:"config"`
	Data    []chart.DataPoint     `json:"data,omitempty"`
	Table   *query.TableResult    `json:"table,omitempty"`
	Styling *styling.ChartStyling `json:"styling,omitempty"`
	Usage   *llm.Usage            `json:"usage,omitempty"`
}

func loadFile(path string) (*dataset.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return dataset.ParseCSV(f)
	case ".xlsx":
		return dataset.ParseXLSX(f)
	default:
		return nil, fmt.Errorf("unsupported file type %q (want .csv or .xlsx)", filepath.Ext(path))
	}
}

func newClient(ctx context.Context, provider, model string) (llm.Client, error) {
	switch provider {
	case "gemini":
		if model == "" {
			model = "gemini-2.0-flash"
		}
		return llm.NewGeminiClient(ctx, model)
	case "groq":
		if model == "" {
			model = "llama-3.3-70b-versatile"
		}
		return llm.NewGroqClient(os.Getenv("GROQ_API_KEY"), model)
	case "fake":
		return &llm.FakeClient{}, nil
	default:
		return nil, fmt.Errorf("unknown provider %q", provider)
	}
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
