package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/natexcvi/ragbot/chatbot"
	"github.com/natexcvi/ragbot/embeddings"
	"github.com/natexcvi/ragbot/evaluation"
	"github.com/natexcvi/ragbot/tools"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	configPath string
	provider   string
	model      string
	maxResults int
	minScore   float64
	verbose    bool
	render     bool
	sources    []string
	asJSON     bool
	recallK    int
)

var rootCmd = &cobra.Command{
	Use:   "ragbot",
	Short: "Ingest documents into an in-memory embedding store and query it.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			log.SetLevel(log.DebugLevel)
		}
	},
}

var ingestCmd = &cobra.Command{
	Use:   "ingest PATH_OR_URL...",
	Short: "Embed files and web pages and report how many were stored.",
	Run: func(cmd *cobra.Command, args []string) {
		app, err := newApp(cmd)
		if err != nil {
			log.Error(err)
			return
		}
		defer app.close()
		if _, err := app.ingest(cmd.Context(), args); err != nil {
			log.Error(err)
		}
	},
	Args: cobra.MinimumNArgs(1),
}

var queryCmd = &cobra.Command{
	Use:   "query QUERY",
	Short: "Print the segments most relevant to a query.",
	Long: `Print the segments most relevant to a query.
Example usage:
	ragbot query --source docs/ "how do I rotate my keys?"
Documents given with --source are ingested before the query runs.
`,
	Run: func(cmd *cobra.Command, args []string) {
		app, err := newApp(cmd)
		if err != nil {
			log.Error(err)
			return
		}
		defer app.close()
		if _, err := app.ingest(cmd.Context(), sources); err != nil {
			log.Error(err)
		}
		if err := app.query(cmd.Context(), args[0]); err != nil {
			log.Error(err)
		}
	},
	Args: cobra.ExactArgs(1),
}

var interactiveCmd = &cobra.Command{
	Use:   "interactive",
	Short: "Ingest sources, then answer queries read from stdin until EOF.",
	Run: func(cmd *cobra.Command, args []string) {
		app, err := newApp(cmd)
		if err != nil {
			log.Error(err)
			return
		}
		defer app.close()
		if _, err := app.ingest(cmd.Context(), sources); err != nil {
			log.Error(err)
		}
		scanner := bufio.NewScanner(cmd.InOrStdin())
		fmt.Fprint(cmd.OutOrStdout(), "> ")
		for scanner.Scan() {
			query := strings.TrimSpace(scanner.Text())
			if query != "" {
				if err := app.query(cmd.Context(), query); err != nil {
					log.Error(err)
				}
			}
			fmt.Fprint(cmd.OutOrStdout(), "> ")
		}
		fmt.Fprintln(cmd.OutOrStdout())
		if err := scanner.Err(); err != nil {
			log.Error(err)
		}
	},
	Args: cobra.NoArgs,
}

var evaluateCmd = &cobra.Command{
	Use:   "evaluate CASES_FILE",
	Short: "Measure recall of the retriever against a YAML file of test cases.",
	Long: `Measure recall of the retriever against a YAML file of test cases.
The file holds a list of cases:
	- query: how do I rotate my keys?
	  expected: [docs/keys.md]
Expected entries match a segment by text or by source.
`,
	Run: func(cmd *cobra.Command, args []string) {
		cases, err := readCases(args[0])
		if err != nil {
			log.Error(err)
			return
		}
		app, err := newApp(cmd)
		if err != nil {
			log.Error(err)
			return
		}
		defer app.close()
		if _, err := app.ingest(cmd.Context(), sources); err != nil {
			log.Error(err)
		}
		evaluator := evaluation.NewEvaluator(evaluation.NewRetrieverTester(app.retriever), &evaluation.Options[evaluation.RetrievalCase, []embeddings.TextSegment]{
			GoodnessFunction: evaluation.RecallAtK(recallK),
			Repetitions:      1,
		})
		report, err := evaluator.Evaluate(cmd.Context(), cases)
		if err != nil {
			log.Error(err)
			return
		}
		fmt.Fprint(cmd.OutOrStdout(), formatReport(cases, report, recallK))
	},
	Args: cobra.ExactArgs(1),
}

type app struct {
	ingestor  *chatbot.Ingestor
	retriever *chatbot.Retriever
	tool      *tools.RetrievalTool
	embedder  embeddings.Embedder
	out       io.Writer
}

func newApp(cmd *cobra.Command) (*app, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	embedder, err := newEmbedder(cmd.Context(), cfg)
	if err != nil {
		return nil, err
	}
	retriever := chatbot.NewRetriever(embedder, retrievalOptions(cfg)...)
	return &app{
		ingestor:  chatbot.NewIngestor(embedder),
		retriever: retriever,
		tool:      tools.NewRetrievalTool(retriever),
		embedder:  embedder,
		out:       cmd.OutOrStdout(),
	}, nil
}

// close releases the embedder's client when it holds one.
func (a *app) close() {
	closer, ok := a.embedder.(io.Closer)
	if !ok {
		return
	}
	if err := closer.Close(); err != nil {
		log.Warnf("failed to close embedder: %s", err)
	}
}

func (a *app) ingest(ctx context.Context, args []string) (int, error) {
	if len(args) == 0 {
		return 0, nil
	}
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " Embedding documents..."
	s.Start()
	stored, err := a.ingestor.IngestFrom(ctx, loadersFor(args, render)...)
	s.Stop()
	log.Infof("stored %d documents, %d in store", stored, chatbot.EmbeddingStore().Len())
	return stored, err
}

func (a *app) query(ctx context.Context, query string) error {
	if asJSON {
		args, err := json.Marshal(map[string]string{"query": query})
		if err != nil {
			return err
		}
		output, err := a.tool.Execute(ctx, args)
		if err != nil {
			return err
		}
		fmt.Fprintln(a.out, string(output))
		return nil
	}
	segments, err := a.retriever.FindRelevant(ctx, query)
	if err != nil {
		return err
	}
	fmt.Fprint(a.out, formatSegments(segments))
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file")
	rootCmd.PersistentFlags().StringVar(&provider, "provider", "", "embedding provider (openai, ollama, gemini, hashing)")
	rootCmd.PersistentFlags().StringVar(&model, "model", "", "embedding model name")
	rootCmd.PersistentFlags().IntVar(&maxResults, "max-results", chatbot.MaxResults, "maximum number of segments to return")
	rootCmd.PersistentFlags().Float64Var(&minScore, "min-score", 0, "minimum relevance score, between 0 and 1")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&render, "render", false, "render web pages in a headless browser before extracting text")

	for _, cmd := range []*cobra.Command{queryCmd, interactiveCmd, evaluateCmd} {
		cmd.Flags().StringSliceVarP(&sources, "source", "s", nil, "files, directories or URLs to ingest first")
	}
	queryCmd.Flags().BoolVar(&asJSON, "json", false, "print results as the search_knowledge_base tool would")
	interactiveCmd.Flags().BoolVar(&asJSON, "json", false, "print results as the search_knowledge_base tool would")
	evaluateCmd.Flags().IntVar(&recallK, "top-k", chatbot.MaxResults, "number of top results recall is measured on")

	rootCmd.AddCommand(ingestCmd)
	rootCmd.AddCommand(queryCmd)
	rootCmd.AddCommand(interactiveCmd)
	rootCmd.AddCommand(evaluateCmd)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		log.Fatal(err)
	}
}
