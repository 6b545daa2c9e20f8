package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/invopop/jsonschema"
	"github.com/natexcvi/ragbot/embeddings"
	"github.com/natexcvi/ragbot/retrieval"
	"github.com/samber/lo"
	openai "github.com/sashabaranov/go-openai"
)

var ErrEmptyQuery = errors.New("query must not be empty")

type searchArgs struct {
	Query string `json:"query" jsonschema:"required,description=the question or keywords to look up in the knowledge base"`
}

type searchResult struct {
	Text   string `json:"text"`
	Source string `json:"source,omitempty"`
}

// RetrievalTool lets an agent search the chatbot's knowledge base.
type RetrievalTool struct {
	retriever retrieval.Retriever
}

func NewRetrievalTool(retriever retrieval.Retriever) *RetrievalTool {
	return &RetrievalTool{retriever: retriever}
}

func (t *RetrievalTool) Execute(ctx context.Context, args json.RawMessage) (json.RawMessage, error) {
	var command searchArgs
	if err := json.Unmarshal(args, &command); err != nil {
		return nil, fmt.Errorf("invalid arguments: %s", err.Error())
	}
	if strings.TrimSpace(command.Query) == "" {
		return nil, ErrEmptyQuery
	}
	segments, err := t.retriever.FindRelevant(ctx, command.Query)
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}
	return json.Marshal(lo.Map(segments, func(segment embeddings.TextSegment, _ int) searchResult {
		source, _ := segment.Get(embeddings.MetadataSource)
		return searchResult{Text: segment.Text, Source: source}
	}))
}

func (t *RetrievalTool) Name() string {
	return "search_knowledge_base"
}

func (t *RetrievalTool) Description() string {
	return "Searches the knowledge base for passages relevant to a question. " +
		"Returns the most relevant passages first, together with their source."
}

func (t *RetrievalTool) ArgsSchema() json.RawMessage {
	reflector := &jsonschema.Reflector{
		ExpandedStruct: true,
		DoNotReference: true,
	}
	schema, err := reflector.Reflect(&searchArgs{}).MarshalJSON()
	if err != nil {
		panic(err)
	}
	return schema
}

// FunctionDefinition describes the tool in the shape OpenAI function
// calling expects.
func FunctionDefinition(tool Tool) openai.FunctionDefinition {
	return openai.FunctionDefinition{
		Name:        tool.Name(),
		Description: tool.Description(),
		Parameters:  tool.ArgsSchema(),
	}
}
