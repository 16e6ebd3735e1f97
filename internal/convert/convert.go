// Package convert runs the PDF-to-relational-tables pipeline: chunked LLM
// extraction, fragment merge, schema validation with one repair round, and
// the final CSV-tables generation.
package convert

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/glp500/Semi-Structured-Dataset-Converter/internal/extract"
	"github.com/glp500/Semi-Structured-Dataset-Converter/internal/llm"
	"github.com/glp500/Semi-Structured-Dataset-Converter/internal/transform"
	"github.com/glp500/Semi-Structured-Dataset-Converter/internal/validate"
	"github.com/glp500/Semi-Structured-Dataset-Converter/pkg/types"
)

type Options struct {
	MaxChunkChars int // per-chunk character budget, default extract.DefaultChunkChars
	Concurrency   int // max in-flight LLM calls during fragment extraction
	SuggestChars  int // how much text the suggestion prompts see
}

const (
	defaultConcurrency  = 4
	defaultSuggestChars = 8000
)

type Converter struct {
	llm  llm.Generator
	opts Options
	log  *zap.Logger
}

func New(g llm.Generator, opts Options) *Converter {
	if opts.MaxChunkChars <= 0 {
		opts.MaxChunkChars = extract.DefaultChunkChars
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = defaultConcurrency
	}
	if opts.SuggestChars <= 0 {
		opts.SuggestChars = defaultSuggestChars
	}
	return &Converter{llm: g, opts: opts, log: zap.L()}
}

// Run converts extracted page text into a merged JSON document and the
// relational tables derived from it.
func (c *Converter) Run(ctx context.Context, pages []string, req types.ConvertRequest) (types.ConvertResult, error) {
	chunks := extract.Chunk(joinPages(pages), c.opts.MaxChunkChars)
	if len(chunks) == 0 {
		return types.ConvertResult{}, errors.New("no text to convert")
	}
	c.log.Info("extracting fragments", zap.Int("chunks", len(chunks)))

	// Fragments land in an index-addressed slice so merge order always
	// equals chunk order, whatever order the calls finish in.
	fragments := make([]string, len(chunks))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.opts.Concurrency)
	for i, chunk := range chunks {
		i, chunk := i, chunk
		g.Go(func() error {
			prompt := llm.FragmentPrompt(chunk, i+1, len(chunks), validate.SchemaJSON, req)
			out, err := c.llm.GenerateJSON(gctx, prompt)
			if err != nil {
				return fmt.Errorf("chunk %d/%d: %w", i+1, len(chunks), err)
			}
			fragments[i] = llm.Normalize(out)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return types.ConvertResult{}, err
	}

	merged := transform.Merge(fragments)
	if merged == "" {
		return types.ConvertResult{}, errors.New("no JSON was generated from the PDF text")
	}
	document := c.finalizeDocument(ctx, merged)

	csvText, err := c.llm.Generate(ctx, llm.TablesPrompt(document, req))
	if err != nil {
		return types.ConvertResult{}, fmt.Errorf("csv generation: %w", err)
	}
	tables := transform.ParseTables(csvText)
	c.log.Info("conversion finished", zap.Int("tables", len(tables)))

	return types.ConvertResult{Document: document, Tables: tables}, nil
}

// Suggest derives context and relationship descriptions from a sample of the
// extracted text, for callers that did not supply their own.
func (c *Converter) Suggest(ctx context.Context, pages []string) (contextText, relationships string, err error) {
	sample := joinPages(pages)
	if len(sample) > c.opts.SuggestChars {
		sample = sample[:c.opts.SuggestChars]
	}
	contextText, err = c.llm.Generate(ctx, llm.ContextPrompt(sample))
	if err != nil {
		return "", "", fmt.Errorf("context suggestion: %w", err)
	}
	relationships, err = c.llm.Generate(ctx, llm.RelationshipsPrompt(sample))
	if err != nil {
		return "", "", fmt.Errorf("relationship suggestion: %w", err)
	}
	return contextText, relationships, nil
}

// finalizeDocument sanitizes and validates the merged document, attempting
// one model-driven repair when validation fails. Validation problems are
// never fatal: the best document available is returned.
func (c *Converter) finalizeDocument(ctx context.Context, merged string) string {
	var doc map[string]any
	if err := json.Unmarshal([]byte(merged), &doc); err != nil {
		c.log.Warn("merged document is not a JSON object, skipping validation", zap.Error(err))
		return merged
	}
	doc = transform.Sanitize(doc)
	if err := validate.Document(doc); err != nil {
		c.log.Warn("merged document failed schema validation, attempting repair", zap.Error(err))
		if fixed, rerr := c.repair(ctx, doc, err.Error()); rerr == nil {
			doc = fixed
		} else {
			c.log.Warn("repair attempt failed, keeping unrepaired document", zap.Error(rerr))
		}
	}
	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return merged
	}
	return string(b)
}

func (c *Converter) repair(ctx context.Context, bad map[string]any, validationErr string) (map[string]any, error) {
	b, err := json.Marshal(bad)
	if err != nil {
		return nil, err
	}
	out, err := c.llm.GenerateJSON(ctx, llm.RepairPrompt(string(b), validationErr, validate.SchemaJSON))
	if err != nil {
		return nil, err
	}
	var fixed map[string]any
	if err := json.Unmarshal([]byte(llm.Normalize(out)), &fixed); err != nil {
		return nil, fmt.Errorf("repaired output is not JSON: %w", err)
	}
	fixed = transform.Sanitize(fixed)
	if err := validate.Document(fixed); err != nil {
		return nil, fmt.Errorf("repaired output still invalid: %w", err)
	}
	return fixed, nil
}

func joinPages(pages []string) string { return strings.Join(pages, "\n") }
