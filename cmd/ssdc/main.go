package main

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/glp500/Semi-Structured-Dataset-Converter/internal/config"
	"github.com/glp500/Semi-Structured-Dataset-Converter/internal/convert"
	"github.com/glp500/Semi-Structured-Dataset-Converter/internal/extract"
	"github.com/glp500/Semi-Structured-Dataset-Converter/internal/llm"
	"github.com/glp500/Semi-Structured-Dataset-Converter/internal/store"
	"github.com/glp500/Semi-Structured-Dataset-Converter/pkg/types"
)

type pingResp struct {
	OK              bool   `json:"ok"`
	OllamaURL       string `json:"ollama_url"`
	OllamaReachable bool   `json:"ollama_reachable"`
	Note            string `json:"note,omitempty"`
}

type convertResp struct {
	OK       bool                   `json:"ok"`
	JobID    string                 `json:"jobId"`
	Document any                    `json:"document"`
	Tables   map[string]types.Table `json:"tables"`
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	st, err := store.New(cfg.DataRoot)
	if err != nil {
		logger.Fatal("store init failed", zap.Error(err))
	}

	var gen llm.Generator
	client := llm.NewClient(cfg.OllamaURL, cfg.OllamaModel)
	if cfg.MockLLM {
		gen = llm.Mock{}
	} else {
		gen = client
	}
	conv := convert.New(gen, convert.Options{
		MaxChunkChars: cfg.MaxChunkChars,
		Concurrency:   cfg.Concurrency,
	})

	r := chi.NewRouter()

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ok":true,"service":"ssdc"}`))
	})

	r.Get("/llm/ping", func(w http.ResponseWriter, req *http.Request) {
		out := pingResp{OK: true, OllamaURL: client.Endpoint()}
		if cfg.MockLLM {
			out.OllamaReachable = true
			out.Note = "mock generator in use — no model required."
		} else {
			ctx, cancel := context.WithTimeout(req.Context(), 5*time.Second)
			defer cancel()
			out.OllamaReachable = client.Ping(ctx)
			if !out.OllamaReachable {
				out.Note = "Ollama not running or model not pulled yet — OK for now."
			}
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(out)
	})

	// Full pipeline: upload PDF, extract, convert, persist, respond.
	r.Post("/convert", func(w http.ResponseWriter, req *http.Request) {
		if err := req.ParseMultipartForm(64 << 20); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		file, hdr, err := req.FormFile("pdf")
		if err != nil {
			http.Error(w, "missing pdf file", http.StatusBadRequest)
			return
		}
		defer file.Close()
		data, err := io.ReadAll(file)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		creq := types.ConvertRequest{
			TableNames:        splitNames(req.FormValue("tables")),
			Context:           req.FormValue("context"),
			Relationships:     req.FormValue("relationships"),
			AdditionalContext: req.FormValue("additional_context"),
			ManualContext:     req.FormValue("manual_context"),
		}
		if len(creq.TableNames) == 0 {
			creq.TableNames = []string{"Table1"}
		}
		strategy := req.FormValue("strategy")
		if strategy == "" {
			strategy = cfg.TableStrategy
		}

		pages, err := extract.Pages(data, strategy)
		if err != nil {
			http.Error(w, "failed to read PDF: "+err.Error(), http.StatusBadRequest)
			return
		}

		// Auto-suggest context/relationships when the caller gave none.
		if req.FormValue("suggest") == "1" && creq.Context == "" {
			ctxText, rels, err := conv.Suggest(req.Context(), pages)
			if err != nil {
				logger.Warn("suggestion generation failed", zap.Error(err))
			} else {
				creq.Context = ctxText
				if creq.Relationships == "" {
					creq.Relationships = rels
				}
			}
		}

		jobID := uuid.NewString()
		if _, err := st.MkJob(jobID); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if err := st.SaveUpload(jobID, hdr.Filename, data); err != nil {
			logger.Warn("could not persist upload", zap.String("job", jobID), zap.Error(err))
		}

		res, err := conv.Run(req.Context(), pages, creq)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadGateway)
			return
		}
		if err := st.SaveDocument(jobID, res.Document); err != nil {
			logger.Warn("could not persist document", zap.String("job", jobID), zap.Error(err))
		}
		for name, tbl := range res.Tables {
			if err := st.SaveTable(jobID, name, tbl); err != nil {
				logger.Warn("could not persist table",
					zap.String("job", jobID), zap.String("table", name), zap.Error(err))
			}
		}

		var doc any = res.Document
		if json.Valid([]byte(res.Document)) {
			doc = json.RawMessage(res.Document)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(convertResp{OK: true, JobID: jobID, Document: doc, Tables: res.Tables})
	})

	r.Get("/jobs/{id}/document", func(w http.ResponseWriter, req *http.Request) {
		doc, err := st.ReadDocument(chi.URLParam(req, "id"))
		if err != nil {
			http.Error(w, "job not found", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(doc))
	})

	r.Get("/jobs/{id}/tables/{name}", func(w http.ResponseWriter, req *http.Request) {
		id := chi.URLParam(req, "id")
		name := chi.URLParam(req, "name")
		b, err := st.ReadTable(id, name)
		if err != nil {
			http.Error(w, "table not found", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="`+name+`.csv"`)
		w.Write(b)
	})

	logger.Info("ssdc listening", zap.String("port", cfg.Port))
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func splitNames(s string) []string {
	var names []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			names = append(names, p)
		}
	}
	return names
}
