package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"podtopics/internal/animation"
	"podtopics/internal/config"
	"podtopics/internal/domain"
	"podtopics/internal/embedding/openai"
	"podtopics/internal/embedding/tfidf"
	"podtopics/internal/enrich"
	"podtopics/internal/service"
	"podtopics/internal/store"
	"podtopics/internal/transcript"
	"podtopics/internal/tui"
)

func main() {
	_ = godotenv.Load()

	var cfgPath, outPath, animPath string
	var browse bool
	flag.StringVar(&cfgPath, "config", "", "Path to YAML config file (optional; uses ~/.config/podtopics/config.yaml if not provided)")
	flag.StringVar(&outPath, "out", "", "Output path for the indexed JSON (default: <input>_topics.json)")
	flag.StringVar(&animPath, "animation", "", "Also write an animation document to this path")
	flag.BoolVar(&browse, "browse", false, "Open the topic browser after segmenting")
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Println("Usage: podtopics [--config=config.yaml] [--out=topics.json] [--animation=anim.json] [--browse] transcript.json")
		os.Exit(1)
	}
	inputPath := flag.Arg(0)

	var cfg *config.AppConfig
	var err error
	if cfgPath == "" {
		cfg, _, err = config.LoadDefault()
	} else {
		cfg, err = config.Load(cfgPath)
	}
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	in, err := transcript.Load(inputPath)
	if err != nil {
		log.Fatalf("failed to load transcript: %v", err)
	}

	// Assemble components
	var emb domain.Embedder
	switch cfg.Embedder.Type {
	case "tfidf", "":
		if cfg.Embedder.NGramMax > 1 {
			emb = tfidf.NewNGramEmbedder(cfg.Embedder.NGramMax)
		} else {
			emb = tfidf.NewEmbedder()
		}
	case "openai":
		if cfg.Embedder.OpenAI == nil {
			log.Fatalf("openai embedder config missing")
		}
		client, err := openai.NewClient(openai.Config{
			BaseURL:   cfg.Embedder.OpenAI.BaseURL,
			APIKeyEnv: cfg.Embedder.OpenAI.APIKeyEnv,
			Model:     cfg.Embedder.OpenAI.Model,
			Timeout:   time.Duration(cfg.Embedder.OpenAI.TimeoutSecs) * time.Second,
		})
		if err != nil {
			log.Fatalf("openai embedder init failed: %v", err)
		}
		emb = client
	default:
		log.Fatalf("unknown embedder: %s", cfg.Embedder.Type)
	}

	var gen domain.Generator
	switch cfg.Enricher.Generator.Type {
	case "none", "":
	case "openai":
		g, err := enrich.NewOpenAIGenerator(enrich.GeneratorConfig{
			APIKey:  os.Getenv(cfg.Enricher.Generator.APIKeyEnv),
			BaseURL: cfg.Enricher.Generator.BaseURL,
			Model:   cfg.Enricher.Generator.Model,
			Timeout: time.Duration(cfg.Enricher.Generator.TimeoutSecs) * time.Second,
		})
		if err != nil {
			log.Fatalf("generator init failed: %v", err)
		}
		gen = g
	default:
		log.Fatalf("unknown generator: %s", cfg.Enricher.Generator.Type)
	}

	var topicStore domain.TopicStore
	if cfg.Store.Path != "" {
		repo, err := store.Open(cfg.Store.Path)
		if err != nil {
			log.Fatalf("failed to open topic store: %v", err)
		}
		defer repo.Close()
		topicStore = repo
	}

	enricher := enrich.NewEnricher(gen, cfg.Enricher.TopKeywords, cfg.Enricher.Workers)
	svc := service.NewSegmentationService(emb, enricher, topicStore,
		cfg.PreMerge.MinDuration, cfg.PreMerge.MinChars, cfg.BoundaryDetectorConfig())

	ctx := context.Background()
	res, err := svc.Segment(ctx, in)
	if err != nil {
		log.Fatalf("segmentation failed: %v", err)
	}
	for _, p := range res.Provenance {
		if p.Title == domain.SourceFallback && gen != nil {
			log.Printf("topic %d used fallback title", p.TopicID)
		}
	}

	data, err := svc.Artifact(res.Output)
	if err != nil {
		log.Fatalf("artifact rejected: %v", err)
	}
	if outPath == "" {
		outPath = strings.TrimSuffix(inputPath, ".json") + "_topics.json"
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		log.Fatalf("failed to write output: %v", err)
	}
	log.Printf("wrote %d topics to %s", len(res.Output.Topics), outPath)

	if animPath != "" {
		doc, err := animation.Project(res.Output)
		if err != nil {
			log.Fatalf("animation projection failed: %v", err)
		}
		if err := os.WriteFile(animPath, doc, 0o644); err != nil {
			log.Fatalf("failed to write animation document: %v", err)
		}
	}

	if err := svc.Persist(ctx, in.Fingerprint, res.Output); err != nil {
		log.Fatalf("failed to persist output: %v", err)
	}

	if browse {
		m := tui.New(res.Output)
		if _, err := tea.NewProgram(m).Run(); err != nil {
			log.Fatal(err)
		}
	}
}
