package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/Aytaditya/pwc-hackathon/internal/catalog"
	"github.com/Aytaditya/pwc-hackathon/internal/config"
	"github.com/Aytaditya/pwc-hackathon/internal/engine"
	"github.com/Aytaditya/pwc-hackathon/internal/graph"
	"github.com/Aytaditya/pwc-hackathon/internal/llm"
	"github.com/Aytaditya/pwc-hackathon/internal/models"
	"github.com/Aytaditya/pwc-hackathon/internal/search"
	"github.com/Aytaditya/pwc-hackathon/internal/server"
	"github.com/Aytaditya/pwc-hackathon/internal/session"
)

func main() {
	transport := flag.String("transport", "stdio", "Transport mode: stdio or http")
	port := flag.String("port", "8081", "HTTP port (only used with --transport http)")
	configPath := flag.String("config", "", "Path to a YAML config file (optional)")
	catalogPath := flag.String("catalog", "", "Path to a catalog JSON file (defaults to the embedded sample)")
	buildGraph := flag.Bool("build-graph", false, "Rebuild the Neo4j knowledge graph from the catalog and exit")
	flag.Parse()

	// zap writes to stderr, keeping stdout clean for the stdio transport.
	log, err := zap.NewDevelopment()
	if err != nil {
		os.Exit(1)
	}
	defer log.Sync()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal("load config", zap.Error(err))
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if *buildGraph {
		if err := rebuildGraph(ctx, cfg, *catalogPath, log); err != nil {
			log.Fatal("build graph", zap.Error(err))
		}
		return
	}

	// The knowledge store is optional at runtime: when unreachable the
	// engine falls back to the local catalog and general answers.
	var querier engine.GraphQuerier
	var source catalog.Source
	graphConnected := false

	store, err := graph.Open(ctx, cfg.Neo4j, log)
	if err != nil {
		log.Warn("knowledge store unreachable, running on local catalog",
			zap.String("url", cfg.Neo4j.URL),
			zap.Error(err))
	} else {
		defer store.Close(context.Background())
		querier = store
		source = store
		graphConnected = true
	}

	if source == nil {
		projects, err := loadCatalog(*catalogPath)
		if err != nil {
			log.Fatal("load catalog", zap.Error(err))
		}
		source = catalog.Static(projects)
	}

	catalogSize := 0
	if projects, err := source.Catalog(ctx); err == nil {
		catalogSize = len(projects)
	}

	eng := engine.New(llm.NewClient(cfg.LLM, log), source, querier, log)

	srv := server.New(server.Deps{
		Sessions:       session.NewStore(),
		Engine:         eng,
		Search:         search.New(cfg.Search, log),
		Log:            log,
		GraphConnected: graphConnected,
		CatalogSize:    catalogSize,
	})

	switch *transport {
	case "stdio":
		log.Info("recommendation server starting", zap.String("transport", "stdio"))
		if err := srv.Run(ctx, &mcp.StdioTransport{}); err != nil {
			log.Fatal("server error", zap.Error(err))
		}
	case "http":
		addr := ":" + *port
		handler := mcp.NewStreamableHTTPHandler(func(r *http.Request) *mcp.Server {
			return srv
		}, nil)
		log.Info("recommendation server listening", zap.String("addr", addr))
		if err := http.ListenAndServe(addr, handler); err != nil {
			log.Fatal("http server error", zap.Error(err))
		}
	default:
		log.Fatal("unknown transport", zap.String("transport", *transport))
	}
}

// rebuildGraph wipes and repopulates the knowledge graph from the catalog
// file (or the embedded sample). Unlike normal serving, this mode requires
// the store to be reachable.
func rebuildGraph(ctx context.Context, cfg config.Config, catalogPath string, log *zap.Logger) error {
	projects, err := loadCatalog(catalogPath)
	if err != nil {
		return err
	}

	store, err := graph.Open(ctx, cfg.Neo4j, log)
	if err != nil {
		return err
	}
	defer store.Close(context.Background())

	return store.Build(ctx, projects)
}

func loadCatalog(path string) ([]models.CatalogProject, error) {
	if path != "" {
		return catalog.Load(path)
	}
	return catalog.Default()
}
