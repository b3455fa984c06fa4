package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"uniLeaderboard/config"
	"uniLeaderboard/internal/app"
	"uniLeaderboard/internal/domain/model"
	"uniLeaderboard/internal/domain/service"
	httphandlers "uniLeaderboard/internal/handlers/http"
	"uniLeaderboard/internal/infrastructure/subgraph"
)

func main() {
	token := flag.String("token", "", "ERC-20 token contract address (required unless -demo)")
	startBlock := flag.Uint64("start-block", 0, "start block number (defaults to ~30 days ago)")
	endBlock := flag.Uint64("end-block", 0, "end block number (defaults to latest)")
	limit := flag.Int("limit", 0, "maximum number of traders in the leaderboard")
	demo := flag.Bool("demo", false, "run with canned sample data")
	serverMode := flag.Bool("server", false, "run as HTTP server")
	port := flag.String("port", "", "server port (overrides HTTP_PORT)")
	network := flag.String("network", "ethereum", "network to query (ethereum, arbitrum, polygon, optimism, base)")
	flag.Parse()

	cfg := config.LoadConfig()

	if *serverMode {
		addr := cfg.HTTPPort
		if *port != "" {
			addr = *port
		}
		runServer(cfg, addr)
		return
	}

	if !*demo && *token == "" {
		log.Fatal("Token address is required when not in demo mode. Use -token <ADDRESS> or -demo for sample data.")
	}

	q := model.LeaderboardQuery{
		TokenAddress: *token,
		Network:      *network,
		Limit:        *limit,
		Demo:         *demo,
	}
	if q.Limit == 0 {
		q.Limit = cfg.DefaultLimit
	}
	if *startBlock > 0 {
		q.StartBlock = startBlock
	}
	if *endBlock > 0 {
		q.EndBlock = endBlock
	}

	source := subgraph.NewClient(cfg.GraphAPIKey,
		subgraph.WithEndpoint(cfg.SubgraphURL),
		subgraph.WithBatchSize(cfg.BatchSize),
		subgraph.WithMaxSwaps(cfg.TargetSwaps),
		subgraph.WithTimeout(time.Duration(cfg.FetchTimeout)*time.Second),
	)
	svc := service.NewCachedLeaderboardService(source, nil, nil, nil, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	lb, err := svc.BuildLeaderboard(ctx, q)
	if err != nil {
		log.Fatalf("Failed to build leaderboard: %v", err)
	}

	if len(lb.Traders) == 0 {
		fmt.Println("No swaps found for the specified token and block range.")
		fmt.Println("Try -demo for sample output, or a different network with -network.")
		return
	}

	renderLeaderboard(os.Stdout, lb)
}

func runServer(cfg *config.Config, port string) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Setup signal handling for graceful shutdown
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigs
		log.Println("Shutting down...")
		cancel()
	}()

	log.Println("Initializing app...")
	application, err := app.NewApp(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize app: %v", err)
	}

	httpAddr := ":" + port
	httpServer := httphandlers.NewServer(httpAddr, application.Leaderboards, application.Broadcaster, application.SwapHistory())

	go func() {
		log.Printf("HTTP server listening on %s", httpAddr)
		log.Printf("API endpoint: http://localhost%s/api/leaderboard", httpAddr)
		if err := httpServer.Start(); err != nil {
			log.Printf("HTTP server error: %v", err)
		}
	}()

	<-ctx.Done()

	log.Println("Cleaning up app resources...")
	application.Cleanup(ctx)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	log.Println("Shutting down HTTP server...")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}

	log.Println("Service stopped.")
}
