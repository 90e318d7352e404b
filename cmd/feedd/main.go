package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"

	"github.com/joripage/nbbo-book/config"
	"github.com/joripage/nbbo-book/pkg/feed"
	fixgateway "github.com/joripage/nbbo-book/pkg/feed/fix"
	redis_wrapper "github.com/joripage/nbbo-book/pkg/infra/redis"
	"github.com/joripage/nbbo-book/pkg/logging"
	"go.uber.org/zap"
)

func main() {
	go func() {
		http.ListenAndServe("localhost:6060", nil) // nolint
	}()

	var configFile string
	flag.StringVar(&configFile, "config-file", "", "Specify config file path")
	flag.Parse()

	cfg, err := config.Load(configFile)
	if err != nil {
		panic(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	logger, ctx := logging.GetLogger(ctx)
	defer logger.Sync() // nolint
	logger.Info(ctx, "starting feed handler", zap.String("service", cfg.ServiceName))

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	gateway := fixgateway.NewFixGateway(&fixgateway.FixGatewayConfig{
		ConfigFilepath: cfg.Fix.ConfigFilepath,
	})
	feedSvc := feed.NewFeed(gateway)
	gateway.AddFeedInstance(feedSvc)

	if cfg.Publisher != nil {
		publisher, err := feed.NewPublisher(cfg.Publisher)
		if err != nil {
			zap.S().Errorf("init publisher fail with err: %v", err)
			panic(err)
		}
		feedSvc.SetPublisher(publisher)
		defer publisher.Close(ctx) // nolint
	}

	if cfg.Redis != nil {
		redisClient, err := redis_wrapper.InitRedis(cfg.Redis)
		if err != nil {
			zap.S().Errorf("init redis fail with err: %v", err)
			panic(err)
		}
		feedSvc.SetCache(feed.NewNbboCache(redisClient))
	}

	if err := feedSvc.Start(ctx); err != nil {
		panic(err)
	}
	fmt.Println("Feed handler started. Press Ctrl+C to exit.")

	<-sigs
	fmt.Println("Shutting down...")

	gateway.Stop()
	cancel()

	fmt.Println("Exited cleanly.")
}
