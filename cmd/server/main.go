package main

import (
	"flag"
	"io"
	"log"
	"net/http"
	"time"

	"questhunt/internal/catalog"
	"questhunt/internal/config"
	"questhunt/internal/httpapi"
	"questhunt/internal/progress"
	"questhunt/internal/service"
	"questhunt/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config failed: %v", err)
	}

	host := flag.String("host", cfg.Host, "server listen host, e.g. 0.0.0.0")
	port := flag.Int("port", cfg.Port, "server listen port, e.g. 8080")
	flag.Parse()
	cfg.Host = *host
	cfg.Port = *port

	c, err := catalog.Load()
	if err != nil {
		log.Fatalf("load project catalog failed: %v", err)
	}
	engine, err := progress.NewEngine()
	if err != nil {
		log.Fatalf("load trophy rules failed: %v", err)
	}

	st, err := store.NewByEngine(cfg.StoreEngine, cfg.DataPath)
	if err != nil {
		log.Fatalf("init store failed: %v", err)
	}
	if closer, ok := st.(io.Closer); ok {
		defer func() {
			if err := closer.Close(); err != nil {
				log.Printf("store close failed: %v", err)
			}
		}()
	}

	svc, err := service.New(st, c, engine, cfg.QuestSize, cfg.MaxSuggestions)
	if err != nil {
		log.Fatalf("init service failed: %v", err)
	}
	handler := httpapi.NewHandler(svc)
	router := httpapi.NewRouter(handler)

	addr := cfg.ListenAddr()
	server := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	log.Printf("quest hunt backend listening on %s (store=%s path=%s)", addr, cfg.StoreEngine, cfg.DataPath)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server failed: %v", err)
	}
}
