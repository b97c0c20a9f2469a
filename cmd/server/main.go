package main

import (
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"chipsim/internal/api"
	"chipsim/internal/config"
	"chipsim/internal/replay"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load("../.env"); err != nil {
		if err := godotenv.Load(".env"); err != nil {
			log.Println("💡 No .env file found, using environment variables only")
		}
	} else {
		log.Println("✅ Loaded environment from ../.env")
	}

	log.Println("🧩 ================================")
	log.Println("🧩  CHIPSIM - DETERMINISTIC PUZZLE ENGINE")
	log.Println("🧩 ================================")

	appConfig := config.Load()
	tickCfg := appConfig.Tick
	serverCfg := appConfig.Server
	limits := appConfig.Limits

	log.Printf("🧩 Tick rate: %d/sec (time-up grace: %d ticks)", tickCfg.TicksPerSecond, tickCfg.TimeUpGrace)
	log.Printf("🛡️ Resource limits: %d entities, %d sessions, %d field tiles, %d replay bytes",
		limits.MaxEntities, limits.MaxSessions, limits.MaxFieldWidth*limits.MaxFieldHeight, limits.MaxReplayBytes)

	replayStore, err := replay.NewStore(appConfig.Replay.StorageDir)
	if err != nil {
		log.Fatalf("📼 Failed to open replay store: %v", err)
	}
	log.Printf("📼 Replay store: %s", appConfig.Replay.StorageDir)

	levels := api.NewLevelStore()
	hub := api.NewHub()

	if os.Getenv("DISABLE_DEBUG_SERVER") != "true" {
		debugCfg := api.DefaultObservabilityConfig()
		debugCfg.ListenAddr = "127.0.0.1:" + strconv.Itoa(serverCfg.DebugPort)
		if err := api.StartDebugServer(debugCfg); err != nil {
			log.Printf("⚠️ Debug server disabled: %v", err)
		}
	}

	server := api.NewServer(levels, hub, replayStore, tickCfg.TicksPerSecond)

	addr := ":" + strconv.Itoa(serverCfg.Port)
	go func() {
		log.Printf("🌐 HTTP+WebSocket server on http://localhost%s", addr)
		log.Printf("🌐 Upload a level:  POST http://localhost%s/api/levels", addr)
		log.Printf("🌐 Play a session:  GET  ws://localhost%s/ws/play/<level-name>", addr)
		if err := server.Start(addr); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	log.Println("✅ Server ready! Press Ctrl+C to stop.")
	<-quit

	log.Println("🛑 Shutting down...")
	server.Stop()
	log.Println("👋 Goodbye!")
}
