package main

import (
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"cribbage/internal/server"
	"cribbage/internal/stats"
)

func main() {
	addr := ":8080"
	if v := os.Getenv("ADDR"); v != "" {
		addr = v
	}
	dbPath := "data/stats.db"
	if v := os.Getenv("STATS_DB"); v != "" {
		dbPath = v
	}
	sessionTTL := 2 * time.Hour
	if v := os.Getenv("SESSION_TTL_SECONDS"); v != "" {
		secs, err := strconv.Atoi(v)
		if err != nil {
			log.Fatalf("invalid SESSION_TTL_SECONDS: %v", err)
		}
		sessionTTL = time.Duration(secs) * time.Second
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		log.Fatal(err)
	}
	statsStore, err := stats.Open(dbPath)
	if err != nil {
		log.Fatal(err)
	}
	defer statsStore.Close()

	sessions := server.NewManager(sessionTTL)
	handler := server.NewHandler(sessions, statsStore)
	lobby := server.NewLobby(statsStore, time.Now().UnixNano())

	go func() {
		for range time.Tick(time.Minute) {
			if n := sessions.Cleanup(); n > 0 {
				log.Printf("expired %d sessions", n)
			}
		}
	}()

	mux := http.NewServeMux()
	handler.Register(mux)
	mux.HandleFunc("/ws", lobby.WSHandler)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// Serve frontend build with SPA fallback
	webDist := filepath.Join("web", "dist")
	mux.Handle("/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := filepath.Join(webDist, filepath.Clean(r.URL.Path))
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			http.ServeFile(w, r, path)
			return
		}
		http.ServeFile(w, r, filepath.Join(webDist, "index.html"))
	}))

	log.Printf("listening on %s", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatal(err)
	}
}
