// Package main provides the ScanBench desktop server. The desktop UI talks
// to it over REST on localhost and receives display updates over WebSocket.
package main

import (
	"net/http"
	"os"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/retailqa/scanbench/backend/cmd/desktop/handlers"
	"github.com/retailqa/scanbench/backend/internal/catalog"
	"github.com/retailqa/scanbench/backend/internal/logging"
	"github.com/retailqa/scanbench/backend/internal/rotation"
)

// Version is set at build time
var Version = "0.1.0"

func main() {
	logging.Init(os.Stdout, logging.LevelInfo)

	addr := envOr("SCANBENCH_ADDR", "localhost:8090")
	dataDir := envOr("SCANBENCH_DATA", "./data")
	interval := envFloat("SCANBENCH_INTERVAL", 10)

	db, err := catalog.Open(dataDir)
	if err != nil {
		logging.Error("failed to open catalog database", err)
		os.Exit(1)
	}
	defer db.Close()

	repo := catalog.NewRepository(db.DB)
	defer repo.Close()

	hub := NewDisplayHub()

	engine := rotation.NewEngine(rotation.Config{
		Demo:            catalog.NewDemoSequence(),
		Activity:        repo,
		Sink:            hub,
		IntervalSeconds: interval,
	})
	defer engine.Stop()

	router := newRouter(repo, engine, hub)

	logging.Info("ScanBench desktop server starting", map[string]interface{}{
		"version": Version,
		"addr":    addr,
		"data":    dataDir,
	})
	if err := http.ListenAndServe(addr, router); err != nil {
		logging.Error("server stopped", err)
		os.Exit(1)
	}
}

func newRouter(repo *catalog.Repository, engine *rotation.Engine, hub *DisplayHub) *mux.Router {
	catalogH := handlers.NewCatalogHandler(repo, engine)
	rotationH := handlers.NewRotationHandler(engine, repo)
	codesH := handlers.NewCodesHandler()

	r := mux.NewRouter()

	r.HandleFunc("/api/health", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok","service":"scanbench-desktop"}`))
	}).Methods("GET")

	// Catalog
	r.HandleFunc("/api/folders", catalogH.ListFolders).Methods("GET")
	r.HandleFunc("/api/folders", catalogH.CreateFolder).Methods("POST")
	r.HandleFunc("/api/folders/{id}", catalogH.GetFolder).Methods("GET")
	r.HandleFunc("/api/folders/{id}", catalogH.DeleteFolder).Methods("DELETE")
	r.HandleFunc("/api/folders/{id}/items", catalogH.ListItems).Methods("GET")
	r.HandleFunc("/api/items", catalogH.CreateItem).Methods("POST")
	r.HandleFunc("/api/items/{id}", catalogH.GetItem).Methods("GET")
	r.HandleFunc("/api/items/{id}", catalogH.DeleteItem).Methods("DELETE")
	r.HandleFunc("/api/items/{id}/active", catalogH.SetItemActive).Methods("PUT")
	r.HandleFunc("/api/activity", catalogH.ListActivity).Methods("GET")

	// Rotation
	r.HandleFunc("/api/rotation/start", rotationH.Start).Methods("POST")
	r.HandleFunc("/api/rotation/stop", rotationH.Stop).Methods("POST")
	r.HandleFunc("/api/rotation/pause", rotationH.Pause).Methods("POST")
	r.HandleFunc("/api/rotation/resume", rotationH.Resume).Methods("POST")
	r.HandleFunc("/api/rotation/next", rotationH.Next).Methods("POST")
	r.HandleFunc("/api/rotation/prev", rotationH.Prev).Methods("POST")
	r.HandleFunc("/api/rotation/demo", rotationH.Demo).Methods("POST")
	r.HandleFunc("/api/rotation/interval", rotationH.SetInterval).Methods("PUT")
	r.HandleFunc("/api/rotation/composite", rotationH.SetComposite).Methods("PUT")
	r.HandleFunc("/api/rotation/status", rotationH.Status).Methods("GET")
	r.HandleFunc("/api/rotation/modes", rotationH.Modes).Methods("GET")

	// One-off encoders
	r.HandleFunc("/api/codes/datamatrix", codesH.DataMatrix).Methods("POST")
	r.HandleFunc("/api/codes/weight", codesH.Weight).Methods("POST")
	r.HandleFunc("/api/codes/gs1", codesH.GS1).Methods("POST")
	r.HandleFunc("/api/codes/simple", codesH.Simple).Methods("POST")
	r.HandleFunc("/api/codes/field", codesH.FieldConfig).Methods("POST")
	r.HandleFunc("/api/codes/corrupt", codesH.Corrupt).Methods("POST")
	r.HandleFunc("/api/codes/extract", codesH.Extract).Methods("POST")
	r.HandleFunc("/api/codes/templates", codesH.Templates).Methods("GET")
	r.HandleFunc("/api/codes/fieldconfigs", codesH.FieldConfigs).Methods("GET")
	r.HandleFunc("/api/codes/mutations", codesH.MutationMethods).Methods("GET")

	// Display surface
	r.HandleFunc("/ws", hub.HandleWS)

	return r
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			return f
		}
	}
	return fallback
}
