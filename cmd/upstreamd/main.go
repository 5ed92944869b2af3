// upstreamd is a mock of the external data service for local development:
// it serves the testkit panel on the same read endpoints the dashboard's
// upstream client consumes.
package main

import (
	"encoding/json"
	"log"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"switchscope/domain/core"
	"switchscope/internal/testkit"
)

func main() {
	kit := testkit.NewKit()

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/api/hcps/{id}", func(w http.ResponseWriter, req *http.Request) {
		summary, _ := kit.HCPSummary(req.Context(), hcpID(req))
		writeJSON(w, summary)
	})
	r.Get("/api/hcps/{id}/patients", func(w http.ResponseWriter, req *http.Request) {
		patients, _ := kit.Patients(req.Context(), hcpID(req))
		writeJSON(w, patients)
	})
	r.Get("/api/hcps/{id}/events", func(w http.ResponseWriter, req *http.Request) {
		events, _ := kit.Events(req.Context(), hcpID(req))
		writeJSON(w, events)
	})
	r.Get("/api/prescription-history/{id}", func(w http.ResponseWriter, req *http.Request) {
		history, _ := kit.PrescriptionHistory(req.Context(), hcpID(req))
		writeJSON(w, history)
	})
	r.Get("/api/hcps/{id}/prescription-trends", func(w http.ResponseWriter, req *http.Request) {
		trends, _ := kit.PrescriptionTrends(req.Context(), hcpID(req))
		writeJSON(w, trends)
	})
	r.Post("/api/ai/investigate/{id}", func(w http.ResponseWriter, req *http.Request) {
		hs, _ := kit.Generate(req.Context(), hcpID(req))
		writeJSON(w, map[string]interface{}{"allHypotheses": hs})
	})
	r.Post("/api/ai/confirm-investigation/{id}", func(w http.ResponseWriter, req *http.Request) {
		var body struct {
			ConfirmedHypotheses []string `json:"confirmedHypotheses"`
		}
		_ = json.NewDecoder(req.Body).Decode(&body)
		writeJSON(w, map[string]int{"confirmedCount": len(body.ConfirmedHypotheses)})
	})
	r.Get("/api/ai/nba-results/{id}", func(w http.ResponseWriter, req *http.Request) {
		strategies, _ := kit.Strategies(req.Context(), hcpID(req))
		writeJSON(w, map[string]interface{}{"strategies": strategies})
	})

	port := os.Getenv("UPSTREAM_PORT")
	if port == "" {
		port = "9090"
	}
	log.Printf("mock upstream listening on :%s", port)
	if err := http.ListenAndServe(":"+port, r); err != nil {
		log.Fatal(err)
	}
}

func hcpID(req *http.Request) core.HCPID {
	return core.HCPID(chi.URLParam(req, "id"))
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, "encode failed", http.StatusInternalServerError)
	}
}
