// Command scoreserver serves a trained autoencoder over
// HTTP: feature rows in, reconstruction errors and an
// anomaly ranking out.
package main

import (
	"encoding/json"
	"flag"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/dirkdupont/autorec"
	"github.com/dirkdupont/autorec/rank"
	"github.com/dirkdupont/autorec/sample"
	"github.com/gorilla/mux"
	"github.com/unixpickle/anyvec/anyvec32"
	"github.com/unixpickle/serializer"
)

type scoreRequest struct {
	Rows [][]float64 `json:"rows"`
}

type scoreResponse struct {
	Errors []float64 `json:"errors"`
	Order  []int     `json:"order"`
	Cutoff float64   `json:"cutoff"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Handler holds the trained model behind the HTTP
// endpoints.
type Handler struct {
	Model    *autorec.Autoencoder
	Quantile float64
}

// HandleScore handles POST /score requests.
func (h *Handler) HandleScore(w http.ResponseWriter, r *http.Request) {
	var req scoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON: " + err.Error()})
		return
	}
	for _, row := range req.Rows {
		if len(row) != h.Model.InCount {
			err := &autorec.ShapeError{InCount: h.Model.InCount, Len: len(row)}
			sendJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
	}

	creator := anyvec32.CurrentCreator()
	rows := sample.NewSliceList(creator, req.Rows)
	_, errs, err := h.Model.Score(sample.Pack(creator, rows))
	if err != nil {
		sendJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	sendJSON(w, http.StatusOK, scoreResponse{
		Errors: errs,
		Order:  rank.Rank(errs),
		Cutoff: rank.Summarize(errs, h.Quantile).Cutoff,
	})
}

// HandleHealth handles GET /health requests.
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	sendJSON(w, http.StatusOK, map[string]int{
		"inputDim":  h.Model.InCount,
		"hiddenDim": h.Model.HiddenCount,
	})
}

func sendJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s - %v", r.Method, r.URL.Path, time.Since(start))
	})
}

func newRouter(handler *Handler) *mux.Router {
	r := mux.NewRouter()
	r.Use(loggingMiddleware)
	r.HandleFunc("/score", handler.HandleScore).Methods("POST")
	r.HandleFunc("/health", handler.HandleHealth).Methods("GET")
	return r
}

func main() {
	var addr string
	var modelPath string
	var quantile float64
	flag.StringVar(&addr, "addr", ":8002", "address to listen on")
	flag.StringVar(&modelPath, "model", "", "path to a serialized model (required)")
	flag.Float64Var(&quantile, "quantile", 0.99, "quantile for the anomaly cutoff")
	flag.Parse()

	if modelPath == "" {
		flag.Usage()
		os.Exit(1)
	}

	data, err := os.ReadFile(modelPath)
	if err != nil {
		log.Fatalln("read model:", err)
	}
	var model *autorec.Autoencoder
	if err := serializer.DeserializeAny(data, &model); err != nil {
		log.Fatalln("load model:", err)
	}

	handler := &Handler{Model: model, Quantile: quantile}
	router := newRouter(handler)

	log.Printf("Serving %dx%d autoencoder on %s", model.InCount,
		model.HiddenCount, addr)
	log.Printf("   POST /score  - score rows")
	log.Printf("   GET  /health - model info")
	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatalln("serve:", err)
	}
}
