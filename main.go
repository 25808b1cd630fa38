package main

import (
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/spencer-p/oceantrends/pkg/handlers"
	"github.com/spencer-p/oceantrends/pkg/metrics"
	"github.com/spencer-p/oceantrends/pkg/pipeline"
)

func main() {
	env, err := pipeline.ConfigFromEnv()
	if err != nil {
		log.Fatalf("[ERROR] %v", err)
	}

	r := mux.NewRouter().StrictSlash(true)
	r.Use(metrics.LatencyHandler)
	s := r.PathPrefix(env.Prefix).Subrouter()

	s.HandleFunc("/", handleIndex)
	s.HandleFunc("/healthz", handleHealthz)
	s.Handle("/metrics", promhttp.Handler())
	handlers.Register(s, env, handlers.LiveRunner)

	srv := &http.Server{
		Handler: r,
		Addr:    "0.0.0.0:" + env.Port,
		// Upstream fetches alone may take RequestTimeout per attempt.
		WriteTimeout: env.RequestTimeout*time.Duration(3*(env.Retries+1)) + 15*time.Second,
		ReadTimeout:  15 * time.Second,
	}
	log.Printf("[INFO] Listening and serving on %s/%s", srv.Addr, env.Prefix[1:])
	log.Fatal(srv.ListenAndServe())
}
