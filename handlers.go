package main

import (
	"fmt"
	"net/http"

	"github.com/spencer-p/oceantrends/pkg/pipeline"
)

func handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Add("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintf(w, "ocean trends\n\n")
	fmt.Fprintf(w, "GET api/v1/aligned       aligned tide, wave and temperature rows\n")
	fmt.Fprintf(w, "GET api/v1/spikes?k=2    wave spikes above mean + k standard deviations\n")
	for _, c := range pipeline.Consumers {
		fmt.Fprintf(w, "GET plot/%s\n", c)
	}
}

func handleHealthz(w http.ResponseWriter, r *http.Request) {
	fmt.Fprintf(w, "ok\n")
}
