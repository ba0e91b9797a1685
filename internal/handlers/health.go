package handlers

import "net/http"

// Root handles GET /.
func Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "YouAPI - YouTube Learning API"})
}

// Health handles GET /health for load balancer probes.
func Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
