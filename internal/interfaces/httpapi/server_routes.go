package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, swaggerEnabled bool, metrics http.Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if metrics != nil {
		mux.Handle("GET /metrics", metrics)
	}
	if !swaggerEnabled {
		return
	}

	mux.HandleFunc("GET /openapi.yaml", handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

func registerProviderRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/providers", handler.ListProviders)
	mux.HandleFunc("POST /v1/providers/{provider}/validate", handler.ValidateProviderAuth)
}

func registerOAuthRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/oauth/{provider}/authorize-url", handler.GetOAuthURL)
	mux.HandleFunc("POST /v1/oauth/{provider}/token", handler.ExchangeOAuthCode)
}

func registerSyncRoutes(mux *http.ServeMux, handler *Handler) {
	// Inline credentials in the body win over stored ones.
	mux.HandleFunc("POST /v1/users/{userID}/sync", handler.SyncUser)
}
