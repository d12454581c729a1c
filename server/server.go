package server

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"flag"
	"net/http"
	"time"

	"github.com/ducksouplab/motion/env"
	"github.com/ducksouplab/motion/helpers"
	"github.com/ducksouplab/motion/stats"
	"github.com/ducksouplab/motion/store"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

var (
	cert     = flag.String("cert", "", "cert file")
	key      = flag.String("key", "", "key file")
	upgrader = websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return helpers.Contains(env.AllowedWSOrigins, origin)
		},
	}
)

func init() {
	log.Info().Str("context", "init").Strs("origins", env.AllowedWSOrigins).Msg("allowed_ws_origins")
}

// handle incoming websockets
func websocketHandler(w http.ResponseWriter, r *http.Request) {
	origin := r.Header.Get("Origin")
	// upgrade HTTP request to Websocket
	unsafeConn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Str("context", "signaling").Str("origin", origin).Err(err).Msg("upgrade_failed")
		return
	}

	stats.RunStatsServer(unsafeConn, origin) // blocking
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Str("context", "api").Err(err).Msg("response_failed")
	}
}

func listHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, store.Inspect())
}

func getHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	for _, s := range store.Inspect() {
		if s.ID == id {
			writeJSON(w, http.StatusOK, s)
			return
		}
	}
	http.Error(w, "Not Found", http.StatusNotFound)
}

func controlHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	err := store.Control(vars["id"], vars["action"])
	switch {
	case errors.Is(err, store.ErrNotFound):
		http.Error(w, "Not Found", http.StatusNotFound)
	case errors.Is(err, store.ErrUnsupported):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case err != nil:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	default:
		e, _ := store.Get(vars["id"])
		writeJSON(w, http.StatusOK, e.Inspect())
	}
}

func basicAuthWith(refLogin, refPassword string) mux.MiddlewareFunc {
	// source https://www.alexedwards.net/blog/basic-authentication-in-go
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			login, password, ok := r.BasicAuth()
			if ok {
				// Calculate SHA-256 hashes for the provided and expected usernames and passwords.
				loginHash := sha256.Sum256([]byte(login))
				passwordHash := sha256.Sum256([]byte(password))
				expectedLoginHash := sha256.Sum256([]byte(refLogin))
				expectedPasswordHash := sha256.Sum256([]byte(refPassword))

				loginMatch := (subtle.ConstantTimeCompare(loginHash[:], expectedLoginHash[:]) == 1)
				passwordMatch := (subtle.ConstantTimeCompare(passwordHash[:], expectedPasswordHash[:]) == 1)

				if loginMatch && passwordMatch {
					next.ServeHTTP(w, r)
					return
				}
			}

			w.Header().Set("WWW-Authenticate", `Basic realm="restricted", charset="UTF-8"`)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
		})
	}
}

// API

func NewRouter() *mux.Router {
	router := mux.NewRouter()
	// stats websocket with basic auth, since clients may control engines through it
	statsAuth := basicAuthWith(env.StatsLogin, env.StatsPassword)
	router.Handle(env.WebPrefix+"/ws", statsAuth(http.HandlerFunc(websocketHandler)))

	// engine API with basic auth
	apiRouter := router.PathPrefix(env.WebPrefix + "/api").Subrouter()
	apiRouter.Use(statsAuth)
	apiRouter.HandleFunc("/engines", listHandler).Methods("GET")
	apiRouter.HandleFunc("/engines/{id}", getHandler).Methods("GET")
	apiRouter.HandleFunc("/engines/{id}/{action:play|pause|resume|replay|terminate|reset}", controlHandler).Methods("POST")

	return router
}

func ListenAndServe() {
	// parse the flags passed to program
	flag.Parse()

	server := &http.Server{
		Handler:      NewRouter(),
		Addr:         ":" + env.Port,
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
	}

	// start HTTP server
	if *key != "" && *cert != "" {
		log.Info().Str("context", "init").Str("port", env.Port).Msg("https_server_started")
		log.Fatal().Err(server.ListenAndServeTLS(*cert, *key)).Msg("app_crashed") // blocking
	} else {
		log.Info().Str("context", "init").Str("port", env.Port).Msg("http_server_started")
		log.Fatal().Err(server.ListenAndServe()).Msg("app_crashed") // blocking
	}
}
