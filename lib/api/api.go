package api

//go:generate go tool swag init --generalInfo api.go --output docs --outputTypes go

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/pprof"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/fosdem/gltriangle/lib/api/docs"
	"github.com/fosdem/gltriangle/lib/config"
	"github.com/fosdem/gltriangle/lib/metrics"
	"github.com/fosdem/gltriangle/lib/stats"
	"github.com/fosdem/gltriangle/lib/theatre"
)

// @title			gltriangle API
// @version		1.0
// @description	Remote control and status for the gltriangle renderer.
// @BasePath		/
type Api struct {
	srv     http.Server
	mux     *http.ServeMux
	cfg     *config.ApiCfg
	theatre *theatre.Theatre

	Stats *stats.Tracker

	wsMutex   sync.Mutex
	wsClients map[*websocket.Conn]*wsClient
}

func New(cfg *config.ApiCfg, t *theatre.Theatre, tracker *stats.Tracker) *Api {
	a := &Api{}
	a.cfg = cfg
	a.mux = http.NewServeMux()
	a.theatre = t
	a.Stats = tracker
	a.srv.Addr = cfg.Bind
	a.srv.Handler = a.mux
	a.wsClients = make(map[*websocket.Conn]*wsClient)

	for _, event := range []string{theatre.EventShutdown, theatre.EventReloadRequested, theatre.EventProgramReloaded} {
		t.AddEventListener(event, func(_ *theatre.Theatre, data interface{}) {
			a.broadcast(data)
		})
	}

	if a.cfg.EnableProfiler {
		a.mux.HandleFunc("GET /prof", a.profileCPU)
	}
	a.mux.HandleFunc("POST /api/kill", a.handleKill)
	a.mux.HandleFunc("POST /api/reload", a.handleReload)
	a.mux.HandleFunc("GET /api/stats", a.getStats)
	a.mux.HandleFunc("GET /api/ws", a.handleWebsocket)
	a.mux.Handle("GET /metrics", metrics.Handler())
	a.mux.Handle("GET /swagger/", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	docs.SwaggerInfo.Host = cfg.Bind
	return a
}

func (a *Api) Handler() http.Handler {
	return a.mux
}

func (a *Api) Serve() error {
	err := a.srv.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

func (a *Api) Shutdown(ctx context.Context) error {
	a.wsMutex.Lock()
	for ws := range a.wsClients {
		_ = ws.Close()
		delete(a.wsClients, ws)
	}
	a.wsMutex.Unlock()
	return a.srv.Shutdown(ctx)
}

// @Summary	Stop drawing and exit
// @Router		/api/kill [post]
// @Tags		control
// @Produce	json
// @Success	200	{string}	string	"ok"
func (a *Api) handleKill(w http.ResponseWriter, _ *http.Request) {
	a.theatre.RequestShutdown("api request")
	writeOk(w)
}

// @Summary	Rebuild the shader program from its source files
// @Router		/api/reload [post]
// @Tags		control
// @Produce	json
// @Success	200	{string}	string	"ok"
func (a *Api) handleReload(w http.ResponseWriter, _ *http.Request) {
	a.theatre.RequestReload("api request")
	writeOk(w)
}

// @Summary	Get renderer statistics
// @Router		/api/stats [get]
// @Tags		status
// @Produce	json
// @Success	200	{object}	stats.Stats
func (a *Api) getStats(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	encoder := json.NewEncoder(w)
	err := encoder.Encode(a.Stats.Snapshot())
	if err != nil {
		http.Error(w, fmt.Sprintf("could not encode stats: %s", err), http.StatusInternalServerError)
		return
	}
}

func (a *Api) profileCPU(w http.ResponseWriter, _ *http.Request) {
	err := pprof.StartCPUProfile(w)
	if err != nil {
		http.Error(w, fmt.Sprintf("Could not start CPU profile: %s", err), http.StatusInternalServerError)
		return
	}
	time.Sleep(10 * time.Second)
	pprof.StopCPUProfile()
}

func writeOk(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	_, err := fmt.Fprintf(w, "\"ok\"\n")
	if err != nil {
		log("could not write response: %s", err)
	}
}

func log(msg string, args ...interface{}) {
	slog.Info(fmt.Sprintf(msg, args...), slog.String("module", "api"))
}

// ServeInBackground starts the API when it is configured and returns nil
// otherwise.
func ServeInBackground(t *theatre.Theatre, tracker *stats.Tracker, cfg *config.ApiCfg) *Api {
	if cfg == nil {
		return nil
	}
	theApi := New(cfg, t, tracker)

	log("starting web server on %s", cfg.Bind)
	go func() {
		err := theApi.Serve()
		if err != nil {
			slog.Error(fmt.Sprintf("could not start web server: %s", err), slog.String("module", "api"))
		}
	}()
	return theApi
}
