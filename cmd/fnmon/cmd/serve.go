package cmd

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/spf13/cobra"

	"github.com/psantana5/fnmon/internal/demo"
	"github.com/psantana5/fnmon/internal/shutdown"
	"github.com/psantana5/fnmon/pkg/logging"
	"github.com/psantana5/fnmon/pkg/metrics"
	"github.com/psantana5/fnmon/pkg/monitor"
)

var listenAddr string

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the monitored example API with Prometheus metrics",
	Long: `Start an HTTP server exposing the monitored create_user function at
POST /users, Prometheus metrics at /metrics, and a health check at /healthz.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&listenAddr, "listen", ":8090", "listen address")
}

func runServe(cmd *cobra.Command, args []string) error {
	logger := logging.Default()
	recorder := metrics.NewRecorder(nil)

	opts := cfg.Options()
	// The HTTP layer branches on the envelope, so raw mode is forced off.
	opts.ReturnRawResult = false

	createUser, err := monitor.Wrap(
		monitor.Func1("create_user", "user_data", demo.CreateUser),
		opts,
		monitor.Collaborators{Metrics: recorder})
	if err != nil {
		return fmt.Errorf("failed to wrap create_user: %w", err)
	}

	router := mux.NewRouter()
	router.Handle("/metrics", metrics.Handler()).Methods("GET")
	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "ok")
	}).Methods("GET")
	router.HandleFunc("/users", handleCreateUser(createUser)).Methods("POST")

	server := &http.Server{
		Addr:         listenAddr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	mgr := shutdown.New(15*time.Second, logger)
	mgr.Register(server.Shutdown)

	go func() {
		logger.Info("server listening", map[string]interface{}{"addr": listenAddr})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server failed", map[string]interface{}{"error": err.Error()})
		}
	}()

	mgr.Wait()
	mgr.Shutdown()
	return nil
}

// handleCreateUser feeds the request body through the monitored function
// and answers with the full envelope.
func handleCreateUser(wrapped *monitor.Wrapped) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			http.Error(w, fmt.Sprintf("invalid JSON body: %v", err), http.StatusBadRequest)
			return
		}

		out := wrapped.CallNamed(map[string]interface{}{"user_data": payload})
		res, ok := out.(*monitor.Result)
		if !ok {
			http.Error(w, "unexpected wrapper response", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if res.Failed() {
			w.WriteHeader(http.StatusUnprocessableEntity)
		}
		if err := json.NewEncoder(w).Encode(res); err != nil {
			logging.Default().Error("failed to write response", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}
}
