package main

import (
	"encoding/json"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/initguard/initguard/internal/initguard/config"
	"github.com/initguard/initguard/internal/initguard/logger"
	"github.com/initguard/initguard/pkg/httpauth"
	"github.com/initguard/initguard/pkg/initdata"
)

var (
	serveFlagAddr    string
	serveFlagToken   string
	serveFlagProfile string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run a demo HTTP server that authenticates requests via init data",
	Long: `Serve exposes /me behind the init data middleware. Send the signed string
as "Authorization: tma <init-data>", "Authorization: Bearer <init-data>" or
in the X-Telegram-Init-Data header.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveFlagAddr, "addr", "", "listen address (default from config, :8080)")
	serveCmd.Flags().StringVar(&serveFlagToken, "token", "", "bot token")
	serveCmd.Flags().StringVar(&serveFlagProfile, "profile", "", "named profile from the profiles file")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.Get()
	log := logger.L()

	token, err := resolveToken(serveFlagToken, serveFlagProfile)
	if err != nil {
		return err
	}
	addr := serveFlagAddr
	if addr == "" {
		addr = cfg.Server.Addr
	}

	me := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		d, _ := httpauth.FromContext(r.Context())
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(struct {
			User     *initdata.User `json:"user"`
			AuthDate int64          `json:"auth_date"`
			QueryID  string         `json:"query_id,omitempty"`
		}{User: d.User, AuthDate: d.AuthDate.Unix(), QueryID: d.QueryID})
	})

	mux := http.NewServeMux()
	mux.Handle("/me", httpauth.Middleware(httpauth.Config{
		Token:   token,
		Header:  cfg.Server.Header,
		Options: &initdata.Options{ExpiresIn: cfg.ExpiresIn(), SkewAllowance: cfg.SkewAllowance()},
		Logger:  log,
	}, me))
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	log.Infow("serve: listening", "addr", addr)
	return http.ListenAndServe(addr, mux)
}
