package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/KartikZCoding/campusgate/internal/accounts"
	"github.com/KartikZCoding/campusgate/internal/api"
	"github.com/KartikZCoding/campusgate/internal/audit"
	"github.com/KartikZCoding/campusgate/internal/config"
	"github.com/KartikZCoding/campusgate/internal/core"
	"github.com/KartikZCoding/campusgate/internal/issuer"
	"github.com/KartikZCoding/campusgate/internal/schemes"
	"github.com/KartikZCoding/campusgate/internal/service"
	"github.com/KartikZCoding/campusgate/internal/store"
	"github.com/KartikZCoding/campusgate/internal/validation"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the Campusgate server",
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")

		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if addr == "" {
			addr = cfg.Server.Addr
		}

		policies := make([]core.PolicyCredentials, 0, len(cfg.Policies))
		for _, p := range cfg.Policies {
			policies = append(policies, p.Credentials())
		}

		log.Info().Msg("Initializing account source...")
		source, err := accounts.BuildSource(cfg.Accounts)
		if err != nil {
			return fmt.Errorf("building account source: %w", err)
		}

		log.Info().Msg("Initializing verification schemes...")
		registry, err := schemes.BuildRegistry(cmd.Context(), policies, cfg.Schemes)
		if err != nil {
			return fmt.Errorf("building scheme registry: %w", err)
		}
		log.Info().Strs("schemes", registry.Names()).Msg("Verification schemes ready")

		auditor, err := audit.Build(cfg.Audit)
		if err != nil {
			return fmt.Errorf("building auditor: %w", err)
		}
		defer func() {
			if err := auditor.Close(); err != nil {
				log.Error().Err(err).Msg("closing auditor")
			}
		}()

		tokenIssuer := issuer.New(policies, source, cfg.Auth.TokenTTL)
		authService := service.NewAuthService(tokenIssuer, auditor)

		srv := api.NewServer(registry, authService, store.NewInMemoryStudentStore(), auditor)

		// endpoint bindings must reference configured schemes
		if err := validation.ValidateBindings(srv.Bindings(), cfg.SchemeNames()); err != nil {
			return fmt.Errorf("validating endpoint bindings: %w", err)
		}

		server := &http.Server{
			Addr:    addr,
			Handler: srv.Routes(),
		}

		go func() {
			log.Info().Msgf("Starting server on %s...", addr)
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Fatal().Err(err).Msg("Server crashed")
			}
		}()

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		log.Info().Msg("Shutting down server...")

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}

		log.Info().Msg("Server exited")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	bindConfigFlag(serveCmd.Flags())
	serveCmd.Flags().String("addr", "", "address to listen on (overrides config)")
}
