package main

import (
	"log"
	"net"
	"strings"

	"slights/config"
	"slights/handlers"
	"slights/middleware"
	"slights/routes"
	"slights/services"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const releaseVersion = "0.1.0"

func main() {
	cobra.CheckErr(newCmd().Execute())
}

func newCmd() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("SLIGHTS")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	config.SetDefaults(v)

	cmd := &cobra.Command{
		Use:     "slights",
		Short:   "Backend for the Slights party card game: a KV proxy plus room actions over a hosted key-value store.",
		Args:    cobra.ExactArgs(0),
		Version: releaseVersion,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(config.Load(v))
		},
	}

	fs := cmd.Flags()
	fs.StringP("bind", "b", "0.0.0.0", "address to bind to (env: SLIGHTS_BIND)")
	fs.StringP("port", "p", "8080", "port to listen on (env: SLIGHTS_PORT)")
	fs.String("redis-addr", "", "redis host:port for direct store access (env: SLIGHTS_REDIS_ADDR)")
	fs.String("redis-password", "", "redis password (env: SLIGHTS_REDIS_PASSWORD)")
	fs.String("kv-rest-url", "", "base URL of the hosted KV REST API (env: SLIGHTS_KV_REST_URL)")
	fs.String("kv-rest-token", "", "bearer token for the hosted KV REST API (env: SLIGHTS_KV_REST_TOKEN)")
	fs.Bool("memory", false, "use an in-memory store, for local play (env: SLIGHTS_MEMORY)")
	fs.String("cors-origin", "*", "value for Access-Control-Allow-Origin (env: SLIGHTS_CORS_ORIGIN)")
	fs.Duration("room-poll-interval", v.GetDuration("room-poll-interval"), "client snapshot poll interval (env: SLIGHTS_ROOM_POLL_INTERVAL)")
	fs.Duration("winner-poll-interval", v.GetDuration("winner-poll-interval"), "winner reveal poll interval (env: SLIGHTS_WINNER_POLL_INTERVAL)")
	fs.Duration("reveal-timeout", v.GetDuration("reveal-timeout"), "time before a reveal auto-advances to the scoreboard (env: SLIGHTS_REVEAL_TIMEOUT)")

	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
	})

	cmd.SetVersionTemplate("slights v{{.Version}}\n")
	cmd.SilenceUsage = true

	return cmd
}

func serve(cfg *config.Config) error {
	store, backend, err := config.InitStore(cfg)
	if err != nil {
		return err
	}
	log.Printf("Using %s store backend", backend)

	roomService := services.NewRoomService(store)

	kvHandler := handlers.NewKVHandler(store)
	roomHandler := handlers.NewRoomHandler(roomService)
	configHandler := handlers.NewConfigHandler(handlers.ClientConfig{
		RoomPollInterval:   cfg.RoomPollInterval,
		WinnerPollInterval: cfg.WinnerPollInterval,
		RevealTimeout:      cfg.RevealTimeout,
	})

	router := gin.Default()
	router.Use(middleware.RequestID())
	router.Use(middleware.CORS(cfg.CORSOrigin))

	routes.SetupRoutes(router, kvHandler, roomHandler, configHandler)

	addr := net.JoinHostPort(cfg.BindAddress, cfg.Port)
	log.Printf("Server starting on %s", addr)
	return router.Run(addr)
}
