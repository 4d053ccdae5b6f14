package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/usermenei/E-ses/internal/handlers"
	"github.com/usermenei/E-ses/internal/repository"
	"github.com/usermenei/E-ses/internal/service"
	"github.com/usermenei/E-ses/pkg/auth"
	"github.com/usermenei/E-ses/pkg/config"
	"github.com/usermenei/E-ses/pkg/db"
	"github.com/usermenei/E-ses/pkg/mq"
	"github.com/usermenei/E-ses/pkg/obs"
)

func must[T any](v T, err error) T {
	if err != nil {
		log.Fatal(err)
	}
	return v
}

func main() {
	_ = godotenv.Load()
	cfg := must(config.Load())

	if cfg.OtelEnabled {
		shutdown := obs.InitTracer("coworking-api", cfg.OtelEndpoint, cfg.Env)
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = shutdown(ctx)
		}()
	}

	gdb := must(db.Open(cfg.PGDSN))
	defer func() { _ = db.Close(gdb) }()

	users := repository.NewUserRepo(gdb)
	spaces := repository.NewSpaceRepo(gdb)
	reservations := repository.NewReservationRepo(gdb)
	must(0, users.Migrate())
	must(0, spaces.Migrate())
	must(0, reservations.Migrate())

	var pub *mq.Publisher
	if cfg.RabbitURL != "" {
		pub = must(mq.NewPublisher(cfg.RabbitURL, cfg.ReservationExchange))
		defer pub.Close()
	}

	tokens := auth.NewManager(cfg.JWTSecret)
	authSvc := service.NewAuthSvc(users, tokens, time.Duration(cfg.JWTExpireMin)*time.Minute)
	spaceSvc := service.NewSpaceSvc(spaces)
	resvSvc := service.NewReservationSvc(reservations, spaces, pub)

	ah := handlers.NewAuthHandler(authSvc, cfg.JWTCookieExpireDays*24*3600, cfg.CookieSecure)
	sh := handlers.NewSpaceHandler(spaceSvc)
	rh := handlers.NewReservationHandler(resvSvc)
	router := handlers.SetupRouter(tokens, ah, sh, rh)

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}
	go func() {
		log.Println("api listening on", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	<-ch

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Println("shutdown:", err)
	}
	log.Println("api stopped")
}
