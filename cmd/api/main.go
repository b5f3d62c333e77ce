package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/ASILBEKasilbek/Navbatsiz/internal/repository"
	"github.com/ASILBEKasilbek/Navbatsiz/internal/service"
	transport "github.com/ASILBEKasilbek/Navbatsiz/internal/transport/http"
	"github.com/ASILBEKasilbek/Navbatsiz/pkg/config"
	"github.com/ASILBEKasilbek/Navbatsiz/pkg/db"
	"github.com/ASILBEKasilbek/Navbatsiz/pkg/mq"
	"github.com/ASILBEKasilbek/Navbatsiz/pkg/obs"
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

	shutdownTracer := obs.InitTracer("navbat-api", cfg.OTLPEndpoint)
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTracer(ctx)
	}()

	gdb := db.Open(cfg.PGDSN)
	slots := repository.NewSlotRepo(gdb)
	bookings := repository.NewBookingRepo(gdb)
	users := repository.NewUserRepo(gdb)
	dir := repository.NewDirectoryRepo(gdb)
	must(0, dir.Migrate())
	must(0, users.Migrate())
	must(0, slots.Migrate())
	must(0, bookings.Migrate())

	pub := must(mq.NewPublisher(cfg.RabbitURL, cfg.BookingExchange))
	defer pub.Close()

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, DB: cfg.RedisDB})
	defer rdb.Close()

	router := transport.NewRouter(transport.Deps{
		Booking:   service.NewBookingService(slots, bookings, users, dir, pub),
		Directory: service.NewDirectoryService(dir, slots, service.NewRedisCache(rdb), time.Duration(cfg.HomepageCacheSec)*time.Second),
		Auth:      service.NewAuthService(users, pub, cfg.JWTSecret, time.Duration(cfg.JWTExpireMin)*time.Minute),
		JWTSecret: cfg.JWTSecret,
	})

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}
	go func() {
		log.Println("[api] HTTP listening on", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err)
		}
	}()

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	<-ch

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	log.Println("[api] stopped")
}
