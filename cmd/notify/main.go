package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/ASILBEKasilbek/Navbatsiz/internal/notifier"
	"github.com/ASILBEKasilbek/Navbatsiz/internal/worker"
	"github.com/ASILBEKasilbek/Navbatsiz/pkg/config"
	"github.com/ASILBEKasilbek/Navbatsiz/pkg/mq"
	"github.com/ASILBEKasilbek/Navbatsiz/pkg/obs"
)

func parseCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func buildNotifier(cfg config.Notify) notifier.Notifier {
	var ns notifier.Multi
	if cfg.SMTPHost != "" {
		ns = append(ns, notifier.NewEmail(notifier.EmailConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUser,
			Password: cfg.SMTPPass,
			From:     cfg.FromEmail,
		}))
	}
	if cfg.EskizToken != "" {
		ns = append(ns, notifier.NewEskiz(notifier.EskizConfig{
			BaseURL: cfg.EskizBaseURL,
			Token:   cfg.EskizToken,
			From:    cfg.EskizFrom,
		}))
	}
	if len(ns) == 0 {
		return notifier.NewConsole()
	}
	return ns
}

func main() {
	_ = godotenv.Load()
	cfg, err := config.LoadNotify()
	if err != nil {
		log.Fatal(err)
	}

	shutdownTracer := obs.InitTracer("navbat-notify", cfg.OTLPEndpoint)
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTracer(ctx)
	}()

	var cons *mq.Consumer
	for {
		cons, err = mq.NewConsumer(mq.ConsumerConfig{
			URL:      cfg.RabbitURL,
			Exchange: cfg.Exchange,
			Queue:    cfg.Queue,
			Bindings: parseCSV(cfg.Bindings),
			Prefetch: cfg.Prefetch,
			DLX:      cfg.DLX,
			DLQ:      cfg.DLQ,
			Tag:      "navbat-notify",
		})
		if err != nil {
			log.Printf("[notify] connect failed: %v; retry in 2s", err)
			time.Sleep(2 * time.Second)
			continue
		}
		break
	}
	defer cons.Close()

	ctx, cancel := context.WithCancel(context.Background())
	w := worker.New(cons, buildNotifier(cfg))
	go func() {
		if err := w.Run(ctx); err != nil {
			log.Printf("[notify] run error: %v", err)
		}
	}()
	log.Printf("[notify] started. queue=%s exchange=%s bindings=%s", cfg.Queue, cfg.Exchange, cfg.Bindings)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	cancel()
	time.Sleep(200 * time.Millisecond)
	log.Println("[notify] stopped")
}
