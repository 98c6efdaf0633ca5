package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/kotobukicho/kotobuki/config"
	"github.com/kotobukicho/kotobuki/internal/application"
	"github.com/kotobukicho/kotobuki/internal/infrastructure/blob"
	"github.com/kotobukicho/kotobuki/pkg/helpers"
)

// Consumes CleanupJob messages and deletes the referenced blobs. Deletion is
// best-effort: a failed delete is logged and the message acked anyway, the
// same contract the inline path has.
func main() {
	cfg := config.Load()
	if !cfg.CleanupQueueEnabled {
		log.Println("CLEANUP_QUEUE_ENABLED=false; cleanup worker disabled")
		return
	}
	if cfg.GCSBucket == "" {
		log.Fatal("GCS_BUCKET not configured")
	}

	conn, err := amqp.Dial(cfg.RabbitMQURL)
	if err != nil {
		log.Fatalf("amqp dial: %v", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Fatalf("amqp channel: %v", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(16, 0, false); err != nil {
		log.Fatalf("qos: %v", err)
	}

	if _, err := ch.QueueDeclare(cfg.RabbitMQCleanupQueue, true, false, false, false, nil); err != nil {
		log.Fatalf("queue declare: %v", err)
	}

	msgs, err := ch.Consume(cfg.RabbitMQCleanupQueue, "", false, false, false, false, nil)
	if err != nil {
		log.Fatalf("consume: %v", err)
	}

	ctx := context.Background()
	gcsClient, err := helpers.NewGCSClient(ctx, cfg.GCSCredentialsJSONPath)
	if err != nil {
		log.Fatalf("gcs client: %v", err)
	}
	defer func() { _ = gcsClient.Close() }()
	store := blob.NewGCSStore(gcsClient, cfg.GCSBucket)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	done := make(chan struct{})

	go func() {
		for msg := range msgs {
			var job application.CleanupJob
			if err := json.Unmarshal(msg.Body, &job); err != nil {
				log.Printf("bad message: %v", err)
				_ = msg.Nack(false, false)
				continue
			}

			for _, u := range job.URLs {
				path, ok := store.ObjectPath(u)
				if !ok {
					log.Printf("skipping foreign url: %s", u)
					continue
				}
				c, cancel := context.WithTimeout(ctx, 15*time.Second)
				if err := store.Delete(c, path); err != nil {
					log.Printf("delete %s failed: %v", path, err)
				}
				cancel()
			}
			_ = msg.Ack(false)
		}
		close(done)
	}()

	log.Printf("cleanup worker listening on queue=%s", cfg.RabbitMQCleanupQueue)
	<-stop
	log.Printf("shutting down...")
	select {
	case <-done:
	case <-time.After(2 * time.Second):
	}
}
