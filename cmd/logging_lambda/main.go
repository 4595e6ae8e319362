package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/abcstfabu/kapparot-online/pkg/config"
	"github.com/abcstfabu/kapparot-online/pkg/models"
	"github.com/abcstfabu/kapparot-online/pkg/scheduler"
	"github.com/abcstfabu/kapparot-online/pkg/sheets"
	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
)

// newHandler returns the SQS handler forwarding log events to the spreadsheet.
// Each event gets one delivery attempt: failures are logged and the batch
// still succeeds, so SQS never redelivers.
func newHandler(client sheets.Client) func(context.Context, events.SQSEvent) error {
	return func(ctx context.Context, sqsEvent events.SQSEvent) error {
		for _, message := range sqsEvent.Records {
			log.Printf("Processing message %s", message.MessageId)

			var ev models.LogEvent
			if err := json.Unmarshal([]byte(message.Body), &ev); err != nil {
				log.Printf("ERROR: failed to unmarshal log event from SQS message %s: %v", message.MessageId, err)
				continue
			}

			res := scheduler.Deliver(ctx, client, &ev)
			if !res.Success {
				log.Printf("ERROR: failed to log %s event for transaction %s via %s: %s",
					ev.Kind, scheduler.TransactionID(&ev), res.Method, res.Error)
				continue
			}

			log.Printf("Logged %s event for transaction %s via %s", ev.Kind, scheduler.TransactionID(&ev), res.Method)
		}

		return nil
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("unable to load config, %v", err)
	}

	client, err := sheets.New(context.Background(), sheets.Config{
		AppsScriptURL: cfg.AppsScriptURL,
		APIKey:        cfg.SheetsAPIKey,
		SheetID:       cfg.SheetID,
		SheetName:     cfg.SheetName,
		Timeout:       cfg.SheetsTimeout,
		HTTPClient:    http.DefaultClient,
	})
	if err != nil {
		log.Fatalf("unable to create spreadsheet client, %v", err)
	}
	if !client.Configured() {
		log.Println("Spreadsheet logging is not configured, events will only be logged")
	}

	lambda.Start(newHandler(client))
}
