package publishers

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/samvad-hq/samvad-tech-digest/internal/domain"
	"github.com/samvad-hq/samvad-tech-digest/internal/logger"
)

type fakeSQSClient struct {
	input *sqs.SendMessageInput
	err   error
}

func (f *fakeSQSClient) SendMessage(_ context.Context, params *sqs.SendMessageInput, _ ...func(*sqs.Options)) (*sqs.SendMessageOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return &sqs.SendMessageOutput{MessageId: aws.String("msg-123")}, nil
}

func TestSQSPublisherSendSuccess(t *testing.T) {
	client := &fakeSQSClient{}
	pub := &sqsPublisher{
		id:       "queue",
		queueURL: "https://example.com/queue",
		client:   client,
		log:      logger.NopLogger{},
	}

	err := pub.Publish(context.Background(), NewEvent(domain.Article{ID: "a1", Source: domain.SourceMediastack}, 0))
	if err != nil {
		t.Fatalf("Publish returned error: %v", err)
	}
	if client.input == nil {
		t.Fatalf("client was not called")
	}
	if got := aws.ToString(client.input.QueueUrl); got != "https://example.com/queue" {
		t.Fatalf("QueueUrl = %s", got)
	}
	attr, ok := client.input.MessageAttributes[sourceAttribute]
	if !ok || aws.ToString(attr.StringValue) != "Mediastack" {
		t.Fatalf("source attribute missing or wrong: %#v", attr)
	}
	if aws.ToString(attr.DataType) != "String" {
		t.Fatalf("DataType should be String, got %#v", attr.DataType)
	}
	if !strings.Contains(aws.ToString(client.input.MessageBody), `"id":"a1"`) {
		t.Fatalf("MessageBody missing article id: %s", aws.ToString(client.input.MessageBody))
	}
}

func TestSQSPublisherSendErrorIsLogged(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	pub := &sqsPublisher{
		id:       "queue",
		queueURL: "https://example.com/queue",
		client:   &fakeSQSClient{err: errors.New("boom")},
		log:      ensureLogger(logger.New(zap.New(core))),
	}

	if err := pub.Publish(context.Background(), Event{Article: domain.Article{ID: "a1"}}); err == nil {
		t.Fatalf("expected error from Publish")
	}
	entries := logs.FilterMessage("sqs publisher send failed").FilterLevelExact(zapcore.ErrorLevel).All()
	if len(entries) != 1 {
		t.Fatalf("expected one error log, got %v", logs.All())
	}
	if _, ok := entries[0].ContextMap()["publisher_sqs_error"]; !ok {
		t.Fatalf("expected publisher_sqs_error field, got %v", entries[0].ContextMap())
	}
}

func TestEnsureLoggerDefaultsToNop(t *testing.T) {
	if _, ok := ensureLogger(nil).(logger.NopLogger); !ok {
		t.Fatalf("expected NopLogger for nil input")
	}
}
