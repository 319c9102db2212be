package dryrun

import (
	"context"
	"reflect"
	"strings"
	"testing"

	"github.com/noteweaver/noteweaver/internal/chat"
	"github.com/noteweaver/noteweaver/internal/domain"
	"github.com/noteweaver/noteweaver/internal/plugins/schema"
)

func TestListModels_ReturnsExpectedModel(t *testing.T) {
	client := NewClient()
	models, err := client.ListModels()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	expected := []string{"dry-run-model"}
	if !reflect.DeepEqual(models, expected) {
		t.Errorf("Expected %v, got %v", expected, models)
	}
}

func TestConfigure_ReturnsNil(t *testing.T) {
	client := NewClient()
	if err := client.Configure(); err != nil {
		t.Errorf("Expected nil error, got %v", err)
	}
}

func TestSend_WithoutSchemaEchoesRequest(t *testing.T) {
	client := NewClient()
	msgs := []*chat.ChatCompletionMessage{
		{Role: "user", Content: "Test message"},
	}
	got, err := client.Send(context.Background(), msgs, &domain.ChatOptions{Model: Model})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !strings.Contains(got, "Test message") {
		t.Errorf("Expected dry run output to contain the message, got %q", got)
	}
}

func TestSend_RepliesAreSchemaValid(t *testing.T) {
	client := NewClient()
	msgs := []*chat.ChatCompletionMessage{chat.NewUserMessage("Test message")}

	for _, name := range schema.Names() {
		t.Run(name, func(t *testing.T) {
			opts := &domain.ChatOptions{Model: Model}
			if err := schema.Default().Prepare(client.SchemaProvider(), name, opts); err != nil {
				t.Fatalf("Prepare failed: %v", err)
			}
			got, err := client.Send(context.Background(), msgs, opts)
			if err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			if err = schema.Default().ValidateOutput(got, opts.SchemaContent); err != nil {
				t.Errorf("Dry run reply for %s is not schema-valid: %v", name, err)
			}
		})
	}
}

func TestSend_UnknownSchema(t *testing.T) {
	_, err := NewClient().Send(context.Background(), nil, &domain.ChatOptions{SchemaName: "nope"})
	if err == nil {
		t.Error("Expected an error for an unknown schema")
	}
}
