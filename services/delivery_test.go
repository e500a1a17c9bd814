package services

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/fenilmodi00/gmp-mailer/models"
)

func TestEmailDeliveryBuildsMultipartMessage(t *testing.T) {
	delivery := NewEmailDelivery(EmailSettings{
		Host:        "smtp.gmail.com",
		Port:        587,
		SenderEmail: "sender@example.com",
		SenderPass:  "app-password",
		Recipients:  []string{"first@example.com", "second@example.com"},
	})

	rendered := &models.RenderedReport{
		Subject: "Daily IPO GMP Summary",
		Text:    "plain summary body",
		HTML:    "<p>html summary body</p>",
	}

	message := delivery.buildMessage(rendered)

	var buffer bytes.Buffer
	if _, err := message.WriteTo(&buffer); err != nil {
		t.Fatalf("WriteTo returned error: %v", err)
	}
	raw := buffer.String()

	if !strings.Contains(raw, "multipart/alternative") {
		t.Error("message is not multipart/alternative")
	}
	if !strings.Contains(raw, "text/plain") {
		t.Error("message missing text/plain part")
	}
	if !strings.Contains(raw, "text/html") {
		t.Error("message missing text/html part")
	}
	if !strings.Contains(raw, "Subject: Daily IPO GMP Summary") {
		t.Error("message missing subject header")
	}
	if !strings.Contains(raw, "From: sender@example.com") {
		t.Error("message missing sender header")
	}
	for _, recipient := range []string{"first@example.com", "second@example.com"} {
		if !strings.Contains(raw, recipient) {
			t.Errorf("message missing recipient %s", recipient)
		}
	}
	if !strings.Contains(raw, "plain summary body") {
		t.Error("message missing text body")
	}
}

func TestEmailDeliveryTextOnlyMessage(t *testing.T) {
	delivery := NewEmailDelivery(EmailSettings{
		Host:        "smtp.gmail.com",
		Port:        587,
		SenderEmail: "sender@example.com",
		SenderPass:  "app-password",
		Recipients:  []string{"first@example.com"},
	})

	rendered := &models.RenderedReport{
		Subject: "Daily IPO GMP Summary",
		Text:    "plain summary body",
	}

	message := delivery.buildMessage(rendered)

	var buffer bytes.Buffer
	if _, err := message.WriteTo(&buffer); err != nil {
		t.Fatalf("WriteTo returned error: %v", err)
	}
	raw := buffer.String()

	if strings.Contains(raw, "multipart/alternative") {
		t.Error("text-only message should not be multipart")
	}
	if strings.Contains(raw, "text/html") {
		t.Error("text-only message should not carry an HTML part")
	}
	if !strings.Contains(raw, "text/plain") {
		t.Error("message missing text/plain part")
	}
}

func TestConsoleDeliveryWritesSubjectAndBody(t *testing.T) {
	var buffer bytes.Buffer
	delivery := &ConsoleDelivery{out: &buffer}

	rendered := &models.RenderedReport{
		Subject: "Daily IPO GMP Summary",
		Text:    "plain summary body",
	}

	if err := delivery.Deliver(rendered); err != nil {
		t.Fatalf("Deliver returned error: %v", err)
	}

	output := buffer.String()
	if !strings.Contains(output, "Daily IPO GMP Summary") {
		t.Error("output missing subject")
	}
	if !strings.Contains(output, "plain summary body") {
		t.Error("output missing body")
	}
}

func TestIsAuthError(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{errors.New("535 5.7.8 Username and Password not accepted"), true},
		{errors.New("smtp: authentication failed"), true},
		{errors.New("dial tcp: connection refused"), false},
		{errors.New("read tcp: i/o timeout"), false},
	}

	for _, tt := range tests {
		if got := isAuthError(tt.err); got != tt.want {
			t.Errorf("isAuthError(%q) = %v, want %v", tt.err, got, tt.want)
		}
	}
}
