// ABOUTME: Tests for contact mail rendering
// ABOUTME: Covers Markdown conversion, HTML escaping, and header sanitization

package mail

import (
	"strings"
	"testing"
)

func TestRenderBody(t *testing.T) {
	body, err := RenderBody(ContactMessage{
		Name:    "Asha",
		Email:   "asha@example.com",
		Message: "I would like to know about the **physics** batch.",
	})
	if err != nil {
		t.Fatalf("RenderBody() error = %v", err)
	}

	if !strings.Contains(body, "Asha") {
		t.Error("body should contain the sender name")
	}
	if !strings.Contains(body, "asha@example.com") {
		t.Error("body should contain the sender email")
	}
	if !strings.Contains(body, "<strong>physics</strong>") {
		t.Errorf("markdown should be rendered, got: %s", body)
	}
}

func TestRenderBodyEscapesName(t *testing.T) {
	body, err := RenderBody(ContactMessage{
		Name:    `<script>alert("x")</script>`,
		Email:   "x@example.com",
		Message: "hello there",
	})
	if err != nil {
		t.Fatalf("RenderBody() error = %v", err)
	}

	if strings.Contains(body, "<script>") {
		t.Error("name must be HTML-escaped")
	}
}

func TestSanitizeHeader(t *testing.T) {
	got := sanitizeHeader("Eve\r\nBcc: victim@example.com")
	if strings.ContainsAny(got, "\r\n") {
		t.Errorf("sanitizeHeader() left newlines: %q", got)
	}
}
