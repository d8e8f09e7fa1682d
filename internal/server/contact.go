// ABOUTME: Contact-form handler validating submissions and delegating to the mailer
// ABOUTME: Transport failures are logged server-side, never echoed to the client

package server

import (
	"net/http"
	"strings"

	"github.com/2389/campus-gateway/internal/mail"
)

type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// handleContact validates a contact-form submission and sends it to the
// office mailbox.
func (s *Server) handleContact(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	if anyBlank(req.Name, req.Email, req.Message) {
		s.writeError(w, validationErrorf("all fields are required"))
		return
	}
	if !strings.Contains(req.Email, "@") {
		s.writeError(w, validationErrorf("invalid email address"))
		return
	}
	if len(req.Message) < 5 {
		s.writeError(w, validationErrorf("message must be at least 5 characters long"))
		return
	}

	if s.mailer == nil {
		s.writeJSON(w, http.StatusServiceUnavailable, apiResponse{
			Success: false,
			Message: "contact form is not available",
		})
		return
	}

	msg := mail.ContactMessage{Name: req.Name, Email: req.Email, Message: req.Message}
	if err := s.mailer.SendContact(r.Context(), msg); err != nil {
		s.logger.Error("sending contact mail", "error", err)
		s.writeJSON(w, http.StatusInternalServerError, apiResponse{
			Success: false,
			Message: "failed to send email, please try again later",
		})
		return
	}

	s.writeJSON(w, http.StatusOK, apiResponse{
		Success: true,
		Message: "Thank you for your message! We'll get back to you soon.",
	})
}
