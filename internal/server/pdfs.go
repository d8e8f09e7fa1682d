// ABOUTME: Handlers serving the study-material PDF directory
// ABOUTME: Filenames are allowlisted before touching the filesystem

package server

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// pdfFilenamePattern allowlists plain PDF filenames; anything else (path
// separators, dots, encodings) is rejected before the filesystem is touched.
var pdfFilenamePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+\.pdf$`)

// handleListPDFs lists the PDF files available in the configured directory.
func (s *Server) handleListPDFs(w http.ResponseWriter, r *http.Request) {
	entries, err := os.ReadDir(s.cfg.PDFs.Dir)
	if err != nil {
		s.logger.Error("reading pdf directory", "error", err)
		s.writeJSON(w, http.StatusInternalServerError, apiResponse{
			Success: false,
			Message: "error reading PDF directory",
		})
		return
	}

	pdfs := []string{}
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".pdf") {
			pdfs = append(pdfs, entry.Name())
		}
	}

	s.writeJSON(w, http.StatusOK, apiResponse{Success: true, Data: pdfs})
}

// handleViewPDF streams a PDF inline.
func (s *Server) handleViewPDF(w http.ResponseWriter, r *http.Request) {
	s.servePDF(w, r, "inline")
}

// handleDownloadPDF streams a PDF as an attachment.
func (s *Server) handleDownloadPDF(w http.ResponseWriter, r *http.Request) {
	s.servePDF(w, r, "attachment")
}

func (s *Server) servePDF(w http.ResponseWriter, r *http.Request, disposition string) {
	filename := r.PathValue("filename")
	if !pdfFilenamePattern.MatchString(filename) {
		s.writeError(w, validationErrorf("invalid PDF filename"))
		return
	}

	path := filepath.Join(s.cfg.PDFs.Dir, filename)
	if _, err := os.Stat(path); err != nil {
		s.writeJSON(w, http.StatusNotFound, apiResponse{Success: false, Message: "PDF not found"})
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("%s; filename=%q", disposition, filename))
	w.Header().Set("Cache-Control", "no-cache")

	http.ServeFile(w, r, path)
}
