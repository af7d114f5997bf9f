package server

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strings"

	"github.com/jonathan/directionwise/internal/export"
	"github.com/jonathan/directionwise/internal/quiz"
	"github.com/jonathan/directionwise/internal/ranking"
	"github.com/jonathan/directionwise/internal/resume"
	"github.com/jonathan/directionwise/internal/types"
)

const maxResumeBytes = 5 << 20

type exportRequest struct {
	Format            string             `json:"format" validate:"required"`
	Title             string             `json:"title" validate:"max=120"`
	Answers           []types.QuizAnswer `json:"answers"`
	Skills            []string           `json:"skills"`
	PersonalityTraits []string           `json:"personality_traits"`
	Careers           []string           `json:"careers" validate:"max=20"`
	Field             string             `json:"field"`
}

// exportRows picks the careers to export: explicitly named careers when
// given, otherwise the top field's recommendations for the submitted
// answers or tags.
func (s *Server) exportRows(req *exportRequest) ([]export.Row, error) {
	if len(req.Careers) > 0 {
		var field *types.KnowledgeField
		if req.Field != "" {
			f, ok := s.Knowledge.Field(req.Field)
			if !ok {
				return nil, &ErrNotFound{Resource: "field", Key: req.Field}
			}
			field = f
		}
		return export.BuildRowsByName(req.Careers, field), nil
	}

	profile := types.UserProfile{Skills: req.Skills, PersonalityTraits: req.PersonalityTraits}
	if len(req.Answers) > 0 {
		profile = quiz.ProcessAnswers(req.Answers)
	}
	if profile.IsEmpty() {
		return nil, &ErrValidation{Field: "answers", Message: "answers, tags or careers are required"}
	}
	return export.BuildRows(ranking.Insights(profile, s.Knowledge).RecommendedCareers), nil
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	var req exportRequest
	if err := s.decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	format, err := export.ParseFormat(req.Format)
	if err != nil {
		writeError(w, r, &ErrValidation{Field: "format", Message: err.Error()})
		return
	}
	rows, err := s.exportRows(&req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	data, err := export.Render(format, req.Title, rows)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if s.Archiver != nil {
		if key, err := s.Archiver.Archive(r.Context(), format, data); err != nil {
			slog.Warn("export archive failed", slog.String("error", err.Error()))
		} else {
			w.Header().Set("X-Export-Key", key)
		}
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition",
		mime.FormatMediaType("attachment", map[string]string{"filename": "career_recommendations." + format.Extension()}))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		slog.Warn("failed to write export", slog.String("error", err.Error()))
	}
}

// handleAnalyzeResume accepts either a multipart upload in the "file"
// field or a raw body typed by its Content-Type.
func (s *Server) handleAnalyzeResume(w http.ResponseWriter, r *http.Request) {
	data, contentType, err := readUpload(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	analysis, err := s.Resume.AnalyzeDocument(r.Context(), contentType, data)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, analysis)
}

func readUpload(w http.ResponseWriter, r *http.Request) ([]byte, string, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxResumeBytes)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		if err := r.ParseMultipartForm(maxResumeBytes); err != nil {
			return nil, "", uploadError(err)
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			return nil, "", &ErrValidation{Field: "file", Message: "a file upload is required"}
		}
		defer file.Close()
		data, err := io.ReadAll(file)
		if err != nil {
			return nil, "", uploadError(err)
		}
		return data, resume.DetectMIME(header.Filename, data), nil
	}

	data, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, "", uploadError(err)
	}
	if len(data) == 0 {
		return nil, "", &ErrValidation{Field: "body", Message: "empty upload"}
	}
	if mediaType == "" || mediaType == "application/octet-stream" {
		return data, resume.DetectMIME("", data), nil
	}
	return data, strings.ToLower(mediaType), nil
}

func uploadError(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return &ErrValidation{Field: "file", Message: fmt.Sprintf("upload exceeds %d bytes", maxResumeBytes)}
	}
	return &ErrValidation{Field: "file", Message: "unreadable upload"}
}
