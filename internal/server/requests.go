package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/lift/internal/templates"
	"github.com/jonathan/lift/internal/types"
)

// Career request types
const (
	CareerTypeResume = "resume"
	CareerTypeCover  = "cover"
)

// CareerRequest is the body of POST /api/career. Resume and cover letter
// fields share one body; Type selects which document is generated.
type CareerRequest struct {
	Type           string         `json:"type" validate:"required,oneof=resume cover"`
	Name           string         `json:"name" validate:"max=200"`
	Email          string         `json:"email" validate:"max=320"`
	Phone          string         `json:"phone" validate:"max=64"`
	Address        string         `json:"address" validate:"max=500"`
	LinkedIn       string         `json:"linkedin" validate:"max=500"`
	Objective      string         `json:"objective" validate:"max=5000"`
	Experience     types.FlexList `json:"experience"`
	Education      types.FlexList `json:"education"`
	Skills         types.FlexList `json:"skills"`
	Certifications types.FlexList `json:"certifications"`
	Recipient      string         `json:"recipient" validate:"max=200"`
	Position       string         `json:"position" validate:"max=200"`
	Paragraphs     string         `json:"paragraphs" validate:"max=20000"`
}

// ResumeInput returns the resume fields of the request
func (r *CareerRequest) ResumeInput() templates.ResumeInput {
	return templates.ResumeInput{
		Name:           r.Name,
		Email:          r.Email,
		Phone:          r.Phone,
		Address:        r.Address,
		LinkedIn:       r.LinkedIn,
		Objective:      r.Objective,
		Experience:     r.Experience,
		Education:      r.Education,
		Skills:         r.Skills,
		Certifications: r.Certifications,
	}
}

// CoverInput returns the cover letter fields of the request
func (r *CareerRequest) CoverInput() templates.CoverInput {
	return templates.CoverInput{
		Name:       r.Name,
		Recipient:  r.Recipient,
		Position:   r.Position,
		Paragraphs: r.Paragraphs,
	}
}

// NotesRequest is the body of POST /api/notes and POST /api/notes/quiz.
// HTML is converted to text and used when Notes is empty.
type NotesRequest struct {
	Notes string `json:"notes" validate:"required_without=HTML,max=100000"`
	HTML  string `json:"html,omitempty" validate:"max=500000"`
}

// PreferencesRequest is the body of PUT /api/preferences. Empty fields keep their default.
type PreferencesRequest struct {
	SummaryLength       string `json:"summaryLength" validate:"omitempty,oneof=short medium long"`
	FlashcardDifficulty string `json:"flashcardDifficulty" validate:"omitempty,oneof=easy medium hard"`
	AITone              string `json:"aiTone" validate:"max=40"`
	ResumeTemplate      string `json:"resumeTemplate" validate:"max=40"`
	CoverLetterTemplate string `json:"coverLetterTemplate" validate:"max=40"`
}

// Preferences returns the requested preferences
func (r *PreferencesRequest) Preferences() types.Preferences {
	return types.Preferences{
		SummaryLength:       r.SummaryLength,
		FlashcardDifficulty: r.FlashcardDifficulty,
		AITone:              r.AITone,
		ResumeTemplate:      r.ResumeTemplate,
		CoverLetterTemplate: r.CoverLetterTemplate,
	}
}

// decodeRequest reads a JSON body into dst and validates its struct tags
func (s *Server) decodeRequest(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)

	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(dst); err != nil {
		var maxBytes *http.MaxBytesError
		switch {
		case errors.As(err, &maxBytes):
			return &ErrPayloadTooLarge{Limit: maxBytes.Limit}
		case errors.Is(err, io.EOF):
			return &ErrValidation{Field: "body", Message: "request body is empty"}
		default:
			return &ErrValidation{Field: "body", Message: "invalid JSON: " + err.Error()}
		}
	}

	if err := s.validate.Struct(dst); err != nil {
		return validationError(err)
	}
	return nil
}

// validationError converts the first validator failure into an ErrValidation
func validationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return &ErrValidation{Field: "body", Message: err.Error()}
	}

	fe := fieldErrs[0]
	var message string
	switch fe.Tag() {
	case "required", "required_without":
		message = "is required"
	case "oneof":
		message = fmt.Sprintf("must be one of: %s", strings.ReplaceAll(fe.Param(), " ", ", "))
	case "max":
		message = fmt.Sprintf("must be at most %s characters", fe.Param())
	default:
		message = fmt.Sprintf("failed %q validation", fe.Tag())
	}
	return &ErrValidation{Field: fe.Field(), Message: message}
}

// newValidator reports fields by their JSON names
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}
