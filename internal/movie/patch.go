package movie

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"cinemap/internal/services"
)

// Patch is a merge patch over every Movie field except ID. Nil fields are
// left unchanged.
type Patch struct {
	Title       *string  `json:"title,omitempty" validate:"omitnil,min=1"`
	Director    *string  `json:"director,omitempty" validate:"omitnil,min=1"`
	Year        *int     `json:"year,omitempty" validate:"omitnil,gte=1870,lte=2100"`
	Overview    *string  `json:"overview,omitempty"`
	PosterURL   *string  `json:"posterUrl,omitempty" validate:"omitnil,url"`
	BackdropURL *string  `json:"backdropUrl,omitempty" validate:"omitnil,url"`
	Genres      *string  `json:"genres,omitempty"`
	Runtime     *int     `json:"runtime,omitempty" validate:"omitnil,gte=0"`
	VoteAverage *float64 `json:"voteAverage,omitempty" validate:"omitnil,gte=0,lte=10"`
	Rating      *int     `json:"rating,omitempty" validate:"omitnil,min=1,max=10"`
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func patchValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// Empty reports whether the patch changes nothing.
func (p Patch) Empty() bool {
	return p == Patch{}
}

// Validate checks field bounds. Failures wrap services.ErrValidation.
func (p Patch) Validate() error {
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return services.Wrap(services.ErrValidation, "movie", "validate patch", "title must not be blank", nil)
	}
	err := patchValidator().Struct(p)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		parts := make([]string, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			parts = append(parts, describeFieldError(fe))
		}
		return services.Wrap(services.ErrValidation, "movie", "validate patch", strings.Join(parts, "; "), nil)
	}
	return services.Wrap(services.ErrValidation, "movie", "validate patch", "invalid patch", err)
}

// ValidateRating checks a user rating is within 1-10.
func ValidateRating(rating int) error {
	return Patch{Rating: &rating}.Validate()
}

func describeFieldError(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "min", "gte":
		if fe.Kind().String() == "string" {
			return fmt.Sprintf("%s must not be empty", field)
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max", "lte":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "url":
		return fmt.Sprintf("%s must be a URL", field)
	default:
		return fmt.Sprintf("%s failed %s", field, fe.Tag())
	}
}

// Apply overlays the patch onto m and returns the result.
func (p Patch) Apply(m Movie) Movie {
	if p.Title != nil {
		m.Title = *p.Title
	}
	if p.Director != nil {
		m.Director = *p.Director
	}
	if p.Year != nil {
		m.Year = clonePtr(p.Year)
	}
	if p.Overview != nil {
		m.Overview = *p.Overview
	}
	if p.PosterURL != nil {
		m.PosterURL = clonePtr(p.PosterURL)
	}
	if p.BackdropURL != nil {
		m.BackdropURL = clonePtr(p.BackdropURL)
	}
	if p.Genres != nil {
		m.Genres = *p.Genres
	}
	if p.Runtime != nil {
		m.Runtime = clonePtr(p.Runtime)
	}
	if p.VoteAverage != nil {
		m.VoteAverage = clonePtr(p.VoteAverage)
	}
	if p.Rating != nil {
		m.Rating = clonePtr(p.Rating)
	}
	return m
}

func clonePtr[T any](v *T) *T {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
