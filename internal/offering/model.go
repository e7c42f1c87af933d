package offering

import (
	"net/http"
	"time"

	"github.com/kelleauto/dealership-backend/internal/pkg/apperror"
)

var (
	ErrNotFound     = apperror.New(http.StatusNotFound, "offering not found")
	ErrNameRequired = apperror.New(http.StatusBadRequest, "name is required")
	ErrInvalidKind  = apperror.New(http.StatusBadRequest, "unknown offering kind")
)

// Kind selects which catalogue an offering belongs to.
type Kind string

const (
	KindCleaning Kind = "cleaning"
	KindService  Kind = "service"
)

// table returns the backing table, or "" for an unknown kind.
func (k Kind) table() string {
	switch k {
	case KindCleaning:
		return "public.cleaning_offerings"
	case KindService:
		return "public.service_offerings"
	}
	return ""
}

// Offering is a cleaning package or workshop service customers can book.
type Offering struct {
	ID          string
	Kind        Kind
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
