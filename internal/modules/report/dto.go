package report

import (
	"strconv"
	"strings"
	"time"

	"civicconnect/internal/domain"
)

// Metadata is the allow-listed set of form fields a report can be built
// from. Nothing else from the request body ever reaches a record.
type Metadata struct {
	Title        string `form:"title"`
	Department   string `form:"department"`
	Address      string `form:"address"`
	LocationText string `form:"locationText"`
	Description  string `form:"description"`
	Latitude     string `form:"latitude"`
	Longitude    string `form:"longitude"`
}

// DraftLocation is the location subset posted with upload-temp/capture-temp.
type DraftLocation struct {
	Address      string `form:"address"`
	LocationText string `form:"locationText"`
	Latitude     string `form:"latitude"`
	Longitude    string `form:"longitude"`
}

// parseCoord accepts an optional form value; empty means absent.
func parseCoord(field, raw string) (*float64, *FieldError) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, &FieldError{Field: field, Rule: "numeric"}
	}
	return &v, nil
}

type Response struct {
	ReportID     string   `json:"report_id"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Department   string   `json:"department"`
	Address      string   `json:"address"`
	LocationText string   `json:"location_text,omitempty"`
	Latitude     *float64 `json:"latitude,omitempty"`
	Longitude    *float64 `json:"longitude,omitempty"`
	ImagePath    string   `json:"image_path"`
	Status       string   `json:"status"`
	CreatedAt    string   `json:"created_at"`
	UpdatedAt    string   `json:"updated_at"`
}

func toResponse(r *domain.Report) Response {
	return Response{
		ReportID:     r.ReportID,
		Title:        r.Title,
		Description:  r.Description,
		Department:   r.Department,
		Address:      r.Address,
		LocationText: r.LocationText,
		Latitude:     r.Latitude,
		Longitude:    r.Longitude,
		ImagePath:    r.ImagePath,
		Status:       string(r.Status),
		CreatedAt:    r.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    r.UpdatedAt.Format(time.RFC3339),
	}
}

type DraftResponse struct {
	ImagePath    string   `json:"image_path"`
	Address      string   `json:"address,omitempty"`
	LocationText string   `json:"location_text,omitempty"`
	Latitude     *float64 `json:"latitude,omitempty"`
	Longitude    *float64 `json:"longitude,omitempty"`
}
