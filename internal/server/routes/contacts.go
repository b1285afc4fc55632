package routes

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/fr0stylo/proxitrace/internal/app/domain"
	"github.com/fr0stylo/proxitrace/internal/app/ports"
)

// ContactManager is the contact use-case surface the API needs.
type ContactManager interface {
	Count(ctx context.Context) (int64, error)
	Contacts(ctx context.Context, query ports.ContactQuery) ([]domain.Contact, error)
	MatchedContacts(ctx context.Context) ([]domain.Contact, error)
	LinkKnownCase(ctx context.Context, contactID, knownCaseID int64) error
	AddKnownCase(ctx context.Context, knownCase domain.KnownCase) (int64, error)
	DeleteKnownCase(ctx context.Context, id int64) error
	SweepExpired(ctx context.Context) (int64, error)
	Reset(ctx context.Context) error
}

// ContactRoutes registers contact and known case endpoints.
type ContactRoutes struct {
	contacts ContactManager
}

// NewContactRoutes constructs contact routes.
func NewContactRoutes(contacts ContactManager) *ContactRoutes {
	return &ContactRoutes{contacts: contacts}
}

// RegisterRoutes registers contact endpoints.
func (r *ContactRoutes) RegisterRoutes(s *echo.Echo) {
	api := s.Group("/api/v1")

	api.GET("/contacts", r.handleListContacts)
	api.DELETE("/contacts", r.handleReset)
	api.GET("/contacts/count", r.handleCount)
	api.GET("/contacts/matched", r.handleListMatched)
	api.PUT("/contacts/:id/known-case", r.handleLinkKnownCase)
	api.POST("/known-cases", r.handleCreateKnownCase)
	api.DELETE("/known-cases/:id", r.handleDeleteKnownCase)
	api.POST("/retention/sweep", r.handleSweep)
}

type contactResponse struct {
	ID          int64                `json:"id"`
	EphID       string               `json:"ephId"`
	Date        time.Time            `json:"date"`
	WindowCount int                  `json:"windowCount"`
	KnownCaseID *int64               `json:"knownCaseId,omitempty"`
	Calibration *calibrationResponse `json:"calibration,omitempty"`
}

type calibrationResponse struct {
	UserPrefix      string    `json:"userPrefix"`
	StartDate       time.Time `json:"startDate"`
	EndDate         time.Time `json:"endDate"`
	Minutes         int       `json:"minutes"`
	MeanAttenuation float64   `json:"meanAttenuation"`
	MeanDistance    float64   `json:"meanDistance"`
}

type linkKnownCaseRequest struct {
	KnownCaseID int64 `json:"knownCaseId"`
}

type createKnownCaseRequest struct {
	Day            string     `json:"day"`
	Key            []byte     `json:"key"`
	OnsetDate      *time.Time `json:"onsetDate,omitempty"`
	BatchTimestamp time.Time  `json:"batchTimestamp"`
}

func (r *ContactRoutes) handleCount(c echo.Context) error {
	count, err := r.contacts.Count(c.Request().Context())
	if err != nil {
		return apiError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]int64{"count": count})
}

func (r *ContactRoutes) handleListContacts(c echo.Context) error {
	day, err := domain.ParseDay(c.QueryParam("day"))
	if err != nil {
		return badRequest(c, "day must be formatted as YYYY-MM-DD")
	}
	query := ports.ContactQuery{Day: day}

	if raw := c.QueryParam("overlap"); raw != "" {
		overlap, err := time.ParseDuration(raw)
		if err != nil || overlap < 0 {
			return badRequest(c, "overlap must be a non-negative duration such as 2h")
		}
		query.Overlap = overlap
	}
	if raw := c.QueryParam("threshold"); raw != "" {
		threshold, err := strconv.Atoi(raw)
		if err != nil || threshold < 0 {
			return badRequest(c, "threshold must be a non-negative integer")
		}
		query.ContactThreshold = threshold
	}

	contacts, err := r.contacts.Contacts(c.Request().Context(), query)
	if err != nil {
		return apiError(c, err)
	}
	return c.JSON(http.StatusOK, mapContacts(contacts))
}

func (r *ContactRoutes) handleListMatched(c echo.Context) error {
	contacts, err := r.contacts.MatchedContacts(c.Request().Context())
	if err != nil {
		return apiError(c, err)
	}
	return c.JSON(http.StatusOK, mapContacts(contacts))
}

func (r *ContactRoutes) handleLinkKnownCase(c echo.Context) error {
	contactID, err := pathID(c)
	if err != nil {
		return badRequest(c, "contact id must be a positive integer")
	}
	var req linkKnownCaseRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := r.contacts.LinkKnownCase(c.Request().Context(), contactID, req.KnownCaseID); err != nil {
		return apiError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (r *ContactRoutes) handleCreateKnownCase(c echo.Context) error {
	var req createKnownCaseRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	day, err := domain.ParseDay(req.Day)
	if err != nil {
		return badRequest(c, "day must be formatted as YYYY-MM-DD")
	}
	batchTimestamp := req.BatchTimestamp
	if batchTimestamp.IsZero() {
		batchTimestamp = time.Now().UTC()
	}

	id, err := r.contacts.AddKnownCase(c.Request().Context(), domain.KnownCase{
		Day:            day,
		Key:            req.Key,
		OnsetDate:      req.OnsetDate,
		BatchTimestamp: batchTimestamp,
	})
	if err != nil {
		return apiError(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]int64{"id": id})
}

func (r *ContactRoutes) handleDeleteKnownCase(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return badRequest(c, "known case id must be a positive integer")
	}
	if err := r.contacts.DeleteKnownCase(c.Request().Context(), id); err != nil {
		return apiError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (r *ContactRoutes) handleSweep(c echo.Context) error {
	deleted, err := r.contacts.SweepExpired(c.Request().Context())
	if err != nil {
		return apiError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]int64{"deleted": deleted})
}

func (r *ContactRoutes) handleReset(c echo.Context) error {
	if err := r.contacts.Reset(c.Request().Context()); err != nil {
		return apiError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func mapContacts(contacts []domain.Contact) []contactResponse {
	out := make([]contactResponse, 0, len(contacts))
	for _, contact := range contacts {
		row := contactResponse{
			ID:          contact.ID,
			EphID:       contact.EphID.String(),
			Date:        contact.Date.UTC(),
			WindowCount: contact.WindowCount,
			KnownCaseID: contact.AssociatedKnownCase,
		}
		if cal := contact.Calibration; cal != nil {
			row.Calibration = &calibrationResponse{
				UserPrefix:      cal.UserPrefix,
				StartDate:       cal.StartDate.UTC(),
				EndDate:         cal.EndDate.UTC(),
				Minutes:         cal.Minutes,
				MeanAttenuation: cal.MeanAttenuation,
				MeanDistance:    cal.MeanDistance,
			}
		}
		out = append(out, row)
	}
	return out
}

func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, err
	}
	if id <= 0 {
		return 0, strconv.ErrRange
	}
	return id, nil
}
