package server

import (
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/jo-hoe/pngreduce/internal/core"
	"github.com/labstack/echo/v4"
)

const mimePNG = "image/png"

// APIService exposes the reduction pipeline over HTTP.
type APIService struct {
	config      *core.ServiceConfig
	coreService *core.CoreService
}

func NewAPIService(config *core.ServiceConfig, coreService *core.CoreService) *APIService {
	return &APIService{
		config:      config,
		coreService: coreService,
	}
}

// ReduceRequest carries the optional query parameters of POST /reduce.
type ReduceRequest struct {
	Filter string `query:"filter" validate:"omitempty,oneof=lanczos catmullrom bilinear nearest"`
	Factor int    `query:"factor" validate:"omitempty,gte=2,lte=16"`
}

// ReductionSummary is the metadata view of a recorded reduction.
type ReductionSummary struct {
	ID             string    `json:"id"`
	OriginalWidth  int       `json:"originalWidth"`
	OriginalHeight int       `json:"originalHeight"`
	ReducedWidth   int       `json:"reducedWidth"`
	ReducedHeight  int       `json:"reducedHeight"`
	CreatedAt      time.Time `json:"createdAt"`
}

func (s *APIService) SetRoutes(e *echo.Echo) {
	e.GET("/probe", s.probeHandler)
	e.POST("/reduce", s.reduceHandler)

	// Routes for listing, fetching, and deleting recorded reductions
	e.GET("/reductions", s.listReductionsHandler)
	e.GET("/reductions/:id/image", s.getReductionImageHandler)
	e.DELETE("/reductions/:id", s.deleteReductionHandler)
}

func (s *APIService) probeHandler(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "pngreduce service is running")
}

func (s *APIService) reduceHandler(ctx echo.Context) error {
	req := new(ReduceRequest)
	// Bind query params explicitly; echo's Bind would try to bind the raw
	// PNG body on POST and only binds query params for GET/DELETE.
	binder := &echo.DefaultBinder{}
	if err := binder.BindQueryParams(ctx, req); err != nil {
		slog.Error("reduceHandler: failed to bind request parameters",
			"status", http.StatusBadRequest, "error", err)
		return ctx.String(http.StatusBadRequest, "Failed to parse request parameters")
	}
	if err := ctx.Validate(req); err != nil {
		return err
	}

	imageData, err := io.ReadAll(ctx.Request().Body)
	if err != nil {
		slog.Error("reduceHandler: failed to read request body",
			"status", http.StatusBadRequest, "error", err)
		return ctx.String(http.StatusBadRequest, "Failed to read request body")
	}
	if len(imageData) == 0 {
		return ctx.String(http.StatusBadRequest, "Request body must contain a PNG image")
	}

	result, err := s.coreService.ReduceImage(ctx.Request().Context(), imageData, req.Filter, req.Factor)
	if err != nil {
		slog.Error("reduceHandler: reduction failed",
			"status", http.StatusBadRequest, "error", err, "input_size_bytes", len(imageData))
		return ctx.String(http.StatusBadRequest, fmt.Sprintf("Failed to reduce image: %v", err))
	}

	ctx.Response().Header().Set("X-Original-Size", fmt.Sprintf("%dx%d", result.OriginalWidth, result.OriginalHeight))
	ctx.Response().Header().Set("X-Reduced-Size", fmt.Sprintf("%dx%d", result.ReducedWidth, result.ReducedHeight))
	return ctx.Blob(http.StatusOK, mimePNG, result.Data)
}

func (s *APIService) listReductionsHandler(ctx echo.Context) error {
	reductions, err := s.coreService.ListReductions()
	if err != nil {
		if errors.Is(err, core.ErrNoStore) {
			return ctx.String(http.StatusServiceUnavailable, "Reduction history is not configured")
		}
		slog.Error("listReductionsHandler: failed to list reductions",
			"status", http.StatusInternalServerError, "error", err)
		return ctx.String(http.StatusInternalServerError, "Failed to list reductions")
	}

	summaries := make([]ReductionSummary, 0, len(reductions))
	for _, r := range reductions {
		summaries = append(summaries, ReductionSummary{
			ID:             r.ID,
			OriginalWidth:  r.OriginalWidth,
			OriginalHeight: r.OriginalHeight,
			ReducedWidth:   r.ReducedWidth,
			ReducedHeight:  r.ReducedHeight,
			CreatedAt:      r.CreatedAt,
		})
	}
	return ctx.JSON(http.StatusOK, summaries)
}

func (s *APIService) getReductionImageHandler(ctx echo.Context) error {
	id := ctx.Param("id")
	imageData, err := s.coreService.GetReductionImage(id)
	if err != nil {
		if errors.Is(err, core.ErrNoStore) {
			return ctx.String(http.StatusServiceUnavailable, "Reduction history is not configured")
		}
		if errors.Is(err, sql.ErrNoRows) {
			return ctx.String(http.StatusNotFound, "Reduction not found")
		}
		slog.Error("getReductionImageHandler: failed to fetch reduction image",
			"status", http.StatusInternalServerError, "error", err, "id", id)
		return ctx.String(http.StatusInternalServerError, "Failed to fetch reduction image")
	}
	return ctx.Blob(http.StatusOK, mimePNG, imageData)
}

func (s *APIService) deleteReductionHandler(ctx echo.Context) error {
	id := ctx.Param("id")
	if err := s.coreService.DeleteReduction(id); err != nil {
		if errors.Is(err, core.ErrNoStore) {
			return ctx.String(http.StatusServiceUnavailable, "Reduction history is not configured")
		}
		slog.Error("deleteReductionHandler: failed to delete reduction",
			"status", http.StatusInternalServerError, "error", err, "id", id)
		return ctx.String(http.StatusInternalServerError, "Failed to delete reduction")
	}
	return ctx.NoContent(http.StatusNoContent)
}
