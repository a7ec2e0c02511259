// Package api - Request handlers
package api

import (
	"bytes"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"ghcost/core/input"
	"ghcost/core/output"
	apperrors "ghcost/internal/errors"
	"ghcost/internal/metrics"
)

// handleEstimate handles POST /v1/estimate
func (s *Server) handleEstimate(c *fiber.Ctx) error {
	doc, err := decodeDocument(c)
	if err != nil {
		metrics.Estimations.WithLabelValues("invalid").Inc()
		return err
	}
	return s.estimate(c, doc)
}

// handleFormEstimate handles POST /v1/form/estimate. The body is the raw
// form state; its text fields are coerced before validation.
func (s *Server) handleFormEstimate(c *fiber.Ctx) error {
	form, err := input.DecodeForm(bytes.NewReader(c.Body()))
	if err != nil {
		metrics.Estimations.WithLabelValues("invalid").Inc()
		return err
	}
	return s.estimate(c, form.Document())
}

func (s *Server) estimate(c *fiber.Ctx, doc input.Document) error {
	start := time.Now()
	logger := s.logger.With(zap.String("request_id", requestID(c)))

	if err := input.Validate(s.engine.Catalog(), doc); err != nil {
		metrics.Estimations.WithLabelValues("invalid").Inc()
		logger.Debug("usage document rejected", zap.Error(err))
		return err
	}

	// Execute engine (NO COST LOGIC HERE)
	result, err := s.engine.Run(doc.Declaration())
	if err != nil {
		metrics.Estimations.WithLabelValues("error").Inc()
		return err
	}
	metrics.EstimateDuration.Observe(time.Since(start).Seconds())

	for _, b := range result.Breakdowns {
		if !b.CanSupport {
			metrics.IneligiblePlans.WithLabelValues(b.PlanKey).Inc()
		}
	}
	if result.HasRecommendation {
		metrics.Estimations.WithLabelValues("recommended").Inc()
		metrics.Recommendations.WithLabelValues(result.Recommended).Inc()
	} else {
		metrics.Estimations.WithLabelValues("no_plan").Inc()
	}

	logger.Info("estimate served",
		zap.String("recommended", result.Recommended),
		zap.Duration("duration", time.Since(start)),
	)

	return c.JSON(EstimateResponse{
		RequestID: requestID(c),
		Report:    output.NewReport(result),
	})
}

// decodeDocument reads a usage document in JSON (default) or YAML
func decodeDocument(c *fiber.Ctx) (input.Document, error) {
	body := bytes.NewReader(c.Body())
	if strings.Contains(c.Get(fiber.HeaderContentType), "yaml") {
		return input.DecodeYAML(body)
	}
	return input.DecodeJSON(body)
}

// handlePlans handles GET /v1/plans
func (s *Server) handlePlans(c *fiber.Ctx) error {
	return c.JSON(PlansResponse{
		Currency: s.engine.Catalog().Currency(),
		Plans:    s.engine.Catalog().Plans(),
	})
}

// handlePlan handles GET /v1/plans/:key
func (s *Server) handlePlan(c *fiber.Ctx) error {
	plan, ok := s.engine.Catalog().Plan(c.Params("key"))
	if !ok {
		return apperrors.NotFound("plan", c.Params("key"))
	}
	return c.JSON(plan)
}

// handleFeatures handles GET /v1/features
func (s *Server) handleFeatures(c *fiber.Ctx) error {
	return c.JSON(FeaturesResponse{Features: s.engine.Catalog().Features()})
}

// handleHealth handles GET /health
func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "healthy",
		"version": s.version,
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}

// handleVersion handles GET /version
func (s *Server) handleVersion(c *fiber.Ctx) error {
	stats := s.engine.Catalog().Stats()
	return c.JSON(fiber.Map{
		"version":     s.version,
		"engine":      "ghcost",
		"api_version": "v1",
		"plans":       stats.Plans,
		"features":    stats.Features,
	})
}

// handleError maps errors onto status codes and the error envelope
func (s *Server) handleError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	body := ErrorBody{Code: string(apperrors.TypeInternal), Message: err.Error()}

	var fe *fiber.Error
	var ae *apperrors.Error
	switch {
	case errors.As(err, &fe):
		status = fe.Code
		body.Code = "HTTP_ERROR"
		body.Message = fe.Message
	case errors.As(err, &ae):
		status = statusOf(ae.Type)
		body.Code = string(ae.Type)
		body.Message = ae.Message
		if ae.Cause != nil && status < fiber.StatusInternalServerError {
			body.Message += ": " + ae.Cause.Error()
		}
		body.Violations = input.Violations(err)
	}

	if status >= fiber.StatusInternalServerError {
		s.logger.Error("request failed",
			zap.String("request_id", requestID(c)),
			zap.String("path", c.Path()),
			zap.Error(err),
		)
	}

	return c.Status(status).JSON(ErrorResponse{RequestID: requestID(c), Error: body})
}

func statusOf(t apperrors.Type) int {
	switch t {
	case apperrors.TypeInput, apperrors.TypeParsing:
		return fiber.StatusBadRequest
	case apperrors.TypeNotFound:
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}
