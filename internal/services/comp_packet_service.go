package services

import (
	"context"
	"strings"
	"time"

	"github.com/ajharbinger/comps-mao-pipeline/internal/comps"
	"github.com/ajharbinger/comps-mao-pipeline/internal/compsource"
	"github.com/ajharbinger/comps-mao-pipeline/internal/errors"
	"github.com/ajharbinger/comps-mao-pipeline/internal/logger"
	"github.com/ajharbinger/comps-mao-pipeline/internal/models"
	"github.com/ajharbinger/comps-mao-pipeline/internal/report"
	"github.com/ajharbinger/comps-mao-pipeline/internal/scoring"
	"github.com/ajharbinger/comps-mao-pipeline/internal/valuation"
	"github.com/ajharbinger/comps-mao-pipeline/internal/verify"
)

// Fallback subject profile applied when overrides are absent. These exact
// values are part of the request contract.
const (
	DefaultBeds  = 3
	DefaultBaths = 2.0
	DefaultSqFt  = 1627
	DefaultYear  = 1992
)

// DefaultAssignmentFee is applied when no fee is supplied
const DefaultAssignmentFee int64 = 20000

// RunCompsRequest is the typed request both the HTTP handler and the bot
// parser produce
type RunCompsRequest struct {
	Address          string           `json:"address"`
	Condition        string           `json:"condition"`
	AssignmentFee    int64            `json:"assignment_fee"`
	HighlightTier    string           `json:"highlight_tier"`
	SubjectOverrides SubjectOverrides `json:"subject_overrides"`
}

// SubjectOverrides is a partial subject record; zero fields fall back to
// the default profile
type SubjectOverrides struct {
	Beds  int     `json:"beds"`
	Baths float64 `json:"baths"`
	SqFt  int     `json:"sqft"`
	Year  int     `json:"year"`
}

// RunCompsResponse carries the full packet plus the rendered artifact
type RunCompsResponse struct {
	Packet  *models.CompPacket `json:"packet"`
	PDFPath string             `json:"pdf_path"`
	Summary string             `json:"summary"`
}

// CompPacketService defines the interface for the comp valuation flow
type CompPacketService interface {
	RunComps(ctx context.Context, req RunCompsRequest) (*RunCompsResponse, error)
	SourceKind() string
}

type compPacketService struct {
	source     compsource.Source
	normalizer *comps.Normalizer
	scorer     *scoring.Engine
	valuer     *valuation.Engine
	verifier   verify.Verifier
	renderer   report.Renderer
	log        logger.Logger
}

// NewCompPacketService wires the valuation flow with production defaults
// for the scorer and valuation tables
func NewCompPacketService(source compsource.Source, verifier verify.Verifier, renderer report.Renderer) CompPacketService {
	return &compPacketService{
		source:     source,
		normalizer: comps.NewNormalizer(),
		scorer:     scoring.NewEngine(),
		valuer:     valuation.NewEngine(valuation.DefaultConfig()),
		verifier:   verifier,
		renderer:   renderer,
		log:        logger.New("comps"),
	}
}

// SourceKind reports which comp source backs the service
func (s *compPacketService) SourceKind() string {
	return s.source.Kind()
}

// RunComps executes the full flow: defaults, fetch, normalize, score,
// verify, valuate, render. Defaults are substituted silently and echoed
// back in the packet so the caller sees the values actually applied.
func (s *compPacketService) RunComps(ctx context.Context, req RunCompsRequest) (*RunCompsResponse, error) {
	address := strings.TrimSpace(req.Address)
	if address == "" {
		return nil, errors.InvalidInput("address is required", nil)
	}

	subject := buildSubject(address, req.SubjectOverrides)
	condition := strings.ToLower(strings.TrimSpace(req.Condition))
	if condition == "" {
		condition = "fair"
	}
	fee := req.AssignmentFee
	if fee <= 0 {
		fee = DefaultAssignmentFee
	}
	highlight := strings.ToLower(strings.TrimSpace(req.HighlightTier))
	if highlight == "" {
		highlight = "aggressive"
	}

	raw, err := s.source.FetchComparables(ctx, address)
	if err != nil {
		return nil, errors.ServiceError("comp source failed", err).WithOperation("fetch_comparables")
	}
	s.log.Debug("fetched comparables", "address", address, "count", len(raw))

	normalized, err := s.normalizer.Normalize(raw)
	if err != nil {
		return nil, err
	}

	annotated := s.scorer.Annotate(subject, normalized)

	verified, err := verify.Apply(ctx, s.verifier, annotated)
	if err != nil {
		return nil, errors.ServiceError("cash verification failed", err).WithOperation("verify_cash")
	}

	result, err := s.valuer.Run(subject, verified, condition, fee, highlight)
	if err != nil {
		return nil, err
	}

	packet := &models.CompPacket{
		Subject:       subject,
		Condition:     result.Condition,
		AssignmentFee: fee,
		HighlightTier: result.HighlightTier,
		Comps:         result.Comps,
		ARV:           result.ARV,
		RehabCost:     result.RehabCost,
		MAORows:       result.MAORows,
		DispoPrice:    result.DispoPrice,
		HighlightMAO:  result.HighlightMAO,
		Summary:       result.Summary(),
		GeneratedAt:   time.Now().UTC(),
	}

	pdfPath, err := s.renderer.RenderPDF(ctx, packet)
	if err != nil {
		return nil, err
	}
	s.log.Info("comp packet generated", "address", address, "arv", packet.ARV, "pdf", pdfPath)

	return &RunCompsResponse{
		Packet:  packet,
		PDFPath: pdfPath,
		Summary: packet.Summary,
	}, nil
}

func buildSubject(address string, so SubjectOverrides) models.Subject {
	subject := models.Subject{
		Address: address,
		Beds:    so.Beds,
		Baths:   so.Baths,
		SqFt:    so.SqFt,
		Year:    so.Year,
	}
	if subject.Beds <= 0 {
		subject.Beds = DefaultBeds
	}
	if subject.Baths <= 0 {
		subject.Baths = DefaultBaths
	}
	if subject.SqFt <= 0 {
		subject.SqFt = DefaultSqFt
	}
	if subject.Year <= 0 {
		subject.Year = DefaultYear
	}
	return subject
}
