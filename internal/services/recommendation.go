package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Dee1911/Aspire.can/internal/catalog"
	types "github.com/Dee1911/Aspire.can/internal/domain/recommend"
	"github.com/Dee1911/Aspire.can/internal/observability"
	"github.com/Dee1911/Aspire.can/internal/platform/ctxutil"
	"github.com/Dee1911/Aspire.can/internal/platform/logger"
	"github.com/Dee1911/Aspire.can/internal/recommend/prompts"
)

// Generator produces one JSON object conforming to schema. Implementations
// live in platform/openai and platform/gemini.
type Generator interface {
	GenerateJSON(ctx context.Context, system string, user string, schemaName string, schema map[string]any) (map[string]any, error)
}

var errNoGenerator = errors.New("generation provider not configured")

// RecommendationService runs the prompt flows. Each call builds the prompt,
// invokes the generator once and validates the result; there is no retry.
type RecommendationService interface {
	FindPrograms(ctx context.Context, req types.FindProgramsRequest) (*types.ProgramMatches, error)
	CalculateAdmissionChance(ctx context.Context, req types.AdmissionChanceRequest) (*types.AdmissionChance, error)
	AnalyzeEssay(ctx context.Context, req types.EssayFeedbackRequest) (*types.EssayFeedback, error)
	GenerateTimeline(ctx context.Context, req types.TimelineRequest) (*types.Timeline, error)
	// FindScholarships falls back to the caller's composed narrative when
	// req.UserProfile is blank.
	FindScholarships(ctx context.Context, uid string, req types.ScholarshipRequest) (*types.ScholarshipMatches, error)
	SuggestECImpact(ctx context.Context, req types.ECImpactRequest) (*types.ECImpact, error)
	RecommendFeatures(ctx context.Context, req types.FeatureRequest) (*types.FeatureRecommendation, error)
}

type recommendationService struct {
	log      *logger.Logger
	gen      Generator
	provider string
	catalog  *catalog.Catalog
	story    StoryService
}

func NewRecommendationService(log *logger.Logger, gen Generator, cat *catalog.Catalog, story StoryService) RecommendationService {
	provider := "none"
	if p, ok := gen.(interface{ Provider() string }); ok {
		provider = p.Provider()
	}
	return &recommendationService{
		log:      log.With("service", "RecommendationService", "provider", provider),
		gen:      gen,
		provider: provider,
		catalog:  cat,
		story:    story,
	}
}

func (rs *recommendationService) FindPrograms(ctx context.Context, req types.FindProgramsRequest) (*types.ProgramMatches, error) {
	return invoke[types.ProgramMatches](ctx, rs, prompts.PromptFindPrograms, prompts.Input{
		Grades:            req.Grades,
		Interests:         req.Interests,
		CareerAspirations: req.CareerAspirations,
		Extracurriculars:  req.Extracurriculars,
	})
}

func (rs *recommendationService) CalculateAdmissionChance(ctx context.Context, req types.AdmissionChanceRequest) (*types.AdmissionChance, error) {
	return invoke[types.AdmissionChance](ctx, rs, prompts.PromptCalculateAdmissionChance, prompts.Input{
		Grades:           req.Grades,
		Extracurriculars: req.Extracurriculars,
		Awards:           req.Awards,
		EssayQuality:     req.EssayQuality,
		TargetUniversity: req.TargetUniversity,
		TargetProgram:    req.TargetProgram,
	})
}

func (rs *recommendationService) AnalyzeEssay(ctx context.Context, req types.EssayFeedbackRequest) (*types.EssayFeedback, error) {
	return invoke[types.EssayFeedback](ctx, rs, prompts.PromptAnalyzeEssay, prompts.Input{
		EssayDraft:          req.EssayDraft,
		EssayPrompt:         req.EssayPrompt,
		StoryBuilderContext: req.StoryBuilderContext,
	})
}

func (rs *recommendationService) GenerateTimeline(ctx context.Context, req types.TimelineRequest) (*types.Timeline, error) {
	return invoke[types.Timeline](ctx, rs, prompts.PromptGenerateTimeline, prompts.Input{
		Grade:        req.Grade,
		Goals:        req.Goals,
		Universities: req.Universities,
	})
}

func (rs *recommendationService) FindScholarships(ctx context.Context, uid string, req types.ScholarshipRequest) (*types.ScholarshipMatches, error) {
	profile := req.UserProfile
	if strings.TrimSpace(profile) == "" && rs.story != nil && uid != "" {
		data, err := rs.story.GetStory(ctx, uid)
		if err != nil {
			return nil, err
		}
		profile = rs.story.ComposeNarrative(data)
	}
	return invoke[types.ScholarshipMatches](ctx, rs, prompts.PromptFindScholarships, prompts.Input{
		UserProfile:  profile,
		Scholarships: rs.catalog.Scholarships(),
	})
}

func (rs *recommendationService) SuggestECImpact(ctx context.Context, req types.ECImpactRequest) (*types.ECImpact, error) {
	return invoke[types.ECImpact](ctx, rs, prompts.PromptSuggestECImpact, prompts.Input{
		ActivityName:        req.ActivityName,
		ActivityDescription: req.ActivityDescription,
	})
}

func (rs *recommendationService) RecommendFeatures(ctx context.Context, req types.FeatureRequest) (*types.FeatureRecommendation, error) {
	return invoke[types.FeatureRecommendation](ctx, rs, prompts.PromptRecommendFeatures, prompts.Input{
		UserNeed: req.UserNeed,
	})
}

// invoke is the typed prompt call: input errors return before any outbound
// request, every later failure is joined with ErrGenerationFailed.
func invoke[T any](ctx context.Context, rs *recommendationService, name prompts.PromptName, in prompts.Input) (*T, error) {
	p, err := prompts.Build(name, in)
	if err != nil {
		return nil, err
	}

	ctx, span := observability.Tracer().Start(ctx, "recommend."+string(name), trace.WithAttributes(
		attribute.String("prompt.name", p.Name),
		attribute.Int("prompt.version", p.Version),
		attribute.String("prompt.fingerprint", p.Fingerprint()),
		attribute.String("generation.provider", rs.provider),
	))
	defer span.End()

	start := time.Now()
	fail := func(outcome string, cause error) (*T, error) {
		observability.Current().ObserveGeneration(p.Name, rs.provider, outcome, time.Since(start))
		span.RecordError(cause)
		span.SetStatus(codes.Error, outcome)
		fields := []interface{}{"prompt", p.Name, "outcome", outcome, "error", cause}
		if t, ok := ctxutil.TraceFrom(ctx); ok {
			fields = append(fields, t.LogFields()...)
		}
		rs.log.Warn("Generation failed", fields...)
		return nil, errors.Join(ErrGenerationFailed, cause)
	}

	if rs.gen == nil {
		return fail("error", errNoGenerator)
	}
	out, err := rs.gen.GenerateJSON(ctx, p.System, p.User, p.SchemaName, p.Schema)
	if err != nil {
		return fail("error", err)
	}
	var dst T
	if err := prompts.Decode(p, out, &dst); err != nil {
		return fail("invalid_output", err)
	}

	observability.Current().ObserveGeneration(p.Name, rs.provider, "ok", time.Since(start))
	span.SetStatus(codes.Ok, "")
	rs.log.Debug("Generation succeeded", "prompt", p.Name, "latency_ms", time.Since(start).Milliseconds())
	return &dst, nil
}
