package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	types "github.com/Dee1911/Aspire.can/internal/domain/recommend"
	"github.com/Dee1911/Aspire.can/internal/http/response"
	"github.com/Dee1911/Aspire.can/internal/services"
)

type RecommendationHandler struct {
	recommendationService services.RecommendationService
}

func NewRecommendationHandler(recommendationService services.RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{recommendationService: recommendationService}
}

// recommend binds Req, runs flow and writes its result.
func recommend[Req any, Res any](c *gin.Context, flow func(ctx context.Context, req Req) (*Res, error)) {
	var req Req
	if !bindJSON(c, &req) {
		return
	}
	out, err := flow(c.Request.Context(), req)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, out)
}

// POST /api/recommendations/programs
func (h *RecommendationHandler) FindPrograms(c *gin.Context) {
	recommend(c, h.recommendationService.FindPrograms)
}

// POST /api/recommendations/admission-chance
func (h *RecommendationHandler) AdmissionChance(c *gin.Context) {
	recommend(c, h.recommendationService.CalculateAdmissionChance)
}

// POST /api/recommendations/essay-feedback
func (h *RecommendationHandler) EssayFeedback(c *gin.Context) {
	recommend(c, h.recommendationService.AnalyzeEssay)
}

// POST /api/recommendations/timeline
func (h *RecommendationHandler) Timeline(c *gin.Context) {
	recommend(c, h.recommendationService.GenerateTimeline)
}

// POST /api/recommendations/scholarships
// An empty userProfile uses the caller's story builder narrative.
func (h *RecommendationHandler) Scholarships(c *gin.Context) {
	uid := userID(c)
	recommend(c, func(ctx context.Context, req types.ScholarshipRequest) (*types.ScholarshipMatches, error) {
		return h.recommendationService.FindScholarships(ctx, uid, req)
	})
}

// POST /api/recommendations/ec-impact
func (h *RecommendationHandler) ECImpact(c *gin.Context) {
	recommend(c, h.recommendationService.SuggestECImpact)
}

// POST /api/recommendations/features
func (h *RecommendationHandler) Features(c *gin.Context) {
	recommend(c, h.recommendationService.RecommendFeatures)
}
