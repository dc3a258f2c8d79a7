/**
* Name: 			user_handler.go
* Description: 		온보딩과 프로필 핸들러
* Workflow: 		온보딩(토큰 발급), 프로필 조회, 프로필 리셋
 */
package handler

import (
	"net/http"

	"GelezaSmart/internal/middleware"
	"GelezaSmart/internal/models"
	"GelezaSmart/internal/tutor"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type OnboardingResponse struct {
	Token string `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	tutor.Session
}

type SuccessResponse struct {
	Message string `json:"message" example:"Profile reset"`
}

// Onboarding godoc
// @Summary      온보딩 (Onboarding)
// @Description  학생 프로필을 만들고 세션 토큰과 첫 인사 메시지를 반환합니다.
// @Tags         User
// @Accept       json
// @Produce      json
// @Param        X-Class-Code header string false "수업 코드 (CLASS_CODE 설정 시 필수)"
// @Param        request body models.OnboardingData true "온보딩 정보"
// @Success      200 {object} handler.OnboardingResponse
// @Failure      400 {object} handler.ErrorResponse
// @Failure      403 {object} handler.ErrorResponse "잘못된 수업 코드"
// @Failure      500 {object} handler.ErrorResponse
// @Router       /onboarding [post]
func (h *Handler) Onboarding(c *gin.Context) {
	var data models.OnboardingData
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request"})
		return
	}

	sess, err := h.svc.Onboard(c.Request.Context(), data)
	if err != nil {
		h.abortWithError(c, err)
		return
	}

	token, err := h.tokens.Generate(sess.Profile.UID)
	if err != nil {
		h.logger.Error("Onboarding(): failed to sign token", zap.String("uid", sess.Profile.UID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to generate token"})
		return
	}
	c.JSON(http.StatusOK, OnboardingResponse{Token: token, Session: sess})
}

// Profile godoc
// @Summary      프로필 및 세션 조회 (Profile)
// @Description  저장된 프로필을 불러옵니다. 404이면 온보딩이 필요합니다.
// @Tags         User
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} tutor.Session
// @Failure      401 {object} handler.ErrorResponse
// @Failure      404 {object} handler.ErrorResponse "프로필 없음"
// @Router       /api/profile [get]
func (h *Handler) Profile(c *gin.Context) {
	sess, err := h.svc.Restore(c.Request.Context(), middleware.UID(c))
	if err != nil {
		h.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

// ResetProfile godoc
// @Summary      프로필 리셋 (Reset)
// @Description  프로필과 대화 기록을 모두 삭제합니다.
// @Tags         User
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} handler.SuccessResponse
// @Failure      401 {object} handler.ErrorResponse
// @Failure      500 {object} handler.ErrorResponse
// @Router       /api/profile [delete]
func (h *Handler) ResetProfile(c *gin.Context) {
	if err := h.svc.Reset(c.Request.Context(), middleware.UID(c)); err != nil {
		h.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Profile reset"})
}
