package controllers

import (
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/okaradag/unipath/internal/app/models/dto"
	"github.com/okaradag/unipath/internal/app/services"
	"github.com/okaradag/unipath/internal/middleware"
	"github.com/okaradag/unipath/internal/pkg/filestorage"
)

// OnboardingController handles the onboarding wizard endpoints
type OnboardingController struct {
	onboardingService *services.OnboardingService
}

// NewOnboardingController creates a new OnboardingController
func NewOnboardingController(onboardingService *services.OnboardingService) *OnboardingController {
	return &OnboardingController{
		onboardingService: onboardingService,
	}
}

// Status reports onboarding progress for the current user
// @Summary Get onboarding status
// @Description Returns completion status, percentage, missing fields and the route the client should show
// @Tags onboarding
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.OnboardingStatusResponse} "Status retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Student profile not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /onboarding/status [get]
func (c *OnboardingController) Status(ctx *gin.Context) {
	userID, ok := authenticatedUser(ctx)
	if !ok {
		return
	}

	response, err := c.onboardingService.Status(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(response))
}

// ValidatePersonalStep validates one personal wizard step without persisting
// @Summary Validate a personal wizard step
// @Description Runs the field rules for a single step of the personal wizard. Nothing is written.
// @Tags onboarding
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ValidatePersonalStepRequest true "Step number and current form snapshot"
// @Success 200 {object} dto.APIResponse{data=dto.StepValidationResponse} "Validation outcome"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /onboarding/personal/validate-step [post]
func (c *OnboardingController) ValidatePersonalStep(ctx *gin.Context) {
	var req dto.ValidatePersonalStepRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request format")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	response := c.onboardingService.ValidatePersonalStep(req.Step, req.Form)
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(response))
}

// ValidateAcademicStep validates one academic wizard step without persisting
// @Summary Validate an academic wizard step
// @Description Runs the field rules for a single step of the academic wizard. Nothing is written.
// @Tags onboarding
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ValidateAcademicStepRequest true "Step number and current form snapshot"
// @Success 200 {object} dto.APIResponse{data=dto.StepValidationResponse} "Validation outcome"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /onboarding/academic/validate-step [post]
func (c *OnboardingController) ValidateAcademicStep(ctx *gin.Context) {
	var req dto.ValidateAcademicStepRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request format")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	response := c.onboardingService.ValidateAcademicStep(req.Step, req.Form)
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(response))
}

// SubmitPersonal persists the personal wizard
// @Summary Submit the personal wizard
// @Description Validates the full personal form and writes it. The form travels in the payload field as JSON, files ride alongside.
// @Tags onboarding
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param payload formData string true "PersonalInfoForm as JSON"
// @Param profilePhoto formData file false "Profile photo (jpg, jpeg, png, max 5MB)"
// @Param registryDocument formData file false "Population registry document, required for TR second nationality"
// @Success 200 {object} dto.APIResponse{data=dto.OnboardingSubmitResponse} "Personal information saved"
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Student profile not found"
// @Failure 409 {object} dto.ErrorResponse "Profile already complete"
// @Failure 413 {object} dto.ErrorResponse "File too large"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /onboarding/personal [post]
func (c *OnboardingController) SubmitPersonal(ctx *gin.Context) {
	userID, ok := authenticatedUser(ctx)
	if !ok {
		return
	}

	var form dto.PersonalInfoForm
	if !bindPayload(ctx, &form) {
		return
	}

	uploads := services.PersonalUploads{
		ProfilePhoto:     optionalFile(ctx, "profilePhoto"),
		RegistryDocument: optionalFile(ctx, "registryDocument"),
	}

	response, err := c.onboardingService.SubmitPersonal(ctx, userID, form, uploads)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(response, "Personal information saved"))
}

// SkipPersonal skips the personal wizard
// @Summary Skip the personal wizard
// @Description Marks the personal wizard as skipped. Completion status stays incomplete and the client routes to the dashboard.
// @Tags onboarding
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.OnboardingSubmitResponse} "Wizard skipped"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Student profile not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /onboarding/personal/skip [post]
func (c *OnboardingController) SkipPersonal(ctx *gin.Context) {
	userID, ok := authenticatedUser(ctx)
	if !ok {
		return
	}

	response, err := c.onboardingService.SkipPersonal(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(response))
}

// SubmitAcademic persists the academic wizard
// @Summary Submit the academic wizard
// @Description Validates the full academic form and writes it. Exam reports are keyed examReport_{index}, document slots by slot name, extra files under additional.
// @Tags onboarding
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param payload formData string true "AcademicInfoForm as JSON"
// @Param passport_photo formData file false "Passport photo document"
// @Param transcript formData file false "Academic transcript"
// @Param diploma formData file false "Diploma or certificate"
// @Param degree_grade formData file false "Degree grade certificate"
// @Param additional formData file false "Additional documents (repeatable)"
// @Success 200 {object} dto.APIResponse{data=dto.OnboardingSubmitResponse} "Academic information saved"
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Student profile not found"
// @Failure 409 {object} dto.ErrorResponse "Personal information missing"
// @Failure 413 {object} dto.ErrorResponse "File too large"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /onboarding/academic [post]
func (c *OnboardingController) SubmitAcademic(ctx *gin.Context) {
	userID, ok := authenticatedUser(ctx)
	if !ok {
		return
	}

	var form dto.AcademicInfoForm
	if !bindPayload(ctx, &form) {
		return
	}

	uploads := services.AcademicUploads{
		ExamReports: make(map[int]*multipart.FileHeader),
		Slots:       make(map[string]*multipart.FileHeader),
	}

	for i := range form.Exams {
		if fh := optionalFile(ctx, fmt.Sprintf("examReport_%d", i)); fh != nil {
			uploads.ExamReports[i] = fh
		}
	}

	slots := []string{
		filestorage.SlotPassportPhoto,
		filestorage.SlotTranscript,
		filestorage.SlotDiploma,
		filestorage.SlotDegreeGrade,
	}
	for _, slot := range slots {
		if fh := optionalFile(ctx, slot); fh != nil {
			uploads.Slots[slot] = fh
		}
	}

	if mf, err := ctx.MultipartForm(); err == nil && mf != nil {
		uploads.Additional = mf.File["additional"]
	}

	response, err := c.onboardingService.SubmitAcademic(ctx, userID, form, uploads)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(response, "Academic information saved"))
}

// SkipAcademic skips the academic wizard
// @Summary Skip the academic wizard
// @Description Marks the academic wizard as skipped. Completion status stays partial and the client routes to the dashboard.
// @Tags onboarding
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.OnboardingSubmitResponse} "Wizard skipped"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Student profile not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /onboarding/academic/skip [post]
func (c *OnboardingController) SkipAcademic(ctx *gin.Context) {
	userID, ok := authenticatedUser(ctx)
	if !ok {
		return
	}

	response, err := c.onboardingService.SkipAcademic(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(response))
}

// bindPayload decodes the JSON form snapshot carried in the payload field
// of a multipart submit.
func bindPayload(ctx *gin.Context, out interface{}) bool {
	payload := ctx.PostForm("payload")
	if payload == "" {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Missing payload field")
		errorDetail = errorDetail.WithDetails("The form snapshot must be sent as JSON in the payload field")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return false
	}

	if err := json.Unmarshal([]byte(payload), out); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid payload format")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return false
	}

	return true
}

// optionalFile returns the uploaded file for the given form key, or nil
func optionalFile(ctx *gin.Context, key string) *multipart.FileHeader {
	fh, err := ctx.FormFile(key)
	if err != nil {
		return nil
	}
	return fh
}

// authenticatedUser pulls the user id set by the auth middleware
func authenticatedUser(ctx *gin.Context) (int64, bool) {
	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "User not authenticated")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return userID, true
}
