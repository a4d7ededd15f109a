package domain

import (
	"github.com/luminakids/storyreel-backend/internal/domain/content"
	"github.com/luminakids/storyreel-backend/internal/domain/jobs"
	"github.com/luminakids/storyreel-backend/internal/domain/publish"
	"github.com/luminakids/storyreel-backend/internal/domain/user"
)

type ContentProject = content.ContentProject
type Asset = content.Asset
type AssetMetadata = content.AssetMetadata
type AssetReview = content.AssetReview
type VideoTemplate = content.VideoTemplate
type AssetRequirement = content.AssetRequirement
type TemplatePart = content.TemplatePart
type PartRequirement = content.PartRequirement

type VideoAssignment = publish.VideoAssignment

type RenderJob = jobs.RenderJob
type RenderSegment = jobs.RenderSegment
type GenerationSaga = jobs.GenerationSaga
type GenerationSagaAction = jobs.GenerationSagaAction

type AdminUser = user.AdminUser
type Parent = user.Parent
type Child = user.Child

var (
	ValidProjectStatus   = content.ValidProjectStatus
	CanAdvanceProject    = content.CanAdvanceProject
	CanApproveAsset      = content.CanApproveAsset
	CanRejectAsset       = content.CanRejectAsset
	ValidAssignmentType  = publish.ValidAssignmentType
	CanRetryJob          = jobs.CanRetryJob
	CanCancelJob         = jobs.CanCancelJob
)

const (
	ProjectStatusPlanning   = content.ProjectStatusPlanning
	ProjectStatusGenerating = content.ProjectStatusGenerating
	ProjectStatusReviewing  = content.ProjectStatusReviewing
	ProjectStatusApproved   = content.ProjectStatusApproved
	ProjectStatusVideoReady = content.ProjectStatusVideoReady

	AssetTypeImage  = content.AssetTypeImage
	AssetTypeAudio  = content.AssetTypeAudio
	AssetTypeVideo  = content.AssetTypeVideo
	AssetTypePrompt = content.AssetTypePrompt

	AssetStatusPending    = content.AssetStatusPending
	AssetStatusGenerating = content.AssetStatusGenerating
	AssetStatusCompleted  = content.AssetStatusCompleted
	AssetStatusApproved   = content.AssetStatusApproved
	AssetStatusRejected   = content.AssetStatusRejected

	RequirementSpecific = content.RequirementSpecific
	RequirementByClass  = content.RequirementByClass

	AssignmentTypeIndividual = publish.AssignmentTypeIndividual
	AssignmentTypeTheme      = publish.AssignmentTypeTheme
	AssignmentTypeGeneral    = publish.AssignmentTypeGeneral

	AssignmentStatusPending   = publish.AssignmentStatusPending
	AssignmentStatusPublished = publish.AssignmentStatusPublished
	AssignmentStatusArchived  = publish.AssignmentStatusArchived

	JobStatusPending    = jobs.JobStatusPending
	JobStatusInProgress = jobs.JobStatusInProgress
	JobStatusCompleted  = jobs.JobStatusCompleted
	JobStatusFailed     = jobs.JobStatusFailed
)
