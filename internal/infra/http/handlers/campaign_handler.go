package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/heysh/crm-backend/internal/content"
	"github.com/heysh/crm-backend/internal/entity"
	"github.com/heysh/crm-backend/internal/infra/http/middleware"
	"github.com/heysh/crm-backend/internal/usecase"
)

type CampaignHandler struct {
	Repo     entity.CampaignRepositoryInterface
	Executor *usecase.CampaignExecutor
}

func NewCampaignHandler(repo entity.CampaignRepositoryInterface, executor *usecase.CampaignExecutor) *CampaignHandler {
	return &CampaignHandler{Repo: repo, Executor: executor}
}

type createCampaignRequest struct {
	Name              string                   `json:"name"`
	Objective         entity.CampaignObjective `json:"objective"`
	Channels          []entity.CampaignChannel `json:"channels"`
	Prompt            string                   `json:"prompt"`
	SegmentDefinition string                   `json:"segment_definition"`
}

func (h *CampaignHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createCampaignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid JSON"})
		return
	}

	if req.SegmentDefinition != "" {
		if _, err := usecase.ParseSegmentDefinition(req.SegmentDefinition); err != nil {
			writeError(w, &entity.InvalidFieldError{Field: "segment_definition", Reason: err.Error()})
			return
		}
	}

	campaign, err := entity.NewCampaign(req.Name, req.Objective, req.Channels, req.Prompt, req.SegmentDefinition)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.Repo.Create(r.Context(), campaign); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, campaign)
}

func (h *CampaignHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	campaign, err := h.Repo.FindByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	if campaign == nil {
		writeError(w, &usecase.NotFoundError{Resource: "Campaign", ID: id})
		return
	}
	writeJSON(w, http.StatusOK, campaign)
}

func (h *CampaignHandler) List(w http.ResponseWriter, r *http.Request) {
	campaigns, err := h.Repo.FindAll(r.Context(), queryInt(r, "limit", 50), queryInt(r, "offset", 0))
	if err != nil {
		writeError(w, err)
		return
	}
	if campaigns == nil {
		campaigns = []*entity.Campaign{}
	}
	writeJSON(w, http.StatusOK, campaigns)
}

type updateCampaignRequest struct {
	Name              *string                   `json:"name"`
	Objective         *entity.CampaignObjective `json:"objective"`
	Status            *entity.CampaignStatus    `json:"status"`
	Channels          *[]entity.CampaignChannel `json:"channels"`
	Prompt            *string                   `json:"prompt"`
	SegmentDefinition *string                   `json:"segment_definition"`
}

func (h *CampaignHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	campaign, err := h.Repo.FindByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	if campaign == nil {
		writeError(w, &usecase.NotFoundError{Resource: "Campaign", ID: id})
		return
	}

	var req updateCampaignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid JSON"})
		return
	}

	if req.Name != nil {
		campaign.Name = *req.Name
	}
	if req.Objective != nil {
		if !req.Objective.IsValid() {
			writeError(w, &entity.InvalidFieldError{Field: "objective", Reason: "Unknown campaign objective '" + string(*req.Objective) + "'"})
			return
		}
		campaign.Objective = *req.Objective
	}
	if req.Status != nil {
		campaign.Status = *req.Status
	}
	if req.Channels != nil {
		for _, ch := range *req.Channels {
			if !ch.IsValid() {
				writeError(w, &entity.InvalidFieldError{Field: "channels", Reason: "Unknown channel '" + string(ch) + "'"})
				return
			}
		}
		campaign.Channels = *req.Channels
	}
	if req.Prompt != nil {
		campaign.Prompt = *req.Prompt
	}
	if req.SegmentDefinition != nil {
		if *req.SegmentDefinition != "" {
			if _, err := usecase.ParseSegmentDefinition(*req.SegmentDefinition); err != nil {
				writeError(w, &entity.InvalidFieldError{Field: "segment_definition", Reason: err.Error()})
				return
			}
		}
		campaign.SegmentDefinition = *req.SegmentDefinition
	}
	campaign.UpdatedAt = time.Now().UTC()

	if err := h.Repo.Update(r.Context(), campaign); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, campaign)
}

type generateAssetsRequest struct {
	AssetTypes []entity.AssetType `json:"asset_types"`
	Prompt     string             `json:"prompt"`
}

// GenerateAssets renders content for each requested asset type and stores
// the results against the campaign.
func (h *CampaignHandler) GenerateAssets(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	campaign, err := h.Repo.FindByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	if campaign == nil {
		writeError(w, &usecase.NotFoundError{Resource: "Campaign", ID: id})
		return
	}

	var req generateAssetsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid JSON"})
		return
	}
	if len(req.AssetTypes) == 0 {
		writeError(w, &entity.RequiredFieldError{Field: "asset_types"})
		return
	}

	var created []*entity.CampaignAsset
	for _, assetType := range req.AssetTypes {
		var payload any
		switch assetType {
		case entity.AssetEmail:
			payload = content.GenerateEmail(req.Prompt)
		case entity.AssetSocialPost:
			payload = content.GenerateSocialPosts(req.Prompt)
		case entity.AssetLandingPage:
			payload = content.GenerateLandingPage(req.Prompt)
		case entity.AssetEventInvite:
			payload = content.GenerateEmail(fmt.Sprintf("Event invitation: %s", req.Prompt))
		default:
			writeError(w, &entity.InvalidFieldError{Field: "asset_types", Reason: "Unknown asset type '" + string(assetType) + "'"})
			return
		}

		raw, err := json.Marshal(payload)
		if err != nil {
			writeError(w, err)
			return
		}

		asset := &entity.CampaignAsset{
			CampaignID: id,
			Type:       assetType,
			Content:    string(raw),
			CreatedAt:  time.Now().UTC(),
		}
		if err := h.Repo.CreateAsset(r.Context(), asset); err != nil {
			writeError(w, err)
			return
		}
		created = append(created, asset)
	}

	writeJSON(w, http.StatusCreated, created)
}

func (h *CampaignHandler) ListAssets(w http.ResponseWriter, r *http.Request) {
	assets, err := h.Repo.FindAssetsByCampaignID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	if assets == nil {
		assets = []*entity.CampaignAsset{}
	}
	writeJSON(w, http.StatusOK, assets)
}

func (h *CampaignHandler) Execute(w http.ResponseWriter, r *http.Request) {
	result, err := h.Executor.Execute(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	middleware.RecordCampaignExecution(string(result.Objective))
	writeJSON(w, http.StatusOK, result)
}
