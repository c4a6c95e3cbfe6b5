package server

import (
	"context"
	"net/http"

	"mining_hub/internal/domain/entity"
	"mining_hub/internal/infrastructure/uexlive"
	"mining_hub/internal/overlay"
	"mining_hub/pkg/httpx/reply"
)

type liveService interface {
	RefreshLive(ctx context.Context, category entity.Category, force bool) overlay.Status
	LiveStatus(category entity.Category) (overlay.Status, *uexlive.Meta)
}

type LiveServer struct {
	liveService liveService
}

func NewLiveServer(liveService liveService) LiveServer {
	return LiveServer{
		liveService: liveService,
	}
}

func (s LiveServer) postV1LiveRefresh(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	category, err := categoryFromRequest(r)
	if err != nil {
		return err
	}

	force := r.URL.Query().Get("force") == "true"

	s.liveService.RefreshLive(ctx, category, force)

	status, meta := s.liveService.LiveStatus(category)

	reply.JSON(ctx, w, http.StatusOK, newRESTLiveStatus(status, meta))

	return nil
}

func (s LiveServer) getV1LiveStatus(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	category, err := categoryFromRequest(r)
	if err != nil {
		return err
	}

	status, meta := s.liveService.LiveStatus(category)

	reply.JSON(ctx, w, http.StatusOK, newRESTLiveStatus(status, meta))

	return nil
}
