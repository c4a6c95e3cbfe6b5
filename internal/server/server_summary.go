package server

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"git.appkode.ru/pub/go/failure"

	"mining_hub/internal/domain/entity"
	"mining_hub/internal/domain/service/capacity"
	"mining_hub/internal/domain/service/economics"
	"mining_hub/internal/infrastructure/uexlive"
	"mining_hub/internal/overlay"
	"mining_hub/pkg/errcodes"
	"mining_hub/pkg/httpx/reply"
)

const defaultSessionMinutes = 30

type summaryService interface {
	Summary(ctx context.Context, category entity.Category, in economics.Input, loadout capacity.Loadout) (entity.Summary, entity.CapacityCheck, error)
	LiveStatus(category entity.Category) (overlay.Status, *uexlive.Meta)
}

type SummaryServer struct {
	summaryService summaryService
}

func NewSummaryServer(summaryService summaryService) SummaryServer {
	return SummaryServer{
		summaryService: summaryService,
	}
}

func (s SummaryServer) getV1Summary(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	category, err := categoryFromRequest(r)
	if err != nil {
		return err
	}

	in, err := economicsInputFromQuery(r)
	if err != nil {
		return err
	}

	loadout, err := loadoutFromQuery(r)
	if err != nil {
		return err
	}

	summary, check, err := s.summaryService.Summary(ctx, category, in, loadout)
	if err != nil {
		return fmt.Errorf("summaryService.Summary: %w", err)
	}

	liveStatus, _ := s.summaryService.LiveStatus(category)

	reply.JSON(ctx, w, http.StatusOK, newRESTSummary(category, summary, check, liveStatus))

	return nil
}

// economicsInputFromQuery parses session_minutes and target_per_hour. Values
// outside the allowed ranges are clamped downstream, not rejected; only
// unparsable input is an error.
func economicsInputFromQuery(r *http.Request) (economics.Input, error) {
	in := economics.Input{SessionMinutes: defaultSessionMinutes}

	q := r.URL.Query()

	if raw := q.Get("session_minutes"); raw != "" {
		minutes, err := strconv.Atoi(raw)
		if err != nil {
			return economics.Input{}, badQueryParam("session_minutes", raw)
		}
		in.SessionMinutes = minutes
	}

	if raw := q.Get("target_per_hour"); raw != "" {
		target, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return economics.Input{}, badQueryParam("target_per_hour", raw)
		}
		in.TargetPerHour = target
	}

	return in, nil
}

func loadoutFromQuery(r *http.Request) (capacity.Loadout, error) {
	q := r.URL.Query()

	loadout := capacity.Loadout{
		ShipName: q.Get("ship"),
	}

	switch vehicle := q.Get("vehicle"); vehicle {
	case "":
	case string(entity.VehicleROC):
		loadout.Vehicle = entity.VehicleROC
	case string(entity.VehicleROCDS):
		loadout.Vehicle = entity.VehicleROCDS
	default:
		return capacity.Loadout{}, badQueryParam("vehicle", vehicle)
	}

	return loadout, nil
}

func badQueryParam(name, value string) error {
	return failure.NewInvalidArgumentError(
		fmt.Sprintf("bad query param %s=%q", name, value),
		failure.WithCode(errcodes.ValidationError),
		failure.WithDescription(fmt.Sprintf("query param %q is invalid", name)),
	)
}
