package server

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"git.appkode.ru/pub/go/failure"

	"mining_hub/internal/domain/entity"
	"mining_hub/internal/domain/service/units"
	"mining_hub/internal/infrastructure/ships"
	"mining_hub/pkg/errcodes"
	"mining_hub/pkg/httpx/reply"
	"mining_hub/pkg/lox"
	"mining_hub/pkg/rest"
)

const defaultSellerLimit = 5

type catalogService interface {
	CatalogView(ctx context.Context, category entity.Category) ([]entity.Ore, error)
	TopSellers(ctx context.Context, category entity.Category, key string, limit int) (string, []entity.Seller, error)
}

type shipRoster interface {
	MiningShips(ctx context.Context) ([]ships.Ship, error)
}

type CatalogServer struct {
	catalogService catalogService
	shipRoster     shipRoster
}

func NewCatalogServer(catalogService catalogService, shipRoster shipRoster) CatalogServer {
	return CatalogServer{
		catalogService: catalogService,
		shipRoster:     shipRoster,
	}
}

func (s CatalogServer) getV1Catalog(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	category, err := categoryFromRequest(r)
	if err != nil {
		return err
	}

	ores, err := s.catalogService.CatalogView(ctx, category)
	if err != nil {
		return fmt.Errorf("catalogService.CatalogView: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTCatalog(category, ores))

	return nil
}

func (s CatalogServer) getV1OreSellers(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	category, err := categoryFromRequest(r)
	if err != nil {
		return err
	}

	limit := defaultSellerLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 1 {
			return failure.NewInvalidArgumentError(
				fmt.Sprintf("bad seller limit %q", raw),
				failure.WithCode(errcodes.ValidationError),
				failure.WithDescription("limit must be a positive integer"),
			)
		}
	}

	name, sellers, err := s.catalogService.TopSellers(ctx, category, r.PathValue("key"), limit)
	if err != nil {
		return fmt.Errorf("catalogService.TopSellers: %w", err)
	}

	out := lox.Map(sellers, newRESTSeller)

	reply.JSON(ctx, w, http.StatusOK, struct {
		Key     string        `json:"key"`
		Name    string        `json:"name"`
		Unit    string        `json:"unit"`
		Sellers []rest.Seller `json:"sellers"`
	}{
		Key:     r.PathValue("key"),
		Name:    name,
		Unit:    units.DisplayUnitLabel(category),
		Sellers: out,
	})

	return nil
}

func (s CatalogServer) getV1Ships(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	roster, err := s.shipRoster.MiningShips(ctx)
	if err != nil {
		return fmt.Errorf("shipRoster.MiningShips: %w", err)
	}

	out := lox.Map(roster, newRESTShip)

	reply.JSON(ctx, w, http.StatusOK, out)

	return nil
}

func categoryFromRequest(r *http.Request) (entity.Category, error) {
	raw := r.PathValue("category")

	category, err := entity.ParseCategory(raw)
	if err != nil {
		return 0, failure.NewInvalidArgumentErrorFromError(
			fmt.Errorf("entity.ParseCategory: %w", err),
			failure.WithCode(errcodes.InvalidCategory),
			failure.WithDescription(fmt.Sprintf("unknown category %q", raw)),
		)
	}

	return category, nil
}
