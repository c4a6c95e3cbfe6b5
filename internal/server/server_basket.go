package server

import (
	"context"
	"fmt"
	"net/http"

	"mining_hub/internal/domain/entity"
	"mining_hub/internal/domain/service/basket"
	"mining_hub/pkg/httpx/reply"
	"mining_hub/pkg/httpx/req"
	"mining_hub/pkg/rest"
)

type basketService interface {
	Basket(category entity.Category) *basket.Basket
	Toggle(ctx context.Context, category entity.Category, key string) (basket.Action, error)
	SetQuantity(ctx context.Context, category entity.Category, key string, value float64) error
	SetActive(category entity.Category, key string)
	Reset()
}

type BasketServer struct {
	basketService basketService
}

func NewBasketServer(basketService basketService) BasketServer {
	return BasketServer{
		basketService: basketService,
	}
}

func (s BasketServer) getV1Basket(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	category, err := categoryFromRequest(r)
	if err != nil {
		return err
	}

	snap := s.basketService.Basket(category).Snapshot()

	reply.JSON(ctx, w, http.StatusOK, newRESTBasket(category, snap))

	return nil
}

func (s BasketServer) postV1BasketToggle(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	category, err := categoryFromRequest(r)
	if err != nil {
		return err
	}

	var request rest.ToggleRequest
	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	action, err := s.basketService.Toggle(ctx, category, request.Key)
	if err != nil {
		return fmt.Errorf("basketService.Toggle: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, rest.ToggleResponse{
		Action:    string(action),
		ActiveKey: s.basketService.Basket(category).ActiveKey(),
	})

	return nil
}

func (s BasketServer) putV1BasketQuantity(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	category, err := categoryFromRequest(r)
	if err != nil {
		return err
	}

	var request rest.QuantityRequest
	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	if err := s.basketService.SetQuantity(ctx, category, request.Key, request.Value); err != nil {
		return fmt.Errorf("basketService.SetQuantity: %w", err)
	}

	reply.OK(w)

	return nil
}

func (s BasketServer) putV1BasketActive(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	category, err := categoryFromRequest(r)
	if err != nil {
		return err
	}

	var request rest.ActiveRequest
	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	s.basketService.SetActive(category, request.Key)

	snap := s.basketService.Basket(category).Snapshot()

	reply.JSON(ctx, w, http.StatusOK, newRESTBasket(category, snap))

	return nil
}

func (s BasketServer) postV1Reset(w http.ResponseWriter, _ *http.Request) error {
	s.basketService.Reset()

	reply.OK(w)

	return nil
}
