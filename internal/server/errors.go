package server

import (
	"git.appkode.ru/pub/go/failure"

	"mining_hub/internal/domain"
	"mining_hub/pkg/errcodes"
)

// asFailure lifts domain error codes into the failure kinds reply.Error maps
// to HTTP statuses. Errors that are already failures, or carry no code, pass
// through and land on 500.
func asFailure(err error) error {
	code, ok := domain.GetCode(err)
	if !ok {
		return err
	}

	switch code {
	case errcodes.OreNotFound, errcodes.NotFound:
		return failure.NewNotFoundErrorFromError(err, failure.WithCode(code))
	case errcodes.InvalidCategory, errcodes.InvalidOreKey,
		errcodes.InvalidQuantity, errcodes.InvalidShipName,
		errcodes.OreNotSelected:
		return failure.NewInvalidArgumentErrorFromError(err, failure.WithCode(code))
	case errcodes.DatasetUnavailable, errcodes.LiveOverlayUnavailable,
		errcodes.ShipRosterUnavailable:
		return failure.NewUnprocessableEntityErrorFromError(err, failure.WithCode(code))
	default:
		return err
	}
}
