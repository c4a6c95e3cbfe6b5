package errcodes

import "git.appkode.ru/pub/go/failure"

const (
	InternalServerError failure.ErrorCode = "InternalServerError"
	TimeoutExceeded     failure.ErrorCode = "TimeoutExceeded"
	ValidationError     failure.ErrorCode = "ValidationError"
	NotFound            failure.ErrorCode = "NotFound"
	Forbidden           failure.ErrorCode = "Forbidden"

	InvalidCategory failure.ErrorCode = "InvalidCategory"
	InvalidOreKey   failure.ErrorCode = "InvalidOreKey"
	InvalidQuantity failure.ErrorCode = "InvalidQuantity"
	InvalidShipName failure.ErrorCode = "InvalidShipName"

	DatasetUnavailable     failure.ErrorCode = "DatasetUnavailable"     // reference dataset fetch failed or malformed
	LiveOverlayUnavailable failure.ErrorCode = "LiveOverlayUnavailable" // all live base variants failed
	ShipRosterUnavailable  failure.ErrorCode = "ShipRosterUnavailable"
	OreNotFound            failure.ErrorCode = "OreNotFound"
	OreNotSelected         failure.ErrorCode = "OreNotSelected"
)
