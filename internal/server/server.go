// Package server exposes the v1 HTTP API on top of the engine.
package server

// Server объединяет специфичные HTTP сервера, отвечающие за обработку
// конкретных сущностей.
type Server struct {
	CatalogServer
	BasketServer
	SummaryServer
	LiveServer
}

func NewServer(
	catalogServer CatalogServer,
	basketServer BasketServer,
	summaryServer SummaryServer,
	liveServer LiveServer,
) Server {
	return Server{
		CatalogServer: catalogServer,
		BasketServer:  basketServer,
		SummaryServer: summaryServer,
		LiveServer:    liveServer,
	}
}
