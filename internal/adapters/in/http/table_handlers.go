package http

import (
	"net/http"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/table"

	"github.com/labstack/echo/v4"
)

// GetTables handles GET /api/v1/tables. Supports ?section= and
// ?available=true filters.
func (s *Server) GetTables(ctx echo.Context) error {
	var tables []*table.Table
	switch {
	case ctx.QueryParam("available") == "true":
		tables = s.tables.AvailableTables()
	case ctx.QueryParam("section") != "":
		tables = s.tables.TablesBySection(ctx.QueryParam("section"))
	default:
		tables = s.tables.Tables()
	}

	return ctx.JSON(http.StatusOK, toTableResponses(tables))
}

// GetTable handles GET /api/v1/tables/:id.
func (s *Server) GetTable(ctx echo.Context) error {
	id, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return respondError(ctx, err)
	}

	t, err := s.tables.Get(id)
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toTableResponse(t))
}

// CreateTableRequest is the body of POST /tables.
type CreateTableRequest struct {
	Number   int              `json:"number"`
	Capacity int              `json:"capacity"`
	Section  string           `json:"section"`
	Position PositionResponse `json:"position"`
}

// CreateTable handles POST /api/v1/tables.
func (s *Server) CreateTable(ctx echo.Context) error {
	var request CreateTableRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	t, err := table.NewTable(kernel.NewUUID(), request.Number, request.Capacity,
		request.Section, table.Position{X: request.Position.X, Y: request.Position.Y})
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.tables.Add(ctx.Request().Context(), t); err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, toTableResponse(t))
}

// UpdateTable handles PUT /api/v1/tables/:id.
func (s *Server) UpdateTable(ctx echo.Context) error {
	var request CreateTableRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	id, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return respondError(ctx, err)
	}

	err = s.tables.Update(ctx.Request().Context(), id, request.Number, request.Capacity,
		request.Section, table.Position{X: request.Position.X, Y: request.Position.Y})
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// DeleteTable handles DELETE /api/v1/tables/:id. Occupied tables
// cannot be deleted.
func (s *Server) DeleteTable(ctx echo.Context) error {
	id, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.tables.Delete(ctx.Request().Context(), id); err != nil {
		return respondError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// UpdateTableStatusRequest is the body of PUT /tables/:id/status.
type UpdateTableStatusRequest struct {
	Status       string `json:"status"`
	CustomerName string `json:"customerName"`
}

// UpdateTableStatus handles PUT /api/v1/tables/:id/status.
func (s *Server) UpdateTableStatus(ctx echo.Context) error {
	var request UpdateTableStatusRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	id, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return respondError(ctx, err)
	}

	status, err := table.ParseStatus(request.Status)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.tables.ChangeStatus(ctx.Request().Context(), id, status, request.CustomerName); err != nil {
		return respondError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// ClearTable handles POST /api/v1/tables/:id/clear - frees the table
// after the guests leave.
func (s *Server) ClearTable(ctx echo.Context) error {
	id, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.tables.Clear(ctx.Request().Context(), id); err != nil {
		return respondError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}
