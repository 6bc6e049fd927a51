package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/rareships-go/internal/application/common"
	"github.com/andrescamacho/rareships-go/internal/application/mediator"
)

// ListEventsQuery reads the persisted event log, oldest first
type ListEventsQuery struct {
	ShipID *uint32
	Type   string
	Limit  int
}

type ListEventsResponse struct {
	Events []common.EventRecord
}

// ListEventsHandler handles the ListEvents query
type ListEventsHandler struct {
	eventLog common.EventLogReader
}

func NewListEventsHandler(eventLog common.EventLogReader) *ListEventsHandler {
	return &ListEventsHandler{eventLog: eventLog}
}

func (h *ListEventsHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*ListEventsQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *ListEventsQuery")
	}
	if query.Limit < 0 {
		return nil, fmt.Errorf("limit must not be negative, got %d", query.Limit)
	}

	records, err := h.eventLog.List(ctx, common.EventFilter{
		ShipID: query.ShipID,
		Type:   query.Type,
		Limit:  query.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	return &ListEventsResponse{Events: records}, nil
}
