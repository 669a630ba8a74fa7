package service

import (
	"message-scheduler-backend/internal/realtime"

	"github.com/google/uuid"
)

// ChangePublisher announces writes to subscribers
type ChangePublisher interface {
	Publish(evt realtime.ChangeEvent)
}

func publish(p ChangePublisher, table string, typ realtime.EventType, id uuid.UUID) {
	if p == nil {
		return
	}
	p.Publish(realtime.ChangeEvent{Table: table, Type: typ, RecordID: id})
}
