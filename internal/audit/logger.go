package audit

import (
	"context"
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/service-center/internal/models"
)

type Logger struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Logger {
	return &Logger{db: db}
}

func (l *Logger) Log(ctx context.Context, ev Event) error {
	var meta datatypes.JSON
	if ev.Metadata != nil {
		b, err := json.Marshal(ev.Metadata)
		if err != nil {
			return fmt.Errorf("encode audit metadata for %s: %w", ev.Action, err)
		}
		meta = b
	}

	row := models.AuditLog{
		UserID:   ev.UserID,
		Role:     ev.Role,
		Action:   ev.Action,
		Entity:   ev.Entity,
		EntityID: ev.EntityID,
		Metadata: meta,
	}

	return l.db.WithContext(ctx).Create(&row).Error
}
