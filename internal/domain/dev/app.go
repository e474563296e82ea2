package dev

import (
	"context"
	"time"
)

// App is a third-party application registered by a developer. Tables, and
// through them table objects, are scoped to one app.
type App struct {
	ID        uint
	DevID     uint
	Name      string
	CreatedAt time.Time
}

type AppRepository interface {
	GetByID(ctx context.Context, id uint) (*App, error)
}
