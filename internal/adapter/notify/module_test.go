package notify

import (
	"context"
	"log/slog"
	"testing"

	"go.uber.org/fx"

	"github.com/avelora/shopfront/internal/config"
)

func TestModuleProvidesClient(t *testing.T) {
	var client Client
	app := fx.New(
		fx.Provide(func() *config.Config { return &config.Config{NotifyURL: "https://ui.example.com/hooks"} }),
		fx.Provide(func() *slog.Logger { return testLogger() }),
		Module,
		fx.Populate(&client),
	)
	t.Cleanup(func() { _ = app.Stop(context.Background()) })
	if err := app.Err(); err != nil {
		t.Fatalf("fx app failed: %v", err)
	}
	if client == nil {
		t.Fatal("expected client to be populated")
	}
}

func TestModuleRejectsInvalidURL(t *testing.T) {
	var client Client
	app := fx.New(
		fx.Provide(func() *config.Config { return &config.Config{NotifyURL: "://bad"} }),
		fx.Provide(func() *slog.Logger { return testLogger() }),
		Module,
		fx.Populate(&client),
	)
	t.Cleanup(func() { _ = app.Stop(context.Background()) })
	if err := app.Err(); err == nil {
		t.Fatal("expected construction error")
	}
}
