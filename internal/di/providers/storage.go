package providers

import (
	"path/filepath"

	"github.com/samber/do/v2"

	"github.com/lectioapp/lectio-server/internal/config"
	"github.com/lectioapp/lectio-server/internal/export"
	"github.com/lectioapp/lectio-server/internal/logger"
	"github.com/lectioapp/lectio-server/internal/store"
)

// StoreHandle wraps the store with shutdown capability.
type StoreHandle struct {
	*store.Store
}

// Shutdown implements do.Shutdownable.
func (h *StoreHandle) Shutdown() error {
	return h.Close()
}

// ProvideStore provides the note index database.
func ProvideStore(i do.Injector) (*StoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	dbPath := filepath.Join(cfg.Export.Dir, "db")
	db, err := store.New(dbPath, log)
	if err != nil {
		return nil, err
	}

	log.Info("Note index initialized", "path", dbPath)

	return &StoreHandle{Store: db}, nil
}

// ProvideExporter provides the artifact renderer.
func ProvideExporter(i do.Injector) (*export.Exporter, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	exporter, err := export.NewExporter(filepath.Join(cfg.Export.Dir, "artifacts"), log)
	if err != nil {
		return nil, err
	}

	log.Info("Export directory ready", "path", cfg.Export.Dir)

	return exporter, nil
}
