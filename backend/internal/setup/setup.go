package setup

import (
	"github.com/threadlens/threadlens/backend/internal/handler"
	"github.com/threadlens/threadlens/backend/internal/service"
	"github.com/threadlens/threadlens/backend/internal/storage/fs"
	"github.com/threadlens/threadlens/backend/internal/storage/pg"
	"github.com/threadlens/threadlens/shared/config"
	"github.com/threadlens/threadlens/shared/identity"
)

// Dependencies holds all initialized backend dependencies.
type Dependencies struct {
	Config   *config.Config
	Storage  *pg.Storage
	Handler  *handler.Handler
	Identity identity.Decoder
}

// SetupDependencies initializes everything the backend needs.
func SetupDependencies(cfg *config.Config) (*Dependencies, error) {
	storage, err := pg.New(cfg)
	if err != nil {
		return nil, err
	}

	media, err := fs.New(cfg.Public.MediaPath)
	if err != nil {
		storage.Cleanup()
		return nil, err
	}

	gate := service.NewAccessGate(cfg.Public.Gallery)
	criteria := service.NewCriteriaBuilder(storage)
	thumbs := service.NewThumbnailer(storage, media)
	cooker := service.NewBaseURLCooker(cfg.Public.MediaBaseUrl)
	resolver := service.NewResolver(storage, thumbs, cooker)
	gallery := service.NewGallery(storage, gate, criteria, resolver, cfg.Public.Gallery)

	h := handler.New(gallery)

	return &Dependencies{
		Config:   cfg,
		Storage:  storage,
		Handler:  h,
		Identity: identity.New(cfg.Private.JwtSecret),
	}, nil
}
