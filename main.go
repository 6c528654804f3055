package main

import (
	"embed"
	"fmt"

	dbsqlite "github.com/yunweneric/lingo-desk/internal/adapters/db/sqlite"
	expcsv "github.com/yunweneric/lingo-desk/internal/adapters/exporter/csv"
	expflat "github.com/yunweneric/lingo-desk/internal/adapters/exporter/flatjson"
	expnested "github.com/yunweneric/lingo-desk/internal/adapters/exporter/nestedjson"
	exportreg "github.com/yunweneric/lingo-desk/internal/adapters/exporter/registry"
	llmfactory "github.com/yunweneric/lingo-desk/internal/adapters/llm/factory"
	csvparser "github.com/yunweneric/lingo-desk/internal/adapters/parser/csv"
	"github.com/yunweneric/lingo-desk/internal/adapters/parser/flatjson"
	"github.com/yunweneric/lingo-desk/internal/adapters/parser/nestedjson"
	parreg "github.com/yunweneric/lingo-desk/internal/adapters/parser/registry"
	promptrender "github.com/yunweneric/lingo-desk/internal/adapters/prompt"
	apiapp "github.com/yunweneric/lingo-desk/internal/api/app"
	"github.com/yunweneric/lingo-desk/internal/config"
	"github.com/yunweneric/lingo-desk/internal/domain"
	"github.com/yunweneric/lingo-desk/internal/logger"
	"github.com/yunweneric/lingo-desk/internal/ports"
	exporterusecase "github.com/yunweneric/lingo-desk/internal/usecase/exporter"
	"github.com/yunweneric/lingo-desk/internal/usecase/importer"
	jobsusecase "github.com/yunweneric/lingo-desk/internal/usecase/jobs"
	progressusecase "github.com/yunweneric/lingo-desk/internal/usecase/progress"
	translatorusecase "github.com/yunweneric/lingo-desk/internal/usecase/translator"

	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"
	"go.uber.org/zap"
)

//go:embed all:frontend/dist
var assets embed.FS

func main() {
	cfg, err := config.Load()
	if err != nil {
		println("Config error:", err.Error())
		return
	}
	if err := logger.Init(cfg.Log.Level, cfg.Log.Format); err != nil {
		println("Logger error:", err.Error())
		return
	}
	defer logger.Sync()

	app := NewApp()

	db, err := dbsqlite.Init(cfg.Database.Path)
	if err != nil {
		logger.L().Fatal("open database", zap.String("path", cfg.Database.Path), zap.Error(err))
	}
	defer db.Close()

	projectRepo := dbsqlite.NewProjectRepo(db)
	fileRepo := dbsqlite.NewFileRepo(db)
	keyRepo := dbsqlite.NewKeyRepo(db)
	translationRepo := dbsqlite.NewTranslationRepo(db)
	providerRepo := dbsqlite.NewProviderRepo(db)
	templateRepo := dbsqlite.NewTemplateRepo(db)
	cacheRepo := dbsqlite.NewCacheRepo(db)
	jobRepo := dbsqlite.NewJobRepo(db)
	settingsRepo := dbsqlite.NewSettingsRepo(db)

	// Parsers and importer. Registration stays explicit so the set of
	// supported formats is visible in one place.
	parserRegistry := parreg.New()
	parserRegistry.Register(nestedjson.New())
	parserRegistry.Register(flatjson.New())
	parserRegistry.Register(csvparser.New())
	importSvc := importer.New(projectRepo, fileRepo, keyRepo, parserRegistry, dbsqlite.HashBytes)

	// Exporters mirror the parser set format for format.
	expRegistry := exportreg.New()
	expRegistry.Register(expnested.New())
	expRegistry.Register(expflat.New())
	expRegistry.Register(expcsv.New())
	expSvc := exporterusecase.New(fileRepo, keyRepo, translationRepo, expRegistry)

	progressSvc := progressusecase.New(projectRepo, fileRepo, keyRepo, translationRepo)

	pr := promptrender.New(templateRepo)
	transSvc := translatorusecase.New(translatorusecase.Deps{
		Providers:    providerRepo,
		Templates:    templateRepo,
		Cache:        cacheRepo,
		Translations: translationRepo,
		Prompt:       pr,
		BuildProvider: func(p *domain.Provider) (ports.Provider, error) {
			prov, ok := llmfactory.FromProvider(p)
			if !ok {
				return nil, fmt.Errorf("unsupported provider type: %s", p.Type)
			}
			return prov, nil
		},
	})

	runner := jobsusecase.NewRunner(jobsusecase.Deps{
		Jobs:         jobRepo,
		Projects:     projectRepo,
		Keys:         keyRepo,
		Providers:    providerRepo,
		Translations: translationRepo,
	}, transSvc)
	app.SetRunner(runner)

	err = wails.Run(&options.App{
		Title:  cfg.Window.Title,
		Width:  cfg.Window.Width,
		Height: cfg.Window.Height,
		AssetServer: &assetserver.Options{
			Assets: assets,
		},
		BackgroundColour: &options.RGBA{R: 27, G: 38, B: 54, A: 1},
		OnStartup:        app.startup,
		Bind: []interface{}{
			app,
			apiapp.NewProjectAPI(projectRepo),
			apiapp.NewFileAPI(fileRepo),
			apiapp.NewKeyAPI(keyRepo),
			apiapp.NewImportAPI(importSvc),
			apiapp.NewExportAPI(expSvc),
			apiapp.NewTranslationsAPI(translationRepo),
			apiapp.NewProgressAPI(progressSvc),
			apiapp.NewSettingsAPI(settingsRepo),
			apiapp.NewProviderAPI(providerRepo),
			apiapp.NewJobsAPI(runner, jobRepo),
		},
	})
	if err != nil {
		logger.L().Error("run app", zap.Error(err))
	}
}
