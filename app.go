package main

import (
	"context"

	jobsusecase "github.com/yunweneric/lingo-desk/internal/usecase/jobs"

	"github.com/wailsapp/wails/v2/pkg/runtime"
)

// App is the root Wails binding. It holds the runtime context so the
// job runner can emit progress events to the frontend.
type App struct {
	ctx    context.Context
	runner *jobsusecase.Runner
}

func NewApp() *App {
	return &App{}
}

// startup saves the runtime context and hooks the job runner up to the
// frontend event bus.
func (a *App) startup(ctx context.Context) {
	a.ctx = ctx
	if a.runner != nil {
		a.runner.SetEmitter(wailsEmitter{ctx: a.ctx})
	}
}

// SetRunner lets main() provide the job runner before the window opens.
func (a *App) SetRunner(r *jobsusecase.Runner) {
	a.runner = r
}

type wailsEmitter struct{ ctx context.Context }

func (w wailsEmitter) Emit(name string, payload any) {
	runtime.EventsEmit(w.ctx, name, payload)
}
