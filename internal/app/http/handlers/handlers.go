package handlers

import (
	"go.uber.org/zap"

	"orcafacil/go_backend/internal/app/workspace"
	"orcafacil/go_backend/internal/domain/quote/pdf"
)

type Handlers struct {
	Workspaces *workspace.Manager
	PDF        pdf.Generator
	Log        *zap.Logger
}

func New(workspaces *workspace.Manager, gen pdf.Generator, log *zap.Logger) *Handlers {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handlers{Workspaces: workspaces, PDF: gen, Log: log}
}
