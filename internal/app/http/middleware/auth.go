package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"orcafacil/go_backend/internal/app/workspace"
	"orcafacil/go_backend/internal/domain/apperr"
)

// WorkspaceHeader carries the id returned at login.
const WorkspaceHeader = "X-Workspace-ID"

type ctxKey struct{}

type WorkspaceResolver interface {
	Get(ctx context.Context, id string) (*workspace.Workspace, error)
}

// WorkspaceAuth rejects requests without an authenticated workspace and puts
// the workspace in the request context.
func WorkspaceAuth(workspaces WorkspaceResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ws, err := workspaces.Get(r.Context(), r.Header.Get(WorkspaceHeader))
			if err != nil {
				status := http.StatusUnauthorized
				if apperr.KindOf(err) == apperr.KindInternal {
					status = http.StatusInternalServerError
				}
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(status)
				json.NewEncoder(w).Encode(map[string]string{"error": apperr.Message(err)})
				return
			}
			next.ServeHTTP(w, r.WithContext(WithWorkspace(r.Context(), ws)))
		})
	}
}

func WithWorkspace(ctx context.Context, ws *workspace.Workspace) context.Context {
	return context.WithValue(ctx, ctxKey{}, ws)
}

// Workspace returns the workspace set by WorkspaceAuth.
func Workspace(ctx context.Context) *workspace.Workspace {
	ws, _ := ctx.Value(ctxKey{}).(*workspace.Workspace)
	return ws
}
