package main

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"timekeep/internal/handlers"
	"timekeep/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupRouter(t *testing.T) {
	// Setup dependencies
	db, err := storage.NewDB(":memory:")
	require.NoError(t, err, "failed to create database")
	defer db.Close()

	// Use relative paths for tests running in cmd/server
	h := handlers.NewHandlers(db, "../../web/templates", false, nil)

	if _, err := os.Stat("../../web/templates"); os.IsNotExist(err) {
		t.Skip("Template directory not found, skipping router test")
	}

	// Create router - this triggers the panic if routing conflict exists
	mux := setupRouter(h, "../../web/static")

	// Verify routes
	tests := []struct {
		name       string
		method     string
		path       string
		wantStatus int
		allowAlt   []int // Alternative acceptable status codes
	}{
		{
			name:       "Root redirects to /projects",
			method:     "GET",
			path:       "/",
			wantStatus: http.StatusFound,
		},
		{
			name:       "Static file access",
			method:     "GET",
			path:       "/static/style.css",
			wantStatus: http.StatusOK,
			allowAlt:   []int{http.StatusNotFound}, // File might not exist in test env
		},
		{
			name:       "Login page is public",
			method:     "GET",
			path:       "/login",
			wantStatus: http.StatusOK,
		},
		{
			name:       "Projects page requires auth",
			method:     "GET",
			path:       "/projects",
			wantStatus: http.StatusFound, // Should redirect to login
		},
		{
			name:       "Tracker page requires auth",
			method:     "GET",
			path:       "/projects/website",
			wantStatus: http.StatusFound,
		},
		{
			name:       "Timer commands require auth",
			method:     "POST",
			path:       "/projects/website/timer/start",
			wantStatus: http.StatusFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, http.NoBody)
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			// Check if status matches expected or any alternative
			if len(tt.allowAlt) > 0 {
				acceptableStatuses := append([]int{tt.wantStatus}, tt.allowAlt...)
				assert.Contains(t, acceptableStatuses, w.Code,
					"%s %s returned unexpected status", tt.method, tt.path)
			} else {
				assert.Equal(t, tt.wantStatus, w.Code,
					"%s %s returned unexpected status", tt.method, tt.path)
			}
		})
	}
}

func TestBootstrapAdmin(t *testing.T) {
	db, err := storage.NewDB(":memory:")
	require.NoError(t, err)
	defer db.Close()

	// Unconfigured bootstrap is a no-op.
	require.NoError(t, bootstrapAdmin(db, "", ""))
	count, err := db.UserCount()
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	// Configured bootstrap creates the user once.
	require.NoError(t, bootstrapAdmin(db, "admin", "hunter22"))
	require.NoError(t, bootstrapAdmin(db, "admin", "hunter22"))
	count, err = db.UserCount()
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
