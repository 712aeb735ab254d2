package main

import (
	"log"
	"net/http"

	"timekeep/internal/auth"
	"timekeep/internal/config"
	"timekeep/internal/handlers"
	"timekeep/internal/storage"
)

func main() {
	cfg := config.Load()

	db, err := storage.NewDB(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	if err := bootstrapAdmin(db, cfg.AdminUser, cfg.AdminPassword); err != nil {
		log.Fatalf("Failed to bootstrap admin user: %v", err)
	}

	h := handlers.NewHandlers(db, cfg.TemplateDir, cfg.SecureCookies, nil)
	mux := setupRouter(h, cfg.StaticDir)

	log.Printf("Listening on :%s (db: %s)", cfg.Port, cfg.DBPath)
	if err := http.ListenAndServe(":"+cfg.Port, mux); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// bootstrapAdmin creates the configured admin user if it does not exist
// yet. A missing configuration is not an error; adduser can be used
// instead.
func bootstrapAdmin(db *storage.DB, username, password string) error {
	if username == "" || password == "" {
		return nil
	}
	if _, err := db.GetUserByUsername(username); err == nil {
		return nil
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	if _, err := db.CreateUser(username, hash); err != nil {
		return err
	}
	log.Printf("Created admin user %q", username)
	return nil
}

func setupRouter(h *handlers.Handlers, staticDir string) *http.ServeMux {
	mux := http.NewServeMux()

	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir(staticDir))))

	mux.HandleFunc("GET /login", h.LoginForm)
	mux.HandleFunc("POST /login", h.Login)
	mux.HandleFunc("GET /logout", h.Logout)

	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/projects", http.StatusFound)
	})

	protected := http.NewServeMux()
	protected.HandleFunc("GET /projects", h.Projects)
	protected.HandleFunc("POST /projects", h.CreateProject)
	protected.HandleFunc("GET /projects/{name}", h.Tracker)
	protected.HandleFunc("POST /projects/{name}/delete", h.DeleteProject)
	protected.HandleFunc("GET /projects/{name}/timer", h.TimerReading)
	protected.HandleFunc("POST /projects/{name}/timer/start", h.StartTimer)
	protected.HandleFunc("POST /projects/{name}/timer/pause", h.PauseTimer)
	protected.HandleFunc("POST /projects/{name}/timer/stop", h.StopTimer)
	protected.HandleFunc("POST /projects/{name}/entries", h.SaveEntry)
	protected.HandleFunc("GET /projects/{name}/history", h.History)
	protected.HandleFunc("POST /projects/{name}/entries/delete", h.DeleteEntries)
	protected.HandleFunc("POST /entries/{id}/task", h.EditEntryTask)
	protected.HandleFunc("POST /entries/{id}/favorite", h.ToggleFavorite)

	mux.Handle("/", h.AuthMiddleware(protected))

	return mux
}
