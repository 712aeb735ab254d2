package handlers

import (
	"log"
	"net/http"
	"strings"

	"timekeep/internal/stats"
)

// ProjectItem represents a project with its summary statistics.
type ProjectItem struct {
	Name        string
	TotalWorked string
	EntryCount  int
	LastEntry   string
}

// ProjectsViewModel is the data passed to the projects view template.
type ProjectsViewModel struct {
	Username string
	Projects []ProjectItem
	Error    string

	// Per-user totals across all projects.
	TotalWorked string
	EntryCount  int
	LastEntry   string
}

func (h *Handlers) projectsViewModel(username string) (ProjectsViewModel, error) {
	projects, err := h.db.ProjectsByUser(username)
	if err != nil {
		return ProjectsViewModel{}, err
	}

	items := make([]ProjectItem, 0, len(projects))
	for _, p := range projects {
		entries, err := h.db.EntriesByProject(username, p.Name)
		if err != nil {
			return ProjectsViewModel{}, err
		}
		summary := stats.Summarize(entries)
		items = append(items, ProjectItem{
			Name:        p.Name,
			TotalWorked: summary.TotalWorkedLabel(),
			EntryCount:  summary.EntryCount,
			LastEntry:   summary.LastEntryLabel(),
		})
	}

	// The user-wide summary is computed from its own fetch; it shares
	// nothing with the per-project ones.
	all, err := h.db.EntriesByUser(username)
	if err != nil {
		return ProjectsViewModel{}, err
	}
	userSummary := stats.Summarize(all)

	return ProjectsViewModel{
		Username:    username,
		Projects:    items,
		TotalWorked: userSummary.TotalWorkedLabel(),
		EntryCount:  userSummary.EntryCount,
		LastEntry:   userSummary.LastEntryLabel(),
	}, nil
}

// Projects renders the project list with per-project and per-user
// summaries.
func (h *Handlers) Projects(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r)

	vm, err := h.projectsViewModel(user.Username)
	if err != nil {
		log.Printf("Projects error: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	h.render(w, r, "projects.html", vm)
}

// CreateProject adds a new project for the current user.
func (h *Handlers) CreateProject(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r)

	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	name := strings.TrimSpace(r.FormValue("name"))
	if name == "" {
		vm, err := h.projectsViewModel(user.Username)
		if err != nil {
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}
		vm.Error = "Project name must not be empty"
		h.render(w, r, "projects.html", vm)
		return
	}

	if _, err := h.db.CreateProject(name, user.Username); err != nil {
		log.Printf("CreateProject error: %v", err)
		vm, verr := h.projectsViewModel(user.Username)
		if verr != nil {
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}
		vm.Error = "Could not create project (name already in use?)"
		h.render(w, r, "projects.html", vm)
		return
	}

	w.Header().Set("HX-Location", `{"path":"/projects", "target":"#content"}`)
}

// DeleteProject removes a project and all of its entries.
func (h *Handlers) DeleteProject(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r)
	name := r.PathValue("name")

	if _, err := h.db.GetProject(user.Username, name); err != nil {
		http.Error(w, "Project not found", http.StatusNotFound)
		return
	}
	if err := h.db.DeleteProject(user.Username, name); err != nil {
		log.Printf("DeleteProject error: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("HX-Location", `{"path":"/projects", "target":"#content"}`)
}
