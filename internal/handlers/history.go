package handlers

import (
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"timekeep/internal/models"
	"timekeep/internal/query"
	"timekeep/internal/stats"
	"timekeep/internal/timeutil"
)

// EntryItem represents an entry row in the history table.
type EntryItem struct {
	ID        int64
	InitTime  string
	FinalTime string
	Elapsed   string
	Task      string
	Favorite  bool
}

// FilterForm echoes the effective filter values back into the controls.
type FilterForm struct {
	Favorite bool
	From     string
	To       string
	MinH     string
	MinM     string
	MinS     string
	MaxH     string
	MaxM     string
	MaxS     string
}

// HistoryViewModel is the data passed to the history view template.
type HistoryViewModel struct {
	Project string
	Entries []EntryItem
	Filter  FilterForm
	Errors  []string

	TotalWorked string
	EntryCount  int
	LastEntry   string
}

// parseFilter builds a Filter from the query string. Out-of-range or
// malformed components are reported and treated as empty; they never
// reach the filter itself.
func parseFilter(values url.Values) (*query.Filter, FilterForm, []string) {
	var errs []string
	f := &query.Filter{FavoriteOnly: values.Get("favorite") == "on"}
	form := FilterForm{Favorite: f.FavoriteOnly}

	parseDate := func(key string) *time.Time {
		raw := strings.TrimSpace(values.Get(key))
		if raw == "" {
			return nil
		}
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			errs = append(errs, fmt.Sprintf("invalid %s date %q", key, raw))
			return nil
		}
		return &t
	}
	f.From = parseDate("from")
	f.To = parseDate("to")

	// Each duration component is validated independently; a rejected
	// component reverts to its default rather than being clamped.
	component := func(key string, def, lo, hi int) int {
		raw := strings.TrimSpace(values.Get(key))
		if raw == "" {
			return def
		}
		n, err := strconv.Atoi(raw)
		if err != nil || n < lo || n > hi {
			errs = append(errs, fmt.Sprintf("%s must be between %d and %d", key, lo, hi))
			return def
		}
		return n
	}

	minSet := values.Get("min_h") != "" || values.Get("min_m") != "" || values.Get("min_s") != ""
	maxSet := values.Get("max_h") != "" || values.Get("max_m") != "" || values.Get("max_s") != ""

	if minSet {
		d, err := timeutil.HMS(
			component("min_h", 0, 0, 23),
			component("min_m", 0, 0, 59),
			component("min_s", 0, 0, 59),
		)
		if err == nil {
			f.MinElapsed = &d
			form.MinH = fmt.Sprintf("%02d", int(d/time.Hour))
			form.MinM = fmt.Sprintf("%02d", int(d/time.Minute)%60)
			form.MinS = fmt.Sprintf("%02d", int(d/time.Second)%60)
		}
	}
	if maxSet {
		d, err := timeutil.HMS(
			component("max_h", 23, 0, 23),
			component("max_m", 59, 0, 59),
			component("max_s", 59, 0, 59),
		)
		if err == nil {
			f.MaxElapsed = &d
			form.MaxH = fmt.Sprintf("%02d", int(d/time.Hour))
			form.MaxM = fmt.Sprintf("%02d", int(d/time.Minute)%60)
			form.MaxS = fmt.Sprintf("%02d", int(d/time.Second)%60)
		}
	}

	return f, form, errs
}

// History renders the filtered entry list for a project.
func (h *Handlers) History(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r)
	project := r.PathValue("name")

	if _, err := h.db.GetProject(user.Username, project); err != nil {
		http.Error(w, "Project not found", http.StatusNotFound)
		return
	}

	entries, err := h.db.EntriesByProject(user.Username, project)
	if err != nil {
		log.Printf("History error: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	f, form, errs := parseFilter(r.URL.Query())

	// Seed the date controls from the data on first view so the
	// caller sees the real range it is narrowing.
	if bounds, ok := query.SeedBounds(entries); ok {
		if f.From == nil {
			f.From = &bounds.From
		}
		if f.To == nil {
			f.To = &bounds.To
		}
	}
	if f.From != nil {
		form.From = f.From.Format("2006-01-02")
	}
	if f.To != nil {
		form.To = f.To.Format("2006-01-02")
	}

	matched := query.Apply(entries, f)
	summary := stats.Summarize(matched)

	items := make([]EntryItem, 0, len(matched))
	for _, e := range matched {
		items = append(items, entryItem(e))
	}

	h.render(w, r, "history.html", HistoryViewModel{
		Project:     project,
		Entries:     items,
		Filter:      form,
		Errors:      errs,
		TotalWorked: summary.TotalWorkedLabel(),
		EntryCount:  summary.EntryCount,
		LastEntry:   summary.LastEntryLabel(),
	})
}

func entryItem(e models.Entry) EntryItem {
	return EntryItem{
		ID:        e.ID,
		InitTime:  e.InitTime.Format("2006-01-02 15:04:05"),
		FinalTime: e.FinalTime.Format("2006-01-02 15:04:05"),
		Elapsed:   timeutil.FormatHMS(e.Elapsed),
		Task:      e.Task,
		Favorite:  e.Favorite,
	}
}

// EditEntryTask replaces the task text of an entry. The new text must
// pass the same non-whitespace check as a new entry.
func (h *Handlers) EditEntryTask(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r)
	id, _ := strconv.ParseInt(r.PathValue("id"), 10, 64)

	e, err := h.db.GetEntry(id)
	if err != nil || e.Username != user.Username {
		http.Error(w, "Entry not found", http.StatusNotFound)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	task := r.FormValue("task")
	if strings.TrimSpace(task) == "" {
		http.Error(w, "Task must not be empty", http.StatusBadRequest)
		return
	}
	if err := h.db.UpdateEntryTask(id, strings.TrimSpace(task)); err != nil {
		log.Printf("UpdateEntryTask error: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	h.redirectToHistory(w, e.ProjectName)
}

// ToggleFavorite flips the favorite flag of an entry.
func (h *Handlers) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r)
	id, _ := strconv.ParseInt(r.PathValue("id"), 10, 64)

	e, err := h.db.GetEntry(id)
	if err != nil || e.Username != user.Username {
		http.Error(w, "Entry not found", http.StatusNotFound)
		return
	}
	if err := h.db.SetFavorite(id, !e.Favorite); err != nil {
		log.Printf("SetFavorite error: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	h.redirectToHistory(w, e.ProjectName)
}

// DeleteEntries removes the checked entries.
func (h *Handlers) DeleteEntries(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r)
	project := r.PathValue("name")

	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var ids []int64
	for _, raw := range r.Form["id"] {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			continue
		}
		// Only the owner's entries are deletable.
		if e, err := h.db.GetEntry(id); err == nil && e.Username == user.Username {
			ids = append(ids, id)
		}
	}

	if err := h.db.DeleteEntries(ids); err != nil {
		log.Printf("DeleteEntries error: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	h.redirectToHistory(w, project)
}

func (h *Handlers) redirectToHistory(w http.ResponseWriter, project string) {
	path := "/projects/" + url.PathEscape(project) + "/history"
	w.Header().Set("HX-Location", `{"path":"`+path+`", "target":"#content"}`)
}
