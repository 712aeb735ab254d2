package handlers

import (
	"log"
	"net/http"
	"strings"

	"timekeep/internal/entry"
	"timekeep/internal/stats"
	"timekeep/internal/stopwatch"
	"timekeep/internal/timeutil"
)

// TimerViewModel is the stopwatch read model rendered after every poll.
type TimerViewModel struct {
	Project   string
	Status    string
	Running   bool
	InitTime  string
	FinalTime string
	Elapsed   string
}

// TrackerViewModel is the data passed to the tracker view template.
type TrackerViewModel struct {
	Project string
	Timer   TimerViewModel
	Task    string
	Flags   entry.Flags
	Error   string

	TotalWorked string
	EntryCount  int
	LastEntry   string
}

func timerViewModel(project string, r stopwatch.Reading) TimerViewModel {
	vm := TimerViewModel{
		Project: project,
		Status:  r.State.String(),
		Running: r.State == stopwatch.StateRunning,
		Elapsed: timeutil.FormatHMS(r.Elapsed),
	}
	if r.Started() {
		vm.InitTime = r.InitTime.Format("2006-01-02 15:04:05")
		vm.FinalTime = r.FinalTime.Format("2006-01-02 15:04:05")
	}
	return vm
}

func (h *Handlers) trackerViewModel(username, project string) (TrackerViewModel, error) {
	entries, err := h.db.EntriesByProject(username, project)
	if err != nil {
		return TrackerViewModel{}, err
	}
	summary := stats.Summarize(entries)

	return TrackerViewModel{
		Project:     project,
		Timer:       timerViewModel(project, h.watchFor(username).Reading()),
		TotalWorked: summary.TotalWorkedLabel(),
		EntryCount:  summary.EntryCount,
		LastEntry:   summary.LastEntryLabel(),
	}, nil
}

// Tracker renders the stopwatch page for a project.
func (h *Handlers) Tracker(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r)
	project := r.PathValue("name")

	if _, err := h.db.GetProject(user.Username, project); err != nil {
		http.Error(w, "Project not found", http.StatusNotFound)
		return
	}

	vm, err := h.trackerViewModel(user.Username, project)
	if err != nil {
		log.Printf("Tracker error: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	h.render(w, r, "tracker.html", vm)
}

// TimerReading returns the current stopwatch fragment; polled while a
// session is running.
func (h *Handlers) TimerReading(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r)
	project := r.PathValue("name")
	h.renderPartial(w, "timer.html", "timer", timerViewModel(project, h.watchFor(user.Username).Reading()))
}

// StartTimer starts a new session or resumes a paused one.
func (h *Handlers) StartTimer(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r)
	project := r.PathValue("name")
	h.watchFor(user.Username).Start()
	h.renderPartial(w, "timer.html", "timer", timerViewModel(project, h.watchFor(user.Username).Reading()))
}

// PauseTimer freezes the current reading.
func (h *Handlers) PauseTimer(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r)
	project := r.PathValue("name")
	h.watchFor(user.Username).Pause()
	h.renderPartial(w, "timer.html", "timer", timerViewModel(project, h.watchFor(user.Username).Reading()))
}

// StopTimer discards the in-progress session without saving it.
func (h *Handlers) StopTimer(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r)
	project := r.PathValue("name")
	h.watchFor(user.Username).Stop()
	h.renderPartial(w, "timer.html", "timer", timerViewModel(project, h.watchFor(user.Username).Reading()))
}

// SaveEntry validates the captured reading and persists it as a new
// entry. The reading is captured before the stopwatch is reset, so a
// failed save leaves the session intact for another attempt.
func (h *Handlers) SaveEntry(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r)
	project := r.PathValue("name")

	if _, err := h.db.GetProject(user.Username, project); err != nil {
		http.Error(w, "Project not found", http.StatusNotFound)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	task := r.FormValue("task")

	sw := h.watchFor(user.Username)
	reading := sw.Reading()

	flags := entry.Validate(entry.Draft{Reading: reading, Task: task})
	if !flags.OK() {
		vm, err := h.trackerViewModel(user.Username, project)
		if err != nil {
			log.Printf("SaveEntry error: %v", err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}
		vm.Task = task
		vm.Flags = flags
		h.render(w, r, "tracker.html", vm)
		return
	}

	err := h.db.CreateEntry(
		reading.InitTime, reading.FinalTime, reading.Elapsed,
		strings.TrimSpace(task), false, project, user.Username,
	)
	if err != nil {
		// The session is not resurrected or reset; the user can retry.
		log.Printf("CreateEntry error: %v", err)
		vm, verr := h.trackerViewModel(user.Username, project)
		if verr != nil {
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}
		vm.Task = task
		vm.Error = "Could not save the entry. Please try again."
		h.render(w, r, "tracker.html", vm)
		return
	}

	sw.Stop()
	h.redirectToHistory(w, project)
}
