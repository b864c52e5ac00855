// Package cli implements the interactive menu surface over the scheduling
// engine. Screens gather input, call into the core and render one-line
// diagnostics for every error in the taxonomy.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/rs/zerolog"

	"github.com/RathijitAich/Appointmenet-Scheduler/internal/apperr"
	"github.com/RathijitAich/Appointmenet-Scheduler/internal/config"
	"github.com/RathijitAich/Appointmenet-Scheduler/internal/importer"
	"github.com/RathijitAich/Appointmenet-Scheduler/internal/models"
	"github.com/RathijitAich/Appointmenet-Scheduler/internal/report"
	"github.com/RathijitAich/Appointmenet-Scheduler/internal/scheduler"
	"github.com/RathijitAich/Appointmenet-Scheduler/internal/storage"
)

// App wires the screens to the stores and the engine.
type App struct {
	cfg      *config.Config
	users    *storage.UserStore
	appts    *storage.AppointmentStore
	notes    *storage.NotificationStore
	engine   *scheduler.Engine
	exporter *report.Exporter
	importer *importer.Importer
	logger   *zerolog.Logger

	in  *bufio.Reader
	out io.Writer
}

// New creates the CLI app reading from stdin and writing to stdout.
func New(cfg *config.Config, users *storage.UserStore, appts *storage.AppointmentStore, notes *storage.NotificationStore,
	engine *scheduler.Engine, exporter *report.Exporter, imp *importer.Importer, logger *zerolog.Logger) *App {
	return &App{
		cfg:      cfg,
		users:    users,
		appts:    appts,
		notes:    notes,
		engine:   engine,
		exporter: exporter,
		importer: imp,
		logger:   logger,
		in:       bufio.NewReader(os.Stdin),
		out:      os.Stdout,
	}
}

// Run is the top-level loop: authenticate, then serve the main menu until
// the user quits or the context is cancelled.
func (a *App) Run(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}

		session, ok := a.authScreen()
		if !ok {
			return
		}

		a.mainMenu(ctx, session)
	}
}

func (a *App) authScreen() (Session, bool) {
	for {
		fmt.Fprintln(a.out, "\n=== Appointment Scheduler ===")
		fmt.Fprintln(a.out, "1) Login")
		fmt.Fprintln(a.out, "2) Register")
		fmt.Fprintln(a.out, "0) Quit")

		switch a.prompt("> ") {
		case "1":
			username := a.prompt("Username: ")
			password := a.prompt("Password: ")
			if !a.users.Authenticate(username, password) {
				fmt.Fprintln(a.out, "Invalid username or password.")
				continue
			}
			name, _ := a.users.DisplayName(username)
			a.logger.Info().Str("user", username).Msg("logged in")
			return Session{Username: username, DisplayName: name}, true
		case "2":
			a.registerScreen()
		case "0", "q":
			return Session{}, false
		}
	}
}

func (a *App) registerScreen() {
	u := models.User{
		Username:   a.prompt("Username: "),
		Password:   a.prompt("Password: "),
		FullName:   a.prompt("Full name: "),
		Profession: a.prompt("Profession: "),
		Email:      a.prompt("Email: "),
		Phone:      a.prompt("Phone: "),
		Timezone:   a.prompt("Timezone: "),
	}
	if err := a.users.Create(u); err != nil {
		fmt.Fprintf(a.out, "Registration failed: %v\n", err)
		return
	}
	fmt.Fprintln(a.out, "Account created. You can log in now.")
}

func (a *App) mainMenu(ctx context.Context, s Session) {
	for {
		if ctx.Err() != nil {
			return
		}

		unread := len(a.notes.Unread(s.Username))
		fmt.Fprintf(a.out, "\n--- %s (%d unread) ---\n", s.DisplayName, unread)
		fmt.Fprintln(a.out, "1) Book appointment")
		fmt.Fprintln(a.out, "2) My appointments")
		fmt.Fprintln(a.out, "3) Pending approvals")
		fmt.Fprintln(a.out, "4) Cancel appointment")
		fmt.Fprintln(a.out, "5) Suggest free slots")
		fmt.Fprintln(a.out, "6) Notifications")
		fmt.Fprintln(a.out, "7) Search appointments")
		fmt.Fprintln(a.out, "8) Export report")
		fmt.Fprintln(a.out, "9) Import appointments")
		fmt.Fprintln(a.out, "10) Update profile")
		fmt.Fprintln(a.out, "0) Logout")

		switch a.prompt("> ") {
		case "1":
			a.bookScreen(s)
		case "2":
			a.listScreen(s)
		case "3":
			a.approvalsScreen(s)
		case "4":
			a.cancelScreen(s)
		case "5":
			a.suggestScreen(s)
		case "6":
			a.notificationsScreen(s)
		case "7":
			a.searchScreen(s)
		case "8":
			a.exportScreen()
		case "9":
			a.importScreen()
		case "10":
			a.profileScreen(s)
		case "0":
			return
		}
	}
}

func (a *App) bookScreen(s Session) {
	req := scheduler.BookingRequest{
		Requester:    s.Username,
		Counterparty: a.prompt("With whom (username): "),
		Date:         a.prompt("Date (YYYY-MM-DD): "),
		Time:         a.prompt("Time (HH:MM): "),
		Reason:       a.prompt("Reason: "),
		Location:     a.prompt("Location (optional): "),
		Notes:        a.prompt("Notes (optional): "),
	}

	if d := a.prompt("Duration minutes (default 60): "); d != "" {
		req.Duration, _ = strconv.Atoi(d)
	}
	if p := a.prompt("Priority High/Medium/Low (default Medium): "); p != "" {
		priority, err := models.ParsePriority(p)
		if err != nil {
			fmt.Fprintf(a.out, "%v\n", err)
			return
		}
		req.Priority = priority
	}

	appt, err := a.engine.RequestBooking(req)
	if err != nil {
		fmt.Fprintf(a.out, "Booking failed: %v\n", err)
		return
	}
	fmt.Fprintf(a.out, "Appointment #%d requested, awaiting approval by %s.\n", appt.ID, appt.WithWhom)
}

func (a *App) listScreen(s Session) {
	appts := a.appts.Filter(func(x models.Appointment) bool { return x.Involves(s.Username) })
	a.renderTable(appts)
}

func (a *App) approvalsScreen(s Session) {
	pending := a.appts.Filter(func(x models.Appointment) bool {
		return x.WithWhom == s.Username && x.Status == models.StatusPending
	})
	if len(pending) == 0 {
		fmt.Fprintln(a.out, "Nothing awaiting your decision.")
		return
	}
	a.renderTable(pending)

	input := a.prompt("Ids to decide (comma-separated, empty to go back): ")
	if input == "" {
		return
	}
	ids := parseIDs(input)
	if len(ids) == 0 {
		fmt.Fprintln(a.out, "No valid ids entered.")
		return
	}

	decision := scheduler.DecisionReject
	if strings.EqualFold(a.prompt("Approve or Reject? "), "approve") {
		decision = scheduler.DecisionApprove
	}

	if len(ids) > 1 {
		res := a.engine.BulkDecide(ids, s.Username, decision)
		fmt.Fprintf(a.out, "%d decided, %d skipped.\n", res.Succeeded, res.Skipped)
		return
	}

	_, err := a.engine.Decide(ids[0], s.Username, decision, false)
	if err != nil {
		var conflictErr *apperr.ConflictError
		if errors.As(err, &conflictErr) && decision == scheduler.DecisionApprove {
			if strings.EqualFold(a.prompt("Slot conflicts with your calendar. Force approve? (y/N): "), "y") {
				_, err = a.engine.Decide(ids[0], s.Username, decision, true)
			}
		}
		if err != nil {
			fmt.Fprintf(a.out, "Decision failed: %v\n", err)
			return
		}
	}
	fmt.Fprintln(a.out, "Done.")
}

func (a *App) cancelScreen(s Session) {
	id, err := strconv.ParseInt(a.prompt("Appointment id to cancel: "), 10, 64)
	if err != nil {
		fmt.Fprintln(a.out, "Not a number.")
		return
	}
	if _, err := a.engine.Cancel(id, s.Username); err != nil {
		fmt.Fprintf(a.out, "Cancel failed: %v\n", err)
		return
	}
	fmt.Fprintf(a.out, "Appointment #%d cancelled.\n", id)
}

func (a *App) suggestScreen(s Session) {
	counterparty := a.prompt("With whom (username): ")
	date := a.prompt("Date (YYYY-MM-DD): ")
	duration := a.cfg.Business.DefaultDurationMinutes
	if d := a.prompt(fmt.Sprintf("Duration minutes (default %d): ", duration)); d != "" {
		duration, _ = strconv.Atoi(d)
	}

	slots, err := a.engine.Detector().SuggestSlots(date, s.Username, counterparty, duration, scheduler.SlotOptions{
		BusinessStart: a.cfg.BusinessStartMinutes(),
		BusinessEnd:   a.cfg.BusinessEndMinutes(),
		StepMinutes:   a.cfg.Business.SlotStepMinutes,
		MaxResults:    a.cfg.Business.SuggestionLimit,
	})
	if err != nil {
		fmt.Fprintf(a.out, "Suggestion failed: %v\n", err)
		return
	}
	if len(slots) == 0 {
		fmt.Fprintln(a.out, "No free slots on that day.")
		return
	}
	fmt.Fprintf(a.out, "Free for both: %s\n", strings.Join(slots, ", "))
}

func (a *App) notificationsScreen(s Session) {
	notes := a.notes.For(s.Username)
	if len(notes) == 0 {
		fmt.Fprintln(a.out, "No notifications.")
		return
	}

	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tWhen\tKind\tMessage\tRead")
	for _, n := range notes {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%v\n",
			n.ID, n.Timestamp.Format("2006-01-02 15:04"), n.Kind, n.Message, n.Read)
	}
	w.Flush()

	if input := a.prompt("Mark read (id, empty to skip): "); input != "" {
		id, err := strconv.ParseInt(input, 10, 64)
		if err == nil {
			if err := a.notes.MarkRead(id); err != nil {
				fmt.Fprintf(a.out, "%v\n", err)
			}
		}
	}
}

func (a *App) searchScreen(s Session) {
	date := a.prompt("Date filter (YYYY-MM-DD, empty for any): ")
	other := a.prompt("Counterparty filter (username, empty for any): ")
	statusInput := a.prompt("Status filter (Pending/Approved/Rejected/Cancelled, empty for any): ")

	var status models.Status
	if statusInput != "" {
		parsed, err := models.ParseStatus(statusInput)
		if err != nil {
			fmt.Fprintf(a.out, "%v\n", err)
			return
		}
		status = parsed
	}

	matches := a.appts.Filter(func(x models.Appointment) bool {
		if !x.Involves(s.Username) {
			return false
		}
		if date != "" && x.Date != date {
			return false
		}
		if other != "" && !x.Involves(other) {
			return false
		}
		if status != "" && x.Status != status {
			return false
		}
		return true
	})
	a.renderTable(matches)
}

func (a *App) exportScreen() {
	path := a.prompt("Output file (default report.xlsx): ")
	if path == "" {
		path = "report.xlsx"
	}
	if err := a.exporter.Export(path, a.appts.All()); err != nil {
		fmt.Fprintf(a.out, "Export failed: %v\n", err)
		return
	}
	fmt.Fprintf(a.out, "Report written to %s.\n", path)
}

func (a *App) importScreen() {
	path := a.prompt("Import file: ")
	res, err := a.importer.ImportFile(path)
	if err != nil {
		fmt.Fprintf(a.out, "Import failed: %v\n", err)
		return
	}
	fmt.Fprintf(a.out, "%d imported, %d rejected.\n", res.Imported, res.Rejected)
	for _, le := range res.Errors {
		fmt.Fprintf(a.out, "  line %d: %v\n", le.Line, le.Err)
	}
}

func (a *App) profileScreen(s Session) {
	current, _ := a.users.FindByUsername(s.Username)
	u := models.User{
		Username:   s.Username,
		FullName:   a.promptDefault("Full name", current.FullName),
		Profession: a.promptDefault("Profession", current.Profession),
		Email:      a.promptDefault("Email", current.Email),
		Phone:      a.promptDefault("Phone", current.Phone),
		Timezone:   a.promptDefault("Timezone", current.Timezone),
	}
	if err := a.users.UpdateProfile(u); err != nil {
		fmt.Fprintf(a.out, "Update failed: %v\n", err)
		return
	}
	fmt.Fprintln(a.out, "Profile updated.")
}

func (a *App) renderTable(appts []models.Appointment) {
	if len(appts) == 0 {
		fmt.Fprintln(a.out, "No appointments.")
		return
	}

	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDate\tTime\tDur\tBooked by\tWith\tStatus\tPriority\tReason")
	for _, x := range appts {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%s\t%s\t%s\t%s\t%s\n",
			x.ID, x.Date, x.Time, x.DurationMinutes, x.BookedBy, x.WithWhom, x.Status, x.Priority, x.Reason)
	}
	w.Flush()
}

func (a *App) prompt(label string) string {
	fmt.Fprint(a.out, label)
	line, err := a.in.ReadString('\n')
	if err != nil {
		return ""
	}
	return strings.TrimSpace(line)
}

func (a *App) promptDefault(label, current string) string {
	input := a.prompt(fmt.Sprintf("%s [%s]: ", label, current))
	if input == "" {
		return current
	}
	return input
}

func parseIDs(input string) []int64 {
	var ids []int64
	for _, part := range strings.Split(input, ",") {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err == nil {
			ids = append(ids, id)
		}
	}
	return ids
}
