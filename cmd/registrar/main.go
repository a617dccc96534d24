package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/AlecAivazis/survey/v2"
	"github.com/briandowns/spinner"
	"github.com/common-nighthawk/go-figure"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/schoolhq/registrar/internal/catalog"
	"github.com/schoolhq/registrar/internal/config"
	"github.com/schoolhq/registrar/internal/logger"
	"github.com/schoolhq/registrar/internal/model"
	"github.com/schoolhq/registrar/internal/report"
	"github.com/schoolhq/registrar/internal/service"
	"github.com/schoolhq/registrar/internal/store"
	"github.com/schoolhq/registrar/internal/validator"
)

const (
	optionAdd     = "Add student"
	optionEnroll  = "Enroll student"
	optionBalance = "View balance"
	optionPay     = "Pay tuition fees"
	optionStatus  = "Show status"
	optionExport  = "Export roster"
	optionExit    = "Exit"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat, cfg.LogFile)

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	// ─── Initialize Data Files ─────────────────────────────────────────
	if err := store.EnsureDataFiles(cfg); err != nil {
		log.Error().Err(err).Msg("Data directory setup failed")
		fail("Could not prepare the data directory: %v", err)
	}

	// ─── Load Persisted State ──────────────────────────────────────────
	st, err := store.Load(cfg.StudentsFile)
	if err != nil {
		log.Error().Err(err).Str("path", cfg.StudentsFile).Msg("Students file unreadable")
		fail("Cannot read %s: %v", cfg.StudentsFile, err)
	}

	ledger, err := store.LoadLedger(cfg.BalanceFile)
	if err != nil {
		log.Error().Err(err).Str("path", cfg.BalanceFile).Msg("Balance file unreadable")
		fail("Cannot read %s: %v", cfg.BalanceFile, err)
	}

	courses, err := catalog.Load(cfg.CoursesFile)
	if err != nil {
		log.Error().Err(err).Str("path", cfg.CoursesFile).Msg("Course catalog unreadable")
		fail("Cannot read %s: %v", cfg.CoursesFile, err)
	}

	svc := service.NewRegistryService(st, ledger, log)

	log.Info().
		Int("students", svc.Count()).
		Int("balance", svc.Balance()).
		Int("catalog", len(courses)).
		Msg("Registrar started")

	// ─── Banner ────────────────────────────────────────────────────────
	figure.NewColorFigure("Student Registrar", "", "cyan", true).Print()
	fmt.Println()

	// ─── Menu Loop ─────────────────────────────────────────────────────
	app := &app{svc: svc, courses: courses, dataDir: cfg.DataDir}

	for {
		var option string
		prompt := &survey.Select{
			Message: "Please select an option:",
			Options: []string{
				optionAdd, optionEnroll, optionBalance,
				optionPay, optionStatus, optionExport, optionExit,
			},
		}
		if err := survey.AskOne(prompt, &option); err != nil {
			return
		}

		switch option {
		case optionAdd:
			app.addStudent()
		case optionEnroll:
			app.enrollStudent()
		case optionBalance:
			app.viewBalance()
		case optionPay:
			app.payFees()
		case optionStatus:
			app.showStatus()
		case optionExport:
			app.exportRoster()
		case optionExit:
			var confirmed bool
			if err := survey.AskOne(&survey.Confirm{Message: "Confirm exit?"}, &confirmed); err != nil || confirmed {
				return
			}
		}
	}
}

// app carries the wired service and catalog through the menu actions.
type app struct {
	svc     *service.RegistryService
	courses []string
	dataDir string
}

func (a *app) addStudent() {
	var req model.AddStudentRequest

	questions := []*survey.Question{
		{Name: "name", Prompt: &survey.Input{Message: "Student name:"}},
		{Name: "class", Prompt: &survey.Input{Message: "Student class:"}},
		{Name: "rollNo", Prompt: &survey.Input{Message: "Student roll no:"}},
	}
	if err := survey.Ask(questions, &req); err != nil {
		return
	}
	if err := survey.AskOne(&survey.MultiSelect{
		Message: "Student enrolled courses:",
		Options: a.courses,
	}, &req.Courses); err != nil {
		return
	}

	var confirmed bool
	if err := survey.AskOne(&survey.Confirm{Message: "Confirm adding student?"}, &confirmed); err != nil {
		return
	}
	if !confirmed {
		failure("Student not added")
		return
	}

	wait()
	id, err := a.svc.AddStudent(req)
	if err != nil {
		failure(errMessage(err))
		return
	}
	success("Student added successfully with id %s", id)
}

func (a *app) enrollStudent() {
	entry, ok := a.pickStudent(a.svc.ListStudents(), "Select a student to enroll:")
	if !ok {
		return
	}

	remaining := catalog.Remaining(a.courses, entry.Student.Courses)
	if len(remaining) == 0 {
		notice("No courses left to enroll to")
		return
	}

	var picked []string
	if err := survey.AskOne(&survey.MultiSelect{
		Message: "Select courses to enroll the student to:",
		Options: remaining,
	}, &picked); err != nil {
		return
	}

	var confirmed bool
	if err := survey.AskOne(&survey.Confirm{Message: "Confirm enrolling student?"}, &confirmed); err != nil {
		return
	}
	if !confirmed {
		failure("%s not enrolled to any other course", entry.Student.Name)
		return
	}

	wait()
	if err := a.svc.Enroll(entry.ID, picked); err != nil {
		failure(errMessage(err))
		return
	}
	success("%s enrolled to %s successfully", entry.Student.Name, strings.Join(picked, " and "))
}

func (a *app) viewBalance() {
	wait()
	success("Your balance is $%d", a.svc.Balance())
}

func (a *app) payFees() {
	if len(a.svc.ListStudents()) == 0 {
		notice("No students found")
		return
	}

	unpaid := a.svc.UnpaidStudents()
	if len(unpaid) == 0 {
		notice("All students fees are paid")
		return
	}

	entry, ok := a.pickStudent(unpaid, "Choose a student to pay fees:")
	if !ok {
		return
	}

	wait()
	balance, err := a.svc.PayFees(entry.ID)
	if err != nil {
		failure(errMessage(err))
		return
	}
	success("%s fees paid successfully, balance is now $%d", entry.Student.Name, balance)
}

func (a *app) showStatus() {
	entries := a.svc.ListStudents()
	if len(entries) == 0 {
		notice("No students found")
		return
	}

	wait()
	success("Students status")

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"ID", "Name", "Class", "Roll No", "Courses Enrolled", "Fees", "Fees Status"})
	for _, e := range entries {
		status := color.RedString("Not paid")
		if e.Student.FeePaid {
			status = color.GreenString("Paid")
		}
		table.Append([]string{
			color.YellowString(e.ID),
			e.Student.Name,
			e.Student.Class,
			e.Student.RollNo,
			strings.Join(e.Student.Courses, ", "),
			fmt.Sprintf("%d", e.Student.Fees),
			status,
		})
	}
	table.Render()
	fmt.Println()
}

func (a *app) exportRoster() {
	entries := a.svc.ListStudents()
	if len(entries) == 0 {
		notice("No students found")
		return
	}

	var path string
	if err := survey.AskOne(&survey.Input{
		Message: "Roster file path:",
		Default: filepath.Join(a.dataDir, "roster.xlsx"),
	}, &path); err != nil {
		return
	}

	wait()
	if err := report.WriteRoster(path, entries); err != nil {
		failure(errMessage(err))
		return
	}
	success("Roster exported to %s", path)
}

// pickStudent offers a name (id) choice list plus an Exit entry and returns
// the chosen record. Names resolve to identifiers here, once; every store
// operation afterwards goes by id.
func (a *app) pickStudent(entries []store.Entry, message string) (store.Entry, bool) {
	if len(entries) == 0 {
		notice("No students found")
		return store.Entry{}, false
	}

	labels := make([]string, 0, len(entries)+1)
	for _, e := range entries {
		labels = append(labels, fmt.Sprintf("%s (%s)", e.Student.Name, e.ID))
	}
	labels = append(labels, optionExit)

	var choice string
	if err := survey.AskOne(&survey.Select{Message: message, Options: labels}, &choice); err != nil {
		return store.Entry{}, false
	}
	if choice == optionExit {
		return store.Entry{}, false
	}

	for i, label := range labels[:len(entries)] {
		if label == choice {
			return entries[i], true
		}
	}
	return store.Entry{}, false
}

// wait mimics the original tool's spinner pause so state changes do not
// flash by instantly.
func wait() {
	sp := spinner.New(spinner.CharSets[14], 120*time.Millisecond)
	sp.Suffix = " Please wait..."
	sp.Start()
	time.Sleep(800 * time.Millisecond)
	sp.Stop()
}

func success(format string, args ...interface{}) {
	fmt.Printf("%s %s\n\n", color.GreenString("✔"), fmt.Sprintf(format, args...))
}

func failure(format string, args ...interface{}) {
	fmt.Printf("%s %s\n\n", color.RedString("✖"), fmt.Sprintf(format, args...))
}

func notice(format string, args ...interface{}) {
	fmt.Printf("%s %s\n\n", color.GreenString("?"), fmt.Sprintf(format, args...))
}

// fail prints a startup error and exits. Runtime command errors never reach
// here; they are reported inline and the menu continues.
func fail(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "%s %s\n", color.RedString("✖"), fmt.Sprintf(format, args...))
	os.Exit(1)
}
