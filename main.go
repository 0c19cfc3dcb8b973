// Package main implements the auditdesk CLI tool for running security
// compliance audits and generating the audit report.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/sharkcyber/auditdesk/internal/core"
	"github.com/sharkcyber/auditdesk/internal/report"
	"github.com/sharkcyber/auditdesk/internal/store"
	"github.com/sharkcyber/auditdesk/internal/tui"
	"github.com/sharkcyber/auditdesk/internal/types"
	"github.com/sharkcyber/auditdesk/internal/version"
	"github.com/sharkcyber/auditdesk/pkg/logger"
)

// Version information is managed in internal/version package
// GoReleaser injects version info directly via ldflags

// parseCommonFlags extracts common non-interactive flags from args
// Returns: flags, remainingArgs
func parseCommonFlags(args []string) (core.NonInteractiveFlags, []string) {
	flags := core.NonInteractiveFlags{}
	var remaining []string

	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch arg {
		case "--yes", "-y":
			flags.Yes = true
		case "--quiet", "-q":
			flags.Mode = core.OutputQuiet
		case "--json":
			flags.Mode = core.OutputJSON
		default:
			remaining = append(remaining, arg)
		}
	}

	return flags, remaining
}

// parseFlagValue extracts a "--name value" pair from args.
// Returns: value (empty if absent), remainingArgs
func parseFlagValue(args []string, name string) (string, []string) {
	var remaining []string
	value := ""

	for i := 0; i < len(args); i++ {
		if args[i] == name && i+1 < len(args) {
			value = args[i+1]
			i++
			continue
		}
		remaining = append(remaining, args[i])
	}

	return value, remaining
}

func main() {
	if len(os.Args) < 2 {
		tui.PrintHelp()
		os.Exit(0)
	}

	command := os.Args[1]

	// Handle help flags
	if command == "--help" || command == "-h" || command == "help" {
		tui.PrintHelp()
		os.Exit(0)
	}

	// Handle version flag
	if command == "--version" || command == "version" {
		fmt.Printf("auditdesk %s\n", version.Version)
		fmt.Printf("  commit: %s\n", version.Commit)
		fmt.Printf("  built:  %s\n", version.Date)
		os.Exit(0)
	}

	log, err := logger.New().Make()
	if err != nil {
		tui.PrintError("Logging Setup Failed", err.Error())
		os.Exit(1)
	}

	storeDir := core.StoreDir()
	if err := os.MkdirAll(storeDir, 0755); err != nil {
		tui.PrintError("Store Unavailable", err.Error())
		os.Exit(1)
	}

	backend := store.NewFileBackend(storeDir)
	session := core.NewSession(backend, log)

	flags, args := parseCommonFlags(os.Args[2:])

	var ui core.UICallback = tui.NewTUICallback()
	if !tui.IsInteractive() || flags.Mode != core.OutputNormal || flags.Yes {
		ui = tui.NewNonInteractiveTUICallback(flags)
	}

	switch command {
	case "setup":
		if !tui.IsInteractive() {
			ui.ShowError("Interactive Terminal Required", "setup runs as an interactive wizard")
			os.Exit(1)
		}

		existing, ok, err := store.NewClientStore(backend, log).Load()
		if err != nil {
			tui.PrintError("Error", err.Error())
			os.Exit(1)
		}
		var existingPtr *types.Client
		if ok {
			existingPtr = &existing
		}

		client := tui.RunSetupWizard(existingPtr)
		if client == nil {
			tui.PrintInfo("Setup cancelled.")
			os.Exit(0)
		}
		if err := session.SaveClient(*client); err != nil {
			tui.PrintError("Setup Failed", err.Error())
			os.Exit(1)
		}
		ui.ShowSuccess("Client '" + client.Name + "' saved")

	case "status":
		mustInit(session, storeDir, log, ui)
		summary := session.Summary()

		if flags.Mode == core.OutputJSON {
			_ = ui.FormatJSON(core.JSONOutput{
				Status: "success",
				Data: map[string]interface{}{
					"client":    session.Client().Name,
					"title":     session.Audit().Title,
					"submitted": session.Audit().Submitted,
					"summary":   summary,
				},
			})
			return
		}
		if flags.Mode == core.OutputQuiet {
			fmt.Printf("%d%%\n", summary.CompliancePercentage)
			return
		}

		tui.PrintSessionState(session)
		tui.PrintSummary(summary)

	case "list":
		filter, rest := parseFlagValue(args, "--filter")
		view, _ := parseFlagValue(rest, "--view")

		mustInit(session, storeDir, log, ui)

		if filter != "" {
			if err := session.SetFilter(filter); err != nil {
				ui.ShowError("Invalid Filter", err.Error())
				os.Exit(1)
			}
		}
		if view == string(core.ViewTable) {
			session.SetViewMode(core.ViewTable)
		}

		controls := session.FilteredControls()
		if flags.Mode == core.OutputJSON {
			_ = ui.FormatJSON(core.JSONOutput{
				Status: "success",
				Data:   map[string]interface{}{"controls": controls},
			})
			return
		}
		if session.ViewMode() == core.ViewTable {
			tui.PrintControlTable(controls)
		} else {
			tui.PrintControlCards(controls)
		}

	case "review":
		if !tui.IsInteractive() {
			ui.ShowError("Interactive Terminal Required", "review is an interactive checklist; use 'set' instead")
			os.Exit(1)
		}
		mustInit(session, storeDir, log, ui)
		if err := tui.RunReview(session); err != nil {
			tui.PrintError("Review Failed", err.Error())
			os.Exit(1)
		}

	case "set":
		if len(args) < 2 {
			ui.ShowError("Missing Arguments", "usage: auditdesk set <control-id> <status> [comment]")
			os.Exit(1)
		}
		mustInit(session, storeDir, log, ui)
		mustAllowEdit(session, ui)

		control, ok := findControl(session, args[0])
		if !ok {
			ui.ShowError("Control Not Found", core.ErrControlNotFound.Error())
			os.Exit(1)
		}

		status, err := types.ParseComplianceStatus(args[1])
		if err != nil {
			ui.ShowError("Invalid Status", fmt.Sprintf("'%s' is not a status; use one of compliant, notCompliant, partial, notApplicable", args[1]))
			os.Exit(1)
		}

		control.Status = status
		if len(args) > 2 {
			control.Comment = strings.Join(args[2:], " ")
		}
		session.UpdateControl(control)

		if err := session.SaveAudit(); err != nil {
			ui.ShowError("Save Failed", err.Error())
			os.Exit(1)
		}
		ui.ShowSuccess(fmt.Sprintf("%s → %s", control.Title, status.Label()))

	case "attach":
		if len(args) < 2 {
			ui.ShowError("Missing Arguments", "usage: auditdesk attach <control-id> <file>")
			os.Exit(1)
		}
		mustInit(session, storeDir, log, ui)
		mustAllowEdit(session, ui)

		control, ok := findControl(session, args[0])
		if !ok {
			ui.ShowError("Control Not Found", core.ErrControlNotFound.Error())
			os.Exit(1)
		}

		var result core.AttachmentResult
		loader := core.NewAttachmentLoader(func(r core.AttachmentResult) { result = r }, log)
		<-loader.Load(control.ID, args[1])

		if result.Err != nil {
			ui.ShowError("Attachment Failed", result.Err.Error())
			os.Exit(1)
		}
		session.SetAttachment(result.ControlID, result.Name, result.DataURL)

		if err := session.SaveAudit(); err != nil {
			ui.ShowError("Save Failed", err.Error())
			os.Exit(1)
		}
		ui.ShowSuccess(fmt.Sprintf("Attached %s to %s", result.Name, control.Title))

	case "detach":
		if len(args) < 1 {
			ui.ShowError("Missing Arguments", "usage: auditdesk detach <control-id>")
			os.Exit(1)
		}
		mustInit(session, storeDir, log, ui)
		mustAllowEdit(session, ui)

		control, ok := findControl(session, args[0])
		if !ok {
			ui.ShowError("Control Not Found", core.ErrControlNotFound.Error())
			os.Exit(1)
		}
		if !control.HasAttachment() {
			ui.ShowWarning("No Attachment", control.Title+" has no attachment")
			os.Exit(0)
		}

		session.RemoveAttachment(control.ID)
		if err := session.SaveAudit(); err != nil {
			ui.ShowError("Save Failed", err.Error())
			os.Exit(1)
		}
		ui.ShowSuccess("Attachment removed from " + control.Title)

	case "cover":
		if !tui.IsInteractive() {
			ui.ShowError("Interactive Terminal Required", "cover runs as an interactive wizard")
			os.Exit(1)
		}
		mustInit(session, storeDir, log, ui)
		mustAllowEdit(session, ui)

		draft := tui.RunCoverWizard(session.Cover())
		if draft == nil {
			tui.PrintInfo("Cover edit cancelled.")
			os.Exit(0)
		}
		session.SetCoverDraft(*draft)

		if err := session.SaveCoverInfo(); err != nil {
			ui.ShowError("Save Failed", err.Error())
			os.Exit(1)
		}
		ui.ShowSuccess("Cover metadata saved")

	case "save":
		mustInit(session, storeDir, log, ui)
		mustAllowEdit(session, ui)

		if err := session.SaveAudit(); err != nil {
			ui.ShowError("Save Failed", err.Error())
			os.Exit(1)
		}
		ui.ShowSuccess("Audit saved")

	case "submit":
		mustInit(session, storeDir, log, ui)

		if session.HasUnaddressedControls() {
			ui.ShowWarning("Unaddressed Controls", "some controls have no status set")
		}
		if !ui.AskConfirmation("Submit Audit", "A submitted audit becomes read-only. Continue?") {
			tui.PrintInfo("Submit cancelled.")
			os.Exit(0)
		}

		if err := session.SubmitAudit(); err != nil {
			ui.ShowError("Submit Failed", err.Error())
			os.Exit(1)
		}
		ui.ShowSuccess("Audit submitted")

	case "export":
		formatArg, rest := parseFlagValue(args, "--format")
		outDir, _ := parseFlagValue(rest, "--out")
		if outDir == "" {
			outDir = "."
		}

		format := report.FormatPDF
		switch formatArg {
		case "", "pdf":
		case "markdown", "md":
			format = report.FormatMarkdown
		default:
			ui.ShowError("Invalid Format", fmt.Sprintf("unknown format '%s': use pdf or markdown", formatArg))
			os.Exit(1)
		}

		mustInit(session, storeDir, log, ui)

		path, err := session.ExportReport(report.New(log), format, outDir)
		if err != nil {
			ui.ShowError("Export Failed", err.Error())
			os.Exit(1)
		}

		if flags.Mode == core.OutputJSON {
			_ = ui.FormatJSON(core.JSONOutput{
				Status: "success",
				Data:   map[string]interface{}{"path": path},
			})
			return
		}
		ui.ShowSuccess("Report written to " + path)

	case "watch":
		mustInit(session, storeDir, log, ui)
		tui.PrintSummary(session.Summary())

		recordPath := backend.Path(store.AuditRecordKey)
		err := session.WatchRecord(recordPath, ui, func() error {
			reloaded := core.NewSession(backend, log)
			state, err := reloaded.Init(core.LoadTemplate(storeDir, log))
			if err != nil {
				return err
			}
			if state != core.StateReady {
				return core.ErrNotReady
			}
			tui.PrintSummary(reloaded.Summary())
			return nil
		})
		if err != nil {
			ui.ShowError("Watch Failed", err.Error())
			os.Exit(1)
		}

	case "controls":
		if len(args) < 1 {
			ui.ShowError("Missing Subcommand", "usage: auditdesk controls <list|add|edit|delete|categories>")
			os.Exit(1)
		}
		runControls(session, storeDir, log, ui, flags, args[0], args[1:])

	default:
		tui.PrintError("Unknown Command", fmt.Sprintf("'%s' is not an auditdesk command. Run 'auditdesk help'.", command))
		os.Exit(1)
	}
}

// runControls dispatches the controls-management subcommands.
func runControls(session *core.Session, storeDir string, log zerolog.Logger, ui core.UICallback, flags core.NonInteractiveFlags, sub string, args []string) {
	mustInit(session, storeDir, log, ui)

	switch sub {
	case "list":
		controls := session.FilteredControls()
		if flags.Mode == core.OutputJSON {
			_ = ui.FormatJSON(core.JSONOutput{
				Status: "success",
				Data:   map[string]interface{}{"controls": controls},
			})
			return
		}
		fmt.Printf("%-38s %-4s %-28s %s\n", "ID", "#", "Category", "Control")
		for _, c := range controls {
			fmt.Printf("%-38s %-4d %-28s %s\n", c.ID, c.SerialNumber, c.Category, c.Title)
		}

	case "add":
		if !tui.IsInteractive() {
			ui.ShowError("Interactive Terminal Required", "controls add runs as an interactive wizard")
			os.Exit(1)
		}
		in := tui.RunControlWizard(session.Categories(), nil)
		if in == nil {
			tui.PrintInfo("Cancelled.")
			os.Exit(0)
		}
		control, err := session.AddControl(*in)
		if err != nil {
			ui.ShowError("Add Failed", err.Error())
			os.Exit(1)
		}
		ui.ShowSuccess(fmt.Sprintf("Added control #%d: %s", control.SerialNumber, control.Title))

	case "edit":
		if len(args) < 1 {
			ui.ShowError("Missing Arguments", "usage: auditdesk controls edit <id>")
			os.Exit(1)
		}
		if !tui.IsInteractive() {
			ui.ShowError("Interactive Terminal Required", "controls edit runs as an interactive wizard")
			os.Exit(1)
		}
		control, ok := findControl(session, args[0])
		if !ok {
			ui.ShowError("Control Not Found", core.ErrControlNotFound.Error())
			os.Exit(1)
		}
		in := tui.RunControlWizard(session.Categories(), &control)
		if in == nil {
			tui.PrintInfo("Cancelled.")
			os.Exit(0)
		}
		if err := session.EditControl(control.ID, *in); err != nil {
			ui.ShowError("Edit Failed", err.Error())
			os.Exit(1)
		}
		ui.ShowSuccess("Updated " + in.Title)

	case "delete":
		if len(args) < 1 {
			ui.ShowError("Missing Arguments", "usage: auditdesk controls delete <id>")
			os.Exit(1)
		}
		control, ok := findControl(session, args[0])
		if !ok {
			ui.ShowError("Control Not Found", core.ErrControlNotFound.Error())
			os.Exit(1)
		}
		if !ui.AskConfirmation("Delete Control", fmt.Sprintf("Delete '%s'? Serial numbers of other controls are kept as-is.", control.Title)) {
			tui.PrintInfo("Cancelled.")
			os.Exit(0)
		}
		if err := session.DeleteControl(control.ID); err != nil {
			ui.ShowError("Delete Failed", err.Error())
			os.Exit(1)
		}
		ui.ShowSuccess("Deleted " + control.Title)

	case "categories":
		name, _ := parseFlagValue(args, "--add")
		if name != "" {
			if err := session.AddCategory(name); err != nil {
				ui.ShowError("Add Category Failed", err.Error())
				os.Exit(1)
			}
			ui.ShowSuccess("Added category '" + name + "'")
			return
		}
		for _, c := range session.Categories() {
			fmt.Println(c)
		}

	default:
		ui.ShowError("Unknown Subcommand", fmt.Sprintf("'controls %s' is not a command. Run 'auditdesk help'.", sub))
		os.Exit(1)
	}
}

// mustInit runs the session initialization protocol and exits on the NoClient
// redirect or a load failure.
func mustInit(session *core.Session, storeDir string, log zerolog.Logger, ui core.UICallback) {
	state, err := session.Init(core.LoadTemplate(storeDir, log))
	if err != nil {
		ui.ShowError("Initialization Failed", err.Error())
		os.Exit(1)
	}
	if state == core.StateNoClient {
		ui.ShowError("No Client", core.ErrNoClient.Error())
		os.Exit(1)
	}
}

// mustAllowEdit gates mutating commands on submitted audits: the audit stays
// editable at the data layer, so the gate lives here, with an explicit
// confirmation (auto-approved by --yes) to get past it.
func mustAllowEdit(session *core.Session, ui core.UICallback) {
	audit := session.Audit()
	if audit == nil || !audit.Submitted {
		return
	}
	if !ui.AskConfirmation("Audit Submitted", "This audit was submitted and is read-only. Edit anyway?") {
		os.Exit(1)
	}
}

// findControl resolves a control by id, or by serial number as a convenience.
func findControl(session *core.Session, ref string) (types.Control, bool) {
	for _, c := range session.Controls() {
		if c.ID == ref || fmt.Sprintf("%d", c.SerialNumber) == ref {
			return c, true
		}
	}
	return types.Control{}, false
}
