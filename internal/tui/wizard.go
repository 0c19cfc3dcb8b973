package tui

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/rs/zerolog"

	"github.com/sharkcyber/auditdesk/internal/core"
	"github.com/sharkcyber/auditdesk/internal/types"
)

func check(err error) {
	if err != nil {
		fmt.Println("Aborted.")
		os.Exit(1)
	}
}

func required(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s cannot be empty", field)
		}
		return nil
	}
}

// --- CLIENT SETUP WIZARD ---

// RunSetupWizard collects the client record interactively. An optional logo
// image is read from disk and inlined as an encoded blob. Existing values
// pre-fill the prompts so re-running setup edits rather than starts over.
func RunSetupWizard(existing *types.Client) *types.Client {
	client := types.Client{}
	if existing != nil {
		client = *existing
	}

	err := huh.NewInput().
		Title("Client Name").
		Description("The organization under audit").
		Value(&client.Name).
		Validate(required("client name")).
		Run()
	check(err)

	var logoPath string
	err = huh.NewInput().
		Title("Logo Image Path").
		Description("Optional; PNG or JPEG shown on the report cover").
		Placeholder("/path/to/logo.png").
		Value(&logoPath).
		Run()
	check(err)

	if logoPath = strings.TrimSpace(logoPath); logoPath != "" {
		if dataURL, err := readLogo(logoPath); err != nil {
			PrintWarning("Logo Skipped", err.Error())
		} else {
			client.LogoURL = dataURL
		}
	}

	err = huh.NewInput().Title("Street Address").Value(&client.Address).Run()
	check(err)
	err = huh.NewInput().Title("City").Value(&client.City).Run()
	check(err)
	err = huh.NewInput().Title("State").Value(&client.State).Run()
	check(err)
	err = huh.NewInput().Title("Zip Code").Value(&client.ZipCode).Run()
	check(err)
	err = huh.NewInput().Title("Country").Value(&client.Country).Run()
	check(err)

	confirm := true
	err = huh.NewConfirm().
		Title(fmt.Sprintf("Save client '%s'?", client.Name)).
		Description("This replaces any previously configured client.").
		Value(&confirm).
		Run()
	check(err)
	if !confirm {
		return nil
	}

	return &client
}

// readLogo performs the one-shot asynchronous logo read and waits for its
// completion.
func readLogo(path string) (string, error) {
	var result core.AttachmentResult
	loader := core.NewAttachmentLoader(func(r core.AttachmentResult) { result = r }, zerolog.Nop())

	<-loader.Load("client-logo", path)

	if result.Err != nil {
		return "", result.Err
	}
	return result.DataURL, nil
}

// --- CONTROL WIZARD ---

const newCategoryChoice = "+ New category"

// RunControlWizard collects the editable fields of a control for the
// management surface. Pass nil to add, or the control being edited.
func RunControlWizard(categories []string, existing *types.Control) *core.ControlInput {
	in := core.ControlInput{Status: types.StatusNotCompliant}
	if existing != nil {
		in = core.ControlInput{
			Category:    existing.Category,
			Title:       existing.Title,
			Description: existing.Description,
			Status:      existing.Status,
		}
	}

	if len(categories) > 0 {
		options := make([]huh.Option[string], 0, len(categories)+1)
		for _, c := range categories {
			options = append(options, huh.NewOption(c, c))
		}
		options = append(options, huh.NewOption(newCategoryChoice, newCategoryChoice))

		err := huh.NewSelect[string]().
			Title("Category").
			Options(options...).
			Value(&in.Category).
			Run()
		check(err)
	}

	if in.Category == newCategoryChoice || len(categories) == 0 {
		in.Category = ""
		err := huh.NewInput().
			Title("New Category").
			Value(&in.Category).
			Validate(required("category")).
			Run()
		check(err)
	}

	err := huh.NewInput().
		Title("Control Title").
		Placeholder("AC-3: Least Privilege").
		Value(&in.Title).
		Validate(required("title")).
		Run()
	check(err)

	err = huh.NewText().
		Title("Description").
		Value(&in.Description).
		Validate(required("description")).
		Run()
	check(err)

	err = huh.NewSelect[types.ComplianceStatus]().
		Title("Compliance Status").
		Options(statusOptions()...).
		Value(&in.Status).
		Run()
	check(err)

	return &in
}

func statusOptions() []huh.Option[types.ComplianceStatus] {
	options := make([]huh.Option[types.ComplianceStatus], 0, len(types.AllComplianceStatuses))
	for _, s := range types.AllComplianceStatuses {
		options = append(options, huh.NewOption(s.Label(), s))
	}
	return options
}

// --- COVER WIZARD ---

// RunCoverWizard edits the report cover metadata: title, financial year,
// audit date.
func RunCoverWizard(draft core.CoverDraft) *core.CoverDraft {
	dateInput := draft.AuditDate.Format("2006-01-02")

	err := huh.NewInput().
		Title("Report Title").
		Value(&draft.Title).
		Validate(required("title")).
		Run()
	check(err)

	err = huh.NewInput().
		Title("Financial Year").
		Placeholder(types.DefaultFinancialYear).
		Value(&draft.FinancialYear).
		Run()
	check(err)

	err = huh.NewInput().
		Title("Audit Date").
		Description("YYYY-MM-DD").
		Value(&dateInput).
		Validate(func(s string) error {
			_, err := time.Parse("2006-01-02", strings.TrimSpace(s))
			return err
		}).
		Run()
	check(err)

	date, err := time.Parse("2006-01-02", strings.TrimSpace(dateInput))
	check(err)
	draft.AuditDate = date

	return &draft
}
