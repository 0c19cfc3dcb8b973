package tui

import "fmt"

// PrintHelp prints command usage.
func PrintHelp() {
	fmt.Println(StyleTitle("auditdesk") + " - security compliance audit tracker")
	fmt.Println(`
Usage: auditdesk <command> [flags]

Setup:
  setup                     Create or replace the client record

Audit:
  status                    Show session state and the compliance summary
  list [--filter <status>] [--view cards|table]
                            List controls, optionally filtered
  review                    Interactive checklist (set statuses, save)
  set <control-id> <status> [comment]
                            Set one control's status and save
  attach <control-id> <file>
                            Attach an evidence file to a control
  detach <control-id>       Remove a control's attachment
  cover                     Edit the report cover metadata
  save                      Persist the current audit
  submit                    Persist and mark the audit submitted
  export [--format pdf|markdown] [--out <dir>]
                            Generate the audit report file
  watch                     Re-print the summary when the stored audit changes

Controls management:
  controls list             List controls with ids
  controls add              Add a control (interactive)
  controls edit <id>        Edit a control (interactive)
  controls delete <id>      Delete a control
  controls categories [--add <name>]
                            List or extend the category labels

Flags:
  --yes, -y                 Auto-approve confirmation prompts
  --quiet, -q               Minimal output
  --json                    Structured JSON output
  --version                 Print version information

Statuses: compliant, notCompliant, partial, notApplicable`)
}
