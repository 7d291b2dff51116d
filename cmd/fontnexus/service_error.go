// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/arcitec/font-nexus/internal/exectool"
	"github.com/arcitec/font-nexus/internal/family"
	"github.com/arcitec/font-nexus/internal/fetch"
	"github.com/arcitec/font-nexus/internal/fsutil"
	"github.com/arcitec/font-nexus/internal/groups"
	"github.com/arcitec/font-nexus/internal/issue"
	"github.com/arcitec/font-nexus/internal/pipeline"
)

// ServiceError is an error that has already been rendered for the user.
// Always create via newServiceError.
type ServiceError struct {
	// Err is the underlying error (must not be nil).
	Err error
	// IssueID is the optional issue catalog ID for rendering help text.
	IssueID issue.Id
	// StyledMessage is the pre-rendered styled error text.
	StyledMessage string
}

// newServiceError creates a ServiceError with a nil-Err panic guard.
func newServiceError(err error, issueID issue.Id, styledMessage string) *ServiceError {
	if err == nil {
		panic("ServiceError: Err must not be nil")
	}
	return &ServiceError{
		Err:           err,
		IssueID:       issueID,
		StyledMessage: styledMessage,
	}
}

// Error implements the error interface.
func (e *ServiceError) Error() string { return e.Err.Error() }

// Unwrap returns the underlying error for errors.Is/As chains.
func (e *ServiceError) Unwrap() error { return e.Err }

// classifyError maps a failure to its issue catalog entry (0 when none
// applies) and returns the styled message for the CLI.
func classifyError(err error, verbose bool) (issueID issue.Id, styledMsg string) {
	var ae *issue.ActionableError
	hasContext := errors.As(err, &ae)

	switch {
	case errors.Is(err, exectool.ErrMissingDependency):
		issueID = issue.MissingDependencyId
	case errors.Is(err, pipeline.ErrMissingWindowsFonts):
		issueID = issue.MissingWindowsFontsId
	case errors.Is(err, groups.ErrNoGroups), errors.Is(err, groups.ErrUnterminatedGroup):
		issueID = issue.ManifestGroupsNotFoundId
	case errors.Is(err, groups.ErrMissingFile):
		issueID = issue.MissingGroupFileId
	case errors.Is(err, fetch.ErrNoArchives):
		issueID = issue.ArchivesNotFoundId
	case errors.Is(err, pipeline.ErrEmptyArchive),
		hasContext && ae.Operation == "download archive":
		issueID = issue.ArchiveDownloadFailedId
	case errors.Is(err, family.ErrNoEnglishName):
		issueID = issue.FamilyNameNotFoundId
	case errors.Is(err, fsutil.ErrUnsafeRemoval):
		issueID = issue.UnsafeRemovalId
	case hasContext && ae.Operation == "extract Apple fonts":
		issueID = issue.ExtractionFailedId
	case hasContext && ae.Operation == opLoadConfig:
		issueID = issue.ConfigLoadFailedId
	}

	return issueID, fmt.Sprintf("\n%s %s\n", ErrorStyle.Render("Error:"), formatErrorForDisplay(err, verbose))
}

// formatErrorForDisplay uses ActionableError.Format when available, so
// suggestions and (in verbose mode) the cause chain are shown.
func formatErrorForDisplay(err error, verbose bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verbose)
	}
	return err.Error()
}

// renderServiceError prints the styled message, then the issue guide.
func renderServiceError(stderr io.Writer, svcErr *ServiceError) {
	if svcErr == nil {
		return
	}

	if svcErr.StyledMessage != "" {
		fmt.Fprint(stderr, svcErr.StyledMessage)
	}

	if svcErr.IssueID == 0 {
		return
	}

	if catalogEntry := issue.Get(svcErr.IssueID); catalogEntry != nil {
		rendered, renderErr := catalogEntry.Render("dark")
		if renderErr != nil {
			fmt.Fprintf(stderr, "%s failed to render issue guide: %v\n", WarningStyle.Render("Warning:"), renderErr)
			return
		}
		fmt.Fprint(stderr, rendered)
	}
}
