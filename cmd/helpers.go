package cmd

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	kerrors "github.com/PolarWolf314/hush/internal/errors"
	"github.com/PolarWolf314/hush/internal/ui"
	"github.com/briandowns/spinner"
	"github.com/spf13/pflag"
)

// startSpinner creates and starts a spinner with the given message when not in verbose or debug mode.
// Returns the spinner and a function that should be deferred to clean up.
//
// spinner.FinalMSG values do NOT need trailing newlines. The cleanup function
// calls ui.EnsureNewline() on the final message before printing it.
func startSpinner(message string) (*spinner.Spinner, func()) {
	Logger.Debugf("Starting spinner with message: %s", message)
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	s.Suffix = " " + message

	if err := s.Color("cyan"); err != nil {
		Logger.Warnf("Failed to set spinner color: %v", err)
	}

	quiet := !verbose && !debug
	if quiet {
		s.Start()
		// Ensure log output is discarded unless in verbose mode.
		log.SetOutput(io.Discard)
	} else {
		Logger.Infof("Running in verbose or debug mode: %s", message)
	}

	cleanup := func() {
		if quiet {
			log.SetOutput(os.Stderr)
		}

		finalMsg := ""
		if s.FinalMSG != "" {
			finalMsg = ui.EnsureNewline(s.FinalMSG)
			// Clear FinalMSG so s.Stop() doesn't print it.
			s.FinalMSG = ""
		}

		if quiet {
			s.Stop()
		}

		// Print final message to stdout (for tests to capture).
		if finalMsg != "" {
			fmt.Print(finalMsg)
		}
	}

	return s, cleanup
}

// addSpaceFlag registers the --space/-s flag shared by every command that
// works on one space.
func addSpaceFlag(fs *pflag.FlagSet, target *string) {
	fs.StringVarP(target, "space", "s", "", "space id or unique id prefix (defaults to the active space)")
}

func success(msg string, args ...any) string {
	return ui.Success.Sprint("✓") + " " + fmt.Sprintf(msg, args...)
}

func failure(msg string, args ...any) string {
	return ui.Error.Sprint("✗") + " " + fmt.Sprintf(msg, args...)
}

func hint(msg string, args ...any) string {
	return ui.Info.Sprint("→") + " " + fmt.Sprintf(msg, args...)
}

// formatError formats a workflow error for display to the user.
func formatError(err error) string {
	switch {
	case errors.Is(err, kerrors.ErrNoActiveSpace):
		return failure("No space selected") + "\n" +
			hint("Run %s or %s first, or pass %s", ui.Code.Sprint("hush space create"), ui.Code.Sprint("hush space join"), ui.Flag.Sprint("--space"))

	case errors.Is(err, kerrors.ErrSpaceNotFound):
		return failure("%s", err.Error()) + "\n" +
			hint("Run %s to see known spaces", ui.Code.Sprint("hush space list"))

	case errors.Is(err, kerrors.ErrInvalidInviteFormat),
		errors.Is(err, kerrors.ErrMalformedSecret):
		return failure("That invite code is not valid") + "\n" +
			hint("An invite code looks like %s", ui.Code.Sprint("<space id>:<secret>"))

	case errors.Is(err, kerrors.ErrInvalidSnapshot),
		errors.Is(err, kerrors.ErrSnapshotSpaceMismatch):
		return failure("%s", err.Error()) + "\n" +
			hint("Nothing was imported")

	case errors.Is(err, kerrors.ErrInvalidStore):
		return failure("%s", err.Error()) + "\n" +
			hint("Your spaces file was left untouched")

	case errors.Is(err, kerrors.ErrEntropyUnavailable):
		return failure("The system random source is unavailable: %s", err.Error())

	default:
		return failure("%s", capitalize(err.Error()))
	}
}

// isUnexpectedError returns true if the error is unexpected and should cause a non-zero exit.
func isUnexpectedError(err error) bool {
	expected := []error{
		kerrors.ErrNoActiveSpace,
		kerrors.ErrSpaceNotFound,
		kerrors.ErrInvalidSpaceName,
		kerrors.ErrInvalidInviteFormat,
		kerrors.ErrMalformedSecret,
		kerrors.ErrEmptyPost,
		kerrors.ErrPostTooLong,
		kerrors.ErrInvalidSnapshot,
		kerrors.ErrSnapshotSpaceMismatch,
		kerrors.ErrInvalidDisplayName,
		kerrors.ErrInvalidDateFormat,
	}
	for _, e := range expected {
		if errors.Is(err, e) {
			return false
		}
	}
	return true
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
