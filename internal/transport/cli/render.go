package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/sandevgo/tuskchat/internal/core"
	"github.com/sandevgo/tuskchat/internal/service/ui"
)

func renderHistory(w io.Writer, msgs []core.Message) {
	if len(msgs) == 0 {
		return
	}
	fmt.Fprintln(w, ui.DescStyle.Render(fmt.Sprintf("-- %d stored messages --", len(msgs))))
	for _, m := range msgs {
		renderMessage(w, m)
	}
	fmt.Fprintln(w, ui.DescStyle.Render("--"))
}

func renderMessage(w io.Writer, m core.Message) {
	fmt.Fprintf(w, "%s %s\n", ui.RoleStyle(m.Role).Render(m.Role+":"), m.Content)
}

func renderError(w io.Writer, err error) {
	fmt.Fprintf(w, "%s %s\n", ui.ErrorStyle.Render("Error:"), userMessage(err))
}

// userMessage maps failures to short notices. The wrapped cause is kept for details.
func userMessage(err error) string {
	switch {
	case errors.Is(err, core.ErrEmptyInput):
		return "message is empty"
	case errors.Is(err, core.ErrStorageUnavailable):
		return fmt.Sprintf("history storage is unavailable (%v)", err)
	case errors.Is(err, core.ErrInference):
		return fmt.Sprintf("no reply from the model (%v)", err)
	default:
		return err.Error()
	}
}
