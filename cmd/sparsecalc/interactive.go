package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/eiannone/keyboard"
	"go.uber.org/zap"

	"github.com/katalvlaran/sparsecalc/matrix"
)

// errAborted is returned when the menu is dismissed with Esc or Ctrl+C.
var errAborted = errors.New("aborted")

// runInteractive loads both files, shows the operation menu and runs the choice.
func (a *app) runInteractive(leftPath, rightPath string) error {
	left, err := a.load(leftPath)
	if err != nil {
		return err
	}
	right, err := a.load(rightPath)
	if err != nil {
		return err
	}

	a.renderMenu()
	choice, err := a.choose()
	if err != nil {
		return err
	}
	op, err := matrix.ParseOp(choice)
	if err != nil {
		return fmt.Errorf("invalid choice %q: %w", choice, err)
	}
	a.logger.Debug("operation selected", zap.String("choice", choice), zap.Stringer("op", op))

	return a.compute(op, left, right)
}

// readChoice reads one key press when attached to a terminal, otherwise one line.
func (a *app) readChoice() (string, error) {
	if f, ok := a.in.(*os.File); ok && f == os.Stdin {
		ch, key, err := keyboard.GetSingleKey()
		if err == nil {
			if key == keyboard.KeyEsc || key == keyboard.KeyCtrlC {
				return "", errAborted
			}
			fmt.Fprintln(a.out, string(ch))
			return string(ch), nil
		}
		a.logger.Debug("single-key input unavailable, reading a line", zap.Error(err))
	}

	line, err := bufio.NewReader(a.in).ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		return "", fmt.Errorf("read choice: %w", err)
	}

	return strings.TrimSpace(line), nil
}

// renderMenu prints the operation menu.
func (a *app) renderMenu() {
	title := lipgloss.NewRenderer(a.out).NewStyle().Bold(true)
	fmt.Fprintln(a.out, title.Render("Select operation:"))
	for _, op := range matrix.Ops {
		fmt.Fprintf(a.out, "%d. %s\n", int(op), op)
	}
}

// renderError prints err for the user.
func (a *app) renderError(err error) {
	label := lipgloss.NewRenderer(a.errOut).NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	fmt.Fprintln(a.errOut, label.Render("Error:"), err)
}
