package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/pders01/showreel/internal/contact"
	"github.com/pders01/showreel/internal/debuglog"
)

const (
	fieldFirstName = iota
	fieldLastName
	fieldEmail
	fieldPhone
	fieldSubject
	fieldMessage
	fieldSubmit
)

const messageHeight = 4

var contactLabels = []struct {
	label, placeholder string
	required           bool
}{
	{"First Name", "Jane", true},
	{"Last Name", "Doe", true},
	{"Email", "jane@example.com", true},
	{"Phone", "+1 555 0100", false},
	{"Subject", "New project", true},
}

func newContactInputs() ([]textinput.Model, textarea.Model) {
	inputs := make([]textinput.Model, len(contactLabels))
	for i, l := range contactLabels {
		ti := textinput.New()
		ti.Placeholder = l.placeholder
		ti.Prompt = "› "
		ti.CharLimit = 200
		inputs[i] = ti
	}
	inputs[fieldFirstName].Focus()

	ta := textarea.New()
	ta.Placeholder = "Tell us about your project..."
	ta.ShowLineNumbers = false
	ta.CharLimit = 5000
	ta.SetHeight(messageHeight)
	return inputs, ta
}

// focusField moves keyboard focus to field i, wrapping around.
func (a *App) focusField(i int) tea.Cmd {
	n := fieldSubmit + 1
	i = ((i % n) + n) % n
	a.focus = i
	for j := range a.inputs {
		a.inputs[j].Blur()
	}
	a.message.Blur()
	switch {
	case i < fieldMessage:
		return a.inputs[i].Focus()
	case i == fieldMessage:
		return a.message.Focus()
	}
	return nil
}

func (a *App) contactRequest() contact.Request {
	return contact.Request{
		FirstName: a.inputs[fieldFirstName].Value(),
		LastName:  a.inputs[fieldLastName].Value(),
		Email:     a.inputs[fieldEmail].Value(),
		Phone:     a.inputs[fieldPhone].Value(),
		Subject:   a.inputs[fieldSubject].Value(),
		Message:   a.message.Value(),
	}
}

func (a *App) resetContactInputs() {
	for i := range a.inputs {
		a.inputs[i].Reset()
	}
	a.message.Reset()
	a.formHint = ""
}

// submitContactForm validates locally and starts the submission. Missing or
// malformed fields stay on the form as a hint, like a browser's required
// attribute; only transport and server failures show the failure message.
func (a *App) submitContactForm() tea.Cmd {
	req := a.contactRequest().Normalize()
	if err := req.Validate(); err != nil {
		a.formHint = userFacing(err)
		a.setStatus(MsgFillRequired, StatusWarn)
		return nil
	}
	token, ok := a.form.Begin()
	if !ok {
		return nil
	}
	a.formHint = ""
	a.setStatus(contact.StatusSubmitting.String()+"…", StatusInfo)
	return a.submitContact(token, req)
}

func (a *App) onContactSubmitted(msg contactSubmittedMsg) {
	if !a.form.Finish(msg.token, msg.err) {
		return
	}
	if msg.err != nil {
		debuglog.Warnf("contact submission failed: %v", msg.err)
		a.setStatus(contact.FailureMessage, StatusError)
		return
	}
	a.resetContactInputs()
	a.setStatus(contact.SuccessMessage, StatusSuccess)
}

// contactFieldAt maps a screen row to the form field drawn there.
func contactFieldAt(y int) (int, bool) {
	row := y - formTop
	switch {
	case row < 0:
		return 0, false
	case row < 2*fieldMessage:
		return row / 2, true
	case row <= 2*fieldMessage+messageHeight:
		return fieldMessage, true
	case row == 2*fieldMessage+messageHeight+2:
		return fieldSubmit, true
	}
	return 0, false
}

func (a *App) renderContact() string {
	width := a.width - 4
	if width > 72 {
		width = 72
	}
	if width < 20 {
		width = 20
	}

	rows := []string{
		renderHeader("› contact", "Let's create something together", a.width),
		"",
	}
	for i, l := range contactLabels {
		label := l.label
		if l.required {
			label += " *"
		}
		style := lipgloss.NewStyle().Foreground(MutedColor)
		if a.focus == i {
			style = style.Foreground(AccentColor).Bold(true)
		}
		a.inputs[i].Width = width - 4
		rows = append(rows, style.Render(label), a.inputs[i].View())
	}

	msgLabel := lipgloss.NewStyle().Foreground(MutedColor)
	if a.focus == fieldMessage {
		msgLabel = msgLabel.Foreground(AccentColor).Bold(true)
	}
	a.message.SetWidth(width)
	rows = append(rows, msgLabel.Render("Message *"), a.message.View(), "")

	button := TabStyle.Render("[ Send message ]")
	if a.form.Status() == contact.StatusSubmitting {
		button = TabStyle.Render("[ Sending... ]")
	} else if a.focus == fieldSubmit {
		button = ActiveTabStyle.Render("[ Send message ]")
	}
	rows = append(rows, button)

	switch {
	case a.formHint != "":
		rows = append(rows, StatusWarnStyle.Render("! "+a.formHint))
	case a.form.Status() == contact.StatusSuccess:
		rows = append(rows, StatusSuccessStyle.Render("✓ "+a.form.Status().Message()))
	case a.form.Status() == contact.StatusError:
		rows = append(rows, StatusErrorStyle.Render("✗ "+a.form.Status().Message()))
	}

	return lipgloss.NewStyle().PaddingLeft(1).Render(strings.Join(rows, "\n"))
}
