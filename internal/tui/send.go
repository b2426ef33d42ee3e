// Package tui renders the terminal send wizard. The server owns the wizard
// state; the view keeps the form inputs and the segmented code input.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/AlexZinkM/vendora/internal/apiclient"
	"github.com/AlexZinkM/vendora/internal/model"
	"github.com/AlexZinkM/vendora/internal/otp"
	"github.com/AlexZinkM/vendora/internal/validation"
	"github.com/AlexZinkM/vendora/internal/wizard"
)

const requestTimeout = 30 * time.Second

// SendAPI is the part of the API the wizard drives.
type SendAPI interface {
	Open(ctx context.Context, kind wizard.Kind) (*model.TransferState, error)
	Close(ctx context.Context, kind wizard.Kind) (*model.TransferState, error)
	ChooseRecipient(ctx context.Context, kind wizard.Kind, t validation.RecipientType) (*model.TransferState, error)
	SubmitCrypto(ctx context.Context, in validation.SendCryptoInput) (*model.TransferState, error)
	SubmitFiat(ctx context.Context, in validation.SendFiatInput) (*model.TransferState, error)
	Confirm(ctx context.Context, kind wizard.Kind) (*model.TransferState, error)
	SubmitCode(ctx context.Context, kind wizard.Kind, code string) (*model.TransferState, error)
}

type stateMsg struct{ state *model.TransferState }

type errMsg struct{ err error }

type field struct {
	key   string
	label string
	input textinput.Model
}

// SendModel is the bubbletea model of `vendora send`.
type SendModel struct {
	api  SendAPI
	kind wizard.Kind

	state  *model.TransferState
	busy   bool
	err    string
	fields validation.Errors

	form      []field
	focus     int
	save      bool
	recipient validation.RecipientType

	code *otp.Input
	spin spinner.Model
}

func NewSendModel(api SendAPI, kind wizard.Kind) SendModel {
	s := spinner.New()
	s.Spinner = spinner.Dot

	m := SendModel{
		api:       api,
		kind:      kind,
		busy:      true,
		recipient: validation.RecipientNew,
		code:      otp.New(otp.DefaultLength),
		spin:      s,
	}
	if kind == wizard.KindFiat {
		m.form = []field{
			newField("bankName", "Bank", "kuda", ""),
			newField("accountNumber", "Account number", "0123456789", ""),
			newField("accountName", "Account name", "", ""),
			newField("amount", "Amount (NGN)", "0.00", ""),
		}
	} else {
		m.form = []field{
			newField("asset", "Asset", "", "USDC"),
			newField("chain", "Chain", "", "Ethereum"),
			newField("amount", "Amount", "0.00", ""),
			newField("destinationWallet", "Destination wallet", "0x...", ""),
		}
	}
	m.form[0].input.Focus()
	return m
}

func newField(key, label, placeholder, value string) field {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.SetValue(value)
	ti.CharLimit = 64
	ti.Width = 42
	return field{key: key, label: label, input: ti}
}

func (m SendModel) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.open())
}

func (m SendModel) open() tea.Cmd {
	return m.call(func(ctx context.Context) (*model.TransferState, error) {
		return m.api.Open(ctx, m.kind)
	})
}

func (m SendModel) call(fn func(ctx context.Context) (*model.TransferState, error)) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		st, err := fn(ctx)
		if err != nil {
			return errMsg{err: err}
		}
		return stateMsg{state: st}
	}
}

// closeAndQuit discards the server side wizard before leaving.
func (m SendModel) closeAndQuit() tea.Cmd {
	return tea.Sequence(func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		m.api.Close(ctx, m.kind)
		return nil
	}, tea.Quit)
}

func (m SendModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case stateMsg:
		m.busy = false
		m.err = ""
		m.fields = nil
		if m.state == nil || m.state.Step != msg.state.Step {
			m.code.Reset()
		}
		m.state = msg.state
		return m, nil

	case errMsg:
		m.busy = false
		m.err = msg.err.Error()
		var apiErr *apiclient.Error
		if errors.As(msg.err, &apiErr) && len(apiErr.Fields) > 0 {
			m.fields = apiErr.Fields
		}
		if errs, ok := validation.AsErrors(msg.err); ok {
			m.fields = errs
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, m.closeAndQuit()
		}
		if m.busy || m.state == nil {
			return m, nil
		}
		if m.state.Terminal {
			if msg.String() == "enter" || msg.String() == "q" {
				return m, tea.Quit
			}
			return m, nil
		}
		return m.updateStep(msg)
	}
	return m, nil
}

func (m SendModel) updateStep(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.state.Step {
	case string(wizard.FiatRecipient):
		switch msg.String() {
		case "up", "down", "left", "right", "tab":
			if m.recipient == validation.RecipientNew {
				m.recipient = validation.RecipientSaved
			} else {
				m.recipient = validation.RecipientNew
			}
		case "enter":
			m.busy = true
			recipient := m.recipient
			return m, m.call(func(ctx context.Context) (*model.TransferState, error) {
				return m.api.ChooseRecipient(ctx, m.kind, recipient)
			})
		}
		return m, nil

	case string(wizard.CryptoDetails):
		return m.updateForm(msg)

	case string(wizard.CryptoSummary):
		if msg.String() == "enter" {
			m.busy = true
			return m, m.call(func(ctx context.Context) (*model.TransferState, error) {
				return m.api.Confirm(ctx, m.kind)
			})
		}
		return m, nil

	case string(wizard.CryptoAuth), string(wizard.FiatTwoFactor):
		return m.updateCode(msg)
	}
	return m, nil
}

func (m SendModel) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "down":
		return m.moveFocus(1), nil
	case "shift+tab", "up":
		return m.moveFocus(-1), nil
	case "ctrl+s":
		if m.kind == wizard.KindCrypto {
			m.save = !m.save
		}
		return m, nil
	case "enter":
		if m.focus < len(m.form)-1 {
			return m.moveFocus(1), nil
		}
		return m.submitForm()
	}

	var cmd tea.Cmd
	m.form[m.focus].input, cmd = m.form[m.focus].input.Update(msg)
	return m, cmd
}

func (m SendModel) moveFocus(delta int) SendModel {
	m.form[m.focus].input.Blur()
	m.focus = (m.focus + delta + len(m.form)) % len(m.form)
	m.form[m.focus].input.Focus()
	return m
}

func (m SendModel) value(key string) string {
	for _, f := range m.form {
		if f.key == key {
			return strings.TrimSpace(f.input.Value())
		}
	}
	return ""
}

// submitForm checks the form locally first so typos do not cost a round trip.
func (m SendModel) submitForm() (tea.Model, tea.Cmd) {
	if m.kind == wizard.KindFiat {
		in := validation.SendFiatInput{
			RecipientType: m.recipient,
			Currency:      validation.DefaultCurrency,
			BankName:      m.value("bankName"),
			AccountNumber: m.value("accountNumber"),
			AccountName:   m.value("accountName"),
			Amount:        m.value("amount"),
		}
		if errs, ok := validation.AsErrors(in.Validate()); ok {
			m.fields = errs
			return m, nil
		}
		m.busy = true
		return m, m.call(func(ctx context.Context) (*model.TransferState, error) {
			return m.api.SubmitFiat(ctx, in)
		})
	}

	in := validation.SendCryptoInput{
		Asset:             m.value("asset"),
		Chain:             m.value("chain"),
		Amount:            m.value("amount"),
		DestinationWallet: m.value("destinationWallet"),
		SaveBeneficiary:   m.save,
	}
	if errs, ok := validation.AsErrors(in.Validate()); ok {
		m.fields = errs
		return m, nil
	}
	m.busy = true
	return m, m.call(func(ctx context.Context) (*model.TransferState, error) {
		return m.api.SubmitCrypto(ctx, in)
	})
}

func (m SendModel) updateCode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	at := m.code.Focus()
	switch {
	case msg.Paste:
		m.code.HandlePaste(string(msg.Runes), at)
	case msg.Type == tea.KeyRunes:
		m.code.SetCharacter(string(msg.Runes), at)
	case msg.Type == tea.KeyBackspace:
		m.code.HandleBackspace(at)
	case msg.Type == tea.KeyLeft:
		m.code.HandleArrow(otp.Left, at)
	case msg.Type == tea.KeyRight:
		m.code.HandleArrow(otp.Right, at)
	case msg.Type == tea.KeyEnter:
		m.busy = true
		code := m.code.Code()
		return m, m.call(func(ctx context.Context) (*model.TransferState, error) {
			return m.api.SubmitCode(ctx, m.kind, code)
		})
	}
	return m, nil
}

func (m SendModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Send " + string(m.kind)))
	b.WriteString("\n\n")

	switch {
	case m.state == nil:
		b.WriteString(m.spin.View() + " opening transfer...")
	case m.state.Terminal:
		b.WriteString(m.viewDone())
	default:
		b.WriteString(m.viewStep())
	}

	if m.err != "" {
		b.WriteString("\n\n" + errorStyle.Render(m.err))
	}
	if m.busy && m.state != nil {
		b.WriteString("\n\n" + m.spin.View() + " working...")
	}
	return panelStyle.Render(b.String())
}

func (m SendModel) viewStep() string {
	switch m.state.Step {
	case string(wizard.FiatRecipient):
		return m.viewRecipient()
	case string(wizard.CryptoDetails):
		return m.viewForm()
	case string(wizard.CryptoSummary):
		return m.viewSummary() + "\n\n" + hintStyle.Render("enter confirm • esc cancel")
	case string(wizard.CryptoAuth), string(wizard.FiatTwoFactor):
		return "Enter the 6-digit code from your authenticator\n\n" +
			RenderCode(m.code.Digits(), m.code.Focus()) + "\n\n" +
			hintStyle.Render("digits • ←/→ move • backspace • enter submit")
	}
	return ""
}

func (m SendModel) viewRecipient() string {
	option := func(t validation.RecipientType, label string) string {
		if m.recipient == t {
			return okStyle.Render("● " + label)
		}
		return valueStyle.Render("○ " + label)
	}
	return "Who are you sending to?\n\n" +
		option(validation.RecipientSaved, "Saved beneficiary") + "\n" +
		option(validation.RecipientNew, "New account") + "\n\n" +
		hintStyle.Render("↑/↓ choose • enter continue")
}

func (m SendModel) viewForm() string {
	var b strings.Builder
	for i, f := range m.form {
		marker := "  "
		if i == m.focus {
			marker = titleStyle.Render("› ")
		}
		b.WriteString(marker + labelStyle.Render(f.label) + f.input.View() + "\n")
		if msg, ok := m.fields[f.key]; ok {
			b.WriteString("  " + errorStyle.Render(msg) + "\n")
		}
	}
	if m.kind == wizard.KindCrypto {
		check := "[ ]"
		if m.save {
			check = "[x]"
		}
		b.WriteString("\n" + check + " Save as beneficiary (ctrl+s)\n")
	}
	b.WriteString("\n" + hintStyle.Render("tab next field • enter on the last field continues"))
	return b.String()
}

func (m SendModel) viewSummary() string {
	rows := [][2]string{}
	if d := m.state.Crypto; d != nil {
		rows = append(rows,
			[2]string{"Asset", d.Asset + " on " + d.Chain},
			[2]string{"Amount", d.Amount + " " + d.Asset},
			[2]string{"Destination wallet", validation.ChecksumAddress(d.DestinationWallet)},
		)
	}
	if d := m.state.Fiat; d != nil {
		rows = append(rows,
			[2]string{"Recipient", d.AccountName},
			[2]string{"Account", d.AccountNumber + " (" + d.BankName + ")"},
			[2]string{"Amount", d.Amount + " " + d.Currency},
		)
	}
	rows = append(rows, [2]string{"Transaction fee", m.state.Fee + " " + m.state.FeeAsset})

	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		lines = append(lines, labelStyle.Render(r[0])+valueStyle.Render(r[1]))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m SendModel) viewDone() string {
	tx := m.state.Transaction
	if tx == nil {
		return okStyle.Render("Transfer submitted")
	}
	return okStyle.Render("Transfer submitted") + "\n\n" +
		labelStyle.Render("Reference") + valueStyle.Render(tx.Reference) + "\n" +
		labelStyle.Render("Amount") + valueStyle.Render(fmt.Sprintf("%s %s", tx.Amount, unit(tx))) + "\n" +
		labelStyle.Render("Status") + valueStyle.Render(tx.Status) + "\n\n" +
		"Your transaction is currently in progress. We'll notify you when it's completed.\n\n" +
		hintStyle.Render("enter to exit")
}

func unit(tx *model.Transaction) string {
	if tx.Kind == "fiat" {
		return tx.Currency
	}
	return tx.Asset
}

// RenderCode draws one bordered box per character, highlighting focus.
func RenderCode(digits []string, focus int) string {
	boxes := make([]string, len(digits))
	for i, d := range digits {
		if d == "" {
			d = " "
		}
		style := boxStyle
		if i == focus {
			style = focusedBoxStyle
		}
		boxes[i] = style.Render(d)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, boxes...)
}

// RunSend runs the wizard until the user finishes or cancels.
func RunSend(api SendAPI, kind wizard.Kind) error {
	_, err := tea.NewProgram(NewSendModel(api, kind)).Run()
	return err
}
