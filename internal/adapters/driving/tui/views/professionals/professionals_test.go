package professionals

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/karigar-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/karigar-cli/internal/adapters/driving/tui/tuitest"
	"github.com/custodia-labs/karigar-cli/internal/core/domain"
)

func loaded(t *testing.T, cmd tea.Cmd) messages.ProfessionalsLoaded {
	t.Helper()
	require.NotNil(t, cmd)
	batch, ok := cmd().(tea.BatchMsg)
	require.True(t, ok)
	for _, c := range batch {
		if msg, ok := c().(messages.ProfessionalsLoaded); ok {
			return msg
		}
	}
	require.Fail(t, "no ProfessionalsLoaded message")
	return messages.ProfessionalsLoaded{}
}

func plumbers() []domain.ProfessionalRecord {
	return []domain.ProfessionalRecord{
		{Name: "Ravi Kulkarni", MobileNo: "9876543210", City: "Baramati", District: "Pune",
			State: "Maharashtra", ServiceCategory: "Household Services", ServiceName: "Plumber"},
		{Name: "Anil Patil", MobileNo: "9876500000", City: "Haveli", District: "Pune",
			State: "Maharashtra", ServiceCategory: "Household Services", ServiceName: "Plumber"},
	}
}

func TestView_OpenLoadsListing(t *testing.T) {
	dir := tuitest.NewDirectory()
	dir.Records["Plumber"] = plumbers()
	v := NewView(nil, dir)

	cmd := v.Open(messages.ProfessionalsRequested{
		Service: "Plumber", Category: "Household Services", Title: "Household Services / Plumber",
	})
	v.Update(loaded(t, cmd))

	assert.Equal(t, [2]string{"Plumber", "Household Services"}, dir.LastListing)
	assert.Len(t, v.Records(), 2)
	assert.NoError(t, v.Err())

	view := v.View()
	assert.Contains(t, view, "Household Services / Plumber")
	assert.Contains(t, view, "Ravi Kulkarni")
	assert.Contains(t, view, "2 professional(s)")
}

func TestView_EmptyListing(t *testing.T) {
	v := NewView(nil, tuitest.NewDirectory())

	v.Update(loaded(t, v.Open(messages.ProfessionalsRequested{Service: "Salon"})))

	assert.Empty(t, v.Records())
	assert.Contains(t, v.View(), "No professionals listed yet")
}

func TestView_StaleListingIgnored(t *testing.T) {
	dir := tuitest.NewDirectory()
	dir.Records["Plumber"] = plumbers()
	v := NewView(nil, dir)

	stale := loaded(t, v.Open(messages.ProfessionalsRequested{Service: "Plumber"}))
	v.Open(messages.ProfessionalsRequested{Service: "Salon"})
	v.Update(stale)

	assert.Empty(t, v.Records())
	assert.Equal(t, "Salon", v.Request().Service)
}

func TestView_NetworkError(t *testing.T) {
	dir := tuitest.NewDirectory()
	dir.ProfessionalsErr = &domain.RequestError{
		Kind: domain.RequestErrorServer, Operation: "list professionals", StatusCode: 500, Message: "database down",
	}
	v := NewView(nil, dir)

	_, cmd := v.Update(loaded(t, v.Open(messages.ProfessionalsRequested{Service: "Plumber"})))

	assert.Nil(t, cmd)
	assert.Error(t, v.Err())
	assert.Contains(t, v.View(), "database down")
}

func TestView_AuthorizationErrorRequiresLogin(t *testing.T) {
	dir := tuitest.NewDirectory()
	dir.ProfessionalsErr = domain.ErrSessionExpired
	v := NewView(nil, dir)

	_, cmd := v.Update(loaded(t, v.Open(messages.ProfessionalsRequested{Service: "Plumber"})))
	require.NotNil(t, cmd)

	msg, ok := cmd().(messages.LoginRequired)
	require.True(t, ok)
	assert.Equal(t, messages.ViewDirectory, msg.Return)
	assert.NotEmpty(t, msg.Reason)
}

func TestView_EscReturnsToDirectory(t *testing.T) {
	v := NewView(nil, tuitest.NewDirectory())

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)

	assert.Equal(t, messages.ViewChanged{View: messages.ViewDirectory}, cmd())
}

func TestView_RefreshReloads(t *testing.T) {
	dir := tuitest.NewDirectory()
	v := NewView(nil, dir)
	v.Open(messages.ProfessionalsRequested{Service: "Plumber"})
	dir.Records["Plumber"] = plumbers()

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	v.Update(loaded(t, cmd))

	assert.Len(t, v.Records(), 2)
}

func TestView_NavigatesList(t *testing.T) {
	dir := tuitest.NewDirectory()
	dir.Records["Plumber"] = plumbers()
	v := NewView(nil, dir)
	v.SetDimensions(100, 30)
	v.Update(loaded(t, v.Open(messages.ProfessionalsRequested{Service: "Plumber"})))

	v.Update(tea.KeyMsg{Type: tea.KeyDown})

	assert.Equal(t, 1, v.list.Selected())
}

func TestView_OpenWithoutService(t *testing.T) {
	v := NewView(nil, tuitest.NewDirectory())

	assert.Nil(t, v.Open(messages.ProfessionalsRequested{}))
}
