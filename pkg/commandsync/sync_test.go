package commandsync

import (
	"context"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"slashkit/pkg/command"
	"slashkit/pkg/ratelimit"
)

const (
	testAppID   = "app-123"
	testGuildID = "guild-456"
)

// MockAPI is a mock implementation of the API interface.
type MockAPI struct {
	mock.Mock
}

func (m *MockAPI) ApplicationCommands(appID, guildID string, options ...discordgo.RequestOption) ([]*discordgo.ApplicationCommand, error) {
	args := m.Called(appID, guildID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*discordgo.ApplicationCommand), args.Error(1)
}

func (m *MockAPI) ApplicationCommandCreate(appID, guildID string, cmd *discordgo.ApplicationCommand, options ...discordgo.RequestOption) (*discordgo.ApplicationCommand, error) {
	args := m.Called(appID, guildID, cmd)
	return cmd, args.Error(1)
}

func (m *MockAPI) ApplicationCommandDelete(appID, guildID, cmdID string, options ...discordgo.RequestOption) error {
	args := m.Called(appID, guildID, cmdID)
	return args.Error(0)
}

func testRegistry(t *testing.T, defs ...*command.Definition) *command.Registry {
	t.Helper()
	reg := command.NewRegistry()
	for _, def := range defs {
		require.NoError(t, reg.Register(def))
	}
	return reg
}

func pingDef(guildID string) *command.Definition {
	return &command.Definition{
		Name:        "ping",
		Description: "Check responsiveness",
		GuildID:     guildID,
		Handler:     func(*command.Context) error { return nil },
	}
}

func fastPacer() *ratelimit.Pacer { return ratelimit.NewPacer(1000, 1000, 1000) }

func TestSyncScopeRegistersNewCommands(t *testing.T) {
	api := &MockAPI{}
	api.On("ApplicationCommands", testAppID, testGuildID).Return([]*discordgo.ApplicationCommand{}, nil)
	api.On("ApplicationCommandCreate", testAppID, testGuildID, mock.Anything).Return(nil, nil)

	s := New(api, testAppID, testRegistry(t, pingDef(testGuildID)), WithPacer(fastPacer()))
	require.NoError(t, s.SyncScope(context.Background(), testGuildID))

	api.AssertNumberOfCalls(t, "ApplicationCommandCreate", 1)
	api.AssertNotCalled(t, "ApplicationCommandDelete", mock.Anything, mock.Anything, mock.Anything)
}

func TestSyncScopeDeletesObsolete(t *testing.T) {
	api := &MockAPI{}
	api.On("ApplicationCommands", testAppID, testGuildID).Return([]*discordgo.ApplicationCommand{
		{ID: "cmd-1", Name: "stale"},
	}, nil)
	api.On("ApplicationCommandDelete", testAppID, testGuildID, "cmd-1").Return(nil)

	s := New(api, testAppID, testRegistry(t), WithPacer(fastPacer()))
	require.NoError(t, s.SyncScope(context.Background(), testGuildID))

	api.AssertCalled(t, "ApplicationCommandDelete", testAppID, testGuildID, "cmd-1")
}

func TestSyncScopeSkipsUnchanged(t *testing.T) {
	cache := NewCache(t.TempDir())
	reg := testRegistry(t, pingDef(testGuildID))

	first := &MockAPI{}
	first.On("ApplicationCommands", testAppID, testGuildID).Return([]*discordgo.ApplicationCommand{}, nil)
	first.On("ApplicationCommandCreate", testAppID, testGuildID, mock.Anything).Return(nil, nil)

	s := New(first, testAppID, reg, WithCache(cache), WithPacer(fastPacer()))
	require.NoError(t, s.SyncScope(context.Background(), testGuildID))
	first.AssertNumberOfCalls(t, "ApplicationCommandCreate", 1)

	// Second sync with the same definitions pushes nothing.
	second := &MockAPI{}
	second.On("ApplicationCommands", testAppID, testGuildID).Return([]*discordgo.ApplicationCommand{
		{ID: "cmd-1", Name: "ping"},
	}, nil)

	s = New(second, testAppID, reg, WithCache(cache), WithPacer(fastPacer()))
	require.NoError(t, s.SyncScope(context.Background(), testGuildID))
	second.AssertNotCalled(t, "ApplicationCommandCreate", mock.Anything, mock.Anything, mock.Anything)
}

func TestSyncScopeCollectsFailures(t *testing.T) {
	api := &MockAPI{}
	api.On("ApplicationCommands", testAppID, testGuildID).Return([]*discordgo.ApplicationCommand{}, nil)
	api.On("ApplicationCommandCreate", testAppID, testGuildID, mock.MatchedBy(func(c *discordgo.ApplicationCommand) bool {
		return c.Name == "ping"
	})).Return(nil, assert.AnError)
	api.On("ApplicationCommandCreate", testAppID, testGuildID, mock.MatchedBy(func(c *discordgo.ApplicationCommand) bool {
		return c.Name == "roll"
	})).Return(nil, nil)

	roll := pingDef(testGuildID)
	roll.Name = "roll"
	s := New(api, testAppID, testRegistry(t, pingDef(testGuildID), roll), WithPacer(fastPacer()))

	err := s.SyncScope(context.Background(), testGuildID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "register ping")
	// The other command still got pushed.
	api.AssertNumberOfCalls(t, "ApplicationCommandCreate", 2)
}

func TestSyncScopeOnlyPushesItsScope(t *testing.T) {
	api := &MockAPI{}
	api.On("ApplicationCommands", testAppID, "").Return([]*discordgo.ApplicationCommand{}, nil)
	api.On("ApplicationCommandCreate", testAppID, "", mock.Anything).Return(nil, nil)

	s := New(api, testAppID, testRegistry(t, pingDef(""), pingDef(testGuildID)), WithPacer(fastPacer()))
	require.NoError(t, s.SyncScope(context.Background(), ""))

	// Only the global definition lands in the global scope.
	api.AssertNumberOfCalls(t, "ApplicationCommandCreate", 1)
}

func TestSyncScopePushesBothKindsSharingAName(t *testing.T) {
	api := &MockAPI{}
	api.On("ApplicationCommands", testAppID, testGuildID).Return([]*discordgo.ApplicationCommand{}, nil)
	api.On("ApplicationCommandCreate", testAppID, testGuildID, mock.Anything).Return(nil, nil)

	menu := pingDef(testGuildID)
	menu.Kind = command.KindMessageMenu
	s := New(api, testAppID, testRegistry(t, pingDef(testGuildID), menu), WithPacer(fastPacer()))
	require.NoError(t, s.SyncScope(context.Background(), testGuildID))

	// The slash command and the context menu are distinct registrations.
	api.AssertNumberOfCalls(t, "ApplicationCommandCreate", 2)
	api.AssertNotCalled(t, "ApplicationCommandDelete", mock.Anything, mock.Anything, mock.Anything)
}

func TestSyncScopeMatchesRemoteByKind(t *testing.T) {
	api := &MockAPI{}
	api.On("ApplicationCommands", testAppID, testGuildID).Return([]*discordgo.ApplicationCommand{
		{ID: "cmd-1", Name: "ping", Type: discordgo.ChatApplicationCommand},
		{ID: "cmd-2", Name: "ping", Type: discordgo.MessageApplicationCommand},
	}, nil)
	api.On("ApplicationCommandDelete", testAppID, testGuildID, "cmd-2").Return(nil)
	api.On("ApplicationCommandCreate", testAppID, testGuildID, mock.Anything).Return(nil, nil)

	s := New(api, testAppID, testRegistry(t, pingDef(testGuildID)), WithPacer(fastPacer()))
	require.NoError(t, s.SyncScope(context.Background(), testGuildID))

	// Only the context-menu namesake is obsolete.
	api.AssertNumberOfCalls(t, "ApplicationCommandDelete", 1)
	api.AssertCalled(t, "ApplicationCommandDelete", testAppID, testGuildID, "cmd-2")
}

func TestSyncAll(t *testing.T) {
	api := &MockAPI{}
	api.On("ApplicationCommands", testAppID, mock.Anything).Return([]*discordgo.ApplicationCommand{}, nil)
	api.On("ApplicationCommandCreate", testAppID, mock.Anything, mock.Anything).Return(nil, nil)

	s := New(api, testAppID, testRegistry(t, pingDef(""), pingDef(testGuildID)), WithPacer(fastPacer()))
	require.NoError(t, s.SyncAll(context.Background(), testGuildID))

	api.AssertNumberOfCalls(t, "ApplicationCommands", 2)
	api.AssertNumberOfCalls(t, "ApplicationCommandCreate", 2)
}

func TestHashCommandDeterministic(t *testing.T) {
	a := pingDef("").ApplicationCommand()
	b := pingDef("").ApplicationCommand()
	assert.Equal(t, hashCommand(a), hashCommand(b))

	b.Description = "changed"
	assert.NotEqual(t, hashCommand(a), hashCommand(b))
}
