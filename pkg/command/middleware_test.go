package command

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSession records interaction responses for assertions.
type fakeSession struct {
	responses []*discordgo.InteractionResponse
}

func (f *fakeSession) InteractionRespond(i *discordgo.Interaction, resp *discordgo.InteractionResponse, opts ...discordgo.RequestOption) error {
	f.responses = append(f.responses, resp)
	return nil
}

func (f *fakeSession) InteractionResponseEdit(i *discordgo.Interaction, newresp *discordgo.WebhookEdit, opts ...discordgo.RequestOption) (*discordgo.Message, error) {
	return nil, nil
}

func (f *fakeSession) FollowupMessageCreate(i *discordgo.Interaction, wait bool, data *discordgo.WebhookParams, opts ...discordgo.RequestOption) (*discordgo.Message, error) {
	return nil, nil
}

func guildContext(s Session, guildID string, perms int64) *Context {
	return &Context{
		Session: s,
		Event: &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
			GuildID: guildID,
			Member: &discordgo.Member{
				User:        &discordgo.User{ID: "user-1", Username: "tester"},
				Permissions: perms,
			},
		}},
	}
}

func dmContext(s Session) *Context {
	return &Context{
		Session: s,
		Event: &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
			User: &discordgo.User{ID: "user-1", Username: "tester"},
		}},
	}
}

func TestApplyOrder(t *testing.T) {
	var order []string
	mark := func(name string) Middleware {
		return func(next Handler) Handler {
			return func(ctx *Context) error {
				order = append(order, name)
				return next(ctx)
			}
		}
	}

	h := Apply(func(*Context) error {
		order = append(order, "handler")
		return nil
	}, mark("outer"), mark("inner"))

	require.NoError(t, h(dmContext(&fakeSession{})))
	assert.Equal(t, []string{"outer", "inner", "handler"}, order)
}

func TestGuildOnly(t *testing.T) {
	fs := &fakeSession{}
	ran := false
	h := Apply(func(*Context) error { ran = true; return nil }, GuildOnly())

	require.NoError(t, h(dmContext(fs)))
	assert.False(t, ran, "handler must not run for DM interactions")
	require.Len(t, fs.responses, 1)
	assert.Equal(t, discordgo.MessageFlagsEphemeral, fs.responses[0].Data.Flags)

	require.NoError(t, h(guildContext(fs, "guild-1", 0)))
	assert.True(t, ran)
}

func TestRequirePermissions(t *testing.T) {
	const manageGuild = int64(discordgo.PermissionManageGuild)

	fs := &fakeSession{}
	ran := false
	h := Apply(func(*Context) error { ran = true; return nil }, RequirePermissions(manageGuild))

	require.NoError(t, h(guildContext(fs, "guild-1", 0)))
	assert.False(t, ran)
	require.Len(t, fs.responses, 1)

	require.NoError(t, h(guildContext(fs, "guild-1", manageGuild)))
	assert.True(t, ran)
}

func TestWithRecovery(t *testing.T) {
	h := Apply(func(*Context) error { panic("kaboom") }, WithRecovery())

	err := h(dmContext(&fakeSession{}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "kaboom")

	// A well-behaved handler passes through untouched.
	h = Apply(func(*Context) error { return nil }, WithRecovery())
	require.NoError(t, h(dmContext(&fakeSession{})))
}

func TestContextUser(t *testing.T) {
	guild := guildContext(&fakeSession{}, "guild-1", 0)
	require.NotNil(t, guild.User())
	assert.Equal(t, "user-1", guild.User().ID)

	dm := dmContext(&fakeSession{})
	require.NotNil(t, dm.User())
	assert.Equal(t, "user-1", dm.User().ID)
}
